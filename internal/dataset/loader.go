package dataset

import (
	"context"
	"encoding/csv"
	"io"
	"log"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

const s3Scheme = "s3://"

// ObjectFetcher reads an object from a remote bucket.
type ObjectFetcher interface {
	FetchObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// ReadCSV parses comma-separated, double-quote quoted recipe data. The header
// row names the fields and must contain an id column. Short rows leave the
// missing fields set to nil; extra cells are dropped.
func ReadCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.Comma = ','
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("csv is empty")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read csv header")
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	hasID := false
	for _, h := range header {
		if h == IDField {
			hasID = true
			break
		}
	}
	if !hasID {
		return nil, errors.Newf("csv header has no %q column", IDField)
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read csv row")
		}

		record := make(Record, len(header))
		for i, field := range header {
			if i < len(row) {
				record[field] = row[i]
			} else {
				record[field] = nil
			}
		}
		if _, ok := record[IDField].(string); !ok {
			line, _ := reader.FieldPos(0)
			return nil, errors.Wrapf(ErrMissingID, "csv line %d", line)
		}
		records = append(records, record)
	}

	return records, nil
}

// LoadFile builds a store from a local CSV file.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open dataset %s", path)
	}
	defer f.Close()

	return loadReader(f, path)
}

// Load builds a store from a local path or an s3://bucket/key source. The
// fetcher is only used for s3 sources and may be nil otherwise.
func Load(ctx context.Context, source string, fetcher ObjectFetcher) (*Store, error) {
	if !strings.HasPrefix(source, s3Scheme) {
		return LoadFile(source)
	}

	bucket, key, err := parseS3Source(source)
	if err != nil {
		return nil, err
	}
	if fetcher == nil {
		return nil, errors.Newf("no s3 client configured for %s", source)
	}

	body, err := fetcher.FetchObject(ctx, bucket, key)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch dataset %s", source)
	}
	defer body.Close()

	return loadReader(body, source)
}

func loadReader(r io.Reader, name string) (*Store, error) {
	records, err := ReadCSV(r)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse dataset %s", name)
	}

	store, err := NewStore(records...)
	if err != nil {
		return nil, err
	}

	log.Printf("Loaded %d recipes from %s", store.Len(), name)
	return store, nil
}

func parseS3Source(source string) (string, string, error) {
	bucket, key, ok := strings.Cut(strings.TrimPrefix(source, s3Scheme), "/")
	if !ok || bucket == "" || key == "" {
		return "", "", errors.Newf("invalid s3 source %q, want s3://bucket/key", source)
	}
	return bucket, key, nil
}
