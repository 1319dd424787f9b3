package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/pageza/recipe-api/config"
	"github.com/pageza/recipe-api/internal/dataset"
	"github.com/pageza/recipe-api/internal/server"
)

const shutdownTimeout = 5 * time.Second

func main() {
	app := &cli.App{
		Name:  "recipe-api",
		Usage: "Serve a recipe dataset over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Recipe CSV path or s3://bucket/key (overrides DATA_SOURCE)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Load the dataset and serve the HTTP API",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "host",
						Usage: "Listen host (overrides SERVER_HOST)",
					},
					&cli.StringFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Usage:   "Listen port (overrides SERVER_PORT)",
					},
				},
				Action: serveAction,
			},
			{
				Name:   "check",
				Usage:  "Load the dataset and report what was found",
				Action: checkAction,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// loadConfig applies command line overrides on top of the environment
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	if data := c.String("data"); data != "" {
		cfg.DataSource = data
	}
	if host := c.String("host"); host != "" {
		cfg.ServerHost = host
	}
	if port := c.String("port"); port != "" {
		cfg.ServerPort = port
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func loadDataset(ctx context.Context, cfg *config.Config) (*dataset.Store, error) {
	var fetcher dataset.ObjectFetcher
	if strings.HasPrefix(cfg.DataSource, "s3://") {
		s3Cfg, err := config.NewS3Config(ctx, cfg.AWSRegion)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		fetcher = s3Cfg
	}

	return dataset.Load(ctx, cfg.DataSource, fetcher)
}

func serveAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log.Printf("Starting in %s environment", config.GetEnvironment())

	store, err := loadDataset(c.Context, cfg)
	if err != nil {
		return err
	}

	srv := server.New(c.Context, cfg, store)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	log.Println("Server stopped")
	return nil
}

func checkAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	store, err := loadDataset(c.Context, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d recipes\n", cfg.DataSource, store.Len())
	return nil
}
