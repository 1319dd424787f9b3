package api

import "github.com/pageza/recipe-api/internal/dataset"

// SearchResponse represents one page of search results
type SearchResponse struct {
	Results  []dataset.Record `json:"results"`
	Page     int              `json:"page"`
	LastPage int              `json:"last_page"`
}
