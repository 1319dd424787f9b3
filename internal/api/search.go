package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-api/internal/dataset"
	"github.com/pageza/recipe-api/internal/middleware"
	"github.com/pageza/recipe-api/internal/pagination"
)

const (
	cuisineField     = "recipe_cuisine"
	msgNoQuery       = "No query provided."
	msgBadPagination = "Invalid pagination: %s"
)

// searchResultFields are the recipe fields returned by searches
var searchResultFields = []string{"id", "title", "marketing_description"}

type SearchHandler struct {
	store *dataset.Store
}

func NewSearchHandler(store *dataset.Store) *SearchHandler {
	return &SearchHandler{store: store}
}

func (h *SearchHandler) RegisterRoutes(router gin.IRouter) {
	search := router.Group("/search")
	{
		search.GET("/by_cuisine", h.SearchByCuisine)
		search.HEAD("/by_cuisine", h.SearchByCuisine)
	}
}

// SearchByCuisine returns recipes whose cuisine equals q exactly, ten per page
func (h *SearchHandler) SearchByCuisine(c *gin.Context) {
	if len(c.Request.URL.Query()) == 0 {
		middleware.AbortWithError(c, http.StatusBadRequest, msgNoQuery)
		return
	}

	cuisine, ok := c.GetQuery("q")
	if !ok {
		middleware.AbortWithError(c, http.StatusBadRequest, msgNoQuery)
		return
	}

	page := 0
	if raw, ok := c.GetQuery("page"); ok {
		p, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, fmt.Sprintf(msgBadPagination, raw))
			return
		}
		if p < 0 {
			middleware.AbortWithError(c, http.StatusBadRequest, fmt.Sprintf(msgBadPagination, strconv.Itoa(p)))
			return
		}
		page = p
	}

	matches := h.store.FilterByField(cuisineField, cuisine)
	results := make([]dataset.Record, len(matches))
	for i, m := range matches {
		results[i] = m.Project(searchResultFields...)
	}

	pageResults, lastPage := pagination.Paginate(results, page)
	c.JSON(http.StatusOK, SearchResponse{
		Results:  pageResults,
		Page:     page,
		LastPage: lastPage,
	})
}
