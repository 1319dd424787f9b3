package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-api/internal/dataset"
	"github.com/pageza/recipe-api/internal/middleware"
)

// MethodUpdate is the HTTP verb used for partial recipe updates
const MethodUpdate = "UPDATE"

const maxUpdateBodyBytes = 1 << 20

const (
	msgRecipeNotFound = "No recipe by this ID."
	msgNeedJSON       = "Need JSON to update."
	msgIDImmutable    = "Updating the ID field is not allowed."
)

var errNotJSONObject = errors.New("body is not a JSON object")

type RecipeHandler struct {
	store *dataset.Store
}

func NewRecipeHandler(store *dataset.Store) *RecipeHandler {
	return &RecipeHandler{store: store}
}

// RegisterRoutes registers GET, HEAD and UPDATE on /recipe/:id. Any update
// middleware (rate limiting) runs only in front of UPDATE.
func (h *RecipeHandler) RegisterRoutes(router gin.IRouter, updateMiddleware ...gin.HandlerFunc) {
	router.GET("/recipe/:id", h.GetRecipe)
	router.HEAD("/recipe/:id", h.GetRecipe)
	router.Handle(MethodUpdate, "/recipe/:id", append(updateMiddleware, h.UpdateRecipe)...)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.store.Get(c.Param("id"))
	if err != nil {
		middleware.AbortWithError(c, http.StatusNotFound, msgRecipeNotFound)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// UpdateRecipe sets existing fields of a recipe from a JSON object body.
// The id field cannot change and unknown fields are rejected; a rejected
// update changes nothing.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	if !isJSONContentType(c.ContentType()) {
		middleware.AbortWithError(c, http.StatusBadRequest, msgNeedJSON)
		return
	}

	changes, err := decodeChanges(http.MaxBytesReader(c.Writer, c.Request.Body, maxUpdateBodyBytes))
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, msgNeedJSON)
		return
	}

	id := c.Param("id")
	recipe, err := h.store.Update(id, changes)
	if err != nil {
		var fieldErr *dataset.FieldNotFoundError
		switch {
		case errors.Is(err, dataset.ErrNotFound):
			middleware.AbortWithError(c, http.StatusNotFound, msgRecipeNotFound)
		case errors.Is(err, dataset.ErrIDImmutable):
			middleware.AbortWithError(c, http.StatusBadRequest, msgIDImmutable)
		case errors.As(err, &fieldErr):
			middleware.AbortWithError(c, http.StatusBadRequest, fmt.Sprintf("Field not found: %s", fieldErr.Field))
		default:
			log.Printf("Failed to update recipe %s: %v", id, err)
			middleware.AbortWithError(c, http.StatusInternalServerError, "Failed to update recipe")
		}
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// isJSONContentType accepts application/json and application/*+json
func isJSONContentType(contentType string) bool {
	contentType = strings.ToLower(contentType)
	return contentType == "application/json" ||
		(strings.HasPrefix(contentType, "application/") && strings.HasSuffix(contentType, "+json"))
}

// decodeChanges reads a JSON object keeping its keys in the order the client
// sent them. Numbers keep their literal form.
func decodeChanges(body io.Reader) ([]dataset.FieldChange, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errNotJSONObject
	}

	changes := make([]dataset.FieldChange, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		field, ok := tok.(string)
		if !ok {
			return nil, errNotJSONObject
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		changes = append(changes, dataset.FieldChange{Field: field, Value: value})
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after JSON object")
	}

	return changes, nil
}
