package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cashflow/internal/models"
	"cashflow/internal/services"
)

// AutocompleteHandler answers the dependent selection widgets: categories
// narrowed by the chosen type and subcategories by the chosen category.
type AutocompleteHandler struct {
	autocompleteService services.AutocompleteServicer
}

// NewAutocompleteHandler creates a new AutocompleteHandler.
func NewAutocompleteHandler(autocompleteService services.AutocompleteServicer) *AutocompleteHandler {
	return &AutocompleteHandler{autocompleteService: autocompleteService}
}

// AutocompleteResult is one option in Select2 format.
type AutocompleteResult struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// AutocompletePagination tells Select2 whether more pages exist.
type AutocompletePagination struct {
	More bool `json:"more"`
}

// AutocompleteResponse is the Select2 response body.
type AutocompleteResponse struct {
	Results    []AutocompleteResult   `json:"results"`
	Pagination AutocompletePagination `json:"pagination"`
}

// forwardedID reads a parent ID from the query, either directly (?type=3)
// or from the widget's forward parameter (?forward={"type":"3"}).
func forwardedID(c *gin.Context, key string) *uint {
	if raw, ok := c.GetQuery(key); ok {
		return parseOptionalID(raw)
	}

	rawForward := c.Query("forward")
	if rawForward == "" {
		return nil
	}
	var forward map[string]interface{}
	if err := json.Unmarshal([]byte(rawForward), &forward); err != nil {
		return nil
	}
	switch v := forward[key].(type) {
	case string:
		return parseOptionalID(v)
	case float64:
		return parseOptionalID(strconv.FormatFloat(v, 'f', -1, 64))
	}
	return nil
}

func (h *AutocompleteHandler) respond(c *gin.Context, kind models.ReferenceKind, parentKey string) {
	records, err := h.autocompleteService.Search(kind, optionalUserID(c), forwardedID(c, parentKey), c.Query("q"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	results := make([]AutocompleteResult, 0, len(records))
	for _, r := range records {
		results = append(results, AutocompleteResult{ID: strconv.FormatUint(uint64(r.ID), 10), Text: r.Name})
	}
	c.JSON(http.StatusOK, AutocompleteResponse{Results: results})
}

// Categories handles category autocomplete
// @Summary     Category autocomplete
// @Description The caller's categories, narrowed by type. Anonymous callers get no results.
// @Tags        autocomplete
// @Produce     json
// @Param       type    query int    false "Operation type ID"
// @Param       forward query string false "Forwarded widget values as JSON, e.g. {\"type\":\"3\"}"
// @Param       q       query string false "Name contains"
// @Success     200 {object} AutocompleteResponse "Select2 results"
// @Router      /category-autocomplete/ [get]
func (h *AutocompleteHandler) Categories(c *gin.Context) {
	h.respond(c, models.ReferenceKindCategory, "type")
}

// Subcategories handles subcategory autocomplete
// @Summary     Subcategory autocomplete
// @Description The caller's subcategories, narrowed by category. Anonymous callers get no results.
// @Tags        autocomplete
// @Produce     json
// @Param       category query int    false "Category ID"
// @Param       forward  query string false "Forwarded widget values as JSON, e.g. {\"category\":\"7\"}"
// @Param       q        query string false "Name contains"
// @Success     200 {object} AutocompleteResponse "Select2 results"
// @Router      /subcategory-autocomplete/ [get]
func (h *AutocompleteHandler) Subcategories(c *gin.Context) {
	h.respond(c, models.ReferenceKindSubcategory, "category")
}
