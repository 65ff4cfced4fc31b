package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cashflow/internal/errors"
	"cashflow/internal/models"
	"cashflow/internal/pagination"
	"cashflow/internal/services"
)

// ReferenceHandler serves the generic CRUD of the four reference kinds.
// The kind path segment selects the typed service.
type ReferenceHandler struct {
	registry *services.ReferenceRegistry
}

// NewReferenceHandler creates a new ReferenceHandler.
func NewReferenceHandler(registry *services.ReferenceRegistry) *ReferenceHandler {
	return &ReferenceHandler{registry: registry}
}

// ReferenceRequest represents the create/update reference payload. The
// parent may be given as "parent" or under its kind name ("type" for a
// category, "category" for a subcategory).
type ReferenceRequest struct {
	Name     string `json:"name" form:"name" binding:"required,max=100"`
	ParentID *uint  `json:"parent" form:"parent"`
	TypeID   *uint  `json:"type" form:"type"`
	Category *uint  `json:"category" form:"category"`
}

func (r ReferenceRequest) input(kind models.ReferenceKind) services.ReferenceInput {
	parent := r.ParentID
	switch kind {
	case models.ReferenceKindCategory:
		if r.TypeID != nil {
			parent = r.TypeID
		}
	case models.ReferenceKindSubcategory:
		if r.Category != nil {
			parent = r.Category
		}
	}
	return services.ReferenceInput{Name: r.Name, ParentID: parent}
}

// ReferenceKindSummary is one navigation item of the references page.
type ReferenceKindSummary struct {
	Kind        models.ReferenceKind `json:"kind"`
	Label       string               `json:"label"`
	PluralLabel string               `json:"plural_label"`
	Count       int64                `json:"count"`
	URL         string               `json:"url"`
}

// service resolves the :kind path segment.
func (h *ReferenceHandler) service(c *gin.Context) (services.ReferenceServicer, bool) {
	svc, err := h.registry.Lookup(c.Param("kind"))
	if err != nil {
		respondWithError(c, err)
		return nil, false
	}
	return svc, true
}

func formPayload(svc services.ReferenceServicer, userID uint) (gin.H, error) {
	kind := svc.Kind()
	payload := gin.H{
		"kind":  kind,
		"label": kind.Label(),
	}
	if parent, ok := kind.Parent(); ok {
		options, err := svc.ParentOptions(userID)
		if err != nil {
			return nil, err
		}
		payload["parent_kind"] = parent
		payload["parent_options"] = options
	}
	return payload, nil
}

// Navigation lists the reference kinds with the user's row counts
// @Summary     Reference navigation
// @Tags        references
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Reference kinds"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /references/ [get]
func (h *ReferenceHandler) Navigation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	kinds := make([]ReferenceKindSummary, 0, len(models.ReferenceKinds))
	for _, kind := range models.ReferenceKinds {
		svc, err := h.registry.For(kind)
		if err != nil {
			respondWithError(c, err)
			return
		}
		count, err := svc.Count(userID)
		if err != nil {
			respondWithError(c, err)
			return
		}
		kinds = append(kinds, ReferenceKindSummary{
			Kind:        kind,
			Label:       kind.Label(),
			PluralLabel: kind.PluralLabel(),
			Count:       count,
			URL:         "/reference/" + string(kind),
		})
	}
	c.JSON(http.StatusOK, gin.H{"kinds": kinds})
}

// List handles listing references of one kind
// @Summary     List references
// @Tags        references
// @Produce     json
// @Security    BearerAuth
// @Param       kind     path  string true  "Reference kind (type, category, subcategory, status)"
// @Param       page     query int    false "Page number (default 1)"
// @Param       per_page query int    false "Items per page (default 10, max 100)"
// @Success     200 {object} pagination.PageResponse[models.ReferenceRecord] "Paginated references"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Unknown kind"
// @Router      /reference/{kind} [get]
func (h *ReferenceHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	svc, ok := h.service(c)
	if !ok {
		return
	}

	result, err := svc.List(userID, pagination.Parse(c.Query("page"), c.Query("per_page")))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateForm returns the options of the creation form of a kind
// @Summary     Reference creation form
// @Tags        references
// @Produce     json
// @Security    BearerAuth
// @Param       kind path string true "Reference kind"
// @Success     200 {object} map[string]interface{} "Form options"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Unknown kind"
// @Router      /reference/{kind}/create [get]
func (h *ReferenceHandler) CreateForm(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	svc, ok := h.service(c)
	if !ok {
		return
	}

	payload, err := formPayload(svc, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// Create handles creating a reference
// @Summary     Create a reference
// @Tags        references
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       kind    path string           true "Reference kind"
// @Param       request body ReferenceRequest true "Reference details"
// @Success     201 {object} models.ReferenceRecord "Reference created"
// @Failure     400 {object} ErrorResponse "Invalid input or parent"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Unknown kind"
// @Failure     409 {object} ErrorResponse "Duplicate name"
// @Router      /reference/{kind}/create [post]
func (h *ReferenceHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	svc, ok := h.service(c)
	if !ok {
		return
	}

	var req ReferenceRequest
	if err := c.ShouldBind(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	record, err := svc.Create(userID, req.input(svc.Kind()))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// UpdateForm returns a reference with the options of its edit form
// @Summary     Reference edit form
// @Tags        references
// @Produce     json
// @Security    BearerAuth
// @Param       kind path string true "Reference kind"
// @Param       id   path int    true "Reference ID"
// @Success     200 {object} map[string]interface{} "Reference and form options"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /reference/{kind}/{id}/update [get]
func (h *ReferenceHandler) UpdateForm(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	svc, ok := h.service(c)
	if !ok {
		return
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	record, err := svc.Get(userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	payload, err := formPayload(svc, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	payload["reference"] = record
	c.JSON(http.StatusOK, payload)
}

// Update handles renaming or re-parenting a reference
// @Summary     Update a reference
// @Tags        references
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       kind    path string           true "Reference kind"
// @Param       id      path int              true "Reference ID"
// @Param       request body ReferenceRequest true "Reference details"
// @Success     200 {object} models.ReferenceRecord "Reference updated"
// @Failure     400 {object} ErrorResponse "Invalid input or parent"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Duplicate name or reference in use"
// @Router      /reference/{kind}/{id}/update [post]
func (h *ReferenceHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	svc, ok := h.service(c)
	if !ok {
		return
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ReferenceRequest
	if err := c.ShouldBind(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	record, err := svc.Update(userID, id, req.input(svc.Kind()))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// DeleteConfirm returns the reference about to be deleted
// @Summary     Reference delete confirmation
// @Tags        references
// @Produce     json
// @Security    BearerAuth
// @Param       kind path string true "Reference kind"
// @Param       id   path int    true "Reference ID"
// @Success     200 {object} models.ReferenceRecord "Reference"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /reference/{kind}/{id}/delete [get]
func (h *ReferenceHandler) DeleteConfirm(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	svc, ok := h.service(c)
	if !ok {
		return
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	record, err := svc.Get(userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Delete handles deleting a reference
// @Summary     Delete a reference
// @Description Deleting a type removes its categories and subcategories; deleting a category removes its subcategories. Refused while entries use any of them.
// @Tags        references
// @Produce     json
// @Security    BearerAuth
// @Param       kind path string true "Reference kind"
// @Param       id   path int    true "Reference ID"
// @Success     200 {object} map[string]string "Reference deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Reference in use"
// @Router      /reference/{kind}/{id}/delete [post]
func (h *ReferenceHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	svc, ok := h.service(c)
	if !ok {
		return
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := svc.Delete(userID, id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": svc.Kind().Label() + " deleted successfully"})
}
