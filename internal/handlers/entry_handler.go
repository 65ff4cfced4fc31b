package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "cashflow/internal/errors"
	"cashflow/internal/models"
	"cashflow/internal/pagination"
	"cashflow/internal/services"
)

// EntryHandler handles cash-flow entry requests: the filtered listing and
// the create/update/delete forms.
type EntryHandler struct {
	entryService  services.EntryServicer
	filterService services.FilterStateServicer
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryService services.EntryServicer, filterService services.FilterStateServicer) *EntryHandler {
	return &EntryHandler{entryService: entryService, filterService: filterService}
}

// EntryRequest represents the create/update entry payload. Amount accepts a
// JSON number or string.
type EntryRequest struct {
	CustomDate    string      `json:"custom_date" form:"custom_date" binding:"omitempty,date"`
	TypeID        uint        `json:"type" form:"type" binding:"required"`
	CategoryID    uint        `json:"category" form:"category" binding:"required"`
	SubcategoryID uint        `json:"subcategory" form:"subcategory" binding:"required"`
	StatusID      uint        `json:"status" form:"status" binding:"required"`
	Amount        json.Number `json:"amount" form:"amount" binding:"required,money"`
	Comment       string      `json:"comment" form:"comment"`
}

// ReferenceRef is a reference as embedded in an entry.
type ReferenceRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// EntryResponse represents an entry in the response
type EntryResponse struct {
	ID          uint            `json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	CustomDate  string          `json:"custom_date"`
	Type        ReferenceRef    `json:"type"`
	Category    ReferenceRef    `json:"category"`
	Subcategory ReferenceRef    `json:"subcategory"`
	Status      ReferenceRef    `json:"status"`
	Amount      decimal.Decimal `json:"amount"`
	Comment     string          `json:"comment"`
}

func toEntryResponse(e *models.CashFlowStatement) EntryResponse {
	resp := EntryResponse{
		ID:          e.ID,
		CreatedAt:   e.CreatedAt,
		CustomDate:  e.CustomDate.Format(models.DateLayout),
		Type:        ReferenceRef{ID: e.TypeID},
		Category:    ReferenceRef{ID: e.CategoryID},
		Subcategory: ReferenceRef{ID: e.SubcategoryID},
		Status:      ReferenceRef{ID: e.StatusID},
		Amount:      e.Amount.Round(2),
		Comment:     e.Comment,
	}
	if e.Type != nil {
		resp.Type.Name = e.Type.Name
	}
	if e.Category != nil {
		resp.Category.Name = e.Category.Name
	}
	if e.Subcategory != nil {
		resp.Subcategory.Name = e.Subcategory.Name
	}
	if e.Status != nil {
		resp.Status.Name = e.Status.Name
	}
	return resp
}

func toEntryInput(req EntryRequest) (services.EntryInput, error) {
	amount, err := decimal.NewFromString(req.Amount.String())
	if err != nil {
		return services.EntryInput{}, apperrors.ErrInvalidAmount
	}
	input := services.EntryInput{
		TypeID:        req.TypeID,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		StatusID:      req.StatusID,
		Amount:        amount,
		Comment:       req.Comment,
	}
	if req.CustomDate != "" {
		d, err := time.Parse(models.DateLayout, req.CustomDate)
		if err != nil {
			return services.EntryInput{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "custom_date must be YYYY-MM-DD")
		}
		input.CustomDate = d
	}
	return input, nil
}

// ListEntries handles the filtered, paginated entry listing
// @Summary     List entries
// @Description List the user's entries, newest custom date first. Criteria given in the query are applied and remembered for the session; without criteria the remembered ones are applied.
// @Tags        entries
// @Produce     json
// @Security    BearerAuth
// @Param       custom_date_from query string false "From date (YYYY-MM-DD, inclusive)"
// @Param       custom_date_to   query string false "To date (YYYY-MM-DD, inclusive)"
// @Param       type             query int    false "Operation type ID"
// @Param       category         query int    false "Category ID"
// @Param       subcategory      query int    false "Subcategory ID"
// @Param       status           query int    false "Status ID"
// @Param       amount_min       query string false "Minimum amount (inclusive)"
// @Param       amount_max       query string false "Maximum amount (inclusive)"
// @Param       comment          query string false "Comment contains (case-insensitive)"
// @Param       page             query int    false "Page number (default 1)"
// @Param       per_page         query int    false "Items per page (default 10, max 100)"
// @Success     200 {object} map[string]interface{} "Paginated entries with applied filters and form options"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      / [get]
func (h *EntryHandler) ListEntries(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	sessionID := getSessionID(c)

	criteria, present := services.ExtractCriteria(c.Request.URL.Query())
	if present {
		if err := h.filterService.Save(userID, sessionID, criteria); err != nil {
			respondWithError(c, err)
			return
		}
	} else {
		criteria, err = h.filterService.Load(userID, sessionID)
		if err != nil {
			respondWithError(c, err)
			return
		}
	}

	filter, dropped := services.ParseEntryFilter(criteria)
	filter, unowned := h.entryService.ResolveFilter(userID, filter)
	dropped = append(dropped, unowned...)
	if dropped == nil {
		dropped = []string{}
	}

	page := pagination.Parse(c.Query("page"), c.Query("per_page"))
	result, err := h.entryService.ListEntries(userID, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	options, err := h.entryService.FormOptions(userID, filter.TypeID, filter.CategoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entries := make([]EntryResponse, 0, len(result.Data))
	for i := range result.Data {
		entries = append(entries, toEntryResponse(&result.Data[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"data":            entries,
		"page":            result.Page,
		"page_size":       result.PageSize,
		"total_items":     result.TotalItems,
		"total_pages":     result.TotalPages,
		"has_next":        result.HasNext,
		"has_previous":    result.HasPrev,
		"filters":         criteria,
		"dropped_filters": dropped,
		"form_options":    options,
	})
}

// ResetFilters handles clearing the remembered criteria
// @Summary     Reset filters
// @Description Forget the criteria remembered for this session and redirect to the listing
// @Tags        entries
// @Security    BearerAuth
// @Success     302 "Redirect to the listing"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reset-filters/ [get]
func (h *EntryHandler) ResetFilters(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.filterService.Clear(userID, getSessionID(c)); err != nil {
		respondWithError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// CreateForm returns the options of the entry creation form
// @Summary     Entry creation form
// @Description Selectable references for a new entry, narrowed by the optional type and category
// @Tags        entries
// @Produce     json
// @Security    BearerAuth
// @Param       type     query int false "Selected operation type ID"
// @Param       category query int false "Selected category ID"
// @Success     200 {object} services.FormOptions "Form options"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /create-dds/ [get]
func (h *EntryHandler) CreateForm(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	options, err := h.entryService.FormOptions(userID, parseOptionalID(c.Query("type")), parseOptionalID(c.Query("category")))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"today":        time.Now().UTC().Format(models.DateLayout),
		"form_options": options,
	})
}

// CreateEntry handles the creation of a new entry
// @Summary     Create an entry
// @Description Record a money movement; the custom date defaults to today
// @Tags        entries
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body EntryRequest true "Entry details"
// @Success     201 {object} EntryResponse "Entry created"
// @Failure     400 {object} ErrorResponse "Invalid input or reference"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /create-dds/ [post]
func (h *EntryHandler) CreateEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req EntryRequest
	if err := c.ShouldBind(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	input, err := toEntryInput(req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.entryService.CreateEntry(userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toEntryResponse(entry))
}

// UpdateForm returns an entry with the options of its edit form
// @Summary     Entry edit form
// @Description The entry and its selectable references, narrowed by the entry's type and category unless overridden
// @Tags        entries
// @Produce     json
// @Security    BearerAuth
// @Param       id       path  int true  "Entry ID"
// @Param       type     query int false "Selected operation type ID"
// @Param       category query int false "Selected category ID"
// @Success     200 {object} map[string]interface{} "Entry and form options"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /update-dds/{id}/ [get]
func (h *EntryHandler) UpdateForm(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	entryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.entryService.GetEntry(userID, entryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	typeID, categoryID := &entry.TypeID, &entry.CategoryID
	if id := parseOptionalID(c.Query("type")); id != nil {
		typeID = id
	}
	if id := parseOptionalID(c.Query("category")); id != nil {
		categoryID = id
	}
	options, err := h.entryService.FormOptions(userID, typeID, categoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entry":        toEntryResponse(entry),
		"form_options": options,
	})
}

// UpdateEntry handles replacing the editable fields of an entry
// @Summary     Update an entry
// @Description Replace the editable fields of an entry; the creation time never changes
// @Tags        entries
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int          true "Entry ID"
// @Param       request body EntryRequest true "Entry details"
// @Success     200 {object} EntryResponse "Entry updated"
// @Failure     400 {object} ErrorResponse "Invalid input or reference"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /update-dds/{id}/ [post]
func (h *EntryHandler) UpdateEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	entryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req EntryRequest
	if err := c.ShouldBind(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	input, err := toEntryInput(req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.entryService.UpdateEntry(userID, entryID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEntryResponse(entry))
}

// DeleteConfirm returns the entry about to be deleted
// @Summary     Entry delete confirmation
// @Tags        entries
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Entry ID"
// @Success     200 {object} EntryResponse "Entry"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /delete-dds/{id}/ [get]
func (h *EntryHandler) DeleteConfirm(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	entryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.entryService.GetEntry(userID, entryID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEntryResponse(entry))
}

// DeleteEntry handles deleting an entry
// @Summary     Delete an entry
// @Tags        entries
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Entry ID"
// @Success     200 {object} map[string]string "Entry deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /delete-dds/{id}/ [post]
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	entryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.entryService.DeleteEntry(userID, entryID); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted successfully"})
}
