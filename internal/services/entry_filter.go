package services

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"cashflow/internal/models"
)

// Filter criteria keys, as submitted by the listing query string.
const (
	CriteriaDateFrom    = "custom_date_from"
	CriteriaDateTo      = "custom_date_to"
	CriteriaType        = "type"
	CriteriaCategory    = "category"
	CriteriaSubcategory = "subcategory"
	CriteriaStatus      = "status"
	CriteriaAmountMin   = "amount_min"
	CriteriaAmountMax   = "amount_max"
	CriteriaComment     = "comment"
)

// CriteriaKeys lists every filter key. Pagination keys are deliberately
// absent: they are navigation, not criteria.
var CriteriaKeys = []string{
	CriteriaDateFrom,
	CriteriaDateTo,
	CriteriaType,
	CriteriaCategory,
	CriteriaSubcategory,
	CriteriaStatus,
	CriteriaAmountMin,
	CriteriaAmountMax,
	CriteriaComment,
}

// EntryFilter holds the parsed listing criteria. Nil fields are not applied.
type EntryFilter struct {
	DateFrom      *time.Time
	DateTo        *time.Time
	TypeID        *uint
	CategoryID    *uint
	SubcategoryID *uint
	StatusID      *uint
	AmountMin     *decimal.Decimal
	AmountMax     *decimal.Decimal
	Comment       string
}

// ExtractCriteria picks the criteria keys out of a query string. The boolean
// reports whether any criteria key was present at all, even with an empty
// value.
func ExtractCriteria(values url.Values) (map[string]string, bool) {
	criteria := make(map[string]string)
	present := false
	for _, key := range CriteriaKeys {
		if _, ok := values[key]; ok {
			present = true
			criteria[key] = strings.TrimSpace(values.Get(key))
		}
	}
	return criteria, present
}

// ParseEntryFilter converts raw criteria into an EntryFilter. Blank values
// are ignored; values that do not parse are dropped and their keys returned.
func ParseEntryFilter(raw map[string]string) (EntryFilter, []string) {
	var f EntryFilter
	var dropped []string

	for _, key := range CriteriaKeys {
		value := strings.TrimSpace(raw[key])
		if value == "" {
			continue
		}

		ok := true
		switch key {
		case CriteriaDateFrom:
			f.DateFrom, ok = parseDate(value)
		case CriteriaDateTo:
			f.DateTo, ok = parseDate(value)
		case CriteriaType:
			f.TypeID, ok = parseID(value)
		case CriteriaCategory:
			f.CategoryID, ok = parseID(value)
		case CriteriaSubcategory:
			f.SubcategoryID, ok = parseID(value)
		case CriteriaStatus:
			f.StatusID, ok = parseID(value)
		case CriteriaAmountMin:
			f.AmountMin, ok = parseAmount(value)
		case CriteriaAmountMax:
			f.AmountMax, ok = parseAmount(value)
		case CriteriaComment:
			f.Comment = value
		}
		if !ok {
			dropped = append(dropped, key)
		}
	}
	return f, dropped
}

func parseDate(s string) (*time.Time, bool) {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return nil, false
	}
	return &t, true
}

func parseID(s string) (*uint, bool) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return nil, false
	}
	id := uint(n)
	return &id, true
}

func parseAmount(s string) (*decimal.Decimal, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, false
	}
	return &d, true
}

// applyEntryFilters AND-combines every set criterion.
func applyEntryFilters(f EntryFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if f.DateFrom != nil {
			q = q.Where("custom_date >= ?", models.DateOf(*f.DateFrom))
		}
		if f.DateTo != nil {
			q = q.Where("custom_date <= ?", models.DateOf(*f.DateTo))
		}
		if f.TypeID != nil {
			q = q.Where("type_id = ?", *f.TypeID)
		}
		if f.CategoryID != nil {
			q = q.Where("category_id = ?", *f.CategoryID)
		}
		if f.SubcategoryID != nil {
			q = q.Where("subcategory_id = ?", *f.SubcategoryID)
		}
		if f.StatusID != nil {
			q = q.Where("status_id = ?", *f.StatusID)
		}
		if f.AmountMin != nil {
			q = q.Where("amount >= ?", *f.AmountMin)
		}
		if f.AmountMax != nil {
			q = q.Where("amount <= ?", *f.AmountMax)
		}
		if f.Comment != "" {
			q = q.Where("LOWER(comment) LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(f.Comment))+"%")
		}
		return q
	}
}
