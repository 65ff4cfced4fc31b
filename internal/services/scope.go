package services

import (
	"strings"

	"gorm.io/gorm"

	apperrors "cashflow/internal/errors"
	"cashflow/internal/models"
)

// recorder is implemented by every reference model.
type recorder interface {
	Record() models.ReferenceRecord
}

// Scope returns the references of the given kind owned by userID, narrowed
// to the children of parentID when one is given (categories of a type,
// subcategories of a category). It is the only way selectable references
// are looked up: autocomplete, form population and the resolution of
// submitted IDs all go through it. A zero userID yields an empty set.
func Scope(db *gorm.DB, kind models.ReferenceKind, userID uint, parentID *uint) ([]models.ReferenceRecord, error) {
	return ScopeSearch(db, kind, userID, parentID, "")
}

// ScopeSearch is Scope with an optional case-insensitive name filter.
func ScopeSearch(db *gorm.DB, kind models.ReferenceKind, userID uint, parentID *uint, term string) ([]models.ReferenceRecord, error) {
	if userID == 0 {
		return []models.ReferenceRecord{}, nil
	}

	q := db.Scopes(ownedBy(userID), childOf(kind, parentID), nameContains(term)).
		Order("name ASC").Order("id ASC")

	switch kind {
	case models.ReferenceKindType:
		return findRecords[models.OperationType](q)
	case models.ReferenceKindCategory:
		return findRecords[models.Category](q.Preload("Type"))
	case models.ReferenceKindSubcategory:
		return findRecords[models.Subcategory](q.Preload("Category"))
	case models.ReferenceKindStatus:
		return findRecords[models.Status](q)
	}
	return nil, apperrors.ErrUnknownReferenceKind
}

// scopedRecord resolves a single submitted reference ID through Scope.
// It returns ErrInvalidReference when the row is not selectable by the user.
func scopedRecord(db *gorm.DB, kind models.ReferenceKind, userID, id uint, parentID *uint) (*models.ReferenceRecord, error) {
	if id == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidReference, "select a valid "+string(kind))
	}
	rows, err := Scope(db.Where("id = ?", id), kind, userID, parentID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidReference, "select a valid "+string(kind))
	}
	return &rows[0], nil
}

func findRecords[T recorder](q *gorm.DB) ([]models.ReferenceRecord, error) {
	var rows []T
	if err := q.Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return toRecords(rows), nil
}

func toRecords[T recorder](rows []T) []models.ReferenceRecord {
	records := make([]models.ReferenceRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.Record())
	}
	return records
}

func ownedBy(userID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

func childOf(kind models.ReferenceKind, parentID *uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if parentID == nil {
			return db
		}
		switch kind {
		case models.ReferenceKindCategory:
			return db.Where("type_id = ?", *parentID)
		case models.ReferenceKindSubcategory:
			return db.Where("category_id = ?", *parentID)
		}
		return db
	}
}

func nameContains(term string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" {
			return db
		}
		return db.Where("LOWER(name) LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(term))+"%")
	}
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
