package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	apperrors "cashflow/internal/errors"
	"cashflow/internal/models"
	"cashflow/internal/pagination"
)

const maxReferenceNameLength = 100

// ReferenceRegistry selects the typed service for a reference kind.
type ReferenceRegistry struct {
	services map[models.ReferenceKind]ReferenceServicer
}

// NewReferenceRegistry wires the four reference services to db.
func NewReferenceRegistry(db *gorm.DB) *ReferenceRegistry {
	return NewReferenceRegistryFrom(
		NewTypeService(db),
		NewCategoryService(db),
		NewSubcategoryService(db),
		NewStatusService(db),
	)
}

// NewReferenceRegistryFrom builds a registry from explicit services.
func NewReferenceRegistryFrom(services ...ReferenceServicer) *ReferenceRegistry {
	r := &ReferenceRegistry{services: make(map[models.ReferenceKind]ReferenceServicer, len(services))}
	for _, s := range services {
		r.services[s.Kind()] = s
	}
	return r
}

// For returns the service managing the given kind.
func (r *ReferenceRegistry) For(kind models.ReferenceKind) (ReferenceServicer, error) {
	s, ok := r.services[kind]
	if !ok {
		return nil, apperrors.ErrUnknownReferenceKind
	}
	return s, nil
}

// Lookup parses a raw kind and returns its service.
func (r *ReferenceRegistry) Lookup(raw string) (ReferenceServicer, error) {
	kind, ok := models.ParseReferenceKind(raw)
	if !ok {
		return nil, apperrors.ErrUnknownReferenceKind
	}
	return r.For(kind)
}

// normalizeName trims and validates a reference name.
func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if utf8.RuneCountInString(name) > maxReferenceNameLength {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "name must be at most 100 characters")
	}
	return name, nil
}

// requireParent validates that a parent was submitted and that the user may
// select it.
func requireParent(db *gorm.DB, kind models.ReferenceKind, userID uint, parentID *uint) (uint, error) {
	if parentID == nil || *parentID == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, string(kind)+" is required")
	}
	rec, err := scopedRecord(db, kind, userID, *parentID, nil)
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

// getOwned loads a row of T by id, scoped to the owner. Rows of other users
// are reported exactly like missing rows.
func getOwned[T any](db *gorm.DB, userID, id uint, preload ...string) (*T, error) {
	var row T
	q := db.Scopes(ownedBy(userID)).Where("id = ?", id)
	for _, p := range preload {
		q = q.Preload(p)
	}
	if err := q.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrReferenceNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &row, nil
}

// listOwned returns one page of the user's rows of T ordered by name.
func listOwned[T recorder](db *gorm.DB, userID uint, page pagination.PageRequest, preload ...string) (*pagination.PageResponse[models.ReferenceRecord], error) {
	page.Defaults()

	var totalItems int64
	base := db.Model(new(T)).Scopes(ownedBy(userID))
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	q := db.Scopes(ownedBy(userID), pagination.Paginate(page)).Order("name ASC").Order("id ASC")
	for _, p := range preload {
		q = q.Preload(p)
	}
	var rows []T
	if err := q.Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(toRecords(rows), page.Page, page.PageSize, totalItems)
	return &result, nil
}

// countOwned counts the user's rows of T.
func countOwned[T any](db *gorm.DB, userID uint) (int64, error) {
	var count int64
	if err := db.Model(new(T)).Scopes(ownedBy(userID)).Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count, nil
}

// ensureUnique fails with ErrDuplicateReference when a row of T other than
// exceptID matches the uniqueness scope.
func ensureUnique[T any](db *gorm.DB, exceptID uint, query string, args ...interface{}) error {
	var count int64
	q := db.Model(new(T)).Where(query, args...)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrDuplicateReference
	}
	return nil
}

// entriesReferencing counts entries whose column equals id.
func entriesReferencing(db *gorm.DB, column string, id uint) (int64, error) {
	var count int64
	if err := db.Model(&models.CashFlowStatement{}).Where(column+" = ?", id).Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count, nil
}

// writeError maps driver errors raised by a write into domain errors.
func writeError(err error) error {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.ErrDuplicateReference
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.ErrReferenceInUse
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
