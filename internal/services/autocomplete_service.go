package services

import (
	"gorm.io/gorm"

	"cashflow/internal/models"
)

// autocompleteService backs the selection widgets of the entry and filter
// forms.
type autocompleteService struct {
	db *gorm.DB
}

// NewAutocompleteService creates a new AutocompleteServicer.
func NewAutocompleteService(db *gorm.DB) AutocompleteServicer {
	return &autocompleteService{db: db}
}

// Search returns the user's references of kind under parentID whose name
// contains term. Anonymous callers (userID 0) get an empty result.
func (s *autocompleteService) Search(kind models.ReferenceKind, userID uint, parentID *uint, term string) ([]models.ReferenceRecord, error) {
	return ScopeSearch(s.db, kind, userID, parentID, term)
}
