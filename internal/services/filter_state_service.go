package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "cashflow/internal/errors"
	"cashflow/internal/models"
)

// filterStateService stores the last applied listing criteria per login
// session.
type filterStateService struct {
	db *gorm.DB
}

// NewFilterStateService creates a new FilterStateServicer.
func NewFilterStateService(db *gorm.DB) FilterStateServicer {
	return &filterStateService{db: db}
}

// Load returns the saved criteria, or an empty map when none were saved.
func (s *filterStateService) Load(userID uint, sessionID string) (map[string]string, error) {
	var state models.FilterState
	if err := s.db.Where("user_id = ? AND session_id = ?", userID, sessionID).First(&state).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return map[string]string{}, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if state.Criteria == nil {
		return map[string]string{}, nil
	}
	return state.Criteria, nil
}

// Save replaces the saved criteria of the session.
func (s *filterStateService) Save(userID uint, sessionID string, criteria map[string]string) error {
	stored := make(map[string]string, len(criteria))
	for _, key := range CriteriaKeys {
		if v, ok := criteria[key]; ok {
			stored[key] = v
		}
	}

	state := &models.FilterState{UserID: userID, SessionID: sessionID, Criteria: stored}
	if err := s.db.Omit("User").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"criteria", "updated_at"}),
	}).Create(state).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Clear forgets the saved criteria of the session.
func (s *filterStateService) Clear(userID uint, sessionID string) error {
	if err := s.db.Where("user_id = ? AND session_id = ?", userID, sessionID).
		Delete(&models.FilterState{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
