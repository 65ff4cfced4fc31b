package services

import (
	"gorm.io/gorm"

	apperrors "cashflow/internal/errors"
	"cashflow/internal/models"
	"cashflow/internal/pagination"
)

// statusService handles entry status business logic.
type statusService struct {
	db *gorm.DB
}

// NewStatusService creates a ReferenceServicer for statuses.
func NewStatusService(db *gorm.DB) ReferenceServicer {
	return &statusService{db: db}
}

func (s *statusService) Kind() models.ReferenceKind { return models.ReferenceKindStatus }

func (s *statusService) List(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.ReferenceRecord], error) {
	return listOwned[models.Status](s.db, userID, page)
}

func (s *statusService) Get(userID, id uint) (*models.ReferenceRecord, error) {
	st, err := getOwned[models.Status](s.db, userID, id)
	if err != nil {
		return nil, err
	}
	rec := st.Record()
	return &rec, nil
}

// Create creates a new status.
func (s *statusService) Create(userID uint, input ReferenceInput) (*models.ReferenceRecord, error) {
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := ensureUnique[models.Status](s.db, 0, "user_id = ? AND name = ?", userID, name); err != nil {
		return nil, err
	}

	st := &models.Status{UserID: userID, Name: name}
	if err := s.db.Create(st).Error; err != nil {
		return nil, writeError(err)
	}
	rec := st.Record()
	return &rec, nil
}

// Update renames a status.
func (s *statusService) Update(userID, id uint, input ReferenceInput) (*models.ReferenceRecord, error) {
	st, err := getOwned[models.Status](s.db, userID, id)
	if err != nil {
		return nil, err
	}
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := ensureUnique[models.Status](s.db, st.ID, "user_id = ? AND name = ?", userID, name); err != nil {
		return nil, err
	}

	st.Name = name
	if err := s.db.Model(st).Update("name", name).Error; err != nil {
		return nil, writeError(err)
	}
	rec := st.Record()
	return &rec, nil
}

// Delete removes a status that no entry uses.
func (s *statusService) Delete(userID, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		st, err := getOwned[models.Status](tx, userID, id)
		if err != nil {
			return err
		}
		inUse, err := entriesReferencing(tx, "status_id", st.ID)
		if err != nil {
			return err
		}
		if inUse > 0 {
			return apperrors.ErrReferenceInUse
		}
		if err := tx.Delete(st).Error; err != nil {
			return writeError(err)
		}
		return nil
	})
}

func (s *statusService) Count(userID uint) (int64, error) {
	return countOwned[models.Status](s.db, userID)
}

func (s *statusService) ParentOptions(uint) ([]models.ReferenceRecord, error) {
	return []models.ReferenceRecord{}, nil
}
