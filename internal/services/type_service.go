package services

import (
	"gorm.io/gorm"

	apperrors "cashflow/internal/errors"
	"cashflow/internal/models"
	"cashflow/internal/pagination"
)

// typeService handles operation type business logic.
type typeService struct {
	db *gorm.DB
}

// NewTypeService creates a ReferenceServicer for operation types.
func NewTypeService(db *gorm.DB) ReferenceServicer {
	return &typeService{db: db}
}

func (s *typeService) Kind() models.ReferenceKind { return models.ReferenceKindType }

// List retrieves a paginated list of the user's operation types.
func (s *typeService) List(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.ReferenceRecord], error) {
	return listOwned[models.OperationType](s.db, userID, page)
}

// Get retrieves an operation type by ID for a specific user.
func (s *typeService) Get(userID, id uint) (*models.ReferenceRecord, error) {
	t, err := getOwned[models.OperationType](s.db, userID, id)
	if err != nil {
		return nil, err
	}
	rec := t.Record()
	return &rec, nil
}

// Create creates a new operation type.
func (s *typeService) Create(userID uint, input ReferenceInput) (*models.ReferenceRecord, error) {
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := ensureUnique[models.OperationType](s.db, 0, "user_id = ? AND name = ?", userID, name); err != nil {
		return nil, err
	}

	t := &models.OperationType{UserID: userID, Name: name}
	if err := s.db.Create(t).Error; err != nil {
		return nil, writeError(err)
	}
	rec := t.Record()
	return &rec, nil
}

// Update renames an operation type.
func (s *typeService) Update(userID, id uint, input ReferenceInput) (*models.ReferenceRecord, error) {
	t, err := getOwned[models.OperationType](s.db, userID, id)
	if err != nil {
		return nil, err
	}
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := ensureUnique[models.OperationType](s.db, t.ID, "user_id = ? AND name = ?", userID, name); err != nil {
		return nil, err
	}

	t.Name = name
	if err := s.db.Model(t).Update("name", name).Error; err != nil {
		return nil, writeError(err)
	}
	rec := t.Record()
	return &rec, nil
}

// Delete removes an operation type together with its categories and their
// subcategories. It fails while any entry uses the type.
func (s *typeService) Delete(userID, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		t, err := getOwned[models.OperationType](tx, userID, id)
		if err != nil {
			return err
		}
		inUse, err := entriesReferencing(tx, "type_id", t.ID)
		if err != nil {
			return err
		}
		if inUse > 0 {
			return apperrors.ErrReferenceInUse
		}

		categoryIDs := tx.Model(&models.Category{}).Select("id").Where("type_id = ?", t.ID)
		if err := tx.Where("category_id IN (?)", categoryIDs).Delete(&models.Subcategory{}).Error; err != nil {
			return writeError(err)
		}
		if err := tx.Where("type_id = ?", t.ID).Delete(&models.Category{}).Error; err != nil {
			return writeError(err)
		}
		if err := tx.Delete(t).Error; err != nil {
			return writeError(err)
		}
		return nil
	})
}

// Count returns the number of operation types the user owns.
func (s *typeService) Count(userID uint) (int64, error) {
	return countOwned[models.OperationType](s.db, userID)
}

// ParentOptions is empty: operation types are the root of the taxonomy.
func (s *typeService) ParentOptions(uint) ([]models.ReferenceRecord, error) {
	return []models.ReferenceRecord{}, nil
}
