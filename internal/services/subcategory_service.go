package services

import (
	"gorm.io/gorm"

	apperrors "cashflow/internal/errors"
	"cashflow/internal/models"
	"cashflow/internal/pagination"
)

// subcategoryService handles subcategory business logic.
type subcategoryService struct {
	db *gorm.DB
}

// NewSubcategoryService creates a ReferenceServicer for subcategories.
func NewSubcategoryService(db *gorm.DB) ReferenceServicer {
	return &subcategoryService{db: db}
}

func (s *subcategoryService) Kind() models.ReferenceKind { return models.ReferenceKindSubcategory }

func (s *subcategoryService) List(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.ReferenceRecord], error) {
	return listOwned[models.Subcategory](s.db, userID, page, "Category")
}

func (s *subcategoryService) Get(userID, id uint) (*models.ReferenceRecord, error) {
	sub, err := getOwned[models.Subcategory](s.db, userID, id, "Category")
	if err != nil {
		return nil, err
	}
	rec := sub.Record()
	return &rec, nil
}

// Create creates a new subcategory under one of the user's categories.
func (s *subcategoryService) Create(userID uint, input ReferenceInput) (*models.ReferenceRecord, error) {
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}
	categoryID, err := requireParent(s.db, models.ReferenceKindCategory, userID, input.ParentID)
	if err != nil {
		return nil, err
	}
	if err := ensureUnique[models.Subcategory](s.db, 0, "user_id = ? AND category_id = ? AND name = ?", userID, categoryID, name); err != nil {
		return nil, err
	}

	sub := &models.Subcategory{UserID: userID, CategoryID: categoryID, Name: name}
	if err := s.db.Omit("Category", "User").Create(sub).Error; err != nil {
		return nil, writeError(err)
	}
	return s.Get(userID, sub.ID)
}

// Update renames a subcategory or moves it to another category. Moving is
// refused while entries use the subcategory.
func (s *subcategoryService) Update(userID, id uint, input ReferenceInput) (*models.ReferenceRecord, error) {
	sub, err := getOwned[models.Subcategory](s.db, userID, id)
	if err != nil {
		return nil, err
	}
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}
	categoryID, err := requireParent(s.db, models.ReferenceKindCategory, userID, input.ParentID)
	if err != nil {
		return nil, err
	}

	if categoryID != sub.CategoryID {
		inUse, err := entriesReferencing(s.db, "subcategory_id", sub.ID)
		if err != nil {
			return nil, err
		}
		if inUse > 0 {
			return nil, apperrors.WithMessage(apperrors.ErrReferenceInUse,
				"subcategory is used by existing entries and cannot move to another category")
		}
	}

	if err := ensureUnique[models.Subcategory](s.db, sub.ID, "user_id = ? AND category_id = ? AND name = ?", userID, categoryID, name); err != nil {
		return nil, err
	}

	if err := s.db.Model(sub).Updates(map[string]interface{}{
		"name":        name,
		"category_id": categoryID,
	}).Error; err != nil {
		return nil, writeError(err)
	}
	return s.Get(userID, sub.ID)
}

// Delete removes a subcategory that no entry uses.
func (s *subcategoryService) Delete(userID, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		sub, err := getOwned[models.Subcategory](tx, userID, id)
		if err != nil {
			return err
		}
		inUse, err := entriesReferencing(tx, "subcategory_id", sub.ID)
		if err != nil {
			return err
		}
		if inUse > 0 {
			return apperrors.ErrReferenceInUse
		}
		if err := tx.Delete(sub).Error; err != nil {
			return writeError(err)
		}
		return nil
	})
}

func (s *subcategoryService) Count(userID uint) (int64, error) {
	return countOwned[models.Subcategory](s.db, userID)
}

// ParentOptions returns the user's categories.
func (s *subcategoryService) ParentOptions(userID uint) ([]models.ReferenceRecord, error) {
	return Scope(s.db, models.ReferenceKindCategory, userID, nil)
}
