package services

import (
	"gorm.io/gorm"

	apperrors "cashflow/internal/errors"
	"cashflow/internal/models"
	"cashflow/internal/pagination"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a ReferenceServicer for categories.
func NewCategoryService(db *gorm.DB) ReferenceServicer {
	return &categoryService{db: db}
}

func (s *categoryService) Kind() models.ReferenceKind { return models.ReferenceKindCategory }

// List retrieves a paginated list of categories for a user.
func (s *categoryService) List(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.ReferenceRecord], error) {
	return listOwned[models.Category](s.db, userID, page, "Type")
}

// Get retrieves a category by ID for a specific user
func (s *categoryService) Get(userID, id uint) (*models.ReferenceRecord, error) {
	c, err := getOwned[models.Category](s.db, userID, id, "Type")
	if err != nil {
		return nil, err
	}
	rec := c.Record()
	return &rec, nil
}

// Create creates a new category under one of the user's operation types.
func (s *categoryService) Create(userID uint, input ReferenceInput) (*models.ReferenceRecord, error) {
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}
	typeID, err := requireParent(s.db, models.ReferenceKindType, userID, input.ParentID)
	if err != nil {
		return nil, err
	}

	// Names are unique within the parent type
	if err := ensureUnique[models.Category](s.db, 0, "user_id = ? AND type_id = ? AND name = ?", userID, typeID, name); err != nil {
		return nil, err
	}

	category := &models.Category{UserID: userID, TypeID: typeID, Name: name}
	if err := s.db.Omit("Type", "User", "Subcategories").Create(category).Error; err != nil {
		return nil, writeError(err)
	}
	return s.Get(userID, category.ID)
}

// Update renames a category or moves it to another type. Moving is refused
// while entries use the category, since their type would no longer match.
func (s *categoryService) Update(userID, id uint, input ReferenceInput) (*models.ReferenceRecord, error) {
	category, err := getOwned[models.Category](s.db, userID, id)
	if err != nil {
		return nil, err
	}
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}
	typeID, err := requireParent(s.db, models.ReferenceKindType, userID, input.ParentID)
	if err != nil {
		return nil, err
	}

	if typeID != category.TypeID {
		inUse, err := entriesReferencing(s.db, "category_id", category.ID)
		if err != nil {
			return nil, err
		}
		if inUse > 0 {
			return nil, apperrors.WithMessage(apperrors.ErrReferenceInUse,
				"category is used by existing entries and cannot move to another type")
		}
	}

	if err := ensureUnique[models.Category](s.db, category.ID, "user_id = ? AND type_id = ? AND name = ?", userID, typeID, name); err != nil {
		return nil, err
	}

	if err := s.db.Model(category).Updates(map[string]interface{}{
		"name":    name,
		"type_id": typeID,
	}).Error; err != nil {
		return nil, writeError(err)
	}
	return s.Get(userID, category.ID)
}

// Delete removes a category together with its subcategories. It fails while
// any entry uses the category.
func (s *categoryService) Delete(userID, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		category, err := getOwned[models.Category](tx, userID, id)
		if err != nil {
			return err
		}
		inUse, err := entriesReferencing(tx, "category_id", category.ID)
		if err != nil {
			return err
		}
		if inUse > 0 {
			return apperrors.ErrReferenceInUse
		}

		if err := tx.Where("category_id = ?", category.ID).Delete(&models.Subcategory{}).Error; err != nil {
			return writeError(err)
		}
		if err := tx.Delete(category).Error; err != nil {
			return writeError(err)
		}
		return nil
	})
}

func (s *categoryService) Count(userID uint) (int64, error) {
	return countOwned[models.Category](s.db, userID)
}

// ParentOptions returns the user's operation types.
func (s *categoryService) ParentOptions(userID uint) ([]models.ReferenceRecord, error) {
	return Scope(s.db, models.ReferenceKindType, userID, nil)
}
