package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "cashflow/internal/errors"
	"cashflow/internal/models"
	"cashflow/internal/pagination"
)

// entryColumns are the user-editable columns written on update.
var entryColumns = []string{
	"custom_date", "type_id", "category_id", "subcategory_id",
	"status_id", "amount", "comment", "updated_at",
}

// entryService handles cash-flow entry business logic.
type entryService struct {
	db *gorm.DB
}

// NewEntryService creates a new EntryServicer.
func NewEntryService(db *gorm.DB) EntryServicer {
	return &entryService{db: db}
}

// CreateEntry records a new entry after resolving every reference through
// the user's scope and checking the taxonomy chain.
func (s *entryService) CreateEntry(userID uint, input EntryInput) (*models.CashFlowStatement, error) {
	if err := s.resolveInput(userID, input); err != nil {
		return nil, err
	}

	entry := &models.CashFlowStatement{
		UserID:        userID,
		CustomDate:    input.CustomDate,
		TypeID:        input.TypeID,
		CategoryID:    input.CategoryID,
		SubcategoryID: input.SubcategoryID,
		StatusID:      input.StatusID,
		Amount:        input.Amount,
		Comment:       input.Comment,
	}
	if err := s.db.Omit(clause.Associations).Create(entry).Error; err != nil {
		return nil, entryWriteError(err)
	}

	return s.GetEntry(userID, entry.ID)
}

// GetEntry retrieves an entry by ID for a specific user, with its
// references preloaded.
func (s *entryService) GetEntry(userID, entryID uint) (*models.CashFlowStatement, error) {
	var entry models.CashFlowStatement
	if err := s.db.Scopes(ownedBy(userID), preloadReferences).
		Where("id = ?", entryID).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &entry, nil
}

// UpdateEntry replaces the user-editable fields of an entry. The creation
// timestamp is never touched; an omitted custom date keeps the stored one.
func (s *entryService) UpdateEntry(userID, entryID uint, input EntryInput) (*models.CashFlowStatement, error) {
	var entry models.CashFlowStatement
	if err := s.db.Scopes(ownedBy(userID)).Where("id = ?", entryID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.resolveInput(userID, input); err != nil {
		return nil, err
	}

	if !input.CustomDate.IsZero() {
		entry.CustomDate = input.CustomDate
	}
	entry.TypeID = input.TypeID
	entry.CategoryID = input.CategoryID
	entry.SubcategoryID = input.SubcategoryID
	entry.StatusID = input.StatusID
	entry.Amount = input.Amount
	entry.Comment = input.Comment

	if err := s.db.Model(&entry).Select(entryColumns).Omit(clause.Associations).Updates(&entry).Error; err != nil {
		return nil, entryWriteError(err)
	}

	return s.GetEntry(userID, entry.ID)
}

// DeleteEntry removes an entry.
func (s *entryService) DeleteEntry(userID, entryID uint) error {
	result := s.db.Scopes(ownedBy(userID)).Where("id = ?", entryID).Delete(&models.CashFlowStatement{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrEntryNotFound
	}
	return nil
}

// ListEntries retrieves a filtered page of entries, newest custom date
// first and in insertion order within a day.
func (s *entryService) ListEntries(userID uint, filter EntryFilter, page pagination.PageRequest) (*pagination.PageResponse[models.CashFlowStatement], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.CashFlowStatement{}).
		Scopes(ownedBy(userID), applyEntryFilters(filter)).
		Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.CashFlowStatement
	if err := s.db.Scopes(ownedBy(userID), applyEntryFilters(filter), preloadReferences, pagination.Paginate(page)).
		Order("custom_date DESC").
		Order("id ASC").
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// ResolveFilter drops reference criteria that are not selectable by the
// user and reports the dropped keys.
func (s *entryService) ResolveFilter(userID uint, filter EntryFilter) (EntryFilter, []string) {
	var dropped []string
	check := func(key string, kind models.ReferenceKind, id **uint) {
		if *id == nil {
			return
		}
		if _, err := scopedRecord(s.db, kind, userID, **id, nil); err != nil {
			*id = nil
			dropped = append(dropped, key)
		}
	}
	check(CriteriaType, models.ReferenceKindType, &filter.TypeID)
	check(CriteriaCategory, models.ReferenceKindCategory, &filter.CategoryID)
	check(CriteriaSubcategory, models.ReferenceKindSubcategory, &filter.SubcategoryID)
	check(CriteriaStatus, models.ReferenceKindStatus, &filter.StatusID)
	return filter, dropped
}

// FormOptions returns the selectable references of the entry and filter
// forms. Categories narrow to typeID and subcategories to categoryID when
// given.
func (s *entryService) FormOptions(userID uint, typeID, categoryID *uint) (*FormOptions, error) {
	var opts FormOptions
	var err error
	if opts.Types, err = Scope(s.db, models.ReferenceKindType, userID, nil); err != nil {
		return nil, err
	}
	if opts.Categories, err = Scope(s.db, models.ReferenceKindCategory, userID, typeID); err != nil {
		return nil, err
	}
	if opts.Subcategories, err = Scope(s.db, models.ReferenceKindSubcategory, userID, categoryID); err != nil {
		return nil, err
	}
	if opts.Statuses, err = Scope(s.db, models.ReferenceKindStatus, userID, nil); err != nil {
		return nil, err
	}
	return &opts, nil
}

// resolveInput checks the amount, that every referenced row is selectable
// by the user, and that the chain subcategory -> category -> type holds.
func (s *entryService) resolveInput(userID uint, input EntryInput) error {
	if !models.ValidAmount(input.Amount) {
		return apperrors.ErrInvalidAmount
	}

	opType, err := scopedRecord(s.db, models.ReferenceKindType, userID, input.TypeID, nil)
	if err != nil {
		return err
	}
	category, err := scopedRecord(s.db, models.ReferenceKindCategory, userID, input.CategoryID, nil)
	if err != nil {
		return err
	}
	subcategory, err := scopedRecord(s.db, models.ReferenceKindSubcategory, userID, input.SubcategoryID, nil)
	if err != nil {
		return err
	}
	if _, err := scopedRecord(s.db, models.ReferenceKindStatus, userID, input.StatusID, nil); err != nil {
		return err
	}

	return models.CheckReferenceChain(opType.ID,
		models.Category{Base: models.Base{ID: category.ID}, TypeID: *category.ParentID},
		models.Subcategory{Base: models.Base{ID: subcategory.ID}, CategoryID: *subcategory.ParentID},
	)
}

func preloadReferences(db *gorm.DB) *gorm.DB {
	return db.Preload("Type").Preload("Category").Preload("Subcategory").Preload("Status")
}

func entryWriteError(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperrors.ErrInvalidReference
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
