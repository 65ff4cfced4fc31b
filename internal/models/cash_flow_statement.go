package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "cashflow/internal/errors"
)

// DateLayout is the wire format of entry dates.
const DateLayout = "2006-01-02"

// maxAmount is the exclusive upper bound of DECIMAL(12,2).
var maxAmount = decimal.New(1, 10)

// CashFlowStatement is one recorded money movement.
type CashFlowStatement struct {
	Base
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	CustomDate    time.Time       `gorm:"type:date;not null;index" json:"custom_date"`
	TypeID        uint            `gorm:"not null;index" json:"type_id"`
	CategoryID    uint            `gorm:"not null;index" json:"category_id"`
	SubcategoryID uint            `gorm:"not null;index" json:"subcategory_id"`
	StatusID      uint            `gorm:"not null;index" json:"status_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Comment       string          `gorm:"type:text" json:"comment"`

	// Relationships
	User        *User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Type        *OperationType `gorm:"foreignKey:TypeID;constraint:OnDelete:RESTRICT" json:"type,omitempty"`
	Category    *Category      `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"category,omitempty"`
	Subcategory *Subcategory   `gorm:"foreignKey:SubcategoryID;constraint:OnDelete:RESTRICT" json:"subcategory,omitempty"`
	Status      *Status        `gorm:"foreignKey:StatusID;constraint:OnDelete:RESTRICT" json:"status,omitempty"`
}

// DateOf truncates t to midnight UTC of its calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ValidAmount reports whether d fits DECIMAL(12,2).
func ValidAmount(d decimal.Decimal) bool {
	return d.Equal(d.Round(2)) && d.Abs().LessThan(maxAmount)
}

// CheckReferenceChain verifies that the subcategory belongs to the category
// and the category belongs to the operation type.
func CheckReferenceChain(typeID uint, category Category, subcategory Subcategory) error {
	if subcategory.CategoryID != category.ID {
		return apperrors.WithMessage(apperrors.ErrInvalidReference,
			"the selected subcategory does not belong to the selected category")
	}
	if category.TypeID != typeID {
		return apperrors.WithMessage(apperrors.ErrInvalidReference,
			"the selected category does not belong to the selected type")
	}
	return nil
}

// BeforeCreate stamps the creation time and defaults the custom date to the
// day the entry was created.
func (s *CashFlowStatement) BeforeCreate(tx *gorm.DB) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	if s.CustomDate.IsZero() {
		s.CustomDate = DateOf(s.CreatedAt)
	}
	return nil
}

// BeforeSave normalizes the entry and enforces the taxonomy chain whenever
// the whole row is written (Create, Save, Updates with the entry itself).
func (s *CashFlowStatement) BeforeSave(tx *gorm.DB) error {
	s.Comment = strings.TrimSpace(s.Comment)
	if !s.CustomDate.IsZero() {
		s.CustomDate = DateOf(s.CustomDate)
	}

	if !ValidAmount(s.Amount) {
		return apperrors.ErrInvalidAmount
	}

	db := tx.Session(&gorm.Session{NewDB: true})

	var opType OperationType
	if err := db.Where("id = ? AND user_id = ?", s.TypeID, s.UserID).First(&opType).Error; err != nil {
		return lookupError("type", err)
	}
	var status Status
	if err := db.Where("id = ? AND user_id = ?", s.StatusID, s.UserID).First(&status).Error; err != nil {
		return lookupError("status", err)
	}
	var category Category
	if err := db.Where("id = ? AND user_id = ?", s.CategoryID, s.UserID).First(&category).Error; err != nil {
		return lookupError("category", err)
	}
	var subcategory Subcategory
	if err := db.Where("id = ? AND user_id = ?", s.SubcategoryID, s.UserID).First(&subcategory).Error; err != nil {
		return lookupError("subcategory", err)
	}

	return CheckReferenceChain(opType.ID, category, subcategory)
}

// BeforeUpdate rejects column-level updates (Update, Updates with a map or
// another struct) that touch the owner or a taxonomy reference. BeforeSave
// only sees the loaded row in that case, not the values being written.
// UpdateColumn skips hooks altogether and must not be used on entries.
func (s *CashFlowStatement) BeforeUpdate(tx *gorm.DB) error {
	if dest, ok := tx.Statement.Dest.(*CashFlowStatement); ok && dest == s {
		return nil
	}
	if tx.Statement.Changed("UserID", "TypeID", "CategoryID", "SubcategoryID", "StatusID") {
		return apperrors.WithMessage(apperrors.ErrInvalidReference,
			"entry references can only change by saving the whole entry")
	}
	return nil
}

func lookupError(field string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.WithMessage(apperrors.ErrInvalidReference, "select a valid "+field)
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
