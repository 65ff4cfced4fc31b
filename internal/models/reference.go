package models

import "time"

// ReferenceKind identifies one of the user-owned taxonomies that entries
// are classified with.
type ReferenceKind string

const (
	ReferenceKindType        ReferenceKind = "type"
	ReferenceKindCategory    ReferenceKind = "category"
	ReferenceKindSubcategory ReferenceKind = "subcategory"
	ReferenceKindStatus      ReferenceKind = "status"
)

// ReferenceKinds lists every kind in navigation order.
var ReferenceKinds = []ReferenceKind{
	ReferenceKindType,
	ReferenceKindCategory,
	ReferenceKindSubcategory,
	ReferenceKindStatus,
}

// ParseReferenceKind converts a path segment into a ReferenceKind.
func ParseReferenceKind(s string) (ReferenceKind, bool) {
	for _, k := range ReferenceKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Parent returns the kind a reference of this kind belongs to, if any.
func (k ReferenceKind) Parent() (ReferenceKind, bool) {
	switch k {
	case ReferenceKindCategory:
		return ReferenceKindType, true
	case ReferenceKindSubcategory:
		return ReferenceKindCategory, true
	}
	return "", false
}

// Label returns the singular display name.
func (k ReferenceKind) Label() string {
	switch k {
	case ReferenceKindType:
		return "Operation type"
	case ReferenceKindCategory:
		return "Category"
	case ReferenceKindSubcategory:
		return "Subcategory"
	case ReferenceKindStatus:
		return "Status"
	}
	return string(k)
}

// PluralLabel returns the plural display name.
func (k ReferenceKind) PluralLabel() string {
	switch k {
	case ReferenceKindType:
		return "Operation types"
	case ReferenceKindCategory:
		return "Categories"
	case ReferenceKindSubcategory:
		return "Subcategories"
	case ReferenceKindStatus:
		return "Statuses"
	}
	return string(k)
}

// ReferenceRecord is the kind-independent view of a reference row used by
// listings, forms and selection widgets.
type ReferenceRecord struct {
	ID         uint          `json:"id"`
	Kind       ReferenceKind `json:"kind"`
	Name       string        `json:"name"`
	ParentID   *uint         `json:"parent_id,omitempty"`
	ParentName string        `json:"parent_name,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// OperationType is the top level of the taxonomy (e.g. income, expense).
type OperationType struct {
	Base
	UserID uint   `gorm:"not null;uniqueIndex:idx_types_user_name" json:"user_id"`
	Name   string `gorm:"size:100;not null;uniqueIndex:idx_types_user_name" json:"name"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName keeps the table named after the domain term.
func (OperationType) TableName() string { return "types" }

// Record converts the row into its kind-independent view.
func (t OperationType) Record() ReferenceRecord {
	return ReferenceRecord{ID: t.ID, Kind: ReferenceKindType, Name: t.Name, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt}
}

// Status describes the state of an entry (e.g. planned, done).
// Names are unique per user, like every other reference kind.
type Status struct {
	Base
	UserID uint   `gorm:"not null;uniqueIndex:idx_statuses_user_name" json:"user_id"`
	Name   string `gorm:"size:100;not null;uniqueIndex:idx_statuses_user_name" json:"name"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// Record converts the row into its kind-independent view.
func (s Status) Record() ReferenceRecord {
	return ReferenceRecord{ID: s.ID, Kind: ReferenceKindStatus, Name: s.Name, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt}
}
