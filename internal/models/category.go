package models

// Category groups entries within an operation type.
type Category struct {
	Base
	UserID uint   `gorm:"not null;uniqueIndex:idx_categories_user_type_name" json:"user_id"`
	TypeID uint   `gorm:"not null;index;uniqueIndex:idx_categories_user_type_name" json:"type_id"`
	Name   string `gorm:"size:100;not null;uniqueIndex:idx_categories_user_type_name" json:"name"`

	// Relationships
	User          *User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Type          *OperationType `gorm:"foreignKey:TypeID;constraint:OnDelete:CASCADE" json:"type,omitempty"`
	Subcategories []Subcategory  `gorm:"foreignKey:CategoryID" json:"subcategories,omitempty"`
}

// Record converts the row into its kind-independent view. The parent name
// is filled when Type has been preloaded.
func (c Category) Record() ReferenceRecord {
	parentID := c.TypeID
	rec := ReferenceRecord{ID: c.ID, Kind: ReferenceKindCategory, Name: c.Name, ParentID: &parentID, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
	if c.Type != nil {
		rec.ParentName = c.Type.Name
	}
	return rec
}

// Subcategory refines a category.
type Subcategory struct {
	Base
	UserID     uint   `gorm:"not null;uniqueIndex:idx_subcategories_user_category_name" json:"user_id"`
	CategoryID uint   `gorm:"not null;index;uniqueIndex:idx_subcategories_user_category_name" json:"category_id"`
	Name       string `gorm:"size:100;not null;uniqueIndex:idx_subcategories_user_category_name" json:"name"`

	// Relationships
	User     *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"category,omitempty"`
}

// Record converts the row into its kind-independent view. The parent name
// is filled when Category has been preloaded.
func (s Subcategory) Record() ReferenceRecord {
	parentID := s.CategoryID
	rec := ReferenceRecord{ID: s.ID, Kind: ReferenceKindSubcategory, Name: s.Name, ParentID: &parentID, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt}
	if s.Category != nil {
		rec.ParentName = s.Category.Name
	}
	return rec
}
