package models

import (
	"time"
)

// Base contains common columns for all tables
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// All lists every model in dependency order, for auto-migration.
func All() []interface{} {
	return []interface{}{
		&User{},
		&OperationType{},
		&Status{},
		&Category{},
		&Subcategory{},
		&CashFlowStatement{},
		&FilterState{},
	}
}
