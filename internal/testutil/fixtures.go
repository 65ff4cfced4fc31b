package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"cashflow/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TestPassword is the password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithUsername(t, db, fmt.Sprintf("user%d", nextID()))
}

// CreateTestUserWithUsername creates a user with the given username.
func CreateTestUserWithUsername(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestType creates an operation type.
func CreateTestType(t *testing.T, db *gorm.DB, userID uint, name string) *models.OperationType {
	t.Helper()

	opType := &models.OperationType{UserID: userID, Name: name}
	if err := db.Create(opType).Error; err != nil {
		t.Fatalf("failed to create test type: %v", err)
	}
	return opType
}

// CreateTestStatus creates a status.
func CreateTestStatus(t *testing.T, db *gorm.DB, userID uint, name string) *models.Status {
	t.Helper()

	status := &models.Status{UserID: userID, Name: name}
	if err := db.Create(status).Error; err != nil {
		t.Fatalf("failed to create test status: %v", err)
	}
	return status
}

// CreateTestCategory creates a category under the given type.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID, typeID uint, name string) *models.Category {
	t.Helper()

	category := &models.Category{UserID: userID, TypeID: typeID, Name: name}
	if err := db.Omit(clause.Associations).Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestSubcategory creates a subcategory under the given category.
func CreateTestSubcategory(t *testing.T, db *gorm.DB, userID, categoryID uint, name string) *models.Subcategory {
	t.Helper()

	sub := &models.Subcategory{UserID: userID, CategoryID: categoryID, Name: name}
	if err := db.Omit(clause.Associations).Create(sub).Error; err != nil {
		t.Fatalf("failed to create test subcategory: %v", err)
	}
	return sub
}

// Taxonomy is one consistent type -> category -> subcategory chain plus a
// status.
type Taxonomy struct {
	Type        *models.OperationType
	Category    *models.Category
	Subcategory *models.Subcategory
	Status      *models.Status
}

// CreateTestTaxonomy creates a consistent chain with unique names.
func CreateTestTaxonomy(t *testing.T, db *gorm.DB, userID uint) Taxonomy {
	t.Helper()

	n := nextID()
	opType := CreateTestType(t, db, userID, fmt.Sprintf("Expense %d", n))
	category := CreateTestCategory(t, db, userID, opType.ID, fmt.Sprintf("Food %d", n))
	return Taxonomy{
		Type:        opType,
		Category:    category,
		Subcategory: CreateTestSubcategory(t, db, userID, category.ID, fmt.Sprintf("Groceries %d", n)),
		Status:      CreateTestStatus(t, db, userID, fmt.Sprintf("Done %d", n)),
	}
}

// CreateTestEntry creates an entry classified by tax. A zero date leaves
// the default (today) in place.
func CreateTestEntry(t *testing.T, db *gorm.DB, userID uint, tax Taxonomy, amount string, date time.Time, comment string) *models.CashFlowStatement {
	t.Helper()

	entry := &models.CashFlowStatement{
		UserID:        userID,
		CustomDate:    date,
		TypeID:        tax.Type.ID,
		CategoryID:    tax.Category.ID,
		SubcategoryID: tax.Subcategory.ID,
		StatusID:      tax.Status.ID,
		Amount:        decimal.RequireFromString(amount),
		Comment:       comment,
	}
	if err := db.Omit(clause.Associations).Create(entry).Error; err != nil {
		t.Fatalf("failed to create test entry: %v", err)
	}
	return entry
}

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
