package services

import (
	"time"

	"github.com/shopspring/decimal"

	"cashflow/internal/models"
	"cashflow/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, password string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(username, password string) (*models.User, error)
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// ReferenceInput carries the user-editable fields of a reference row.
// ParentID is required for categories (type) and subcategories (category)
// and ignored for the other kinds.
type ReferenceInput struct {
	Name     string
	ParentID *uint
}

// ReferenceServicer defines the contract shared by the four reference kinds.
// Every method is scoped to the owning user.
type ReferenceServicer interface {
	Kind() models.ReferenceKind
	List(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.ReferenceRecord], error)
	Get(userID, id uint) (*models.ReferenceRecord, error)
	Create(userID uint, input ReferenceInput) (*models.ReferenceRecord, error)
	Update(userID, id uint, input ReferenceInput) (*models.ReferenceRecord, error)
	Delete(userID, id uint) error
	Count(userID uint) (int64, error)
	// ParentOptions returns the rows a create/edit form may pick as parent.
	// It is empty for kinds without a parent.
	ParentOptions(userID uint) ([]models.ReferenceRecord, error)
}

// EntryInput carries the user-editable fields of an entry. A zero CustomDate
// means "today".
type EntryInput struct {
	CustomDate    time.Time
	TypeID        uint
	CategoryID    uint
	SubcategoryID uint
	StatusID      uint
	Amount        decimal.Decimal
	Comment       string
}

// FormOptions are the selectable references of the entry and filter forms,
// already narrowed by the cascade (type -> category -> subcategory).
type FormOptions struct {
	Types         []models.ReferenceRecord `json:"types"`
	Categories    []models.ReferenceRecord `json:"categories"`
	Subcategories []models.ReferenceRecord `json:"subcategories"`
	Statuses      []models.ReferenceRecord `json:"statuses"`
}

// EntryServicer defines the contract for cash-flow entry business logic.
type EntryServicer interface {
	CreateEntry(userID uint, input EntryInput) (*models.CashFlowStatement, error)
	GetEntry(userID, entryID uint) (*models.CashFlowStatement, error)
	UpdateEntry(userID, entryID uint, input EntryInput) (*models.CashFlowStatement, error)
	DeleteEntry(userID, entryID uint) error
	ListEntries(userID uint, filter EntryFilter, page pagination.PageRequest) (*pagination.PageResponse[models.CashFlowStatement], error)
	// ResolveFilter drops reference criteria the user does not own.
	ResolveFilter(userID uint, filter EntryFilter) (EntryFilter, []string)
	FormOptions(userID uint, typeID, categoryID *uint) (*FormOptions, error)
}

// FilterStateServicer is the session-scoped store of the last applied
// listing criteria.
type FilterStateServicer interface {
	Load(userID uint, sessionID string) (map[string]string, error)
	Save(userID uint, sessionID string, criteria map[string]string) error
	Clear(userID uint, sessionID string) error
}

// AutocompleteServicer searches the references a selection widget may offer.
type AutocompleteServicer interface {
	Search(kind models.ReferenceKind, userID uint, parentID *uint, term string) ([]models.ReferenceRecord, error)
}
