package services

import (
	"testing"

	"cashflow/internal/models"
	"cashflow/internal/testutil"
)

func recordIDs(records []models.ReferenceRecord) []uint {
	ids := make([]uint, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	return ids
}

func containsID(records []models.ReferenceRecord, id uint) bool {
	for _, r := range records {
		if r.ID == id {
			return true
		}
	}
	return false
}

func TestScope(t *testing.T) {
	t.Run("zero_user_yields_empty_set", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestTaxonomy(t, db, user.ID)

		for _, kind := range models.ReferenceKinds {
			records, err := Scope(db, kind, 0, nil)
			testutil.AssertNoError(t, err)
			if records == nil || len(records) != 0 {
				t.Errorf("%s: expected empty non-nil set, got %v", kind, records)
			}
		}
	})

	t.Run("only_owned_rows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		mine := testutil.CreateTestTaxonomy(t, db, alice.ID)
		theirs := testutil.CreateTestTaxonomy(t, db, bob.ID)

		categories, err := Scope(db, models.ReferenceKindCategory, alice.ID, nil)
		testutil.AssertNoError(t, err)
		if !containsID(categories, mine.Category.ID) {
			t.Error("expected own category in scope")
		}
		if containsID(categories, theirs.Category.ID) {
			t.Error("other user's category leaked into scope")
		}

		statuses, err := Scope(db, models.ReferenceKindStatus, alice.ID, nil)
		testutil.AssertNoError(t, err)
		if len(statuses) != 1 || statuses[0].ID != mine.Status.ID {
			t.Errorf("expected only own status, got %v", recordIDs(statuses))
		}
	})

	t.Run("narrows_to_parent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		income := testutil.CreateTestType(t, db, user.ID, "Income")
		expense := testutil.CreateTestType(t, db, user.ID, "Expense")
		salary := testutil.CreateTestCategory(t, db, user.ID, income.ID, "Salary")
		food := testutil.CreateTestCategory(t, db, user.ID, expense.ID, "Food")
		testutil.CreateTestSubcategory(t, db, user.ID, food.ID, "Groceries")
		bonus := testutil.CreateTestSubcategory(t, db, user.ID, salary.ID, "Bonus")

		categories, err := Scope(db, models.ReferenceKindCategory, user.ID, &income.ID)
		testutil.AssertNoError(t, err)
		if len(categories) != 1 || categories[0].ID != salary.ID {
			t.Errorf("expected only Salary, got %v", recordIDs(categories))
		}
		if categories[0].ParentName != "Income" {
			t.Errorf("expected parent name Income, got %q", categories[0].ParentName)
		}

		subs, err := Scope(db, models.ReferenceKindSubcategory, user.ID, &salary.ID)
		testutil.AssertNoError(t, err)
		if len(subs) != 1 || subs[0].ID != bonus.ID {
			t.Errorf("expected only Bonus, got %v", recordIDs(subs))
		}
	})

	t.Run("crafted_parent_of_other_user_yields_nothing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		testutil.CreateTestTaxonomy(t, db, alice.ID)
		theirs := testutil.CreateTestTaxonomy(t, db, bob.ID)

		categories, err := Scope(db, models.ReferenceKindCategory, alice.ID, &theirs.Type.ID)
		testutil.AssertNoError(t, err)
		if len(categories) != 0 {
			t.Errorf("expected no categories, got %v", recordIDs(categories))
		}
	})

	t.Run("ordered_by_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestStatus(t, db, user.ID, "Planned")
		testutil.CreateTestStatus(t, db, user.ID, "Done")

		statuses, err := Scope(db, models.ReferenceKindStatus, user.ID, nil)
		testutil.AssertNoError(t, err)
		if len(statuses) != 2 || statuses[0].Name != "Done" || statuses[1].Name != "Planned" {
			t.Errorf("expected [Done Planned], got %v", statuses)
		}
	})

	t.Run("unknown_kind", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		_, err := Scope(db, models.ReferenceKind("account"), 1, nil)
		testutil.AssertAppError(t, err, "UNKNOWN_REFERENCE_KIND")
	})
}

func TestScopeSearch(t *testing.T) {
	t.Run("case_insensitive_contains", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		opType := testutil.CreateTestType(t, db, user.ID, "Expense")
		rent := testutil.CreateTestCategory(t, db, user.ID, opType.ID, "Rent")
		testutil.CreateTestCategory(t, db, user.ID, opType.ID, "Food")

		records, err := ScopeSearch(db, models.ReferenceKindCategory, user.ID, nil, "EN")
		testutil.AssertNoError(t, err)
		if len(records) != 1 || records[0].ID != rent.ID {
			t.Errorf("expected only Rent, got %v", recordIDs(records))
		}
	})

	t.Run("folds_non_ascii_case", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		opType := testutil.CreateTestType(t, db, user.ID, "Расход")
		rent := testutil.CreateTestCategory(t, db, user.ID, opType.ID, "Аренда")
		testutil.CreateTestCategory(t, db, user.ID, opType.ID, "Еда")

		records, err := ScopeSearch(db, models.ReferenceKindCategory, user.ID, nil, "аРЕН")
		testutil.AssertNoError(t, err)
		if len(records) != 1 || records[0].ID != rent.ID {
			t.Errorf("expected only Аренда, got %v", recordIDs(records))
		}
	})

	t.Run("wildcards_match_literally", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestStatus(t, db, user.ID, "Done")
		pct := testutil.CreateTestStatus(t, db, user.ID, "50% paid")

		records, err := ScopeSearch(db, models.ReferenceKindStatus, user.ID, nil, "%")
		testutil.AssertNoError(t, err)
		if len(records) != 1 || records[0].ID != pct.ID {
			t.Errorf("expected only the literal %% match, got %v", recordIDs(records))
		}
	})
}

func TestScopedRecord(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	alice := testutil.CreateTestUser(t, db)
	bob := testutil.CreateTestUser(t, db)
	mine := testutil.CreateTestTaxonomy(t, db, alice.ID)
	theirs := testutil.CreateTestTaxonomy(t, db, bob.ID)

	t.Run("own_row", func(t *testing.T) {
		rec, err := scopedRecord(db, models.ReferenceKindType, alice.ID, mine.Type.ID, nil)
		testutil.AssertNoError(t, err)
		if rec.ID != mine.Type.ID {
			t.Errorf("expected %d, got %d", mine.Type.ID, rec.ID)
		}
	})

	t.Run("other_users_row", func(t *testing.T) {
		_, err := scopedRecord(db, models.ReferenceKindType, alice.ID, theirs.Type.ID, nil)
		testutil.AssertAppError(t, err, "INVALID_REFERENCE")
	})

	t.Run("zero_id", func(t *testing.T) {
		_, err := scopedRecord(db, models.ReferenceKindStatus, alice.ID, 0, nil)
		testutil.AssertAppError(t, err, "INVALID_REFERENCE")
	})

	t.Run("wrong_parent", func(t *testing.T) {
		other := testutil.CreateTestType(t, db, alice.ID, "Other")
		_, err := scopedRecord(db, models.ReferenceKindCategory, alice.ID, mine.Category.ID, &other.ID)
		testutil.AssertAppError(t, err, "INVALID_REFERENCE")
	})
}
