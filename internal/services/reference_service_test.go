package services

import (
	"strings"
	"testing"

	"cashflow/internal/models"
	"cashflow/internal/pagination"
	"cashflow/internal/testutil"
)

func TestReferenceRegistry(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	registry := NewReferenceRegistry(db)

	t.Run("every_kind_registered", func(t *testing.T) {
		for _, kind := range models.ReferenceKinds {
			svc, err := registry.For(kind)
			testutil.AssertNoError(t, err)
			if svc.Kind() != kind {
				t.Errorf("expected service for %s, got %s", kind, svc.Kind())
			}
		}
	})

	t.Run("lookup_by_path_segment", func(t *testing.T) {
		svc, err := registry.Lookup("subcategory")
		testutil.AssertNoError(t, err)
		if svc.Kind() != models.ReferenceKindSubcategory {
			t.Errorf("expected subcategory service, got %s", svc.Kind())
		}
	})

	t.Run("unknown_kind", func(t *testing.T) {
		_, err := registry.Lookup("accounts")
		testutil.AssertAppError(t, err, "UNKNOWN_REFERENCE_KIND")
	})
}

func TestTypeService(t *testing.T) {
	t.Run("create_and_get", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		svc := NewTypeService(db)

		rec, err := svc.Create(user.ID, ReferenceInput{Name: "  Income  "})
		testutil.AssertNoError(t, err)
		if rec.Name != "Income" {
			t.Errorf("expected trimmed name Income, got %q", rec.Name)
		}
		if rec.Kind != models.ReferenceKindType {
			t.Errorf("expected kind type, got %s", rec.Kind)
		}

		got, err := svc.Get(user.ID, rec.ID)
		testutil.AssertNoError(t, err)
		if got.Name != "Income" {
			t.Errorf("expected Income, got %q", got.Name)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)

		_, err := NewTypeService(db).Create(user.ID, ReferenceInput{Name: "   "})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("name_too_long", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)

		_, err := NewTypeService(db).Create(user.ID, ReferenceInput{Name: strings.Repeat("x", 101)})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("duplicate_name_same_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		svc := NewTypeService(db)

		_, err := svc.Create(user.ID, ReferenceInput{Name: "Income"})
		testutil.AssertNoError(t, err)
		_, err = svc.Create(user.ID, ReferenceInput{Name: "Income"})
		testutil.AssertAppError(t, err, "DUPLICATE_REFERENCE")

		count, err := svc.Count(user.ID)
		testutil.AssertNoError(t, err)
		if count != 1 {
			t.Errorf("expected 1 type, got %d", count)
		}
	})

	t.Run("same_name_other_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		svc := NewTypeService(db)

		_, err := svc.Create(alice.ID, ReferenceInput{Name: "Income"})
		testutil.AssertNoError(t, err)
		_, err = svc.Create(bob.ID, ReferenceInput{Name: "Income"})
		testutil.AssertNoError(t, err)
	})

	t.Run("other_users_row_is_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		theirs := testutil.CreateTestType(t, db, bob.ID, "Income")
		svc := NewTypeService(db)

		_, err := svc.Get(alice.ID, theirs.ID)
		testutil.AssertAppError(t, err, "REFERENCE_NOT_FOUND")
		_, err = svc.Update(alice.ID, theirs.ID, ReferenceInput{Name: "Hijacked"})
		testutil.AssertAppError(t, err, "REFERENCE_NOT_FOUND")
		err = svc.Delete(alice.ID, theirs.ID)
		testutil.AssertAppError(t, err, "REFERENCE_NOT_FOUND")
		_, err = svc.Get(alice.ID, 9999)
		testutil.AssertAppError(t, err, "REFERENCE_NOT_FOUND")
	})

	t.Run("rename", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		opType := testutil.CreateTestType(t, db, user.ID, "Incme")
		svc := NewTypeService(db)

		rec, err := svc.Update(user.ID, opType.ID, ReferenceInput{Name: "Income"})
		testutil.AssertNoError(t, err)
		if rec.Name != "Income" {
			t.Errorf("expected Income, got %q", rec.Name)
		}
	})

	t.Run("rename_to_existing_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestType(t, db, user.ID, "Income")
		expense := testutil.CreateTestType(t, db, user.ID, "Expense")

		_, err := NewTypeService(db).Update(user.ID, expense.ID, ReferenceInput{Name: "Income"})
		testutil.AssertAppError(t, err, "DUPLICATE_REFERENCE")
	})

	t.Run("delete_cascades_to_categories_and_subcategories", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		tax := testutil.CreateTestTaxonomy(t, db, user.ID)

		err := NewTypeService(db).Delete(user.ID, tax.Type.ID)
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.Category{}).Where("id = ?", tax.Category.ID).Count(&count)
		if count != 0 {
			t.Error("expected category to be deleted with its type")
		}
		db.Model(&models.Subcategory{}).Where("id = ?", tax.Subcategory.ID).Count(&count)
		if count != 0 {
			t.Error("expected subcategory to be deleted with its type")
		}
	})

	t.Run("delete_blocked_by_entries", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		tax := testutil.CreateTestTaxonomy(t, db, user.ID)
		testutil.CreateTestEntry(t, db, user.ID, tax, "10.00", testutil.Date(2024, 1, 1), "")

		err := NewTypeService(db).Delete(user.ID, tax.Type.ID)
		testutil.AssertAppError(t, err, "REFERENCE_IN_USE")

		var count int64
		db.Model(&models.Category{}).Where("id = ?", tax.Category.ID).Count(&count)
		if count != 1 {
			t.Error("expected category to survive a refused delete")
		}
	})

	t.Run("list_is_scoped_and_paginated", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		for _, name := range []string{"C", "A", "B"} {
			testutil.CreateTestType(t, db, alice.ID, name)
		}
		testutil.CreateTestType(t, db, bob.ID, "Z")

		page, err := NewTypeService(db).List(alice.ID, pagination.PageRequest{Page: 1, PageSize: 2})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 3 {
			t.Errorf("expected 3 items, got %d", page.TotalItems)
		}
		if len(page.Data) != 2 || page.Data[0].Name != "A" || page.Data[1].Name != "B" {
			t.Errorf("expected [A B] on first page, got %v", page.Data)
		}
		if !page.HasNext {
			t.Error("expected a next page")
		}
	})

	t.Run("no_parent_options", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)

		options, err := NewTypeService(db).ParentOptions(user.ID)
		testutil.AssertNoError(t, err)
		if len(options) != 0 {
			t.Errorf("expected no parent options, got %v", options)
		}
	})
}

func TestCategoryService(t *testing.T) {
	t.Run("create_under_own_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		opType := testutil.CreateTestType(t, db, user.ID, "Expense")

		rec, err := NewCategoryService(db).Create(user.ID, ReferenceInput{Name: "Food", ParentID: &opType.ID})
		testutil.AssertNoError(t, err)
		if rec.ParentID == nil || *rec.ParentID != opType.ID {
			t.Errorf("expected parent %d, got %v", opType.ID, rec.ParentID)
		}
		if rec.ParentName != "Expense" {
			t.Errorf("expected parent name Expense, got %q", rec.ParentName)
		}
	})

	t.Run("missing_parent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)

		_, err := NewCategoryService(db).Create(user.ID, ReferenceInput{Name: "Food"})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("parent_of_other_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		theirs := testutil.CreateTestType(t, db, bob.ID, "Expense")

		_, err := NewCategoryService(db).Create(alice.ID, ReferenceInput{Name: "Food", ParentID: &theirs.ID})
		testutil.AssertAppError(t, err, "INVALID_REFERENCE")
	})

	t.Run("same_name_under_different_types", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		income := testutil.CreateTestType(t, db, user.ID, "Income")
		expense := testutil.CreateTestType(t, db, user.ID, "Expense")
		svc := NewCategoryService(db)

		_, err := svc.Create(user.ID, ReferenceInput{Name: "Other", ParentID: &income.ID})
		testutil.AssertNoError(t, err)
		_, err = svc.Create(user.ID, ReferenceInput{Name: "Other", ParentID: &expense.ID})
		testutil.AssertNoError(t, err)
		_, err = svc.Create(user.ID, ReferenceInput{Name: "Other", ParentID: &expense.ID})
		testutil.AssertAppError(t, err, "DUPLICATE_REFERENCE")
	})

	t.Run("delete_cascades_to_subcategories", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		tax := testutil.CreateTestTaxonomy(t, db, user.ID)

		err := NewCategoryService(db).Delete(user.ID, tax.Category.ID)
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.Subcategory{}).Where("category_id = ?", tax.Category.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected subcategories to be deleted, %d remain", count)
		}
		db.Model(&models.OperationType{}).Where("id = ?", tax.Type.ID).Count(&count)
		if count != 1 {
			t.Error("expected the parent type to survive")
		}
	})

	t.Run("delete_blocked_by_entries", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		tax := testutil.CreateTestTaxonomy(t, db, user.ID)
		testutil.CreateTestEntry(t, db, user.ID, tax, "10.00", testutil.Date(2024, 1, 1), "")

		err := NewCategoryService(db).Delete(user.ID, tax.Category.ID)
		testutil.AssertAppError(t, err, "REFERENCE_IN_USE")

		var count int64
		db.Model(&models.Subcategory{}).Where("id = ?", tax.Subcategory.ID).Count(&count)
		if count != 1 {
			t.Error("expected subcategory to survive a refused delete")
		}
	})

	t.Run("move_to_other_type_when_unused", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		tax := testutil.CreateTestTaxonomy(t, db, user.ID)
		other := testutil.CreateTestType(t, db, user.ID, "Income")

		rec, err := NewCategoryService(db).Update(user.ID, tax.Category.ID, ReferenceInput{Name: "Moved", ParentID: &other.ID})
		testutil.AssertNoError(t, err)
		if *rec.ParentID != other.ID || rec.Name != "Moved" {
			t.Errorf("expected Moved under %d, got %q under %d", other.ID, rec.Name, *rec.ParentID)
		}
	})

	t.Run("move_refused_when_used", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		tax := testutil.CreateTestTaxonomy(t, db, user.ID)
		other := testutil.CreateTestType(t, db, user.ID, "Income")
		testutil.CreateTestEntry(t, db, user.ID, tax, "10.00", testutil.Date(2024, 1, 1), "")
		svc := NewCategoryService(db)

		_, err := svc.Update(user.ID, tax.Category.ID, ReferenceInput{Name: tax.Category.Name, ParentID: &other.ID})
		testutil.AssertAppError(t, err, "REFERENCE_IN_USE")

		// renaming in place is still allowed
		_, err = svc.Update(user.ID, tax.Category.ID, ReferenceInput{Name: "Renamed", ParentID: &tax.Type.ID})
		testutil.AssertNoError(t, err)
	})

	t.Run("parent_options_are_own_types", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		mine := testutil.CreateTestType(t, db, alice.ID, "Expense")
		testutil.CreateTestType(t, db, bob.ID, "Expense")

		options, err := NewCategoryService(db).ParentOptions(alice.ID)
		testutil.AssertNoError(t, err)
		if len(options) != 1 || options[0].ID != mine.ID {
			t.Errorf("expected only own type, got %v", recordIDs(options))
		}
	})
}

func TestSubcategoryService(t *testing.T) {
	t.Run("create_under_own_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		tax := testutil.CreateTestTaxonomy(t, db, user.ID)

		rec, err := NewSubcategoryService(db).Create(user.ID, ReferenceInput{Name: "Snacks", ParentID: &tax.Category.ID})
		testutil.AssertNoError(t, err)
		if rec.ParentName != tax.Category.Name {
			t.Errorf("expected parent name %q, got %q", tax.Category.Name, rec.ParentName)
		}
	})

	t.Run("parent_of_other_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		theirs := testutil.CreateTestTaxonomy(t, db, bob.ID)

		_, err := NewSubcategoryService(db).Create(alice.ID, ReferenceInput{Name: "Snacks", ParentID: &theirs.Category.ID})
		testutil.AssertAppError(t, err, "INVALID_REFERENCE")
	})

	t.Run("duplicate_within_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		tax := testutil.CreateTestTaxonomy(t, db, user.ID)

		_, err := NewSubcategoryService(db).Create(user.ID, ReferenceInput{Name: tax.Subcategory.Name, ParentID: &tax.Category.ID})
		testutil.AssertAppError(t, err, "DUPLICATE_REFERENCE")
	})

	t.Run("delete_blocked_by_entries", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		tax := testutil.CreateTestTaxonomy(t, db, user.ID)
		testutil.CreateTestEntry(t, db, user.ID, tax, "1.00", testutil.Date(2024, 1, 1), "")

		err := NewSubcategoryService(db).Delete(user.ID, tax.Subcategory.ID)
		testutil.AssertAppError(t, err, "REFERENCE_IN_USE")
	})

	t.Run("delete_unused", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		tax := testutil.CreateTestTaxonomy(t, db, user.ID)
		svc := NewSubcategoryService(db)

		testutil.AssertNoError(t, svc.Delete(user.ID, tax.Subcategory.ID))
		_, err := svc.Get(user.ID, tax.Subcategory.ID)
		testutil.AssertAppError(t, err, "REFERENCE_NOT_FOUND")
	})

	t.Run("move_refused_when_used", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		tax := testutil.CreateTestTaxonomy(t, db, user.ID)
		other := testutil.CreateTestCategory(t, db, user.ID, tax.Type.ID, "Other")
		testutil.CreateTestEntry(t, db, user.ID, tax, "1.00", testutil.Date(2024, 1, 1), "")

		_, err := NewSubcategoryService(db).Update(user.ID, tax.Subcategory.ID, ReferenceInput{Name: "X", ParentID: &other.ID})
		testutil.AssertAppError(t, err, "REFERENCE_IN_USE")
	})
}

func TestStatusService(t *testing.T) {
	t.Run("names_unique_per_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		svc := NewStatusService(db)

		_, err := svc.Create(alice.ID, ReferenceInput{Name: "Done"})
		testutil.AssertNoError(t, err)
		_, err = svc.Create(alice.ID, ReferenceInput{Name: "Done"})
		testutil.AssertAppError(t, err, "DUPLICATE_REFERENCE")
		_, err = svc.Create(bob.ID, ReferenceInput{Name: "Done"})
		testutil.AssertNoError(t, err)
	})

	t.Run("delete_blocked_by_entries", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		tax := testutil.CreateTestTaxonomy(t, db, user.ID)
		testutil.CreateTestEntry(t, db, user.ID, tax, "1.00", testutil.Date(2024, 1, 1), "")

		err := NewStatusService(db).Delete(user.ID, tax.Status.ID)
		testutil.AssertAppError(t, err, "REFERENCE_IN_USE")
	})

	t.Run("delete_unused", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		status := testutil.CreateTestStatus(t, db, user.ID, "Planned")
		svc := NewStatusService(db)

		testutil.AssertNoError(t, svc.Delete(user.ID, status.ID))
		count, err := svc.Count(user.ID)
		testutil.AssertNoError(t, err)
		if count != 0 {
			t.Errorf("expected 0 statuses, got %d", count)
		}
	})
}
