package importer

import (
	"context"
	"errors"
	"io"
	"testing"

	"smartler/internal/audit"
	"smartler/internal/catalog"
	"smartler/internal/logger"
)

func newTestService(t *testing.T) (*Service, *catalog.MemoryStore, *audit.MemoryRecorder) {
	t.Helper()
	store := catalog.NewMemoryStore()
	recorder := audit.NewMemoryRecorder()
	log := logger.NewWithOutput(logger.Config{Level: "error"}, io.Discard)
	return NewService(store, recorder, log), store, recorder
}

func seedRestaurant(t *testing.T, store *catalog.MemoryStore, name string) *catalog.Restaurant {
	t.Helper()
	r := &catalog.Restaurant{Name: name}
	if err := store.CreateRestaurant(context.Background(), r); err != nil {
		t.Fatalf("seed restaurant: %v", err)
	}
	return r
}

func TestImportMenuCreatesTree(t *testing.T) {
	svc, store, recorder := newTestService(t)
	ctx := context.Background()
	rest := seedRestaurant(t, store, "Cafe One")

	payload := &MenuPayload{
		Categories: []CategoryInput{
			{
				Name:      "Beverages",
				SortOrder: 1,
				Items: []ItemInput{
					{ItemCode: "BEV-1", Name: "Espresso", Price: 3.5},
					{ItemCode: "BEV-2", Name: "Latte", Price: 4.5, Currency: "EUR"},
				},
				Subcategories: []SubcategoryNode{
					{
						Name: "Iced",
						Items: []ItemInput{
							{ItemCode: "BEV-3", Name: "Cold Brew", Price: 5},
						},
					},
				},
			},
		},
	}

	stats, err := svc.ImportMenu(ctx, "tester@example.com", rest.ID, payload)
	if err != nil {
		t.Fatalf("ImportMenu: %v", err)
	}

	if stats.CategoriesCreated != 1 {
		t.Errorf("CategoriesCreated = %d, want 1", stats.CategoriesCreated)
	}
	if stats.SubcategoriesCreated != 1 {
		t.Errorf("SubcategoriesCreated = %d, want 1", stats.SubcategoriesCreated)
	}
	if stats.ItemsCreated != 3 {
		t.Errorf("ItemsCreated = %d, want 3", stats.ItemsCreated)
	}
	if stats.ItemsUpdated != 0 {
		t.Errorf("ItemsUpdated = %d, want 0", stats.ItemsUpdated)
	}

	cat, err := store.FindCategoryByName(ctx, rest.ID, "Beverages")
	if err != nil {
		t.Fatalf("category not created: %v", err)
	}

	// Item directly under the category gets the default currency.
	espresso, err := store.FindMenuItemByCode(ctx, cat.ID, "BEV-1")
	if err != nil {
		t.Fatalf("BEV-1 not created: %v", err)
	}
	if espresso.Currency != catalog.DefaultCurrency {
		t.Errorf("BEV-1 currency = %q, want %q", espresso.Currency, catalog.DefaultCurrency)
	}
	if !espresso.Available {
		t.Error("BEV-1 should default to available")
	}

	latte, err := store.FindMenuItemByCode(ctx, cat.ID, "BEV-2")
	if err != nil {
		t.Fatalf("BEV-2 not created: %v", err)
	}
	if latte.Currency != "EUR" {
		t.Errorf("BEV-2 currency = %q, want EUR", latte.Currency)
	}

	// Subcategory item keeps the category as its upsert scope but records
	// the subcategory link.
	coldBrew, err := store.FindMenuItemByCode(ctx, cat.ID, "BEV-3")
	if err != nil {
		t.Fatalf("BEV-3 not created: %v", err)
	}
	sub, err := store.FindSubcategoryByName(ctx, cat.ID, "Iced")
	if err != nil {
		t.Fatalf("subcategory not created: %v", err)
	}
	if coldBrew.SubcategoryID != sub.ID {
		t.Errorf("BEV-3 subcategory = %q, want %q", coldBrew.SubcategoryID, sub.ID)
	}

	entries := recorder.Entries()
	if len(entries) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(entries))
	}
	if entries[0].Action != audit.ActionImport {
		t.Errorf("audit action = %q, want %q", entries[0].Action, audit.ActionImport)
	}
	if entries[0].EntityName != "Cafe One" {
		t.Errorf("audit entity = %q, want Cafe One", entries[0].EntityName)
	}
}

func TestImportMenuIsIdempotent(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	rest := seedRestaurant(t, store, "Cafe One")

	payload := &MenuPayload{
		Categories: []CategoryInput{
			{
				Name: "Mains",
				Items: []ItemInput{
					{ItemCode: "M-1", Name: "Burger", Price: 10},
				},
			},
		},
	}

	if _, err := svc.ImportMenu(ctx, "tester", rest.ID, payload); err != nil {
		t.Fatalf("first import: %v", err)
	}

	payload.Categories[0].Items[0].Price = 12
	stats, err := svc.ImportMenu(ctx, "tester", rest.ID, payload)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}

	if stats.CategoriesCreated != 0 || stats.ItemsCreated != 0 {
		t.Errorf("second run created %d categories / %d items, want 0 / 0",
			stats.CategoriesCreated, stats.ItemsCreated)
	}
	if stats.ItemsUpdated != 1 {
		t.Errorf("ItemsUpdated = %d, want 1", stats.ItemsUpdated)
	}

	cat, _ := store.FindCategoryByName(ctx, rest.ID, "Mains")
	items, _ := store.ListMenuItems(ctx, cat.ID)
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1 (no duplicate)", len(items))
	}
	if items[0].Price != 12 {
		t.Errorf("price = %v, want 12", items[0].Price)
	}
}

func TestImportMenuMatchesCategoryCaseInsensitive(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	rest := seedRestaurant(t, store, "Cafe One")

	if err := store.CreateCategory(ctx, &catalog.Category{
		Name:         "Appetizers",
		RestaurantID: rest.ID,
	}); err != nil {
		t.Fatal(err)
	}

	payload := &MenuPayload{
		Categories: []CategoryInput{
			{
				Name:  "  appetizers ",
				Items: []ItemInput{{ItemCode: "A-1", Name: "Spring Rolls", Price: 6}},
			},
		},
	}
	stats, err := svc.ImportMenu(ctx, "tester", rest.ID, payload)
	if err != nil {
		t.Fatalf("ImportMenu: %v", err)
	}
	if stats.CategoriesCreated != 0 {
		t.Errorf("CategoriesCreated = %d, want 0 (matched existing)", stats.CategoriesCreated)
	}

	cats, _ := store.ListCategories(ctx, rest.ID)
	if len(cats) != 1 {
		t.Errorf("categories = %d, want 1", len(cats))
	}
}

func TestImportMenuUnknownRestaurant(t *testing.T) {
	svc, _, recorder := newTestService(t)

	payload := &MenuPayload{
		Categories: []CategoryInput{{Name: "Mains"}},
	}
	_, err := svc.ImportMenu(context.Background(), "tester", "missing-id", payload)
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(recorder.Entries()) != 0 {
		t.Error("no audit entry expected on failed import")
	}
}

func TestImportMenuRejectsInvalidPayloadBeforeMutation(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	rest := seedRestaurant(t, store, "Cafe One")

	for name, payload := range map[string]*MenuPayload{
		"empty":          {},
		"unnamed cat":    {Categories: []CategoryInput{{Name: "  "}}},
		"item no code":   {Categories: []CategoryInput{{Name: "Mains", Items: []ItemInput{{Name: "Burger"}}}}},
		"item no name":   {Categories: []CategoryInput{{Name: "Mains", Items: []ItemInput{{ItemCode: "M-1"}}}}},
		"sub no name":    {Categories: []CategoryInput{{Name: "Mains", Subcategories: []SubcategoryNode{{}}}}},
		"sub item blank": {Categories: []CategoryInput{{Name: "Mains", Subcategories: []SubcategoryNode{{Name: "Grill", Items: []ItemInput{{ItemCode: " ", Name: "X"}}}}}}},
	} {
		if _, err := svc.ImportMenu(ctx, "tester", rest.ID, payload); !errors.Is(err, ErrInvalidPayload) {
			t.Errorf("%s: err = %v, want ErrInvalidPayload", name, err)
		}
	}

	cats, _ := store.ListCategories(ctx, rest.ID)
	if len(cats) != 0 {
		t.Errorf("invalid payloads mutated the store: %d categories", len(cats))
	}
}

func TestImportMenuResolvesAllergens(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	rest := seedRestaurant(t, store, "Cafe One")

	payload := &MenuPayload{
		Categories: []CategoryInput{
			{
				Name: "Mains",
				Items: []ItemInput{
					{ItemCode: "M-1", Name: "Pad Thai", Price: 12, Allergens: []string{"Peanuts", "Soy"}},
					{ItemCode: "M-2", Name: "Satay", Price: 9, Allergens: []string{" peanuts ", ""}},
				},
			},
		},
	}

	stats, err := svc.ImportMenu(ctx, "tester", rest.ID, payload)
	if err != nil {
		t.Fatalf("ImportMenu: %v", err)
	}
	// Peanuts and Soy; the second item's "peanuts" resolves to the first.
	if stats.AllergensCreated != 2 {
		t.Errorf("AllergensCreated = %d, want 2", stats.AllergensCreated)
	}

	cat, _ := store.FindCategoryByName(ctx, rest.ID, "Mains")
	padThai, err := store.FindMenuItemByCode(ctx, cat.ID, "M-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(padThai.AllergenIDs) != 2 {
		t.Fatalf("M-1 allergens = %v, want 2 ids", padThai.AllergenIDs)
	}
	satay, err := store.FindMenuItemByCode(ctx, cat.ID, "M-2")
	if err != nil {
		t.Fatal(err)
	}
	if len(satay.AllergenIDs) != 1 || satay.AllergenIDs[0] != padThai.AllergenIDs[0] {
		t.Errorf("M-2 allergens = %v, want shared peanuts id %q", satay.AllergenIDs, padThai.AllergenIDs[0])
	}

	// Second run resolves everything, creates nothing.
	stats, err = svc.ImportMenu(ctx, "tester", rest.ID, payload)
	if err != nil {
		t.Fatal(err)
	}
	if stats.AllergensCreated != 0 {
		t.Errorf("second run AllergensCreated = %d, want 0", stats.AllergensCreated)
	}

	// An item without an allergen list keeps what it has.
	bare := &MenuPayload{
		Categories: []CategoryInput{
			{Name: "Mains", Items: []ItemInput{{ItemCode: "M-1", Name: "Pad Thai", Price: 12}}},
		},
	}
	if _, err := svc.ImportMenu(ctx, "tester", rest.ID, bare); err != nil {
		t.Fatal(err)
	}
	padThai, _ = store.FindMenuItemByCode(ctx, cat.ID, "M-1")
	if len(padThai.AllergenIDs) != 2 {
		t.Errorf("allergens after bare re-import = %v, want untouched", padThai.AllergenIDs)
	}
}

func TestUpsertKeyIsScopedToCategory(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	rest := seedRestaurant(t, store, "Cafe One")

	// Same item code under two categories stays two distinct items.
	payload := &MenuPayload{
		Categories: []CategoryInput{
			{Name: "Lunch", Items: []ItemInput{{ItemCode: "SP-1", Name: "Soup", Price: 5}}},
			{Name: "Dinner", Items: []ItemInput{{ItemCode: "SP-1", Name: "Soup", Price: 7}}},
		},
	}
	stats, err := svc.ImportMenu(ctx, "tester", rest.ID, payload)
	if err != nil {
		t.Fatalf("ImportMenu: %v", err)
	}
	if stats.ItemsCreated != 2 || stats.ItemsUpdated != 0 {
		t.Errorf("created/updated = %d/%d, want 2/0", stats.ItemsCreated, stats.ItemsUpdated)
	}

	// Same code twice within one category: create then update.
	repeat := &MenuPayload{
		Categories: []CategoryInput{
			{Name: "Brunch", Items: []ItemInput{
				{ItemCode: "EG-1", Name: "Eggs", Price: 8},
				{ItemCode: "eg-1", Name: "Eggs Benedict", Price: 11},
			}},
		},
	}
	stats, err = svc.ImportMenu(ctx, "tester", rest.ID, repeat)
	if err != nil {
		t.Fatalf("ImportMenu: %v", err)
	}
	if stats.ItemsCreated != 1 || stats.ItemsUpdated != 1 {
		t.Errorf("created/updated = %d/%d, want 1/1", stats.ItemsCreated, stats.ItemsUpdated)
	}

	cat, _ := store.FindCategoryByName(ctx, rest.ID, "Brunch")
	item, err := store.FindMenuItemByCode(ctx, cat.ID, "EG-1")
	if err != nil {
		t.Fatal(err)
	}
	if item.Name != "Eggs Benedict" {
		t.Errorf("name = %q, want last occurrence to win", item.Name)
	}
	if item.ItemCode != "EG-1" {
		t.Errorf("item code = %q, want original EG-1 kept", item.ItemCode)
	}
}
