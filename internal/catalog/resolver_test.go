package catalog

import (
	"context"
	"testing"
)

func TestResolverRestaurantPrefersID(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	byID := &Restaurant{Name: "Cafe One"}
	byName := &Restaurant{Name: "Cafe Two"}
	if err := store.CreateRestaurant(ctx, byID); err != nil {
		t.Fatal(err)
	}
	if err := store.CreateRestaurant(ctx, byName); err != nil {
		t.Fatal(err)
	}

	r := NewResolver(store)

	// Both id and name supplied and pointing at different rows: id wins.
	got, found, err := r.Restaurant(ctx, byID.ID, "Cafe Two")
	if err != nil || !found {
		t.Fatalf("found=%v err=%v", found, err)
	}
	if got.ID != byID.ID {
		t.Errorf("resolved %q, want id match %q", got.ID, byID.ID)
	}

	// Stale id falls back to name.
	got, found, err = r.Restaurant(ctx, "gone", " cafe two ")
	if err != nil || !found {
		t.Fatalf("found=%v err=%v", found, err)
	}
	if got.ID != byName.ID {
		t.Errorf("resolved %q, want name fallback %q", got.ID, byName.ID)
	}

	// Neither resolves.
	_, found, err = r.Restaurant(ctx, "gone", "nowhere")
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("found=true for unknown restaurant")
	}

	// Blank identity is not an error, just not found.
	_, found, err = r.Restaurant(ctx, "  ", "")
	if err != nil || found {
		t.Errorf("blank identity: found=%v err=%v", found, err)
	}
}

func TestResolverScopedNameMatch(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	catA := &Category{Name: "Beverages", RestaurantID: "rest-a"}
	catB := &Category{Name: "Beverages", RestaurantID: "rest-b"}
	if err := store.CreateCategory(ctx, catA); err != nil {
		t.Fatal(err)
	}
	if err := store.CreateCategory(ctx, catB); err != nil {
		t.Fatal(err)
	}

	r := NewResolver(store)

	id, found, err := r.Category(ctx, "rest-b", "BEVERAGES")
	if err != nil || !found {
		t.Fatalf("found=%v err=%v", found, err)
	}
	if id != catB.ID {
		t.Errorf("resolved %q, want the rest-b category %q", id, catB.ID)
	}

	_, found, err = r.Category(ctx, "rest-c", "Beverages")
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("category from another restaurant matched")
	}
}

func TestResolverFirstMatchWins(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := &Category{Name: "Mains", RestaurantID: "rest-a"}
	second := &Category{Name: " mains ", RestaurantID: "rest-a"}
	if err := store.CreateCategory(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := store.CreateCategory(ctx, second); err != nil {
		t.Fatal(err)
	}

	id, found, err := NewResolver(store).Category(ctx, "rest-a", "mains")
	if err != nil || !found {
		t.Fatalf("found=%v err=%v", found, err)
	}
	if id != first.ID {
		t.Errorf("resolved %q, want oldest match %q", id, first.ID)
	}
}
