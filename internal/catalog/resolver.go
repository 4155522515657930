package catalog

import (
	"context"
	"errors"
	"strings"
)

// nameKey normalizes a name for scoped natural-key matching.
func nameKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Resolver answers "does an entity with this name already exist in this
// scope". It is side-effect free; callers decide whether to create.
type Resolver struct {
	store Store
}

func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Restaurant resolves by id first, falling back to case-insensitive name
// match. Returns found=false when neither resolves.
func (r *Resolver) Restaurant(ctx context.Context, id, name string) (*Restaurant, bool, error) {
	if strings.TrimSpace(id) != "" {
		rest, err := r.store.GetRestaurant(ctx, strings.TrimSpace(id))
		if err == nil {
			return rest, true, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, false, err
		}
	}
	if strings.TrimSpace(name) == "" {
		return nil, false, nil
	}
	rest, err := r.store.FindRestaurantByName(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return rest, true, nil
}

func (r *Resolver) Category(ctx context.Context, restaurantID, name string) (string, bool, error) {
	c, err := r.store.FindCategoryByName(ctx, restaurantID, name)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return c.ID, true, nil
}

func (r *Resolver) Subcategory(ctx context.Context, categoryID, name string) (string, bool, error) {
	sc, err := r.store.FindSubcategoryByName(ctx, categoryID, name)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return sc.ID, true, nil
}

func (r *Resolver) ModifierGroup(ctx context.Context, restaurantID, name string) (string, bool, error) {
	g, err := r.store.FindModifierGroupByName(ctx, restaurantID, name)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return g.ID, true, nil
}

func (r *Resolver) Allergen(ctx context.Context, restaurantID, name string) (string, bool, error) {
	a, err := r.store.FindAllergenByName(ctx, restaurantID, name)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return a.ID, true, nil
}
