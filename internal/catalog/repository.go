package catalog

import (
	"context"
	"errors"
)

// ErrNotFound is returned by every Get/Find method when no record matches.
var ErrNotFound = errors.New("record not found")

// Store defines all database operations for the catalog.
//
// Find*ByName methods implement natural-key lookup: case-insensitive exact
// match on the trimmed name, scoped to the given parent id. Duplicate names
// within a scope are a data-quality condition; the first match wins.
// Delete methods cascade to dependent records (category -> subcategories and
// items, restaurant -> whole subtree); the importer never deletes.
type Store interface {

	// -------------------------------
	// Properties
	// -------------------------------

	CreateProperty(ctx context.Context, p *Property) error
	GetProperty(ctx context.Context, id string) (*Property, error)
	ListProperties(ctx context.Context) ([]*Property, error)

	// -------------------------------
	// Restaurants
	// -------------------------------

	CreateRestaurant(ctx context.Context, r *Restaurant) error
	GetRestaurant(ctx context.Context, id string) (*Restaurant, error)
	FindRestaurantByName(ctx context.Context, name string) (*Restaurant, error)
	ListRestaurants(ctx context.Context) ([]*Restaurant, error)
	DeleteRestaurant(ctx context.Context, id string) error

	// -------------------------------
	// Categories
	// -------------------------------

	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, id string) (*Category, error)
	FindCategoryByName(ctx context.Context, restaurantID, name string) (*Category, error)
	ListCategories(ctx context.Context, restaurantID string) ([]*Category, error)
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id string) error

	// -------------------------------
	// Subcategories
	// -------------------------------

	CreateSubcategory(ctx context.Context, sc *Subcategory) error
	FindSubcategoryByName(ctx context.Context, categoryID, name string) (*Subcategory, error)
	ListSubcategories(ctx context.Context, categoryID string) ([]*Subcategory, error)
	DeleteSubcategory(ctx context.Context, id string) error

	// -------------------------------
	// Menu items
	// -------------------------------

	CreateMenuItem(ctx context.Context, mi *MenuItem) error
	GetMenuItem(ctx context.Context, id string) (*MenuItem, error)
	FindMenuItemByCode(ctx context.Context, categoryID, itemCode string) (*MenuItem, error)
	ListMenuItems(ctx context.Context, categoryID string) ([]*MenuItem, error)
	UpdateMenuItem(ctx context.Context, mi *MenuItem) error
	DeleteMenuItem(ctx context.Context, id string) error

	// -------------------------------
	// Modifier groups & items
	// -------------------------------

	CreateModifierGroup(ctx context.Context, g *ModifierGroup) error
	GetModifierGroup(ctx context.Context, id string) (*ModifierGroup, error)
	FindModifierGroupByName(ctx context.Context, restaurantID, name string) (*ModifierGroup, error)
	ListModifierGroups(ctx context.Context, restaurantID string) ([]*ModifierGroup, error)
	DeleteModifierGroup(ctx context.Context, id string) error

	CreateModifierItem(ctx context.Context, mi *ModifierItem) error
	ListModifierItems(ctx context.Context, groupID string) ([]*ModifierItem, error)

	// -------------------------------
	// Allergens & attributes
	// -------------------------------

	CreateAllergen(ctx context.Context, a *Allergen) error
	FindAllergenByName(ctx context.Context, restaurantID, name string) (*Allergen, error)
	ListAllergens(ctx context.Context, restaurantID string) ([]*Allergen, error)

	CreateAttribute(ctx context.Context, a *Attribute) error
	FindAttributeByName(ctx context.Context, restaurantID, name string) (*Attribute, error)
	ListAttributes(ctx context.Context, restaurantID string) ([]*Attribute, error)
}
