package catalog

import "time"

// DefaultCurrency is applied when a create or import omits one.
const DefaultCurrency = "USD"

// Property groups restaurants under one site (hotel, food court, campus).
type Property struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

type Restaurant struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	PropertyID string    `json:"property_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type Category struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	RestaurantID string    `json:"restaurant_id"`
	SortOrder    int       `json:"sort_order"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

type Subcategory struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CategoryID string    `json:"category_id"`
	SortOrder  int       `json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`
}

// MenuItem belongs to exactly one category and optionally one subcategory
// within that category. ItemCode is the restaurant-scoped natural key the
// importer de-duplicates on; it is never reassigned after creation.
type MenuItem struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	ItemCode         string    `json:"item_code"`
	CategoryID       string    `json:"category_id"`
	SubcategoryID    string    `json:"subcategory_id,omitempty"`
	Price            float64   `json:"price"`
	Currency         string    `json:"currency"`
	Description      string    `json:"description"`
	ImageURL         string    `json:"image_url"`
	AllergenIDs      []string  `json:"allergen_ids"`
	AttributeIDs     []string  `json:"attribute_ids"`
	ModifierGroupIDs []string  `json:"modifier_group_ids"`
	Available        bool      `json:"available"`
	SoldOut          bool      `json:"sold_out"`
	Bogo             bool      `json:"bogo"`
	SortOrder        int       `json:"sort_order"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type Allergen struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	RestaurantID string `json:"restaurant_id"`
}

// Attribute is a dietary/preparation tag (veg, spicy, gluten-free).
type Attribute struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	RestaurantID string `json:"restaurant_id"`
}

type ModifierGroup struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	RestaurantID  string `json:"restaurant_id"`
	MinSelections int    `json:"min_selections"`
	MaxSelections int    `json:"max_selections"`
}

type ModifierItem struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	ModifierGroupID string  `json:"modifier_group_id"`
}

// SkippedRestaurant records a restaurant entry the system-wide importer could
// not resolve by id or name.
type SkippedRestaurant struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// ImportStatistics is built fresh per import call and returned to the caller.
// It is never persisted.
type ImportStatistics struct {
	RestaurantsProcessed  int                 `json:"restaurants_processed"`
	RestaurantsSkipped    []SkippedRestaurant `json:"restaurants_skipped"`
	CategoriesCreated     int                 `json:"categories_created"`
	SubcategoriesCreated  int                 `json:"subcategories_created"`
	ItemsCreated          int                 `json:"items_created"`
	ItemsUpdated          int                 `json:"items_updated"`
	AllergensCreated      int                 `json:"allergens_created"`
	ModifierGroupsCreated int                 `json:"modifier_groups_created"`
	ModifierItemsCreated  int                 `json:"modifier_items_created"`
}

func NewImportStatistics() *ImportStatistics {
	return &ImportStatistics{RestaurantsSkipped: []SkippedRestaurant{}}
}
