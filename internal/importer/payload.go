package importer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPayload is returned before any mutation when an import document
// fails shape validation.
var ErrInvalidPayload = errors.New("invalid import payload")

// ItemInput is one menu item in a single-restaurant import document.
// Allergens are names, resolved or created within the restaurant; an absent
// list leaves an existing item's allergens untouched, an empty one clears
// them.
type ItemInput struct {
	ItemCode    string   `json:"itemCode"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	Allergens   []string `json:"allergens"`
	SortOrder   int      `json:"sortOrder"`
}

type SubcategoryNode struct {
	Name      string      `json:"name"`
	SortOrder int         `json:"sortOrder"`
	Items     []ItemInput `json:"items"`
}

type CategoryInput struct {
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	SortOrder     int               `json:"sortOrder"`
	Items         []ItemInput       `json:"items"`
	Subcategories []SubcategoryNode `json:"subcategories"`
}

// MenuPayload is the single-restaurant import document.
type MenuPayload struct {
	Categories []CategoryInput `json:"categories"`
}

func (p *MenuPayload) Validate() error {
	if len(p.Categories) == 0 {
		return fmt.Errorf("%w: categories is empty", ErrInvalidPayload)
	}
	for i, cat := range p.Categories {
		if strings.TrimSpace(cat.Name) == "" {
			return fmt.Errorf("%w: category %d has no name", ErrInvalidPayload, i)
		}
		if err := validateItems(cat.Items, cat.Name); err != nil {
			return err
		}
		for _, sub := range cat.Subcategories {
			if strings.TrimSpace(sub.Name) == "" {
				return fmt.Errorf("%w: subcategory under %q has no name", ErrInvalidPayload, cat.Name)
			}
			if err := validateItems(sub.Items, sub.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateItems(items []ItemInput, parent string) error {
	for _, it := range items {
		if strings.TrimSpace(it.ItemCode) == "" {
			return fmt.Errorf("%w: item under %q has no itemCode", ErrInvalidPayload, parent)
		}
		if strings.TrimSpace(it.Name) == "" {
			return fmt.Errorf("%w: item %q has no name", ErrInvalidPayload, it.ItemCode)
		}
	}
	return nil
}

// CategoryNode is a recursive tree node in the system-wide document. A
// top-level node becomes a Category; nodes nested one level down become
// Subcategories of it. The data model has no deeper level, so nesting below
// that is ignored.
type CategoryNode struct {
	Name       string         `json:"name"`
	SortOrder  int            `json:"sortOrder"`
	Categories []CategoryNode `json:"categories"`
}

type RestaurantCategoryInput struct {
	RestaurantID   string         `json:"restaurantId"`
	RestaurantName string         `json:"restaurantName"`
	Categories     []CategoryNode `json:"categories"`
}

type CondimentItemInput struct {
	CondimentItemName string `json:"condimentItemName"`
}

// CondimentInput is transient: it is mapped to ModifierGroup/ModifierItem
// records during import and never persisted verbatim.
type CondimentInput struct {
	CondimentCode  string               `json:"condimentCode"`
	CondimentName  string               `json:"condimentName"`
	CondimentItems []CondimentItemInput `json:"condimentItems"`
}

type SystemItemInput struct {
	RestaurantID    string  `json:"restaurantId"`
	RestaurantName  string  `json:"restaurantName"`
	Category        string  `json:"category"`
	ItemCode        string  `json:"itemCode"`
	ItemName        string  `json:"itemName"`
	ItemImage       string  `json:"itemImage"`
	ItemPrice       float64 `json:"itemPrice"`
	ItemDescription string  `json:"itemDescription"`
	SortOrder       int     `json:"sortOrder"`
	CondimentCodes  string  `json:"condimentCodes"`
}

// SystemPayload is the multi-restaurant import document: per-restaurant
// category trees, a flat condiment lookup table, and a flat item list.
type SystemPayload struct {
	RestaurantCategory []RestaurantCategoryInput `json:"restaurantCategory"`
	Condiments         []CondimentInput          `json:"condiments"`
	Items              []SystemItemInput         `json:"items"`
}

func (p *SystemPayload) Validate() error {
	if len(p.RestaurantCategory) == 0 && len(p.Items) == 0 {
		return fmt.Errorf("%w: no restaurant categories and no items", ErrInvalidPayload)
	}
	for i, entry := range p.RestaurantCategory {
		if strings.TrimSpace(entry.RestaurantID) == "" && strings.TrimSpace(entry.RestaurantName) == "" {
			return fmt.Errorf("%w: restaurantCategory %d has neither id nor name", ErrInvalidPayload, i)
		}
		if err := validateCategoryNodes(entry.Categories); err != nil {
			return err
		}
	}
	for i, c := range p.Condiments {
		if strings.TrimSpace(c.CondimentCode) == "" {
			return fmt.Errorf("%w: condiment %d has no code", ErrInvalidPayload, i)
		}
		if strings.TrimSpace(c.CondimentName) == "" {
			return fmt.Errorf("%w: condiment %q has no name", ErrInvalidPayload, c.CondimentCode)
		}
	}
	for i, it := range p.Items {
		if strings.TrimSpace(it.ItemCode) == "" {
			return fmt.Errorf("%w: item %d has no itemCode", ErrInvalidPayload, i)
		}
		if strings.TrimSpace(it.ItemName) == "" {
			return fmt.Errorf("%w: item %q has no itemName", ErrInvalidPayload, it.ItemCode)
		}
		if strings.TrimSpace(it.Category) == "" {
			return fmt.Errorf("%w: item %q has no category", ErrInvalidPayload, it.ItemCode)
		}
	}
	return nil
}

func validateCategoryNodes(nodes []CategoryNode) error {
	for _, n := range nodes {
		if strings.TrimSpace(n.Name) == "" {
			return fmt.Errorf("%w: category node has no name", ErrInvalidPayload)
		}
		if err := validateCategoryNodes(n.Categories); err != nil {
			return err
		}
	}
	return nil
}
