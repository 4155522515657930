package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps every collection in insertion order so natural-key
// lookups return the first match, same as the Postgres store's created_at
// ordering. Used by tests and local runs without a database.
type MemoryStore struct {
	mu sync.Mutex

	properties     []*Property
	restaurants    []*Restaurant
	categories     []*Category
	subcategories  []*Subcategory
	menuItems      []*MenuItem
	modifierGroups []*ModifierGroup
	modifierItems  []*ModifierItem
	allergens      []*Allergen
	attributes     []*Attribute
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func newID() string {
	return uuid.New().String()
}

// -------------------------------
// Properties
// -------------------------------

func (s *MemoryStore) CreateProperty(ctx context.Context, p *Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = newID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	s.properties = append(s.properties, p)
	return nil
}

func (s *MemoryStore) GetProperty(ctx context.Context, id string) (*Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.properties {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListProperties(ctx context.Context) ([]*Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Property(nil), s.properties...), nil
}

// -------------------------------
// Restaurants
// -------------------------------

func (s *MemoryStore) CreateRestaurant(ctx context.Context, r *Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = newID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	s.restaurants = append(s.restaurants, r)
	return nil
}

func (s *MemoryStore) GetRestaurant(ctx context.Context, id string) (*Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.restaurants {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FindRestaurantByName(ctx context.Context, name string) (*Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := nameKey(name)
	for _, r := range s.restaurants {
		if nameKey(r.Name) == key {
			return r, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListRestaurants(ctx context.Context) ([]*Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Restaurant(nil), s.restaurants...), nil
}

func (s *MemoryStore) DeleteRestaurant(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, r := range s.restaurants {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	s.restaurants = append(s.restaurants[:idx], s.restaurants[idx+1:]...)

	var catIDs []string
	for _, c := range s.categories {
		if c.RestaurantID == id {
			catIDs = append(catIDs, c.ID)
		}
	}
	for _, cid := range catIDs {
		s.deleteCategoryLocked(cid)
	}

	doomed := make(map[string]bool)
	s.modifierGroups = filterGroups(s.modifierGroups, func(g *ModifierGroup) bool {
		if g.RestaurantID == id {
			doomed[g.ID] = true
			return false
		}
		return true
	})
	s.modifierItems = filterModifierItems(s.modifierItems, func(mi *ModifierItem) bool {
		return !doomed[mi.ModifierGroupID]
	})
	s.allergens = filterAllergens(s.allergens, func(a *Allergen) bool {
		return a.RestaurantID != id
	})
	s.attributes = filterAttributes(s.attributes, func(a *Attribute) bool {
		return a.RestaurantID != id
	})
	return nil
}

// -------------------------------
// Categories
// -------------------------------

func (s *MemoryStore) CreateCategory(ctx context.Context, c *Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = newID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	s.categories = append(s.categories, c)
	return nil
}

func (s *MemoryStore) GetCategory(ctx context.Context, id string) (*Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FindCategoryByName(ctx context.Context, restaurantID, name string) (*Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := nameKey(name)
	for _, c := range s.categories {
		if c.RestaurantID == restaurantID && nameKey(c.Name) == key {
			return c, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListCategories(ctx context.Context, restaurantID string) ([]*Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Category
	for _, c := range s.categories {
		if c.RestaurantID == restaurantID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *MemoryStore) UpdateCategory(ctx context.Context, c *Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.categories {
		if existing.ID == c.ID {
			s.categories[i] = c
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.categories {
		if c.ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			s.deleteCategoryLocked(id)
			return nil
		}
	}
	return ErrNotFound
}

// deleteCategoryLocked cascades to subcategories and items. The category row
// itself may already be gone; callers hold the lock.
func (s *MemoryStore) deleteCategoryLocked(id string) {
	s.categories = filterCategories(s.categories, func(c *Category) bool {
		return c.ID != id
	})
	s.subcategories = filterSubcategories(s.subcategories, func(sc *Subcategory) bool {
		return sc.CategoryID != id
	})
	s.menuItems = filterMenuItems(s.menuItems, func(mi *MenuItem) bool {
		return mi.CategoryID != id
	})
}

// -------------------------------
// Subcategories
// -------------------------------

func (s *MemoryStore) CreateSubcategory(ctx context.Context, sc *Subcategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sc.ID == "" {
		sc.ID = newID()
	}
	if sc.CreatedAt.IsZero() {
		sc.CreatedAt = time.Now().UTC()
	}
	s.subcategories = append(s.subcategories, sc)
	return nil
}

func (s *MemoryStore) FindSubcategoryByName(ctx context.Context, categoryID, name string) (*Subcategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := nameKey(name)
	for _, sc := range s.subcategories {
		if sc.CategoryID == categoryID && nameKey(sc.Name) == key {
			return sc, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListSubcategories(ctx context.Context, categoryID string) ([]*Subcategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Subcategory
	for _, sc := range s.subcategories {
		if sc.CategoryID == categoryID {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (s *MemoryStore) DeleteSubcategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sc := range s.subcategories {
		if sc.ID == id {
			s.subcategories = append(s.subcategories[:i], s.subcategories[i+1:]...)
			s.menuItems = filterMenuItems(s.menuItems, func(mi *MenuItem) bool {
				return mi.SubcategoryID != id
			})
			return nil
		}
	}
	return ErrNotFound
}

// -------------------------------
// Menu items
// -------------------------------

func (s *MemoryStore) CreateMenuItem(ctx context.Context, mi *MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mi.ID == "" {
		mi.ID = newID()
	}
	now := time.Now().UTC()
	if mi.CreatedAt.IsZero() {
		mi.CreatedAt = now
	}
	if mi.UpdatedAt.IsZero() {
		mi.UpdatedAt = now
	}
	s.menuItems = append(s.menuItems, mi)
	return nil
}

func (s *MemoryStore) GetMenuItem(ctx context.Context, id string) (*MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, mi := range s.menuItems {
		if mi.ID == id {
			return mi, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FindMenuItemByCode(ctx context.Context, categoryID, itemCode string) (*MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := nameKey(itemCode)
	for _, mi := range s.menuItems {
		if mi.CategoryID == categoryID && nameKey(mi.ItemCode) == key {
			return mi, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListMenuItems(ctx context.Context, categoryID string) ([]*MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*MenuItem
	for _, mi := range s.menuItems {
		if mi.CategoryID == categoryID {
			out = append(out, mi)
		}
	}
	return out, nil
}

func (s *MemoryStore) UpdateMenuItem(ctx context.Context, mi *MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.menuItems {
		if existing.ID == mi.ID {
			s.menuItems[i] = mi
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) DeleteMenuItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, mi := range s.menuItems {
		if mi.ID == id {
			s.menuItems = append(s.menuItems[:i], s.menuItems[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// -------------------------------
// Modifier groups & items
// -------------------------------

func (s *MemoryStore) CreateModifierGroup(ctx context.Context, g *ModifierGroup) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if g.ID == "" {
		g.ID = newID()
	}
	s.modifierGroups = append(s.modifierGroups, g)
	return nil
}

func (s *MemoryStore) GetModifierGroup(ctx context.Context, id string) (*ModifierGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.modifierGroups {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FindModifierGroupByName(ctx context.Context, restaurantID, name string) (*ModifierGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := nameKey(name)
	for _, g := range s.modifierGroups {
		if g.RestaurantID == restaurantID && nameKey(g.Name) == key {
			return g, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListModifierGroups(ctx context.Context, restaurantID string) ([]*ModifierGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*ModifierGroup
	for _, g := range s.modifierGroups {
		if g.RestaurantID == restaurantID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *MemoryStore) DeleteModifierGroup(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, g := range s.modifierGroups {
		if g.ID == id {
			s.modifierGroups = append(s.modifierGroups[:i], s.modifierGroups[i+1:]...)
			s.modifierItems = filterModifierItems(s.modifierItems, func(mi *ModifierItem) bool {
				return mi.ModifierGroupID != id
			})
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) CreateModifierItem(ctx context.Context, mi *ModifierItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mi.ID == "" {
		mi.ID = newID()
	}
	s.modifierItems = append(s.modifierItems, mi)
	return nil
}

func (s *MemoryStore) ListModifierItems(ctx context.Context, groupID string) ([]*ModifierItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*ModifierItem
	for _, mi := range s.modifierItems {
		if mi.ModifierGroupID == groupID {
			out = append(out, mi)
		}
	}
	return out, nil
}

// -------------------------------
// Allergens & attributes
// -------------------------------

func (s *MemoryStore) CreateAllergen(ctx context.Context, a *Allergen) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == "" {
		a.ID = newID()
	}
	s.allergens = append(s.allergens, a)
	return nil
}

func (s *MemoryStore) FindAllergenByName(ctx context.Context, restaurantID, name string) (*Allergen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := nameKey(name)
	for _, a := range s.allergens {
		if a.RestaurantID == restaurantID && nameKey(a.Name) == key {
			return a, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListAllergens(ctx context.Context, restaurantID string) ([]*Allergen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Allergen
	for _, a := range s.allergens {
		if a.RestaurantID == restaurantID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateAttribute(ctx context.Context, a *Attribute) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == "" {
		a.ID = newID()
	}
	s.attributes = append(s.attributes, a)
	return nil
}

func (s *MemoryStore) FindAttributeByName(ctx context.Context, restaurantID, name string) (*Attribute, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := nameKey(name)
	for _, a := range s.attributes {
		if a.RestaurantID == restaurantID && nameKey(a.Name) == key {
			return a, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListAttributes(ctx context.Context, restaurantID string) ([]*Attribute, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Attribute
	for _, a := range s.attributes {
		if a.RestaurantID == restaurantID {
			out = append(out, a)
		}
	}
	return out, nil
}

// -------------------------------
// Slice helpers
// -------------------------------

func filterCategories(in []*Category, keep func(*Category) bool) []*Category {
	out := in[:0]
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func filterSubcategories(in []*Subcategory, keep func(*Subcategory) bool) []*Subcategory {
	out := in[:0]
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func filterMenuItems(in []*MenuItem, keep func(*MenuItem) bool) []*MenuItem {
	out := in[:0]
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func filterGroups(in []*ModifierGroup, keep func(*ModifierGroup) bool) []*ModifierGroup {
	out := in[:0]
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func filterModifierItems(in []*ModifierItem, keep func(*ModifierItem) bool) []*ModifierItem {
	out := in[:0]
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func filterAllergens(in []*Allergen, keep func(*Allergen) bool) []*Allergen {
	out := in[:0]
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func filterAttributes(in []*Attribute, keep func(*Attribute) bool) []*Attribute {
	out := in[:0]
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
