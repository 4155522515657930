package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smartler/internal/audit"
	"smartler/internal/logger"
)

var (
	ErrMissingFields = errors.New("missing required fields")
	ErrBadReference  = errors.New("reference to unknown entity")
)

// Service is the CRUD layer behind the console screens. The import engine
// lives in the importer package and shares the Store.
type Service struct {
	store Store
	audit audit.Recorder
	log   *logger.Logger
}

func NewService(store Store, recorder audit.Recorder, log *logger.Logger) *Service {
	return &Service{
		store: store,
		audit: recorder,
		log:   log.WithComponent("catalog_service"),
	}
}

// record appends an audit entry. Audit is a side effect; failures are logged
// and never fail the operation that triggered them.
func (s *Service) record(ctx context.Context, actor, action, kind, name, detail string) {
	err := s.audit.Record(ctx, audit.Entry{
		Actor:      actor,
		Action:     action,
		EntityKind: kind,
		EntityName: name,
		Detail:     detail,
	})
	if err != nil {
		s.log.Warn("audit record failed", "action", action, "entity", kind, "error", err)
	}
}

// --------------------------------------------------
// Properties & restaurants
// --------------------------------------------------

func (s *Service) CreateProperty(ctx context.Context, actor, name, address string) (*Property, error) {
	if name == "" {
		return nil, ErrMissingFields
	}
	p := &Property{Name: name, Address: address}
	if err := s.store.CreateProperty(ctx, p); err != nil {
		return nil, err
	}
	s.record(ctx, actor, audit.ActionCreate, "property", p.Name, "")
	return p, nil
}

func (s *Service) ListProperties(ctx context.Context) ([]*Property, error) {
	return s.store.ListProperties(ctx)
}

func (s *Service) CreateRestaurant(ctx context.Context, actor, name, propertyID string) (*Restaurant, error) {
	if name == "" {
		return nil, ErrMissingFields
	}
	if propertyID != "" {
		if _, err := s.store.GetProperty(ctx, propertyID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, fmt.Errorf("%w: property %s", ErrBadReference, propertyID)
			}
			return nil, err
		}
	}
	r := &Restaurant{Name: name, PropertyID: propertyID}
	if err := s.store.CreateRestaurant(ctx, r); err != nil {
		return nil, err
	}
	s.record(ctx, actor, audit.ActionCreate, "restaurant", r.Name, "")
	return r, nil
}

func (s *Service) ListRestaurants(ctx context.Context) ([]*Restaurant, error) {
	return s.store.ListRestaurants(ctx)
}

func (s *Service) DeleteRestaurant(ctx context.Context, actor, id string) error {
	r, err := s.store.GetRestaurant(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteRestaurant(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, audit.ActionDelete, "restaurant", r.Name, "cascade delete of menu tree")
	return nil
}

// --------------------------------------------------
// Categories & subcategories
// --------------------------------------------------

func (s *Service) CreateCategory(ctx context.Context, actor, restaurantID, name, description string, sortOrder int) (*Category, error) {
	if name == "" || restaurantID == "" {
		return nil, ErrMissingFields
	}
	if _, err := s.store.GetRestaurant(ctx, restaurantID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: restaurant %s", ErrBadReference, restaurantID)
		}
		return nil, err
	}
	c := &Category{
		Name:         name,
		Description:  description,
		RestaurantID: restaurantID,
		SortOrder:    sortOrder,
		Active:       true,
	}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	s.record(ctx, actor, audit.ActionCreate, "category", c.Name, "")
	return c, nil
}

func (s *Service) ListCategories(ctx context.Context, restaurantID string) ([]*Category, error) {
	return s.store.ListCategories(ctx, restaurantID)
}

func (s *Service) UpdateCategory(ctx context.Context, actor string, c *Category) error {
	if c.ID == "" || c.Name == "" {
		return ErrMissingFields
	}
	existing, err := s.store.GetCategory(ctx, c.ID)
	if err != nil {
		return err
	}
	c.RestaurantID = existing.RestaurantID
	c.CreatedAt = existing.CreatedAt
	if err := s.store.UpdateCategory(ctx, c); err != nil {
		return err
	}
	s.record(ctx, actor, audit.ActionUpdate, "category", c.Name, "")
	return nil
}

func (s *Service) DeleteCategory(ctx context.Context, actor, id string) error {
	c, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, audit.ActionDelete, "category", c.Name, "cascade delete of subcategories and items")
	return nil
}

func (s *Service) CreateSubcategory(ctx context.Context, actor, categoryID, name string, sortOrder int) (*Subcategory, error) {
	if name == "" || categoryID == "" {
		return nil, ErrMissingFields
	}
	if _, err := s.store.GetCategory(ctx, categoryID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: category %s", ErrBadReference, categoryID)
		}
		return nil, err
	}
	sc := &Subcategory{Name: name, CategoryID: categoryID, SortOrder: sortOrder}
	if err := s.store.CreateSubcategory(ctx, sc); err != nil {
		return nil, err
	}
	s.record(ctx, actor, audit.ActionCreate, "subcategory", sc.Name, "")
	return sc, nil
}

func (s *Service) ListSubcategories(ctx context.Context, categoryID string) ([]*Subcategory, error) {
	return s.store.ListSubcategories(ctx, categoryID)
}

func (s *Service) DeleteSubcategory(ctx context.Context, actor, id string) error {
	if err := s.store.DeleteSubcategory(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, audit.ActionDelete, "subcategory", id, "")
	return nil
}

// --------------------------------------------------
// Menu items
// --------------------------------------------------

type CreateItemRequest struct {
	Name             string   `json:"name"`
	ItemCode         string   `json:"item_code"`
	CategoryID       string   `json:"category_id"`
	SubcategoryID    string   `json:"subcategory_id"`
	Price            float64  `json:"price"`
	Currency         string   `json:"currency"`
	Description      string   `json:"description"`
	ImageURL         string   `json:"image_url"`
	AllergenIDs      []string `json:"allergen_ids"`
	AttributeIDs     []string `json:"attribute_ids"`
	ModifierGroupIDs []string `json:"modifier_group_ids"`
	SortOrder        int      `json:"sort_order"`
}

type UpdateItemRequest struct {
	Name             *string   `json:"name"`
	Price            *float64  `json:"price"`
	Currency         *string   `json:"currency"`
	Description      *string   `json:"description"`
	SubcategoryID    *string   `json:"subcategory_id"`
	AllergenIDs      *[]string `json:"allergen_ids"`
	AttributeIDs     *[]string `json:"attribute_ids"`
	ModifierGroupIDs *[]string `json:"modifier_group_ids"`
	Available        *bool     `json:"available"`
	SoldOut          *bool     `json:"sold_out"`
	Bogo             *bool     `json:"bogo"`
	SortOrder        *int      `json:"sort_order"`
}

func (s *Service) CreateMenuItem(ctx context.Context, actor string, req CreateItemRequest) (*MenuItem, error) {
	if req.Name == "" || req.ItemCode == "" || req.CategoryID == "" {
		return nil, ErrMissingFields
	}
	if req.Price < 0 {
		return nil, errors.New("price must be non-negative")
	}
	cat, err := s.store.GetCategory(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: category %s", ErrBadReference, req.CategoryID)
		}
		return nil, err
	}
	if err := s.validateModifierGroups(ctx, cat.RestaurantID, req.ModifierGroupIDs); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	mi := &MenuItem{
		Name:             req.Name,
		ItemCode:         req.ItemCode,
		CategoryID:       req.CategoryID,
		SubcategoryID:    req.SubcategoryID,
		Price:            req.Price,
		Currency:         currency,
		Description:      req.Description,
		ImageURL:         req.ImageURL,
		AllergenIDs:      req.AllergenIDs,
		AttributeIDs:     req.AttributeIDs,
		ModifierGroupIDs: req.ModifierGroupIDs,
		Available:        true,
		SortOrder:        req.SortOrder,
	}
	if err := s.store.CreateMenuItem(ctx, mi); err != nil {
		return nil, err
	}
	s.record(ctx, actor, audit.ActionCreate, "menu_item", mi.Name, "code "+mi.ItemCode)
	return mi, nil
}

func (s *Service) UpdateMenuItem(ctx context.Context, actor, id string, req UpdateItemRequest) (*MenuItem, error) {
	mi, err := s.store.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, ErrMissingFields
		}
		mi.Name = *req.Name
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, errors.New("price must be non-negative")
		}
		mi.Price = *req.Price
	}
	if req.Currency != nil {
		mi.Currency = *req.Currency
	}
	if req.Description != nil {
		mi.Description = *req.Description
	}
	if req.SubcategoryID != nil {
		mi.SubcategoryID = *req.SubcategoryID
	}
	if req.AllergenIDs != nil {
		mi.AllergenIDs = *req.AllergenIDs
	}
	if req.AttributeIDs != nil {
		mi.AttributeIDs = *req.AttributeIDs
	}
	if req.ModifierGroupIDs != nil {
		cat, err := s.store.GetCategory(ctx, mi.CategoryID)
		if err != nil {
			return nil, err
		}
		if err := s.validateModifierGroups(ctx, cat.RestaurantID, *req.ModifierGroupIDs); err != nil {
			return nil, err
		}
		mi.ModifierGroupIDs = *req.ModifierGroupIDs
	}
	if req.Available != nil {
		mi.Available = *req.Available
	}
	if req.SoldOut != nil {
		mi.SoldOut = *req.SoldOut
	}
	if req.Bogo != nil {
		mi.Bogo = *req.Bogo
	}
	if req.SortOrder != nil {
		mi.SortOrder = *req.SortOrder
	}

	mi.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateMenuItem(ctx, mi); err != nil {
		return nil, err
	}
	s.record(ctx, actor, audit.ActionUpdate, "menu_item", mi.Name, "code "+mi.ItemCode)
	return mi, nil
}

func (s *Service) GetMenuItem(ctx context.Context, id string) (*MenuItem, error) {
	return s.store.GetMenuItem(ctx, id)
}

func (s *Service) ListMenuItems(ctx context.Context, categoryID string) ([]*MenuItem, error) {
	return s.store.ListMenuItems(ctx, categoryID)
}

func (s *Service) DeleteMenuItem(ctx context.Context, actor, id string) error {
	mi, err := s.store.GetMenuItem(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteMenuItem(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, audit.ActionDelete, "menu_item", mi.Name, "code "+mi.ItemCode)
	return nil
}

// SetItemImage stores the public URL of an uploaded item image.
func (s *Service) SetItemImage(ctx context.Context, actor, id, url string) (*MenuItem, error) {
	mi, err := s.store.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}
	mi.ImageURL = url
	mi.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateMenuItem(ctx, mi); err != nil {
		return nil, err
	}
	s.record(ctx, actor, audit.ActionUpdate, "menu_item", mi.Name, "image updated")
	return mi, nil
}

// A modifier group referenced by an item must belong to the restaurant that
// owns the item's category.
func (s *Service) validateModifierGroups(ctx context.Context, restaurantID string, groupIDs []string) error {
	for _, gid := range groupIDs {
		g, err := s.store.GetModifierGroup(ctx, gid)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return fmt.Errorf("%w: modifier group %s", ErrBadReference, gid)
			}
			return err
		}
		if g.RestaurantID != restaurantID {
			return fmt.Errorf("%w: modifier group %s belongs to another restaurant", ErrBadReference, gid)
		}
	}
	return nil
}

// --------------------------------------------------
// Modifier groups
// --------------------------------------------------

type ModifierItemInput struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func (s *Service) CreateModifierGroup(ctx context.Context, actor, restaurantID, name string, min, max int, items []ModifierItemInput) (*ModifierGroup, error) {
	if name == "" || restaurantID == "" {
		return nil, ErrMissingFields
	}
	if _, err := s.store.GetRestaurant(ctx, restaurantID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: restaurant %s", ErrBadReference, restaurantID)
		}
		return nil, err
	}
	g := &ModifierGroup{
		Name:          name,
		RestaurantID:  restaurantID,
		MinSelections: min,
		MaxSelections: max,
	}
	if err := s.store.CreateModifierGroup(ctx, g); err != nil {
		return nil, err
	}
	for _, in := range items {
		if in.Name == "" {
			continue
		}
		mi := &ModifierItem{Name: in.Name, Price: in.Price, ModifierGroupID: g.ID}
		if err := s.store.CreateModifierItem(ctx, mi); err != nil {
			return nil, err
		}
	}
	s.record(ctx, actor, audit.ActionCreate, "modifier_group", g.Name, "")
	return g, nil
}

func (s *Service) ListModifierGroups(ctx context.Context, restaurantID string) ([]*ModifierGroup, error) {
	return s.store.ListModifierGroups(ctx, restaurantID)
}

func (s *Service) ListModifierItems(ctx context.Context, groupID string) ([]*ModifierItem, error) {
	return s.store.ListModifierItems(ctx, groupID)
}

func (s *Service) DeleteModifierGroup(ctx context.Context, actor, id string) error {
	g, err := s.store.GetModifierGroup(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteModifierGroup(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, audit.ActionDelete, "modifier_group", g.Name, "")
	return nil
}
