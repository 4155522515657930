// Package importer is the catalog synchronization engine: it merges an
// externally supplied menu document into the existing catalog without
// creating duplicates, wiring item -> category -> subcategory and
// item -> modifier group references as it walks the document.
package importer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"smartler/internal/audit"
	"smartler/internal/catalog"
	"smartler/internal/logger"
)

type Service struct {
	store    catalog.Store
	resolver *catalog.Resolver
	audit    audit.Recorder
	log      *logger.Logger

	// One import call runs to completion before the next starts. Concurrent
	// imports over overlapping restaurants would interleave resolve/create
	// and break the create-before-reference ordering.
	mu sync.Mutex
}

func NewService(store catalog.Store, recorder audit.Recorder, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		resolver: catalog.NewResolver(store),
		audit:    recorder,
		log:      log.WithComponent("importer"),
	}
}

// itemFields is the normalized field set an import document supplies for one
// menu item, shared by both import paths.
type itemFields struct {
	code        string
	name        string
	price       float64
	currency    string
	description string
	imageURL    string
	sortOrder   int
}

func fromItemInput(in ItemInput) itemFields {
	return itemFields{
		code:        strings.TrimSpace(in.ItemCode),
		name:        strings.TrimSpace(in.Name),
		price:       in.Price,
		currency:    strings.TrimSpace(in.Currency),
		description: in.Description,
		imageURL:    in.ImageURL,
		sortOrder:   in.SortOrder,
	}
}

// upsertItem reconciles one document item against the store, keyed on
// (item code, category id). A nil allergenIDs or groupIDs leaves the
// existing list untouched; non-nil replaces it.
func (s *Service) upsertItem(ctx context.Context, categoryID, subcategoryID string, f itemFields, allergenIDs, groupIDs []string, stats *catalog.ImportStatistics) error {
	existing, err := s.store.FindMenuItemByCode(ctx, categoryID, f.code)
	if err != nil && !errors.Is(err, catalog.ErrNotFound) {
		return err
	}

	if existing != nil {
		// Repeat occurrence: merge supplied fields, keep the item code.
		existing.Name = f.name
		existing.Price = f.price
		existing.Description = f.description
		existing.SortOrder = f.sortOrder
		if f.currency != "" {
			existing.Currency = f.currency
		}
		if f.imageURL != "" {
			existing.ImageURL = f.imageURL
		}
		if subcategoryID != "" {
			existing.SubcategoryID = subcategoryID
		}
		if allergenIDs != nil {
			existing.AllergenIDs = allergenIDs
		}
		if groupIDs != nil {
			existing.ModifierGroupIDs = groupIDs
		}
		existing.UpdatedAt = time.Now().UTC()
		if err := s.store.UpdateMenuItem(ctx, existing); err != nil {
			return err
		}
		stats.ItemsUpdated++
		return nil
	}

	currency := f.currency
	if currency == "" {
		currency = catalog.DefaultCurrency
	}
	if allergenIDs == nil {
		allergenIDs = []string{}
	}
	if groupIDs == nil {
		groupIDs = []string{}
	}
	item := &catalog.MenuItem{
		Name:             f.name,
		ItemCode:         f.code,
		CategoryID:       categoryID,
		SubcategoryID:    subcategoryID,
		Price:            f.price,
		Currency:         currency,
		Description:      f.description,
		ImageURL:         f.imageURL,
		AllergenIDs:      allergenIDs,
		AttributeIDs:     []string{},
		ModifierGroupIDs: groupIDs,
		Available:        true,
		SortOrder:        f.sortOrder,
	}
	if err := s.store.CreateMenuItem(ctx, item); err != nil {
		return err
	}
	stats.ItemsCreated++
	return nil
}

// ensureCategory resolves a category by case-insensitive name within the
// restaurant, creating it when absent.
func (s *Service) ensureCategory(ctx context.Context, restaurantID, name, description string, sortOrder int, stats *catalog.ImportStatistics) (string, error) {
	id, found, err := s.resolver.Category(ctx, restaurantID, name)
	if err != nil {
		return "", err
	}
	if found {
		return id, nil
	}
	c := &catalog.Category{
		Name:         strings.TrimSpace(name),
		Description:  description,
		RestaurantID: restaurantID,
		SortOrder:    sortOrder,
		Active:       true,
	}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		return "", err
	}
	stats.CategoriesCreated++
	return c.ID, nil
}

// ensureAllergens resolves allergen names within the restaurant, creating
// the ones it has never seen. Returns nil for nil input so updates leave an
// item's existing list alone.
func (s *Service) ensureAllergens(ctx context.Context, restaurantID string, names []string, stats *catalog.ImportStatistics) ([]string, error) {
	if names == nil {
		return nil, nil
	}
	ids := []string{}
	seen := make(map[string]bool)
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		id, found, err := s.resolver.Allergen(ctx, restaurantID, name)
		if err != nil {
			return nil, err
		}
		if !found {
			a := &catalog.Allergen{Name: name, RestaurantID: restaurantID}
			if err := s.store.CreateAllergen(ctx, a); err != nil {
				return nil, err
			}
			stats.AllergensCreated++
			id = a.ID
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *Service) ensureSubcategory(ctx context.Context, categoryID, name string, sortOrder int, stats *catalog.ImportStatistics) (string, error) {
	id, found, err := s.resolver.Subcategory(ctx, categoryID, name)
	if err != nil {
		return "", err
	}
	if found {
		return id, nil
	}
	sc := &catalog.Subcategory{
		Name:       strings.TrimSpace(name),
		CategoryID: categoryID,
		SortOrder:  sortOrder,
	}
	if err := s.store.CreateSubcategory(ctx, sc); err != nil {
		return "", err
	}
	stats.SubcategoriesCreated++
	return sc.ID, nil
}

func (s *Service) recordAudit(ctx context.Context, actor, entityName, detail string) {
	err := s.audit.Record(ctx, audit.Entry{
		Actor:      actor,
		Action:     audit.ActionImport,
		EntityKind: "menu",
		EntityName: entityName,
		Detail:     detail,
	})
	if err != nil {
		s.log.Warn("audit record failed", "entity", entityName, "error", err)
	}
}
