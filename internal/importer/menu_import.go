package importer

import (
	"context"
	"fmt"

	"smartler/internal/catalog"
)

// ImportMenu merges a single-restaurant menu document into the catalog.
// Processing is strictly depth-first in document order: each category, its
// directly attached items, then each subcategory and its items. Validation
// failures abort before any mutation; a store failure aborts the remaining
// nodes with mutations already applied left in place.
func (s *Service) ImportMenu(ctx context.Context, actor, restaurantID string, payload *MenuPayload) (*catalog.ImportStatistics, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rest, err := s.store.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("restaurant %s: %w", restaurantID, err)
	}

	stats := catalog.NewImportStatistics()
	stats.RestaurantsProcessed = 1

	for _, cat := range payload.Categories {
		categoryID, err := s.ensureCategory(ctx, rest.ID, cat.Name, cat.Description, cat.SortOrder, stats)
		if err != nil {
			return nil, err
		}

		for _, in := range cat.Items {
			allergenIDs, err := s.ensureAllergens(ctx, rest.ID, in.Allergens, stats)
			if err != nil {
				return nil, err
			}
			if err := s.upsertItem(ctx, categoryID, "", fromItemInput(in), allergenIDs, nil, stats); err != nil {
				return nil, err
			}
		}

		for _, sub := range cat.Subcategories {
			subcategoryID, err := s.ensureSubcategory(ctx, categoryID, sub.Name, sub.SortOrder, stats)
			if err != nil {
				return nil, err
			}
			for _, in := range sub.Items {
				allergenIDs, err := s.ensureAllergens(ctx, rest.ID, in.Allergens, stats)
				if err != nil {
					return nil, err
				}
				if err := s.upsertItem(ctx, categoryID, subcategoryID, fromItemInput(in), allergenIDs, nil, stats); err != nil {
					return nil, err
				}
			}
		}
	}

	s.recordAudit(ctx, actor, rest.Name, fmt.Sprintf(
		"menu import: %d categories created, %d subcategories created, %d items created, %d items updated, %d allergens created",
		stats.CategoriesCreated, stats.SubcategoriesCreated, stats.ItemsCreated, stats.ItemsUpdated, stats.AllergensCreated,
	))
	s.log.Info("menu import complete",
		"restaurant", rest.Name,
		"categories_created", stats.CategoriesCreated,
		"items_created", stats.ItemsCreated,
		"items_updated", stats.ItemsUpdated,
	)
	return stats, nil
}
