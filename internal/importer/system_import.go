package importer

import (
	"context"
	"fmt"
	"strings"

	"smartler/internal/catalog"
)

// ImportSystemMenu merges a multi-restaurant export into the catalog in two
// passes. The category pass resolves or creates every restaurant's category
// tree; the item pass then upserts the flat item list against those
// categories. The order matters: item category resolution depends on
// categories created in pass one.
//
// Unresolvable restaurants in the category pass land in the skip list and the
// run continues. In the item pass, items with an unresolvable restaurant or
// category are dropped silently. Store failures abort immediately.
func (s *Service) ImportSystemMenu(ctx context.Context, actor string, payload *SystemPayload) (*catalog.ImportStatistics, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stats := catalog.NewImportStatistics()
	mapper := newCondimentMapper(s.store, s.resolver, payload.Condiments, stats)

	// ---------- category pass ----------
	for _, entry := range payload.RestaurantCategory {
		rest, found, err := s.resolver.Restaurant(ctx, entry.RestaurantID, entry.RestaurantName)
		if err != nil {
			return nil, err
		}
		if !found {
			stats.RestaurantsSkipped = append(stats.RestaurantsSkipped, catalog.SkippedRestaurant{
				ID:   entry.RestaurantID,
				Name: entry.RestaurantName,
			})
			s.log.Warn("skipping unknown restaurant",
				"restaurant_id", entry.RestaurantID,
				"restaurant_name", entry.RestaurantName,
			)
			continue
		}
		stats.RestaurantsProcessed++

		for _, node := range entry.Categories {
			categoryID, err := s.ensureCategory(ctx, rest.ID, node.Name, "", node.SortOrder, stats)
			if err != nil {
				return nil, err
			}
			// Children of a top-level node are subcategories. The data model
			// stops there; deeper nesting in the document is ignored.
			for _, child := range node.Categories {
				if _, err := s.ensureSubcategory(ctx, categoryID, child.Name, child.SortOrder, stats); err != nil {
					return nil, err
				}
			}
		}
	}

	// ---------- item pass ----------
	for _, in := range payload.Items {
		rest, found, err := s.resolver.Restaurant(ctx, in.RestaurantID, in.RestaurantName)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}

		categoryID, found, err := s.resolver.Category(ctx, rest.ID, in.Category)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}

		groupIDs, err := mapper.GroupIDs(ctx, rest.ID, in.CondimentCodes)
		if err != nil {
			return nil, err
		}

		fields := itemFields{
			code:        strings.TrimSpace(in.ItemCode),
			name:        strings.TrimSpace(in.ItemName),
			price:       in.ItemPrice,
			description: in.ItemDescription,
			imageURL:    in.ItemImage,
			sortOrder:   in.SortOrder,
		}
		if err := s.upsertItem(ctx, categoryID, "", fields, nil, groupIDs, stats); err != nil {
			return nil, err
		}
	}

	// One audit entry for the whole run, not per item.
	s.recordAudit(ctx, actor, "system", fmt.Sprintf(
		"system import: %d restaurants processed, %d skipped, %d categories created, %d subcategories created, %d items created, %d items updated, %d modifier groups created, %d modifier items created",
		stats.RestaurantsProcessed, len(stats.RestaurantsSkipped),
		stats.CategoriesCreated, stats.SubcategoriesCreated,
		stats.ItemsCreated, stats.ItemsUpdated,
		stats.ModifierGroupsCreated, stats.ModifierItemsCreated,
	))
	s.log.Info("system import complete",
		"restaurants_processed", stats.RestaurantsProcessed,
		"restaurants_skipped", len(stats.RestaurantsSkipped),
		"items_created", stats.ItemsCreated,
		"items_updated", stats.ItemsUpdated,
	)
	return stats, nil
}
