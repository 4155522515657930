package importer

import (
	"context"
	"strings"

	"smartler/internal/catalog"
)

// condimentMapper translates the payload's flat condiment list into persisted
// ModifierGroup/ModifierItem records. It is built fresh for each import call:
// the (restaurantID, code) cache must never outlive or be shared across runs.
type condimentMapper struct {
	store    catalog.Store
	resolver *catalog.Resolver
	defs     map[string]CondimentInput
	cache    map[string]string
	stats    *catalog.ImportStatistics
}

func newCondimentMapper(store catalog.Store, resolver *catalog.Resolver, condiments []CondimentInput, stats *catalog.ImportStatistics) *condimentMapper {
	defs := make(map[string]CondimentInput, len(condiments))
	for _, c := range condiments {
		code := strings.ToLower(strings.TrimSpace(c.CondimentCode))
		if code == "" {
			continue
		}
		// first definition wins on duplicate codes
		if _, ok := defs[code]; !ok {
			defs[code] = c
		}
	}
	return &condimentMapper{
		store:    store,
		resolver: resolver,
		defs:     defs,
		cache:    make(map[string]string),
		stats:    stats,
	}
}

// GroupIDs resolves a comma-separated condiment code list into a de-duplicated
// ordered list of modifier group ids. Codes are trimmed, empty entries are
// dropped, and unknown codes are omitted rather than failing the import.
func (m *condimentMapper) GroupIDs(ctx context.Context, restaurantID, codeList string) ([]string, error) {
	ids := []string{}
	seen := make(map[string]bool)
	for _, raw := range strings.Split(codeList, ",") {
		code := strings.TrimSpace(raw)
		if code == "" {
			continue
		}
		groupID, err := m.resolveCode(ctx, restaurantID, code)
		if err != nil {
			return nil, err
		}
		if groupID == "" {
			continue
		}
		if !seen[groupID] {
			seen[groupID] = true
			ids = append(ids, groupID)
		}
	}
	return ids, nil
}

// resolveCode returns the modifier group id for one condiment code, creating
// the group and its items on first sight. A cached entry skips resolution
// entirely, so items sharing a code within one run reuse one group. Returns
// "" for codes absent from the payload's condiment table.
func (m *condimentMapper) resolveCode(ctx context.Context, restaurantID, code string) (string, error) {
	cacheKey := restaurantID + "\x00" + strings.ToLower(code)
	if groupID, ok := m.cache[cacheKey]; ok {
		return groupID, nil
	}

	def, ok := m.defs[strings.ToLower(code)]
	if !ok {
		return "", nil
	}

	groupID, found, err := m.resolver.ModifierGroup(ctx, restaurantID, def.CondimentName)
	if err != nil {
		return "", err
	}
	if !found {
		group := &catalog.ModifierGroup{
			Name:          strings.TrimSpace(def.CondimentName),
			RestaurantID:  restaurantID,
			MinSelections: 0,
			MaxSelections: 1,
		}
		if err := m.store.CreateModifierGroup(ctx, group); err != nil {
			return "", err
		}
		m.stats.ModifierGroupsCreated++

		for _, ci := range def.CondimentItems {
			name := strings.TrimSpace(ci.CondimentItemName)
			if name == "" {
				continue
			}
			item := &catalog.ModifierItem{Name: name, ModifierGroupID: group.ID}
			if err := m.store.CreateModifierItem(ctx, item); err != nil {
				return "", err
			}
			m.stats.ModifierItemsCreated++
		}
		groupID = group.ID
	}

	m.cache[cacheKey] = groupID
	return groupID, nil
}
