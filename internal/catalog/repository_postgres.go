package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// invalidTextRepresentation is SQLSTATE 22P02, raised when a non-UUID string
// reaches a UUID column. Import payloads carry untrusted external ids, so a
// malformed id must read as "no such record", not a query failure.
const invalidTextRepresentation = "22P02"

// PostgresStore is the durable Store. Cascade deletes are enforced by the
// ON DELETE CASCADE foreign keys created in db.ConnectPostgres.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation {
		return ErrNotFound
	}
	return err
}

// --------------------------------------------------
// Properties
// --------------------------------------------------

func (s *PostgresStore) CreateProperty(ctx context.Context, p *Property) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO properties (id, name, address)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	return s.db.QueryRow(ctx, query, p.ID, p.Name, p.Address).Scan(&p.CreatedAt)
}

func (s *PostgresStore) GetProperty(ctx context.Context, id string) (*Property, error) {
	query := `SELECT id, name, address, created_at FROM properties WHERE id = $1`

	p := &Property{}
	err := s.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Address, &p.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *PostgresStore) ListProperties(ctx context.Context) ([]*Property, error) {
	query := `SELECT id, name, address, created_at FROM properties ORDER BY created_at`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []*Property
	for rows.Next() {
		p := &Property{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.CreatedAt); err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

// --------------------------------------------------
// Restaurants
// --------------------------------------------------

func (s *PostgresStore) CreateRestaurant(ctx context.Context, r *Restaurant) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	query := `
		INSERT INTO restaurants (id, name, property_id)
		VALUES ($1, $2, NULLIF($3, ''))
		RETURNING created_at
	`
	return s.db.QueryRow(ctx, query, r.ID, r.Name, r.PropertyID).Scan(&r.CreatedAt)
}

func (s *PostgresStore) GetRestaurant(ctx context.Context, id string) (*Restaurant, error) {
	query := `
		SELECT id, name, COALESCE(property_id, ''), created_at
		FROM restaurants WHERE id = $1
	`
	r := &Restaurant{}
	err := s.db.QueryRow(ctx, query, id).Scan(&r.ID, &r.Name, &r.PropertyID, &r.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return r, nil
}

func (s *PostgresStore) FindRestaurantByName(ctx context.Context, name string) (*Restaurant, error) {
	query := `
		SELECT id, name, COALESCE(property_id, ''), created_at
		FROM restaurants
		WHERE LOWER(TRIM(name)) = LOWER(TRIM($1))
		ORDER BY created_at
		LIMIT 1
	`
	r := &Restaurant{}
	err := s.db.QueryRow(ctx, query, name).Scan(&r.ID, &r.Name, &r.PropertyID, &r.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return r, nil
}

func (s *PostgresStore) ListRestaurants(ctx context.Context) ([]*Restaurant, error) {
	query := `
		SELECT id, name, COALESCE(property_id, ''), created_at
		FROM restaurants ORDER BY created_at
	`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []*Restaurant
	for rows.Next() {
		r := &Restaurant{}
		if err := rows.Scan(&r.ID, &r.Name, &r.PropertyID, &r.CreatedAt); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, r)
	}
	return restaurants, rows.Err()
}

func (s *PostgresStore) DeleteRestaurant(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Categories
// --------------------------------------------------

func (s *PostgresStore) CreateCategory(ctx context.Context, c *Category) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	query := `
		INSERT INTO categories (id, name, description, restaurant_id, sort_order, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	return s.db.QueryRow(ctx, query,
		c.ID, c.Name, c.Description, c.RestaurantID, c.SortOrder, c.Active,
	).Scan(&c.CreatedAt)
}

func (s *PostgresStore) GetCategory(ctx context.Context, id string) (*Category, error) {
	query := `
		SELECT id, name, description, restaurant_id, sort_order, active, created_at
		FROM categories WHERE id = $1
	`
	c := &Category{}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Description, &c.RestaurantID, &c.SortOrder, &c.Active, &c.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (s *PostgresStore) FindCategoryByName(ctx context.Context, restaurantID, name string) (*Category, error) {
	query := `
		SELECT id, name, description, restaurant_id, sort_order, active, created_at
		FROM categories
		WHERE restaurant_id = $1
		  AND LOWER(TRIM(name)) = LOWER(TRIM($2))
		ORDER BY created_at
		LIMIT 1
	`
	c := &Category{}
	err := s.db.QueryRow(ctx, query, restaurantID, name).Scan(
		&c.ID, &c.Name, &c.Description, &c.RestaurantID, &c.SortOrder, &c.Active, &c.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (s *PostgresStore) ListCategories(ctx context.Context, restaurantID string) ([]*Category, error) {
	query := `
		SELECT id, name, description, restaurant_id, sort_order, active, created_at
		FROM categories
		WHERE restaurant_id = $1
		ORDER BY sort_order, created_at
	`
	rows, err := s.db.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.RestaurantID, &c.SortOrder, &c.Active, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *PostgresStore) UpdateCategory(ctx context.Context, c *Category) error {
	query := `
		UPDATE categories
		SET name = $2, description = $3, sort_order = $4, active = $5
		WHERE id = $1
	`
	tag, err := s.db.Exec(ctx, query, c.ID, c.Name, c.Description, c.SortOrder, c.Active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteCategory(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Subcategories
// --------------------------------------------------

func (s *PostgresStore) CreateSubcategory(ctx context.Context, sc *Subcategory) error {
	if sc.ID == "" {
		sc.ID = uuid.New().String()
	}
	query := `
		INSERT INTO subcategories (id, name, category_id, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	return s.db.QueryRow(ctx, query, sc.ID, sc.Name, sc.CategoryID, sc.SortOrder).Scan(&sc.CreatedAt)
}

func (s *PostgresStore) FindSubcategoryByName(ctx context.Context, categoryID, name string) (*Subcategory, error) {
	query := `
		SELECT id, name, category_id, sort_order, created_at
		FROM subcategories
		WHERE category_id = $1
		  AND LOWER(TRIM(name)) = LOWER(TRIM($2))
		ORDER BY created_at
		LIMIT 1
	`
	sc := &Subcategory{}
	err := s.db.QueryRow(ctx, query, categoryID, name).Scan(
		&sc.ID, &sc.Name, &sc.CategoryID, &sc.SortOrder, &sc.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return sc, nil
}

func (s *PostgresStore) ListSubcategories(ctx context.Context, categoryID string) ([]*Subcategory, error) {
	query := `
		SELECT id, name, category_id, sort_order, created_at
		FROM subcategories
		WHERE category_id = $1
		ORDER BY sort_order, created_at
	`
	rows, err := s.db.Query(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subcategories []*Subcategory
	for rows.Next() {
		sc := &Subcategory{}
		if err := rows.Scan(&sc.ID, &sc.Name, &sc.CategoryID, &sc.SortOrder, &sc.CreatedAt); err != nil {
			return nil, err
		}
		subcategories = append(subcategories, sc)
	}
	return subcategories, rows.Err()
}

func (s *PostgresStore) DeleteSubcategory(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM subcategories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Menu items
// --------------------------------------------------

const menuItemColumns = `
	id, name, item_code, category_id, COALESCE(subcategory_id, ''),
	price, currency, description, image_url,
	allergen_ids, attribute_ids, modifier_group_ids,
	available, sold_out, bogo, sort_order, created_at, updated_at
`

func scanMenuItem(row pgx.Row) (*MenuItem, error) {
	mi := &MenuItem{}
	err := row.Scan(
		&mi.ID, &mi.Name, &mi.ItemCode, &mi.CategoryID, &mi.SubcategoryID,
		&mi.Price, &mi.Currency, &mi.Description, &mi.ImageURL,
		&mi.AllergenIDs, &mi.AttributeIDs, &mi.ModifierGroupIDs,
		&mi.Available, &mi.SoldOut, &mi.Bogo, &mi.SortOrder, &mi.CreatedAt, &mi.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return mi, nil
}

func (s *PostgresStore) CreateMenuItem(ctx context.Context, mi *MenuItem) error {
	if mi.ID == "" {
		mi.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if mi.CreatedAt.IsZero() {
		mi.CreatedAt = now
	}
	if mi.UpdatedAt.IsZero() {
		mi.UpdatedAt = now
	}
	query := `
		INSERT INTO menu_items (
			id, name, item_code, category_id, subcategory_id,
			price, currency, description, image_url,
			allergen_ids, attribute_ids, modifier_group_ids,
			available, sold_out, bogo, sort_order, created_at, updated_at
		)
		VALUES (
			$1, $2, $3, $4, NULLIF($5, ''),
			$6, $7, $8, $9,
			$10, $11, $12,
			$13, $14, $15, $16, $17, $18
		)
	`
	_, err := s.db.Exec(ctx, query,
		mi.ID, mi.Name, mi.ItemCode, mi.CategoryID, mi.SubcategoryID,
		mi.Price, mi.Currency, mi.Description, mi.ImageURL,
		mi.AllergenIDs, mi.AttributeIDs, mi.ModifierGroupIDs,
		mi.Available, mi.SoldOut, mi.Bogo, mi.SortOrder, mi.CreatedAt, mi.UpdatedAt,
	)
	return err
}

func (s *PostgresStore) GetMenuItem(ctx context.Context, id string) (*MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = $1`
	return scanMenuItem(s.db.QueryRow(ctx, query, id))
}

func (s *PostgresStore) FindMenuItemByCode(ctx context.Context, categoryID, itemCode string) (*MenuItem, error) {
	query := `
		SELECT ` + menuItemColumns + `
		FROM menu_items
		WHERE category_id = $1
		  AND LOWER(TRIM(item_code)) = LOWER(TRIM($2))
		ORDER BY created_at
		LIMIT 1
	`
	return scanMenuItem(s.db.QueryRow(ctx, query, categoryID, itemCode))
}

func (s *PostgresStore) ListMenuItems(ctx context.Context, categoryID string) ([]*MenuItem, error) {
	query := `
		SELECT ` + menuItemColumns + `
		FROM menu_items
		WHERE category_id = $1
		ORDER BY sort_order, created_at
	`
	rows, err := s.db.Query(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*MenuItem
	for rows.Next() {
		mi, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, mi)
	}
	return items, rows.Err()
}

func (s *PostgresStore) UpdateMenuItem(ctx context.Context, mi *MenuItem) error {
	query := `
		UPDATE menu_items
		SET name = $2, subcategory_id = NULLIF($3, ''),
			price = $4, currency = $5, description = $6, image_url = $7,
			allergen_ids = $8, attribute_ids = $9, modifier_group_ids = $10,
			available = $11, sold_out = $12, bogo = $13, sort_order = $14,
			updated_at = $15
		WHERE id = $1
	`
	tag, err := s.db.Exec(ctx, query,
		mi.ID, mi.Name, mi.SubcategoryID,
		mi.Price, mi.Currency, mi.Description, mi.ImageURL,
		mi.AllergenIDs, mi.AttributeIDs, mi.ModifierGroupIDs,
		mi.Available, mi.SoldOut, mi.Bogo, mi.SortOrder,
		mi.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteMenuItem(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Modifier groups & items
// --------------------------------------------------

func (s *PostgresStore) CreateModifierGroup(ctx context.Context, g *ModifierGroup) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	query := `
		INSERT INTO modifier_groups (id, name, restaurant_id, min_selections, max_selections)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.Exec(ctx, query, g.ID, g.Name, g.RestaurantID, g.MinSelections, g.MaxSelections)
	return err
}

func (s *PostgresStore) GetModifierGroup(ctx context.Context, id string) (*ModifierGroup, error) {
	query := `
		SELECT id, name, restaurant_id, min_selections, max_selections
		FROM modifier_groups WHERE id = $1
	`
	g := &ModifierGroup{}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&g.ID, &g.Name, &g.RestaurantID, &g.MinSelections, &g.MaxSelections,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return g, nil
}

func (s *PostgresStore) FindModifierGroupByName(ctx context.Context, restaurantID, name string) (*ModifierGroup, error) {
	query := `
		SELECT id, name, restaurant_id, min_selections, max_selections
		FROM modifier_groups
		WHERE restaurant_id = $1
		  AND LOWER(TRIM(name)) = LOWER(TRIM($2))
		ORDER BY created_at
		LIMIT 1
	`
	g := &ModifierGroup{}
	err := s.db.QueryRow(ctx, query, restaurantID, name).Scan(
		&g.ID, &g.Name, &g.RestaurantID, &g.MinSelections, &g.MaxSelections,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return g, nil
}

func (s *PostgresStore) ListModifierGroups(ctx context.Context, restaurantID string) ([]*ModifierGroup, error) {
	query := `
		SELECT id, name, restaurant_id, min_selections, max_selections
		FROM modifier_groups
		WHERE restaurant_id = $1
		ORDER BY created_at
	`
	rows, err := s.db.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*ModifierGroup
	for rows.Next() {
		g := &ModifierGroup{}
		if err := rows.Scan(&g.ID, &g.Name, &g.RestaurantID, &g.MinSelections, &g.MaxSelections); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (s *PostgresStore) DeleteModifierGroup(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM modifier_groups WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) CreateModifierItem(ctx context.Context, mi *ModifierItem) error {
	if mi.ID == "" {
		mi.ID = uuid.New().String()
	}
	query := `
		INSERT INTO modifier_items (id, name, price, modifier_group_id)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.Exec(ctx, query, mi.ID, mi.Name, mi.Price, mi.ModifierGroupID)
	return err
}

func (s *PostgresStore) ListModifierItems(ctx context.Context, groupID string) ([]*ModifierItem, error) {
	query := `
		SELECT id, name, price, modifier_group_id
		FROM modifier_items
		WHERE modifier_group_id = $1
		ORDER BY created_at
	`
	rows, err := s.db.Query(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*ModifierItem
	for rows.Next() {
		mi := &ModifierItem{}
		if err := rows.Scan(&mi.ID, &mi.Name, &mi.Price, &mi.ModifierGroupID); err != nil {
			return nil, err
		}
		items = append(items, mi)
	}
	return items, rows.Err()
}

// --------------------------------------------------
// Allergens & attributes
// --------------------------------------------------

func (s *PostgresStore) CreateAllergen(ctx context.Context, a *Allergen) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO allergens (id, name, restaurant_id) VALUES ($1, $2, $3)`,
		a.ID, a.Name, a.RestaurantID,
	)
	return err
}

func (s *PostgresStore) FindAllergenByName(ctx context.Context, restaurantID, name string) (*Allergen, error) {
	query := `
		SELECT id, name, restaurant_id
		FROM allergens
		WHERE restaurant_id = $1
		  AND LOWER(TRIM(name)) = LOWER(TRIM($2))
		ORDER BY created_at
		LIMIT 1
	`
	a := &Allergen{}
	err := s.db.QueryRow(ctx, query, restaurantID, name).Scan(&a.ID, &a.Name, &a.RestaurantID)
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

func (s *PostgresStore) ListAllergens(ctx context.Context, restaurantID string) ([]*Allergen, error) {
	query := `
		SELECT id, name, restaurant_id
		FROM allergens
		WHERE restaurant_id = $1
		ORDER BY created_at
	`
	rows, err := s.db.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allergens []*Allergen
	for rows.Next() {
		a := &Allergen{}
		if err := rows.Scan(&a.ID, &a.Name, &a.RestaurantID); err != nil {
			return nil, err
		}
		allergens = append(allergens, a)
	}
	return allergens, rows.Err()
}

func (s *PostgresStore) CreateAttribute(ctx context.Context, a *Attribute) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO attributes (id, name, restaurant_id) VALUES ($1, $2, $3)`,
		a.ID, a.Name, a.RestaurantID,
	)
	return err
}

func (s *PostgresStore) FindAttributeByName(ctx context.Context, restaurantID, name string) (*Attribute, error) {
	query := `
		SELECT id, name, restaurant_id
		FROM attributes
		WHERE restaurant_id = $1
		  AND LOWER(TRIM(name)) = LOWER(TRIM($2))
		ORDER BY created_at
		LIMIT 1
	`
	a := &Attribute{}
	err := s.db.QueryRow(ctx, query, restaurantID, name).Scan(&a.ID, &a.Name, &a.RestaurantID)
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

func (s *PostgresStore) ListAttributes(ctx context.Context, restaurantID string) ([]*Attribute, error) {
	query := `
		SELECT id, name, restaurant_id
		FROM attributes
		WHERE restaurant_id = $1
		ORDER BY created_at
	`
	rows, err := s.db.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attributes []*Attribute
	for rows.Next() {
		a := &Attribute{}
		if err := rows.Scan(&a.ID, &a.Name, &a.RestaurantID); err != nil {
			return nil, err
		}
		attributes = append(attributes, a)
	}
	return attributes, rows.Err()
}
