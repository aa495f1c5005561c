package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/denisok6893-rgb/property-insights/internal/domain"
)

var ErrNotFound = errors.New("not found")

type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// PRAGMAs are per connection, so keep a single one.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys=ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	stmts := []string{`
CREATE TABLE IF NOT EXISTS properties (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price INTEGER NOT NULL,
  location TEXT NOT NULL,
  bedrooms INTEGER NOT NULL DEFAULT 0,
  bathrooms INTEGER NOT NULL DEFAULT 0,
  area_sqft REAL NOT NULL DEFAULT 0,
  amenities_json TEXT NOT NULL DEFAULT '[]',
  property_type TEXT NOT NULL,
  listing_type TEXT NOT NULL,
  status TEXT NOT NULL,
  image_urls_json TEXT NOT NULL DEFAULT '[]',
  created_at TIMESTAMP NOT NULL,
  view_count INTEGER NOT NULL DEFAULT 0
);`,
		`CREATE INDEX IF NOT EXISTS idx_properties_location ON properties(location);`,
		`CREATE INDEX IF NOT EXISTS idx_properties_price ON properties(price);`,
		`
CREATE TABLE IF NOT EXISTS favorites (
  user_id TEXT NOT NULL,
  property_id TEXT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
  created_at TIMESTAMP NOT NULL,
  PRIMARY KEY (user_id, property_id)
);`,
		`CREATE INDEX IF NOT EXISTS idx_favorites_property ON favorites(property_id);`,
		`
CREATE TABLE IF NOT EXISTS reviews (
  id TEXT PRIMARY KEY,
  property_id TEXT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
  author TEXT NOT NULL,
  rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
  comment TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMP NOT NULL
);`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_property ON reviews(property_id);`,
		`
CREATE TABLE IF NOT EXISTS alerts (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  name TEXT NOT NULL DEFAULT '',
  criteria_json TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL
);`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_user ON alerts(user_id);`,
		`
CREATE TABLE IF NOT EXISTS kv_state (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TIMESTAMP NOT NULL
);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) CountProperties(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM properties`).Scan(&n)
	return n, err
}

const insertPropertySQL = `
INSERT %s INTO properties
(id, title, description, price, location, bedrooms, bathrooms, area_sqft, amenities_json,
 property_type, listing_type, status, image_urls_json, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const selectPropertySQL = `
SELECT id, title, description, price, location, bedrooms, bathrooms, area_sqft, amenities_json,
       property_type, listing_type, status, image_urls_json, created_at
FROM properties
`

// UpsertMany inserts the initial dataset without duplicating by id.
func (s *SQLiteStore) UpsertMany(ctx context.Context, items []domain.Property) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(insertPropertySQL, "OR IGNORE"))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range items {
		if _, err := stmt.ExecContext(ctx, propertyArgs(withDefaults(p))...); err != nil {
			return fmt.Errorf("insert property %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) CreateProperty(ctx context.Context, p domain.Property) (domain.Property, error) {
	p = withDefaults(p)
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(insertPropertySQL, ""), propertyArgs(p)...)
	return p, err
}

func (s *SQLiteStore) DeleteProperty(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM properties WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (s *SQLiteStore) GetProperty(ctx context.Context, id string) (domain.Property, bool, error) {
	p, err := scanProperty(s.db.QueryRowContext(ctx, selectPropertySQL+`WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Property{}, false, nil
	}
	if err != nil {
		return domain.Property{}, false, err
	}
	return p, true, nil
}

// GetProperties returns the properties with the given ids in the order
// requested. Missing ids are reported with ErrNotFound.
func (s *SQLiteStore) GetProperties(ctx context.Context, ids []string) ([]domain.Property, error) {
	out := make([]domain.Property, 0, len(ids))
	for _, id := range ids {
		p, ok, err := s.GetProperty(ctx, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("property %s: %w", id, ErrNotFound)
		}
		out = append(out, p)
	}
	return out, nil
}

// AllProperties loads the whole catalogue, ordered by id.
func (s *SQLiteStore) AllProperties(ctx context.Context) ([]domain.Property, error) {
	rows, err := s.db.QueryContext(ctx, selectPropertySQL+`ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProperties(rows)
}

// ListFilter narrows ListProperties. Zero values do not filter.
type ListFilter struct {
	Limit        int
	Offset       int
	Location     string
	MinPrice     int64
	MaxPrice     int64
	MinBedrooms  int
	PropertyType domain.PropertyType
	ListingType  domain.ListingType
	Status       domain.Status
	// Sort is one of price_asc, price_desc, newest; anything else sorts by id.
	Sort string
}

func (s *SQLiteStore) ListProperties(ctx context.Context, f ListFilter) ([]domain.Property, int, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	where := make([]string, 0, 7)
	args := make([]any, 0, 9)

	if strings.TrimSpace(f.Location) != "" {
		// contains, case-insensitive
		where = append(where, "LOWER(location) LIKE '%' || LOWER(?) || '%'")
		args = append(args, strings.TrimSpace(f.Location))
	}
	if f.MinPrice > 0 {
		where = append(where, "price >= ?")
		args = append(args, f.MinPrice)
	}
	if f.MaxPrice > 0 {
		where = append(where, "price <= ?")
		args = append(args, f.MaxPrice)
	}
	if f.MinBedrooms > 0 {
		where = append(where, "bedrooms >= ?")
		args = append(args, f.MinBedrooms)
	}
	if f.PropertyType != "" {
		where = append(where, "property_type = ?")
		args = append(args, string(f.PropertyType))
	}
	if f.ListingType != "" {
		where = append(where, "listing_type = ?")
		args = append(args, string(f.ListingType))
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(f.Status))
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	orderSQL := "ORDER BY id"
	switch f.Sort {
	case "price_asc":
		orderSQL = "ORDER BY price ASC, id"
	case "price_desc":
		orderSQL = "ORDER BY price DESC, id"
	case "newest":
		orderSQL = "ORDER BY created_at DESC, id"
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM properties "+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rowsArgs := append(append([]any{}, args...), f.Limit, f.Offset)
	rows, err := s.db.QueryContext(ctx, selectPropertySQL+whereSQL+"\n"+orderSQL+"\nLIMIT ? OFFSET ?", rowsArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := collectProperties(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// RecordView bumps the view counter of a property.
func (s *SQLiteStore) RecordView(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE properties SET view_count = view_count + 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return ErrNotFound
	}
	return nil
}

// Engagement is the stored engagement of one property.
type Engagement struct {
	Views     int
	Saves     int
	AvgRating float64
	Reviews   int
}

func (s *SQLiteStore) Engagement(ctx context.Context, id string) (Engagement, error) {
	var e Engagement
	err := s.db.QueryRowContext(ctx, `
SELECT p.view_count,
       (SELECT COUNT(*) FROM favorites f WHERE f.property_id = p.id),
       (SELECT COALESCE(AVG(r.rating), 0) FROM reviews r WHERE r.property_id = p.id),
       (SELECT COUNT(*) FROM reviews r WHERE r.property_id = p.id)
FROM properties p WHERE p.id = ?
`, id).Scan(&e.Views, &e.Saves, &e.AvgRating, &e.Reviews)
	if errors.Is(err, sql.ErrNoRows) {
		return Engagement{}, ErrNotFound
	}
	return e, err
}

// AddFavorite is idempotent per (user, property).
func (s *SQLiteStore) AddFavorite(ctx context.Context, userID, propertyID string) (domain.Favorite, error) {
	if err := s.requireProperty(ctx, propertyID); err != nil {
		return domain.Favorite{}, err
	}
	fav := domain.Favorite{UserID: userID, PropertyID: propertyID, CreatedAt: time.Now().UTC()}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO favorites (user_id, property_id, created_at) VALUES (?, ?, ?)`,
		fav.UserID, fav.PropertyID, fav.CreatedAt)
	return fav, err
}

func (s *SQLiteStore) RemoveFavorite(ctx context.Context, userID, propertyID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = ? AND property_id = ?`, userID, propertyID)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

// ListFavorites returns the user's saved properties, most recent first.
func (s *SQLiteStore) ListFavorites(ctx context.Context, userID string) ([]domain.Property, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT p.id, p.title, p.description, p.price, p.location, p.bedrooms, p.bathrooms, p.area_sqft, p.amenities_json,
       p.property_type, p.listing_type, p.status, p.image_urls_json, p.created_at
FROM favorites f JOIN properties p ON p.id = f.property_id
WHERE f.user_id = ?
ORDER BY f.created_at DESC, p.id
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProperties(rows)
}

func (s *SQLiteStore) AddReview(ctx context.Context, propertyID string, in domain.ReviewInput) (domain.Review, error) {
	if err := s.requireProperty(ctx, propertyID); err != nil {
		return domain.Review{}, err
	}
	r := domain.Review{
		ID:         uuid.NewString(),
		PropertyID: propertyID,
		Author:     strings.TrimSpace(in.Author),
		Rating:     in.Rating,
		Comment:    strings.TrimSpace(in.Comment),
		CreatedAt:  time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reviews (id, property_id, author, rating, comment, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.PropertyID, r.Author, r.Rating, r.Comment, r.CreatedAt)
	if err != nil {
		return domain.Review{}, err
	}
	return r, nil
}

func (s *SQLiteStore) ListReviews(ctx context.Context, propertyID string) ([]domain.Review, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, property_id, author, rating, comment, created_at
FROM reviews WHERE property_id = ?
ORDER BY created_at DESC, id
`, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Review{}
	for rows.Next() {
		var r domain.Review
		if err := rows.Scan(&r.ID, &r.PropertyID, &r.Author, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) requireProperty(ctx context.Context, id string) error {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM properties WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("property %s: %w", id, ErrNotFound)
	}
	return err
}

func withDefaults(p domain.Property) domain.Property {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.Status == "" {
		p.Status = domain.StatusAvailable
	}
	if p.ListingType == "" {
		p.ListingType = domain.ListingBuy
	}
	return p
}

func propertyArgs(p domain.Property) []any {
	am, _ := json.Marshal(nonNil(p.Amenities))
	img, _ := json.Marshal(nonNil(p.ImageURLs))
	return []any{
		p.ID, p.Title, p.Description, p.Price, p.Location, p.Bedrooms, p.Bathrooms, p.AreaSqft, string(am),
		string(p.PropertyType), string(p.ListingType), string(p.Status), string(img), p.CreatedAt.UTC(),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProperty(row rowScanner) (domain.Property, error) {
	var p domain.Property
	var amJSON, imgJSON, ptype, ltype, status string
	if err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.Location, &p.Bedrooms, &p.Bathrooms, &p.AreaSqft, &amJSON,
		&ptype, &ltype, &status, &imgJSON, &p.CreatedAt,
	); err != nil {
		return domain.Property{}, err
	}
	p.PropertyType = domain.PropertyType(ptype)
	p.ListingType = domain.ListingType(ltype)
	p.Status = domain.Status(status)
	if err := json.Unmarshal([]byte(amJSON), &p.Amenities); err != nil {
		return domain.Property{}, fmt.Errorf("unmarshal amenities of property %s: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(imgJSON), &p.ImageURLs); err != nil {
		return domain.Property{}, fmt.Errorf("unmarshal image urls of property %s: %w", p.ID, err)
	}
	return p, nil
}

func collectProperties(rows *sql.Rows) ([]domain.Property, error) {
	out := []domain.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
