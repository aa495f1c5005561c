package httpapi

import (
	"context"
	"encoding/json"

	"github.com/denisok6893-rgb/property-insights/internal/alerts"
	"github.com/denisok6893-rgb/property-insights/internal/domain"
	"github.com/denisok6893-rgb/property-insights/internal/storage"
)

// PropertyRepository is the catalogue side of the store.
type PropertyRepository interface {
	CreateProperty(ctx context.Context, p domain.Property) (domain.Property, error)
	GetProperty(ctx context.Context, id string) (domain.Property, bool, error)
	GetProperties(ctx context.Context, ids []string) ([]domain.Property, error)
	DeleteProperty(ctx context.Context, id string) (bool, error)
	ListProperties(ctx context.Context, f storage.ListFilter) ([]domain.Property, int, error)
	AllProperties(ctx context.Context) ([]domain.Property, error)
	RecordView(ctx context.Context, id string) error
	Engagement(ctx context.Context, id string) (storage.Engagement, error)
}

type EngagementRepository interface {
	AddFavorite(ctx context.Context, userID, propertyID string) (domain.Favorite, error)
	RemoveFavorite(ctx context.Context, userID, propertyID string) (bool, error)
	ListFavorites(ctx context.Context, userID string) ([]domain.Property, error)
	AddReview(ctx context.Context, propertyID string, in domain.ReviewInput) (domain.Review, error)
	ListReviews(ctx context.Context, propertyID string) ([]domain.Review, error)
}

type AlertRepository interface {
	CreateAlert(ctx context.Context, userID, name string, c alerts.Criteria) (alerts.Alert, error)
	GetAlert(ctx context.Context, id string) (alerts.Alert, error)
	ListAlerts(ctx context.Context, userID string) ([]alerts.Alert, error)
	DeleteAlert(ctx context.Context, id string) (bool, error)
}

// Store is everything the handlers need from persistence.
type Store interface {
	PropertyRepository
	EngagementRepository
	AlertRepository
}

// StateRepository holds opaque JSON blobs by key.
type StateRepository interface {
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)
	Put(ctx context.Context, key string, value json.RawMessage) error
	Delete(ctx context.Context, key string) (bool, error)
}

var (
	_ Store           = (*storage.SQLiteStore)(nil)
	_ StateRepository = (*storage.StateStore)(nil)
)
