package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aidesk/saas-backend/internal/model"
	"github.com/aidesk/saas-backend/internal/queue"
)

// UserStore is the persistence surface the user handlers need. It is
// implemented by repository.UserRepo.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id string) (model.User, error)
	List(ctx context.Context, page, limit int64) ([]model.User, error)
	Update(ctx context.Context, id string, fields map[string]any) (model.User, error)
	Delete(ctx context.Context, id string) error
}

// BusinessStore is the persistence surface the business handlers need. It
// is implemented by repository.BusinessRepo.
type BusinessStore interface {
	Create(ctx context.Context, b *model.Business) error
	GetByID(ctx context.Context, id string) (model.Business, error)
	List(ctx context.Context, page, limit int64) ([]model.Business, error)
	Update(ctx context.Context, id string, fields map[string]any) (model.Business, error)
	Delete(ctx context.Context, id string) error
}

// PageCache is the cache-aside surface for list reads, implemented by
// cache.Redis. A nil-receiver implementation is a valid always-miss cache.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

// EventPublisher publishes domain events to the message broker. Failures
// are logged by the caller and never fail the request.
type EventPublisher interface {
	BusinessCreated(ctx context.Context, ev queue.BusinessCreatedEvent) error
}

// pageParams reads page and limit from the query string, substituting the
// defaults 1 and 10 when a value is absent, non-numeric or not positive.
func pageParams(c echo.Context) (page, limit int64) {
	page, limit = 1, 10
	if v, err := strconv.ParseInt(c.QueryParam("page"), 10, 64); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.ParseInt(c.QueryParam("limit"), 10, 64); err == nil && v > 0 {
		limit = v
	}
	return page, limit
}
