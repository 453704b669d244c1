package handler_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/aidesk/saas-backend/internal/config"
	"github.com/aidesk/saas-backend/internal/handler"
	"github.com/aidesk/saas-backend/internal/model"
	"github.com/aidesk/saas-backend/internal/queue"
	"github.com/aidesk/saas-backend/internal/repository"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:        "access-secret",
		JWTRefreshSecret: "refresh-secret",
		AccessTTL:        15 * time.Minute,
		RefreshTTL:       7 * 24 * time.Hour,
		BcryptCost:       bcrypt.MinCost,
		CacheTTL:         300 * time.Second,
	}
}

// fakeUserStore is an in-memory UserStore.
type fakeUserStore struct {
	users     []model.User
	listCalls int
	lastPage  int64
	lastLimit int64
}

func (f *fakeUserStore) Create(_ context.Context, u *model.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repository.ErrEmailExists
		}
	}
	u.ID = bson.NewObjectID()
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	f.users = append(f.users, *u)
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (model.User, error) {
	for _, u := range f.users {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUserStore) List(_ context.Context, page, limit int64) ([]model.User, error) {
	f.listCalls++
	f.lastPage, f.lastLimit = page, limit
	start := (page - 1) * limit
	if start >= int64(len(f.users)) {
		return []model.User{}, nil
	}
	end := start + limit
	if end > int64(len(f.users)) {
		end = int64(len(f.users))
	}
	return append([]model.User{}, f.users[start:end]...), nil
}

func (f *fakeUserStore) Update(_ context.Context, id string, fields map[string]any) (model.User, error) {
	for i, u := range f.users {
		if u.ID.Hex() == id {
			if name, ok := fields["name"].(string); ok {
				u.Name = name
			}
			u.UpdatedAt = time.Now().UTC()
			f.users[i] = u
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUserStore) Delete(_ context.Context, id string) error {
	for i, u := range f.users {
		if u.ID.Hex() == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// fakeBusinessStore is an in-memory BusinessStore.
type fakeBusinessStore struct {
	businesses []model.Business
	listCalls  int
}

func (f *fakeBusinessStore) Create(_ context.Context, b *model.Business) error {
	b.ID = bson.NewObjectID()
	now := time.Now().UTC()
	b.CreatedAt, b.UpdatedAt = now, now
	f.businesses = append(f.businesses, *b)
	return nil
}

func (f *fakeBusinessStore) GetByID(_ context.Context, id string) (model.Business, error) {
	for _, b := range f.businesses {
		if b.ID.Hex() == id {
			return b, nil
		}
	}
	return model.Business{}, repository.ErrNotFound
}

func (f *fakeBusinessStore) List(_ context.Context, page, limit int64) ([]model.Business, error) {
	f.listCalls++
	start := (page - 1) * limit
	if start >= int64(len(f.businesses)) {
		return []model.Business{}, nil
	}
	end := start + limit
	if end > int64(len(f.businesses)) {
		end = int64(len(f.businesses))
	}
	return append([]model.Business{}, f.businesses[start:end]...), nil
}

func (f *fakeBusinessStore) Update(_ context.Context, id string, fields map[string]any) (model.Business, error) {
	for i, b := range f.businesses {
		if b.ID.Hex() == id {
			if name, ok := fields["name"].(string); ok {
				b.Name = name
			}
			b.UpdatedAt = time.Now().UTC()
			f.businesses[i] = b
			return b, nil
		}
	}
	return model.Business{}, repository.ErrNotFound
}

func (f *fakeBusinessStore) Delete(_ context.Context, id string) error {
	for i, b := range f.businesses {
		if b.ID.Hex() == id {
			f.businesses = append(f.businesses[:i], f.businesses[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// fakePageCache is an in-memory PageCache without expiry.
type fakePageCache struct {
	entries map[string][]byte
	sets    int
}

func newFakePageCache() *fakePageCache {
	return &fakePageCache{entries: map[string][]byte{}}
}

func (f *fakePageCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := f.entries[key]
	return v, ok, nil
}

func (f *fakePageCache) Set(_ context.Context, key string, payload []byte, _ time.Duration) error {
	f.entries[key] = payload
	f.sets++
	return nil
}

// fakePublisher records published events.
type fakePublisher struct {
	events []queue.BusinessCreatedEvent
}

func (f *fakePublisher) BusinessCreated(_ context.Context, ev queue.BusinessCreatedEvent) error {
	f.events = append(f.events, ev)
	return nil
}

// envelope mirrors the response wrapper with raw data for per-test decoding.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   any             `json:"error"`
}

func doRequest(t *testing.T, h echo.HandlerFunc, method, target, body string, params ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	e := echo.New()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("{}")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for i := 0; i+1 < len(params); i += 2 {
		c.SetParamNames(params[i])
		c.SetParamValues(params[i+1])
	}
	require.NoError(t, h(c))

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func newUserHandler(store *fakeUserStore, pages handler.PageCache) *handler.UserHandler {
	return handler.NewUserHandler(testConfig(), store, pages, zap.NewNop().Sugar())
}

func newBusinessHandler(businesses *fakeBusinessStore, users *fakeUserStore, pages handler.PageCache, pub *fakePublisher) *handler.BusinessHandler {
	return handler.NewBusinessHandler(testConfig(), businesses, users, pages, pub, zap.NewNop().Sugar())
}

func seedUser(t *testing.T, store *fakeUserStore, email, password string, role model.Role) model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := model.User{Email: email, Password: string(hash), Name: "Seed User", Role: role}
	require.NoError(t, store.Create(context.Background(), &u))
	return u
}
