package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/aidesk/saas-backend/internal/cache"
	"github.com/aidesk/saas-backend/internal/config"
	"github.com/aidesk/saas-backend/internal/model"
	"github.com/aidesk/saas-backend/internal/repository"
	"github.com/aidesk/saas-backend/internal/utils"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserHandler bundles dependencies for the user endpoints.
type UserHandler struct {
	Cfg   config.Config
	Users UserStore
	Cache PageCache
	Log   *zap.SugaredLogger
}

func NewUserHandler(cfg config.Config, users UserStore, pages PageCache, log *zap.SugaredLogger) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: users, Cache: pages, Log: log}
}

// ----- DTOs -----

type registerReq struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	BusinessID string `json:"businessId"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

// Register creates a user with a hashed password and returns the stored
// record (the hash is never serialized).
func (h *UserHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "All fields are required")
	}
	if req.Email == "" || req.Password == "" || req.Name == "" || req.Role == "" {
		return respondError(c, http.StatusBadRequest, "All fields are required")
	}
	role := model.Role(req.Role)
	if !role.Valid() {
		return respondError(c, http.StatusBadRequest, "Invalid role")
	}
	if !emailRegex.MatchString(req.Email) {
		return respondError(c, http.StatusBadRequest, "Invalid email format")
	}

	var businessID *bson.ObjectID
	if req.BusinessID != "" {
		oid, err := bson.ObjectIDFromHex(req.BusinessID)
		if err != nil {
			return respondError(c, http.StatusBadRequest, "Invalid business ID")
		}
		businessID = &oid
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Error registering user", err.Error())
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u := model.User{
		Email:      req.Email,
		Password:   hash,
		Name:       req.Name,
		Role:       role,
		BusinessID: businessID,
	}
	if err := h.Users.Create(ctx, &u); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return respondError(c, http.StatusBadRequest, "Email already in use")
		}
		return respondError(c, http.StatusInternalServerError, "Error registering user", err.Error())
	}
	return respondSuccess(c, http.StatusCreated, "User registered successfully", u)
}

// Login verifies credentials and returns an access/refresh token pair.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil || req.Email == "" || req.Password == "" {
		return respondError(c, http.StatusBadRequest, "Email and password required")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return respondError(c, http.StatusUnauthorized, "Invalid credentials")
		}
		return respondError(c, http.StatusInternalServerError, "Error logging in", err.Error())
	}
	if !utils.VerifyPassword(u.Password, req.Password) {
		return respondError(c, http.StatusUnauthorized, "Invalid credentials")
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID.Hex(), u.Role, h.Cfg.AccessTTL)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Error logging in", err.Error())
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.JWTRefreshSecret, u.ID.Hex(), h.Cfg.RefreshTTL)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Error logging in", err.Error())
	}
	return respondSuccess(c, http.StatusOK, "User logged in successfully", echo.Map{
		"accessToken":  access,
		"refreshToken": refresh,
	})
}

// Logout is stateless: tokens are not persisted, so there is nothing to
// revoke server-side. The refresh cookie, if any, is cleared.
func (h *UserHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     "refreshToken",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return respondSuccess(c, http.StatusOK, "User logged out successfully", nil)
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token itself is never rotated or invalidated.
func (h *UserHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return respondError(c, http.StatusUnauthorized, "Refresh token not provided")
	}

	claims, err := utils.VerifyRefreshToken(h.Cfg.JWTRefreshSecret, req.RefreshToken)
	if err != nil {
		return respondError(c, http.StatusForbidden, "Invalid refresh token")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return respondError(c, http.StatusNotFound, "User not found")
		}
		return respondError(c, http.StatusInternalServerError, "Error refreshing access token", err.Error())
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID.Hex(), u.Role, h.Cfg.AccessTTL)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Error refreshing access token", err.Error())
	}
	return respondSuccess(c, http.StatusOK, "New access token generated successfully", echo.Map{
		"accessToken": access,
	})
}

// List returns one page of users through the cache-aside path. The cached
// value is the serialized page only; a hit returns it as-is regardless of
// the current request's limit.
func (h *UserHandler) List(c echo.Context) error {
	page, limit := pageParams(c)
	key := cache.Key("users", page)

	ctx, cancel := reqCtx(c)
	defer cancel()

	if payload, ok, err := h.Cache.Get(ctx, key); err != nil {
		h.Log.Warnw("user page cache read failed", "key", key, "error", err)
	} else if ok {
		var users []model.User
		if err := json.Unmarshal(payload, &users); err == nil {
			return respondSuccess(c, http.StatusOK, "Fetched users from cache", users)
		}
		h.Log.Warnw("user page cache payload corrupt", "key", key)
	}

	users, err := h.Users.List(ctx, page, limit)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Error fetching users", err.Error())
	}
	if payload, err := json.Marshal(users); err == nil {
		if err := h.Cache.Set(ctx, key, payload, h.Cfg.CacheTTL); err != nil {
			h.Log.Warnw("user page cache write failed", "key", key, "error", err)
		}
	}
	return respondSuccess(c, http.StatusOK, "Fetched users successfully", users)
}

// GetByID fetches a single user.
func (h *UserHandler) GetByID(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return respondError(c, http.StatusNotFound, "User not found")
		}
		return respondError(c, http.StatusInternalServerError, "Error fetching user", err.Error())
	}
	return respondSuccess(c, http.StatusOK, "User fetched successfully", u)
}

// Update applies an arbitrary partial update to a user.
func (h *UserHandler) Update(c echo.Context) error {
	var updates map[string]any
	if err := c.Bind(&updates); err != nil || len(updates) == 0 {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.Update(ctx, c.Param("id"), updates)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return respondError(c, http.StatusNotFound, "User not found")
		case errors.Is(err, repository.ErrEmailExists):
			return respondError(c, http.StatusBadRequest, "Email already in use")
		}
		return respondError(c, http.StatusInternalServerError, "Error updating user", err.Error())
	}
	return respondSuccess(c, http.StatusOK, "User updated successfully", u)
}

// Delete removes a user. Owned businesses are not cascaded.
func (h *UserHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Users.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return respondError(c, http.StatusNotFound, "User not found")
		}
		return respondError(c, http.StatusInternalServerError, "Error deleting user", err.Error())
	}
	return respondSuccess(c, http.StatusOK, "User deleted successfully", nil)
}

// reqCtx bounds store and cache calls to the request plus a hard timeout.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}
