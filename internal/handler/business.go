package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/aidesk/saas-backend/internal/cache"
	"github.com/aidesk/saas-backend/internal/config"
	"github.com/aidesk/saas-backend/internal/model"
	"github.com/aidesk/saas-backend/internal/queue"
	"github.com/aidesk/saas-backend/internal/repository"
)

// BusinessHandler bundles dependencies for the business endpoints. Users is
// needed to verify that the owner of a new business actually exists.
type BusinessHandler struct {
	Cfg        config.Config
	Businesses BusinessStore
	Users      UserStore
	Cache      PageCache
	Publisher  EventPublisher
	Log        *zap.SugaredLogger
}

func NewBusinessHandler(cfg config.Config, businesses BusinessStore, users UserStore, pages PageCache, pub EventPublisher, log *zap.SugaredLogger) *BusinessHandler {
	return &BusinessHandler{Cfg: cfg, Businesses: businesses, Users: users, Cache: pages, Publisher: pub, Log: log}
}

type createBusinessReq struct {
	Name                 string                `json:"name"`
	Owner                string                `json:"owner"`
	Industry             string                `json:"industry"`
	BusinessType         string                `json:"businessType"`
	Platform             string                `json:"platform"`
	SupportSize          string                `json:"supportSize"`
	SupportChannels      []string              `json:"supportChannels"`
	WebsiteTraffic       string                `json:"websiteTraffic"`
	MonthlyConversations string                `json:"monthlyConversations"`
	Goals                []string              `json:"goals"`
	SubscriptionPlan     string                `json:"subscriptionPlan"`
	AIIntegrations       *model.AIIntegrations `json:"aiIntegrations"`
	Analytics            *model.Analytics      `json:"analytics"`
}

// Create validates the required tenant fields, checks the owner reference
// and inserts the business. A business.created event is published after the
// insert; publish failures are logged and never fail the request.
func (h *BusinessHandler) Create(c echo.Context) error {
	var req createBusinessReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Missing required business fields")
	}
	if req.Name == "" || req.Owner == "" || req.Industry == "" || req.BusinessType == "" ||
		req.Platform == "" || req.SupportSize == "" || len(req.SupportChannels) == 0 ||
		req.WebsiteTraffic == "" || req.MonthlyConversations == "" || len(req.Goals) == 0 {
		return respondError(c, http.StatusBadRequest, "Missing required business fields")
	}
	businessType := model.BusinessType(req.BusinessType)
	if !businessType.Valid() {
		return respondError(c, http.StatusBadRequest, "Invalid business type")
	}
	plan := model.PlanFree
	if req.SubscriptionPlan != "" {
		plan = model.Plan(req.SubscriptionPlan)
		if !plan.Valid() {
			return respondError(c, http.StatusBadRequest, "Invalid subscription plan")
		}
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	owner, err := bson.ObjectIDFromHex(req.Owner)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Owner user does not exist")
	}
	if _, err := h.Users.GetByID(ctx, req.Owner); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return respondError(c, http.StatusBadRequest, "Owner user does not exist")
		}
		return respondError(c, http.StatusInternalServerError, "Error creating business", err.Error())
	}

	b := model.Business{
		Name:                 req.Name,
		Owner:                owner,
		Industry:             req.Industry,
		BusinessType:         businessType,
		Platform:             req.Platform,
		SupportSize:          req.SupportSize,
		SupportChannels:      req.SupportChannels,
		WebsiteTraffic:       req.WebsiteTraffic,
		MonthlyConversations: req.MonthlyConversations,
		Goals:                req.Goals,
		SubscriptionPlan:     plan,
	}
	if req.AIIntegrations != nil {
		b.AIIntegrations = *req.AIIntegrations
	}
	if req.Analytics != nil {
		b.Analytics = *req.Analytics
	}
	if err := h.Businesses.Create(ctx, &b); err != nil {
		return respondError(c, http.StatusInternalServerError, "Error creating business", err.Error())
	}

	if h.Publisher != nil {
		ev := queue.BusinessCreatedEvent{
			BusinessID: b.ID.Hex(),
			OwnerID:    b.Owner.Hex(),
			Name:       b.Name,
			Plan:       string(b.SubscriptionPlan),
			CreatedAt:  b.CreatedAt.Format(time.RFC3339),
		}
		if err := h.Publisher.BusinessCreated(ctx, ev); err != nil {
			h.Log.Warnw("publish business.created failed", "business_id", ev.BusinessID, "error", err)
		}
	}
	return respondSuccess(c, http.StatusCreated, "Business created successfully", b)
}

// List returns one page of businesses through the cache-aside path.
func (h *BusinessHandler) List(c echo.Context) error {
	page, limit := pageParams(c)
	key := cache.Key("businesses", page)

	ctx, cancel := reqCtx(c)
	defer cancel()

	if payload, ok, err := h.Cache.Get(ctx, key); err != nil {
		h.Log.Warnw("business page cache read failed", "key", key, "error", err)
	} else if ok {
		var businesses []model.Business
		if err := json.Unmarshal(payload, &businesses); err == nil {
			return respondSuccess(c, http.StatusOK, "Fetched businesses from cache", businesses)
		}
		h.Log.Warnw("business page cache payload corrupt", "key", key)
	}

	businesses, err := h.Businesses.List(ctx, page, limit)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Error fetching businesses", err.Error())
	}
	if payload, err := json.Marshal(businesses); err == nil {
		if err := h.Cache.Set(ctx, key, payload, h.Cfg.CacheTTL); err != nil {
			h.Log.Warnw("business page cache write failed", "key", key, "error", err)
		}
	}
	return respondSuccess(c, http.StatusOK, "Fetched businesses successfully", businesses)
}

// GetByID fetches a single business.
func (h *BusinessHandler) GetByID(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Businesses.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return respondError(c, http.StatusNotFound, "Business not found")
		}
		return respondError(c, http.StatusInternalServerError, "Error fetching business", err.Error())
	}
	return respondSuccess(c, http.StatusOK, "Business fetched successfully", b)
}

// Update applies an arbitrary partial update to a business.
func (h *BusinessHandler) Update(c echo.Context) error {
	var updates map[string]any
	if err := c.Bind(&updates); err != nil || len(updates) == 0 {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Businesses.Update(ctx, c.Param("id"), updates)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return respondError(c, http.StatusNotFound, "Business not found")
		}
		return respondError(c, http.StatusInternalServerError, "Error updating business", err.Error())
	}
	return respondSuccess(c, http.StatusOK, "Business updated successfully", b)
}

// Delete removes a business.
func (h *BusinessHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Businesses.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return respondError(c, http.StatusNotFound, "Business not found")
		}
		return respondError(c, http.StatusInternalServerError, "Error deleting business", err.Error())
	}
	return respondSuccess(c, http.StatusOK, "Business deleted successfully", nil)
}
