package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// BusinessType classifies what kind of operation a tenant runs.
type BusinessType string

const (
	BusinessTypeB2B       BusinessType = "b2b"
	BusinessTypeB2C       BusinessType = "b2c"
	BusinessTypeEcommerce BusinessType = "ecommerce-store"
	BusinessTypeOther     BusinessType = "other"
)

func (t BusinessType) Valid() bool {
	switch t {
	case BusinessTypeB2B, BusinessTypeB2C, BusinessTypeEcommerce, BusinessTypeOther:
		return true
	}
	return false
}

// Plan is the subscription tier of a Business.
type Plan string

const (
	PlanFree       Plan = "free"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

func (p Plan) Valid() bool {
	return p == PlanFree || p == PlanPro || p == PlanEnterprise
}

// AIIntegrations tracks which AI surfaces a tenant has switched on.
// IntegrationDetails is an open-ended map for per-integration settings
// (API keys, webhook URLs and the like).
type AIIntegrations struct {
	Website            bool           `bson:"website" json:"website"`
	Whatsapp           bool           `bson:"whatsapp" json:"whatsapp"`
	API                bool           `bson:"api" json:"api"`
	IntegrationDetails map[string]any `bson:"integrationDetails,omitempty" json:"integrationDetails,omitempty"`
}

// Analytics carries the per-tenant support counters. They are written by the
// ticket-event consumer, not by the HTTP surface.
type Analytics struct {
	TotalTickets         int64   `bson:"totalTickets" json:"totalTickets"`
	ResolvedTickets      int64   `bson:"resolvedTickets" json:"resolvedTickets"`
	AvgResponseTime      float64 `bson:"avgResponseTime" json:"avgResponseTime"`
	CustomerSatisfaction float64 `bson:"customerSatisfaction" json:"customerSatisfaction"`
}

// ApplyTicket folds one support-ticket event into the counters and returns
// the result. Every event counts towards TotalTickets; resolved events also
// advance ResolvedTickets and the running averages for response time and
// satisfaction.
func (a Analytics) ApplyTicket(resolved bool, responseSecs, satisfaction float64) Analytics {
	a.TotalTickets++
	if resolved {
		n := float64(a.ResolvedTickets + 1)
		a.AvgResponseTime += (responseSecs - a.AvgResponseTime) / n
		a.CustomerSatisfaction += (satisfaction - a.CustomerSatisfaction) / n
		a.ResolvedTickets++
	}
	return a
}

// Business is a tenant record in the `business` collection, owned by exactly
// one User.
type Business struct {
	ID                   bson.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Name                 string         `bson:"name" json:"name"`
	Owner                bson.ObjectID  `bson:"owner" json:"owner"`
	Industry             string         `bson:"industry" json:"industry"`
	BusinessType         BusinessType   `bson:"businessType" json:"businessType"`
	Platform             string         `bson:"platform" json:"platform"`
	SupportSize          string         `bson:"supportSize" json:"supportSize"`
	SupportChannels      []string       `bson:"supportChannels" json:"supportChannels"`
	WebsiteTraffic       string         `bson:"websiteTraffic" json:"websiteTraffic"`
	MonthlyConversations string         `bson:"monthlyConversations" json:"monthlyConversations"`
	Goals                []string       `bson:"goals" json:"goals"`
	SubscriptionPlan     Plan           `bson:"subscriptionPlan" json:"subscriptionPlan"`
	AIIntegrations       AIIntegrations `bson:"aiIntegrations" json:"aiIntegrations"`
	Analytics            Analytics      `bson:"analytics" json:"analytics"`
	CreatedAt            time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time      `bson:"updatedAt" json:"updatedAt"`
}
