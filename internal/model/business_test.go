package model_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aidesk/saas-backend/internal/model"
)

func TestApplyTicketOpened(t *testing.T) {
	a := model.Analytics{}.ApplyTicket(false, 0, 0)
	require.Equal(t, int64(1), a.TotalTickets)
	require.Equal(t, int64(0), a.ResolvedTickets)
	require.Zero(t, a.AvgResponseTime)
	require.Zero(t, a.CustomerSatisfaction)
}

func TestApplyTicketResolvedRunningAverage(t *testing.T) {
	a := model.Analytics{}
	a = a.ApplyTicket(true, 10, 4)
	a = a.ApplyTicket(true, 30, 2)

	require.Equal(t, int64(2), a.TotalTickets)
	require.Equal(t, int64(2), a.ResolvedTickets)
	require.InDelta(t, 20.0, a.AvgResponseTime, 1e-9)
	require.InDelta(t, 3.0, a.CustomerSatisfaction, 1e-9)
}

func TestApplyTicketMixed(t *testing.T) {
	a := model.Analytics{}
	a = a.ApplyTicket(true, 12, 5)
	a = a.ApplyTicket(false, 0, 0)

	// Opened tickets count towards the total but leave the averages alone.
	require.Equal(t, int64(2), a.TotalTickets)
	require.Equal(t, int64(1), a.ResolvedTickets)
	require.InDelta(t, 12.0, a.AvgResponseTime, 1e-9)
	require.InDelta(t, 5.0, a.CustomerSatisfaction, 1e-9)
}

func TestRoleValid(t *testing.T) {
	require.True(t, model.RoleAdmin.Valid())
	require.True(t, model.RoleBusiness.Valid())
	require.False(t, model.Role("superuser").Valid())
	require.False(t, model.Role("").Valid())
}

func TestBusinessEnums(t *testing.T) {
	for _, bt := range []model.BusinessType{
		model.BusinessTypeB2B, model.BusinessTypeB2C, model.BusinessTypeEcommerce, model.BusinessTypeOther,
	} {
		require.True(t, bt.Valid())
	}
	require.False(t, model.BusinessType("b2x").Valid())

	for _, p := range []model.Plan{model.PlanFree, model.PlanPro, model.PlanEnterprise} {
		require.True(t, p.Valid())
	}
	require.False(t, model.Plan("platinum").Valid())
}
