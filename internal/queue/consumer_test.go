package queue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type ticketCall struct {
	businessID   string
	resolved     bool
	responseSecs float64
	satisfaction float64
}

type fakeAnalyticsStore struct {
	calls []ticketCall
}

func (f *fakeAnalyticsStore) ApplyTicketEvent(_ context.Context, businessID string, resolved bool, responseSecs, satisfaction float64) error {
	f.calls = append(f.calls, ticketCall{businessID, resolved, responseSecs, satisfaction})
	return nil
}

func TestHandleTicketMessageResolved(t *testing.T) {
	store := &fakeAnalyticsStore{}
	body := []byte(`{"business_id":"64f0c3e2a5b9d8e7f6a5b4c3","type":"resolved","response_time_secs":42.5,"satisfaction":4.8}`)
	require.NoError(t, handleTicketMessage(body, store))

	require.Len(t, store.calls, 1)
	call := store.calls[0]
	require.Equal(t, "64f0c3e2a5b9d8e7f6a5b4c3", call.businessID)
	require.True(t, call.resolved)
	require.Equal(t, 42.5, call.responseSecs)
	require.Equal(t, 4.8, call.satisfaction)
}

func TestHandleTicketMessageOpened(t *testing.T) {
	store := &fakeAnalyticsStore{}
	body := []byte(`{"business_id":"64f0c3e2a5b9d8e7f6a5b4c3","type":"opened"}`)
	require.NoError(t, handleTicketMessage(body, store))

	require.Len(t, store.calls, 1)
	require.False(t, store.calls[0].resolved)
}

func TestHandleTicketMessageRejectsBadPayloads(t *testing.T) {
	store := &fakeAnalyticsStore{}

	require.Error(t, handleTicketMessage([]byte(`not json`), store))
	require.Error(t, handleTicketMessage([]byte(`{"type":"opened"}`), store), "missing business_id")
	require.Error(t, handleTicketMessage([]byte(`{"business_id":"b1","type":"escalated"}`), store), "unknown type")
	require.Empty(t, store.calls)
}
