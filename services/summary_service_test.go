package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"laundryos-backend/models"
	"laundryos-backend/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingNotifier struct {
	messages []string
	err      error
}

func (n *recordingNotifier) Notify(_ context.Context, message string) error {
	n.messages = append(n.messages, message)
	return n.err
}

func seedOrders(t *testing.T, orders store.OrderStore, at ...time.Time) {
	t.Helper()
	for i, ts := range at {
		_, err := orders.Create(context.Background(), models.Order{
			Total:     float64(100 * (i + 1)),
			Status:    models.OrderStatusPaid,
			CreatedAt: ts,
		})
		require.NoError(t, err)
	}
}

func TestSummaryService_Summarize(t *testing.T) {
	orders := store.NewMemoryOrderStore()
	day := time.Date(2026, 3, 14, 15, 0, 0, 0, time.Local)
	seedOrders(t, orders,
		day.Add(-24*time.Hour), // 100, previous day
		day.Add(-time.Hour),    // 200
		day.Add(time.Hour),     // 300
		day.Add(10*time.Hour),  // 400, next day
	)

	s := NewSummaryService(orders, &recordingNotifier{}, zap.NewNop())
	summary, err := s.Summarize(context.Background(), day)
	require.NoError(t, err)

	assert.Equal(t, DailySummary{Date: "2026-03-14", Orders: 2, Income: 500}, summary)
}

func TestSummaryService_SendSummaryNotifies(t *testing.T) {
	orders := store.NewMemoryOrderStore()
	day := time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local)
	seedOrders(t, orders, day)

	notifier := &recordingNotifier{}
	s := NewSummaryService(orders, notifier, zap.NewNop())

	require.NoError(t, s.SendSummary(context.Background(), day))
	require.Len(t, notifier.messages, 1)
	assert.Equal(t, "Laundry OS 2026-03-14: 1 orders, KSh 100.00 taken", notifier.messages[0])
}

func TestSummaryService_SendDailySummaryLogsNotifierFailure(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	notifier := &recordingNotifier{err: errors.New("gateway down")}

	s := NewSummaryService(store.NewMemoryOrderStore(), notifier, zap.New(core))
	s.now = func() time.Time { return time.Date(2026, 3, 14, 21, 0, 0, 0, time.Local) }
	s.SendDailySummary()

	assert.Len(t, notifier.messages, 1)
	assert.Equal(t, 1, logs.FilterMessage("daily summary failed").Len())
}

func TestSummaryService_StartScheduler(t *testing.T) {
	s := NewSummaryService(store.NewMemoryOrderStore(), &recordingNotifier{}, zap.NewNop())

	require.NoError(t, s.StartScheduler(""))
	assert.Nil(t, s.cron)

	require.Error(t, s.StartScheduler("not a cron spec"))

	require.NoError(t, s.StartScheduler("0 21 * * *"))
	assert.NotNil(t, s.cron)
	s.StopScheduler()
	assert.Nil(t, s.cron)

	// Stopping twice is harmless.
	s.StopScheduler()
}

func TestNewNotifier_FallsBackToLog(t *testing.T) {
	log := zap.NewNop()

	assert.IsType(t, &LogNotifier{}, NewNotifier("", "token", "+100", "+200", log))
	assert.IsType(t, &LogNotifier{}, NewNotifier("AC123", "token", "+100", "", log))
	assert.IsType(t, &TwilioNotifier{}, NewNotifier("AC123", "token", "+100", "+200", log))
}

func TestLogNotifier_Notify(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	n := NewLogNotifier(zap.New(core))

	require.NoError(t, n.Notify(context.Background(), "hello"))
	entries := logs.FilterMessage("notification").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "hello", entries[0].ContextMap()["message"])
}
