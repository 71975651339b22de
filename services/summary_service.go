package services

import (
	"context"
	"fmt"
	"time"

	"laundryos-backend/store"
	"laundryos-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type DailySummary struct {
	Date   string  `json:"date"`
	Orders int     `json:"orders"`
	Income float64 `json:"income"`
}

func (d DailySummary) Message() string {
	return fmt.Sprintf("Laundry OS %s: %d orders, KSh %s taken",
		d.Date, d.Orders, decimal.NewFromFloat(d.Income).StringFixed(2))
}

// SummaryService reports each day's takings through a Notifier on a cron schedule.
type SummaryService struct {
	orders   store.OrderStore
	notifier Notifier
	log      *zap.Logger
	cron     *cron.Cron
	now      func() time.Time
}

func NewSummaryService(orders store.OrderStore, notifier Notifier, log *zap.Logger) *SummaryService {
	return &SummaryService{
		orders:   orders,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// Summarize totals the orders created on the local day containing day.
func (s *SummaryService) Summarize(ctx context.Context, day time.Time) (DailySummary, error) {
	from, to := utils.DayBounds(day)
	orders, err := s.orders.Between(ctx, from, to)
	if err != nil {
		return DailySummary{}, err
	}

	income := decimal.Zero
	for _, order := range orders {
		income = income.Add(decimal.NewFromFloat(order.Total))
	}

	return DailySummary{
		Date:   from.Format("2006-01-02"),
		Orders: len(orders),
		Income: income.Round(2).InexactFloat64(),
	}, nil
}

func (s *SummaryService) SendSummary(ctx context.Context, day time.Time) error {
	summary, err := s.Summarize(ctx, day)
	if err != nil {
		return fmt.Errorf("summarize %s: %w", day.Format("2006-01-02"), err)
	}

	s.log.Info("daily summary",
		zap.String("date", summary.Date),
		zap.Int("orders", summary.Orders),
		zap.Float64("income", summary.Income),
	)
	return s.notifier.Notify(ctx, summary.Message())
}

// SendDailySummary is the cron job body.
func (s *SummaryService) SendDailySummary() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.SendSummary(ctx, s.now()); err != nil {
		s.log.Error("daily summary failed", zap.Error(err))
	}
}

// StartScheduler runs SendDailySummary on spec. An empty spec disables it.
func (s *SummaryService) StartScheduler(spec string) error {
	if spec == "" {
		s.log.Info("summary scheduler disabled")
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, s.SendDailySummary); err != nil {
		return fmt.Errorf("schedule daily summary %q: %w", spec, err)
	}
	c.Start()
	s.cron = c

	s.log.Info("summary scheduler started", zap.String("schedule", spec))
	return nil
}

// StopScheduler stops the scheduler and waits for a running job to finish.
func (s *SummaryService) StopScheduler() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.cron = nil
}
