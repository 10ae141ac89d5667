package services

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"spendwise/internal/amqp"
	"spendwise/internal/cache"
	"spendwise/internal/core"
	"spendwise/internal/ledger"
	"spendwise/internal/log"
	"spendwise/internal/metrics"
	"spendwise/internal/store"
)

// EventPublisher receives an event after every successful mutation.
type EventPublisher interface {
	PublishEvent(ctx context.Context, ev *amqp.LedgerEvent) error
}

// ActivityRecorder writes events straight into the activity log. It stands
// in for the broker when none is configured.
type ActivityRecorder struct {
	Log store.ActivityLog
}

func (r ActivityRecorder) PublishEvent(ctx context.Context, ev *amqp.LedgerEvent) error {
	return r.Log.Record(ctx, ev.Activity())
}

type Options struct {
	MonthlyBudget core.Money
	RecentLimit   int
	CacheTTL      time.Duration
	CacheSize     int
}

// LedgerService validates ledger intents, applies them to the stores and
// derives summaries.
type LedgerService struct {
	store       store.Ledger
	events      EventPublisher
	budget      core.Money
	recentLimit int
	summaries   cache.Cache[core.Dashboard]
	newID       func() string

	// generation counts mutations so a summary computed across one is not
	// cached. cacheMu orders the generation check and Set against Add and Purge.
	cacheMu    sync.Mutex
	generation atomic.Uint64
}

func NewLedgerService(st store.Ledger, events EventPublisher, opts Options) *LedgerService {
	if opts.MonthlyBudget.Cents <= 0 {
		opts.MonthlyBudget = ledger.DefaultMonthlyBudget
	}
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = ledger.DefaultRecentLimit
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Minute
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 32
	}
	return &LedgerService{
		store:       st,
		events:      events,
		budget:      opts.MonthlyBudget,
		recentLimit: opts.RecentLimit,
		summaries:   cache.NewLRUCache[core.Dashboard](opts.CacheSize, opts.CacheTTL),
		newID:       newID,
	}
}

// SummaryCache exposes the dashboard cache for periodic cleanup.
func (s *LedgerService) SummaryCache() cache.Cache[core.Dashboard] {
	return s.summaries
}

// MonthlyBudget is the budget dashboards are measured against.
func (s *LedgerService) MonthlyBudget() core.Money {
	return s.budget
}

// Dashboard summarises the ledger for one month, or all time when year is 0.
func (s *LedgerService) Dashboard(ctx context.Context, year, month int) (core.Dashboard, error) {
	key := strconv.Itoa(year) + "-" + strconv.Itoa(month)
	if d, ok := s.summaries.Get(key); ok {
		metrics.DashboardCache.WithLabelValues("hit").Inc()
		return cloneDashboard(d), nil
	}
	metrics.DashboardCache.WithLabelValues("miss").Inc()
	gen := s.generation.Load()

	var (
		expenses []core.PersonalExpense
		payments []core.FriendPayment
		groups   []core.GroupPayment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		expenses, err = s.store.Expenses().List(gctx)
		return err
	})
	g.Go(func() (err error) {
		payments, err = s.store.FriendPayments().List(gctx)
		return err
	})
	g.Go(func() (err error) {
		groups, err = s.store.Groups().List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return core.Dashboard{}, fmt.Errorf("load dashboard data: %w", err)
	}

	d := ledger.Summarize(ledger.DashboardInput{
		Expenses:    expenses,
		Payments:    payments,
		Groups:      groups,
		Budget:      s.budget,
		Year:        year,
		Month:       month,
		RecentLimit: s.recentLimit,
	})
	s.cacheMu.Lock()
	if s.generation.Load() == gen {
		s.summaries.Set(key, d)
	}
	s.cacheMu.Unlock()
	return cloneDashboard(d), nil
}

// Activity returns the most recent activity entries.
func (s *LedgerService) Activity(ctx context.Context, limit int) ([]core.Activity, error) {
	items, err := s.store.Activity().Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("read activity: %w", err)
	}
	return items, nil
}

// PreviewSplit computes participant shares without storing anything.
func (s *LedgerService) PreviewSplit(req ledger.SplitRequest) ([]core.Participant, error) {
	parts, err := ledger.Split(req)
	if err != nil {
		metrics.ValidationFailures.WithLabelValues(amqp.EntityGroupPayment).Inc()
		return nil, err
	}
	return parts, nil
}

// mutated runs the bookkeeping every successful mutation shares: metrics,
// cache invalidation and the ledger event.
func (s *LedgerService) mutated(ctx context.Context, entity, op, id string, amount core.Money, summary string) {
	metrics.LedgerMutations.WithLabelValues(entity, op).Inc()
	s.cacheMu.Lock()
	s.generation.Add(1)
	s.summaries.Purge()
	s.cacheMu.Unlock()

	logger := log.FromContext(ctx)
	log.NewStructuredLogger(logger).LogMutation(ctx, entity, op, id, amount.Cents)

	if s.events == nil {
		logger.WarnContext(ctx, "Event publisher not available, skipping ledger event",
			log.FieldEntity, entity, log.FieldOperation, op)
		return
	}
	ev := amqp.NewLedgerEvent(entity, op, id, amount, summary)
	if err := s.events.PublishEvent(ctx, ev); err != nil {
		// The record is stored already; event delivery is best effort.
		fields := log.NewFields().WithRecord(entity, id, amount.Cents)
		log.NewStructuredLogger(logger).LogError(ctx, "Failed to publish ledger event", err, log.ComponentAMQP, fields)
	}
}

func (s *LedgerService) invalid(entity string, err error) error {
	metrics.ValidationFailures.WithLabelValues(entity).Inc()
	return err
}

func newID() string {
	return uuid.NewString()
}

func cloneDashboard(d core.Dashboard) core.Dashboard {
	d.ByCategory = slices.Clone(d.ByCategory)
	d.Recent = slices.Clone(d.Recent)
	return d
}
