package mtd

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/diogosantosua/onboarding-tools/internal/tmf"
)

// DefaultInterval is the scheduler cycle length. Frequencies are expressed
// in cycles, so with the default interval an mtdFrequency of 5 fires every
// five minutes.
const DefaultInterval = 60 * time.Second

// minSleep keeps the loop from spinning when a cycle overruns the interval.
const minSleep = 1 * time.Second

// ServiceOrderAPI is the slice of the OpenSlice client the scheduler needs.
type ServiceOrderAPI interface {
	ListActiveServiceOrders(ctx context.Context) ([]tmf.ServiceOrder, error)
	GetServiceOrder(ctx context.Context, id string) (*tmf.ServiceOrder, error)
	UpdateServiceOrderAndInventories(ctx context.Context, orderID string, spec tmf.ServiceSpec) (*tmf.ServiceOrder, error)
}

// Scheduler drives the periodic MTD action loop.
type Scheduler struct {
	api      ServiceOrderAPI
	interval time.Duration
	actions  map[string][]Action
}

// NewScheduler creates a scheduler over the given service order API.
func NewScheduler(api ServiceOrderAPI) *Scheduler {
	return &Scheduler{
		api:      api,
		interval: DefaultInterval,
		actions:  make(map[string][]Action),
	}
}

// SetInterval overrides the cycle length. Used by tests and dev mode.
func (s *Scheduler) SetInterval(interval time.Duration) {
	s.interval = interval
}

// Run executes cycles until the context is cancelled. Each cycle refreshes
// the scheduled actions from the active service orders, then fires the
// actions whose counters elapsed.
func (s *Scheduler) Run(ctx context.Context) {
	log.Info().Dur("interval", s.interval).Msg("mtd scheduler started")
	for {
		start := time.Now()
		s.Cycle(ctx)
		elapsed := time.Since(start)
		log.Debug().Dur("elapsed", elapsed).Msg("mtd cycle complete")

		sleep := s.interval - elapsed
		if sleep < minSleep {
			sleep = minSleep
		}
		select {
		case <-ctx.Done():
			log.Info().Msg("mtd scheduler stopped")
			return
		case <-time.After(sleep):
		}
	}
}

// Cycle runs one refresh+fire pass. Exported so tests and dev tooling can
// step the scheduler without waiting for the interval.
func (s *Scheduler) Cycle(ctx context.Context) {
	s.refresh(ctx)
	s.fire(ctx)
}

func (s *Scheduler) refresh(ctx context.Context) {
	orders, err := s.api.ListActiveServiceOrders(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("mtd: could not list active service orders")
		return
	}

	seen := make(map[string]struct{}, len(orders))
	for _, summary := range orders {
		if summary.ID == "" {
			continue
		}
		seen[summary.ID] = struct{}{}

		order, err := s.api.GetServiceOrder(ctx, summary.ID)
		if err != nil || order == nil {
			log.Warn().Err(err).Str("order", summary.ID).Msg("mtd: could not fetch service order")
			continue
		}
		if actions := ActionsFromOrder(*order, s.actions[summary.ID]); len(actions) > 0 {
			s.actions[summary.ID] = actions
		}
	}

	// Forget orders that are no longer active.
	for id := range s.actions {
		if _, ok := seen[id]; !ok {
			delete(s.actions, id)
		}
	}
	log.Debug().Int("orders", len(s.actions)).Msg("mtd: scheduled actions refreshed")
}

func (s *Scheduler) fire(ctx context.Context) {
	for orderID, actions := range s.actions {
		var due []tmf.Characteristic
		for i := range actions {
			if char, fire := actions[i].Tick(); fire {
				due = append(due, char)
			}
		}
		s.actions[orderID] = actions
		if len(due) == 0 {
			continue
		}

		spec := tmf.ServiceSpec{Characteristics: due}
		if _, err := s.api.UpdateServiceOrderAndInventories(ctx, orderID, spec); err != nil {
			log.Warn().Err(err).Str("order", orderID).Msg("mtd: could not apply action")
			continue
		}
		log.Debug().Str("order", orderID).Int("actions", len(due)).Msg("mtd: actions applied")
	}
}
