package mtd

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diogosantosua/onboarding-tools/internal/tmf"
)

type fakeOrderAPI struct {
	mu      sync.Mutex
	orders  map[string]*tmf.ServiceOrder
	updates []tmf.ServiceSpec
	listErr error
}

func (f *fakeOrderAPI) ListActiveServiceOrders(context.Context) ([]tmf.ServiceOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	orders := make([]tmf.ServiceOrder, 0, len(f.orders))
	for _, o := range f.orders {
		orders = append(orders, tmf.ServiceOrder{ID: o.ID, State: o.State})
	}
	return orders, nil
}

func (f *fakeOrderAPI) GetServiceOrder(_ context.Context, id string) (*tmf.ServiceOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orders[id], nil
}

func (f *fakeOrderAPI) UpdateServiceOrderAndInventories(_ context.Context, orderID string, spec tmf.ServiceSpec) (*tmf.ServiceOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, spec)
	return f.orders[orderID], nil
}

func mtdOrder(id, action, frequency string) *tmf.ServiceOrder {
	return &tmf.ServiceOrder{
		ID:    id,
		State: tmf.OrderStateCompleted,
		OrderItems: []tmf.OrderItem{
			{Service: tmf.OrderService{
				Characteristics: []tmf.Characteristic{
					{Name: tmf.CharacteristicMTDAction, Value: tmf.CharacteristicValue{Value: action}},
					{Name: tmf.CharacteristicMTDFrequency, Value: tmf.CharacteristicValue{Value: frequency}},
				},
			}},
		},
	}
}

func TestActionsFromOrder_RequiresBothCharacteristics(t *testing.T) {
	order := tmf.ServiceOrder{
		OrderItems: []tmf.OrderItem{
			{Service: tmf.OrderService{Characteristics: []tmf.Characteristic{
				{Name: tmf.CharacteristicMTDAction, Value: tmf.CharacteristicValue{Value: "ipShuffling"}},
			}}},
		},
	}
	assert.Empty(t, ActionsFromOrder(order, nil))

	order = *mtdOrder("o1", "ipShuffling", "3")
	actions := ActionsFromOrder(order, nil)
	require.Len(t, actions, 1)
	assert.Equal(t, Action{Value: "ipShuffling", Frequency: 3, Remaining: 3}, actions[0])
}

func TestActionsFromOrder_PreservesCounters(t *testing.T) {
	order := *mtdOrder("o1", "ipShuffling", "5")
	previous := []Action{{Value: "ipShuffling", Frequency: 5, Remaining: 2}}

	actions := ActionsFromOrder(order, previous)
	require.Len(t, actions, 1)
	assert.Equal(t, 2, actions[0].Remaining)
}

func TestActionsFromOrder_InvalidFrequencyIgnored(t *testing.T) {
	assert.Empty(t, ActionsFromOrder(*mtdOrder("o1", "ipShuffling", "zero"), nil))
	assert.Empty(t, ActionsFromOrder(*mtdOrder("o1", "ipShuffling", "0"), nil))
}

func TestAction_TickFiresAndResets(t *testing.T) {
	action := Action{Value: "ipShuffling", Frequency: 2, Remaining: 2}

	_, fire := action.Tick()
	assert.False(t, fire)

	char, fire := action.Tick()
	require.True(t, fire)
	assert.Equal(t, tmf.CharacteristicMTDAction, char.Name)
	assert.Equal(t, "ipShuffling", char.Value.Value)
	assert.Equal(t, 2, action.Remaining)
}

func TestScheduler_FiresAfterFrequencyCycles(t *testing.T) {
	api := &fakeOrderAPI{orders: map[string]*tmf.ServiceOrder{
		"o1": mtdOrder("o1", "ipShuffling", "2"),
	}}
	s := NewScheduler(api)

	s.Cycle(context.Background())
	assert.Empty(t, api.updates)

	s.Cycle(context.Background())
	require.Len(t, api.updates, 1)
	require.Len(t, api.updates[0].Characteristics, 1)
	assert.Equal(t, "ipShuffling", api.updates[0].Characteristics[0].Value.Value)

	// counter reset: fires again two cycles later
	s.Cycle(context.Background())
	assert.Len(t, api.updates, 1)
	s.Cycle(context.Background())
	assert.Len(t, api.updates, 2)
}

func TestScheduler_ForgetsInactiveOrders(t *testing.T) {
	api := &fakeOrderAPI{orders: map[string]*tmf.ServiceOrder{
		"o1": mtdOrder("o1", "ipShuffling", "1"),
	}}
	s := NewScheduler(api)

	s.Cycle(context.Background())
	require.Len(t, api.updates, 1)

	api.mu.Lock()
	delete(api.orders, "o1")
	api.mu.Unlock()

	s.Cycle(context.Background())
	assert.Len(t, api.updates, 1, "no update for a gone order")
	assert.Empty(t, s.actions)
}

func TestScheduler_ListFailureKeepsSchedule(t *testing.T) {
	api := &fakeOrderAPI{orders: map[string]*tmf.ServiceOrder{
		"o1": mtdOrder("o1", "ipShuffling", "2"),
	}}
	s := NewScheduler(api)
	s.Cycle(context.Background())

	api.mu.Lock()
	api.listErr = assert.AnError
	api.mu.Unlock()

	// refresh fails but the existing schedule keeps ticking
	s.Cycle(context.Background())
	assert.Len(t, api.updates, 1)
}

func TestScheduler_RunStopsOnCancel(t *testing.T) {
	api := &fakeOrderAPI{orders: map[string]*tmf.ServiceOrder{}}
	s := NewScheduler(api)
	s.SetInterval(0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()
	<-done
}
