// Package mtd schedules Moving Target Defense actions for KNF-based network
// services. Orders carrying an mtdAction characteristic are re-triggered
// every mtdFrequency minutes by re-applying the action characteristic to the
// order and its inventory entries.
package mtd

import (
	"strconv"

	"github.com/diogosantosua/onboarding-tools/internal/tmf"
)

// Action is a scheduled MTD action for one service order item.
type Action struct {
	// Value is the action identifier, e.g. "ipShuffling".
	Value string
	// Frequency is the trigger period in scheduler cycles (one per minute).
	Frequency int
	// Remaining counts cycles until the next trigger.
	Remaining int
}

// Tick advances the action by one cycle. When the counter reaches zero the
// action characteristic to re-apply is returned and the counter resets.
func (a *Action) Tick() (tmf.Characteristic, bool) {
	a.Remaining--
	if a.Remaining > 0 {
		return tmf.Characteristic{}, false
	}
	a.Remaining = a.Frequency
	return tmf.Characteristic{
		Name:  tmf.CharacteristicMTDAction,
		Value: tmf.CharacteristicValue{Value: a.Value},
	}, true
}

// ActionsFromOrder derives the MTD actions requested by a service order.
// Counters of actions already known from a previous cycle are preserved so
// that re-reading the order does not reset the schedule.
func ActionsFromOrder(order tmf.ServiceOrder, existing []Action) []Action {
	var actions []Action
	for _, item := range order.OrderItems {
		value, frequency, ok := actionCharacteristics(item.Service.Characteristics)
		if !ok {
			continue
		}
		action := Action{Value: value, Frequency: frequency, Remaining: frequency}
		for _, prev := range existing {
			if prev.Value == value && prev.Frequency == frequency {
				action.Remaining = prev.Remaining
				break
			}
		}
		actions = append(actions, action)
	}
	return actions
}

func actionCharacteristics(chars []tmf.Characteristic) (value string, frequency int, ok bool) {
	for _, c := range chars {
		switch c.Name {
		case tmf.CharacteristicMTDAction:
			value = c.Value.Value
		case tmf.CharacteristicMTDFrequency:
			f, err := strconv.Atoi(c.Value.Value)
			if err == nil && f > 0 {
				frequency = f
			}
		}
	}
	return value, frequency, value != "" && frequency > 0
}
