package tmf

// Service order states used by OpenSlice. An order is considered active while
// its service is provisioned or being provisioned.
const (
	OrderStateAcknowledged = "acknowledged"
	OrderStateInProgress   = "inprogress"
	OrderStateCompleted    = "completed"
)

// ActiveOrderStates are the states in which a service order is subject to
// policy and MTD updates.
var ActiveOrderStates = []string{
	OrderStateAcknowledged,
	OrderStateInProgress,
	OrderStateCompleted,
}

// OrderService is the service section of an order item.
type OrderService struct {
	ID              string           `json:"id,omitempty"`
	Spec            *ServiceSpec     `json:"serviceSpecification,omitempty"`
	Characteristics []Characteristic `json:"serviceCharacteristic,omitempty"`
}

// OrderItem is a single item of a TMF641 service order.
type OrderItem struct {
	ID      string       `json:"id,omitempty"`
	Action  string       `json:"action,omitempty"`
	Service OrderService `json:"service"`
}

// ServiceOrder is a TMF641 service order as exposed by OpenSlice.
type ServiceOrder struct {
	ID         string      `json:"id,omitempty"`
	State      string      `json:"state,omitempty"`
	OrderItems []OrderItem `json:"orderItem,omitempty"`
}

// Active reports whether the order is in a state where its services exist in
// the inventory.
func (o ServiceOrder) Active() bool {
	for _, s := range ActiveOrderStates {
		if o.State == s {
			return true
		}
	}
	return false
}

// ReferencesSpec reports whether any order item points at the given service
// specification, matched by id when set, otherwise by name.
func (o ServiceOrder) ReferencesSpec(spec ServiceSpec) bool {
	for _, item := range o.OrderItems {
		if item.Service.Spec == nil {
			continue
		}
		if spec.ID != "" && item.Service.Spec.ID == spec.ID {
			return true
		}
		if spec.ID == "" && spec.Name != "" && item.Service.Spec.Name == spec.Name {
			return true
		}
	}
	return false
}
