package policy

// queueCapacity bounds how many service orders may wait for a policy of one
// type before enqueue starts failing.
const queueCapacity = 64

// WaitingQueues tracks service orders waiting for a policy of each type.
// An order is enqueued when its MSPL is forwarded to the Security
// Orchestrator and dequeued when the orchestrator pushes back the matching
// policy.
type WaitingQueues struct {
	queues map[Type]chan string
}

// NewWaitingQueues creates one queue per policy type.
func NewWaitingQueues() *WaitingQueues {
	queues := make(map[Type]chan string, len(Types))
	for _, t := range Types {
		queues[t] = make(chan string, queueCapacity)
	}
	return &WaitingQueues{queues: queues}
}

// Enqueue registers a service order as waiting for a policy of the given
// type. It reports false when the queue is full.
func (w *WaitingQueues) Enqueue(t Type, serviceOrderID string) bool {
	select {
	case w.queues[t] <- serviceOrderID:
		return true
	default:
		return false
	}
}

// Dequeue returns the oldest waiting service order for the given type, or
// false when none is waiting.
func (w *WaitingQueues) Dequeue(t Type) (string, bool) {
	select {
	case id := <-w.queues[t]:
		return id, true
	default:
		return "", false
	}
}

// Len returns how many orders are waiting for the given type.
func (w *WaitingQueues) Len(t Type) int {
	return len(w.queues[t])
}
