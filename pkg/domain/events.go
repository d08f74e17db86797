package domain

// StepEvent describes one applied transition.
// States and symbols are rendered so that hooks stay non-generic.
type StepEvent struct {
	Machine string    `json:"machine"`
	Step    int       `json:"step"`
	State   string    `json:"state"`
	Read    string    `json:"read"`
	Write   string    `json:"write"`
	Move    Direction `json:"move"`
	Next    string    `json:"next"`
	Head    int       `json:"head"`
	Grew    bool      `json:"grew,omitempty"`
	Accept  bool      `json:"accept,omitempty"`
}

// HaltEvent is emitted once when an accepting action has been applied.
type HaltEvent struct {
	Machine string `json:"machine"`
	Steps   int    `json:"steps"`
	State   string `json:"state"`
	Head    int    `json:"head"`
}

// UndefinedEvent is emitted when the table has no rule for the current state and cell.
type UndefinedEvent struct {
	Machine string `json:"machine"`
	Steps   int    `json:"steps"`
	State   string `json:"state"`
	Read    string `json:"read"`
}

// LifecycleHooks defines callbacks for engine observability.
// Nil callbacks are skipped.
type LifecycleHooks struct {
	OnStep      func(*StepEvent)
	OnHalt      func(*HaltEvent)
	OnUndefined func(*UndefinedEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStep:      chain(h.OnStep, other.OnStep),
		OnHalt:      chain(h.OnHalt, other.OnHalt),
		OnUndefined: chain(h.OnUndefined, other.OnUndefined),
	}
}

func chain[E any](a, b func(*E)) func(*E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e *E) {
		a(e)
		b(e)
	}
}
