// Package lifecycle ties observers to the lifetime of their owner.
//
// Everything in this package is meant to be used from the UI goroutine.
// Background producers post their updates onto that goroutine before
// calling Set.
package lifecycle

// State is the lifecycle state of an owner.
type State int

const (
	StateInitialized State = iota
	StateCreated
	StateStarted
	StateResumed
	StateDestroyed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateInitialized:
		return "Initialized"
	case StateCreated:
		return "Created"
	case StateStarted:
		return "Started"
	case StateResumed:
		return "Resumed"
	case StateDestroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}

// Owner is anything that has a lifecycle (the host activity, a service).
type Owner interface {
	Lifecycle() *Lifecycle
}

// Lifecycle tracks an owner's state and releases registered hooks when the
// owner is destroyed.
type Lifecycle struct {
	state   State
	hooks   map[uint64]func()
	nextID  uint64
	onState []func(State)
}

// New creates a lifecycle in the Initialized state.
func New() *Lifecycle {
	return &Lifecycle{hooks: make(map[uint64]func())}
}

// Lifecycle lets a bare *Lifecycle act as an Owner.
func (l *Lifecycle) Lifecycle() *Lifecycle { return l }

// State returns the current state.
func (l *Lifecycle) State() State { return l.state }

// IsDestroyed reports whether Destroy has been called.
func (l *Lifecycle) IsDestroyed() bool { return l.state == StateDestroyed }

// MoveTo advances the lifecycle to s. Moving to StateDestroyed is the same
// as calling Destroy. A destroyed lifecycle never changes state again.
func (l *Lifecycle) MoveTo(s State) {
	if l.state == StateDestroyed || l.state == s {
		return
	}
	if s == StateDestroyed {
		l.Destroy()
		return
	}
	l.state = s
	for _, fn := range l.onState {
		fn(s)
	}
}

// OnStateChanged registers fn to be called on every state change except
// destruction, which is reported through OnDestroy.
func (l *Lifecycle) OnStateChanged(fn func(State)) {
	l.onState = append(l.onState, fn)
}

// OnDestroy registers fn to run once when the owner is destroyed.
// The returned function unregisters it. If the lifecycle is already
// destroyed, fn runs immediately.
func (l *Lifecycle) OnDestroy(fn func()) (cancel func()) {
	if l.state == StateDestroyed {
		fn()
		return func() {}
	}
	id := l.nextID
	l.nextID++
	l.hooks[id] = fn
	return func() { delete(l.hooks, id) }
}

// Destroy moves to StateDestroyed and runs every destroy hook.
func (l *Lifecycle) Destroy() {
	if l.state == StateDestroyed {
		return
	}
	l.state = StateDestroyed
	hooks := l.hooks
	l.hooks = make(map[uint64]func())
	for _, fn := range hooks {
		fn()
	}
	l.onState = nil
}
