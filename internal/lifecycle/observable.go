package lifecycle

// Observable holds a value and notifies observers when it changes.
// Delivery is synchronous, serial, and in Set order.
type Observable[T any] struct {
	value     T
	set       bool
	observers []*observer[T]
}

type observer[T any] struct {
	fn     func(T)
	active bool
}

// NewObservable creates an observable with no value.
func NewObservable[T any]() *Observable[T] {
	return &Observable[T]{}
}

// NewObservableOf creates an observable holding v.
func NewObservableOf[T any](v T) *Observable[T] {
	return &Observable[T]{value: v, set: true}
}

// Value returns the current value and whether one was ever set.
func (o *Observable[T]) Value() (T, bool) {
	return o.value, o.set
}

// Set stores v and delivers it to every active observer.
// Observers added while delivering receive v on registration, not twice.
func (o *Observable[T]) Set(v T) {
	o.value = v
	o.set = true
	snapshot := make([]*observer[T], len(o.observers))
	copy(snapshot, o.observers)
	for _, obs := range snapshot {
		if obs.active {
			obs.fn(v)
		}
	}
}

// Observe registers fn for the lifetime of owner. If a value is already
// set, fn receives it immediately. The subscription is released when the
// owner is destroyed or when Release is called, whichever comes first.
func (o *Observable[T]) Observe(owner Owner, fn func(T)) *Subscription {
	lc := owner.Lifecycle()
	if lc.IsDestroyed() {
		return &Subscription{released: true}
	}

	obs := &observer[T]{fn: fn, active: true}
	o.observers = append(o.observers, obs)

	sub := &Subscription{}
	cancelHook := lc.OnDestroy(sub.Release)
	sub.release = func() {
		obs.active = false
		o.remove(obs)
		cancelHook()
	}

	if o.set {
		fn(o.value)
	}
	return sub
}

// ObserverCount returns the number of active observers.
func (o *Observable[T]) ObserverCount() int {
	return len(o.observers)
}

func (o *Observable[T]) remove(target *observer[T]) {
	for i, obs := range o.observers {
		if obs == target {
			o.observers = append(o.observers[:i], o.observers[i+1:]...)
			return
		}
	}
}

// Subscription is the handle of one observation.
type Subscription struct {
	release  func()
	released bool
}

// Release stops the observation. It is safe to call more than once.
func (s *Subscription) Release() {
	if s == nil || s.released {
		return
	}
	s.released = true
	if s.release != nil {
		s.release()
	}
}

// Released reports whether the subscription has been released.
func (s *Subscription) Released() bool {
	return s == nil || s.released
}
