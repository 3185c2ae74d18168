// Package notify provides change notification for configuration updates.
//
// Observers subscribe either to every change or to a section path such as
// "mouse". A reload that leaves a section equal to its previous value is not
// reported for that section.
package notify

import (
	"sync"
)

// ChangeType represents the type of configuration change.
type ChangeType int

const (
	// ChangeSection indicates a section was replaced with a different value.
	ChangeSection ChangeType = iota

	// ChangeReload indicates the configuration source was read again.
	ChangeReload

	// ChangeError indicates a reload failed and the previous values were kept.
	ChangeError
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSection:
		return "section"
	case ChangeReload:
		return "reload"
	case ChangeError:
		return "error"
	default:
		return "unknown"
	}
}

// Change represents a configuration change event.
type Change struct {
	// Path is the section that changed. Empty for reload and error events.
	Path string

	// Type is the type of change.
	Type ChangeType

	// Source identifies where the change came from (usually a file path).
	Source string

	// Err is set for ChangeError events.
	Err error
}

// Observer is called when configuration changes occur.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier manages configuration change subscriptions.
type Notifier struct {
	mu sync.RWMutex

	globalObservers map[uint64]Observer
	pathObservers   map[string]map[uint64]Observer
	nextID          uint64

	closed bool
}

// New creates a new Notifier.
func New() *Notifier {
	return &Notifier{
		globalObservers: make(map[uint64]Observer),
		pathObservers:   make(map[string]map[uint64]Observer),
	}
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.globalObservers[id] = observer

	return &Subscription{id: id, notifier: n}
}

// SubscribePath registers an observer for section changes at path.
// Reload and error events are delivered to path observers as well.
func (n *Notifier) SubscribePath(path string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++

	if n.pathObservers[path] == nil {
		n.pathObservers[path] = make(map[uint64]Observer)
	}
	n.pathObservers[path][id] = observer

	return &Subscription{id: id, notifier: n}
}

// Notify delivers change synchronously to all matching observers.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}

	var observers []Observer
	for _, obs := range n.globalObservers {
		observers = append(observers, obs)
	}
	for path, pathObs := range n.pathObservers {
		if change.Path != "" && path != change.Path {
			continue
		}
		for _, obs := range pathObs {
			observers = append(observers, obs)
		}
	}
	n.mu.RUnlock()

	// Call observers outside the lock
	for _, obs := range observers {
		obs(change)
	}
}

// NotifySection reports that the section at path was replaced.
func (n *Notifier) NotifySection(path, source string) {
	n.Notify(Change{Path: path, Type: ChangeSection, Source: source})
}

// NotifyReload reports that source was read again.
func (n *Notifier) NotifyReload(source string) {
	n.Notify(Change{Type: ChangeReload, Source: source})
}

// NotifyError reports a failed reload.
func (n *Notifier) NotifyError(source string, err error) {
	n.Notify(Change{Type: ChangeError, Source: source, Err: err})
}

// Close stops delivery. It is safe to call Close multiple times.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
}

// unsubscribe removes an observer by ID.
func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.globalObservers, id)

	for path, observers := range n.pathObservers {
		delete(observers, id)
		if len(observers) == 0 {
			delete(n.pathObservers, path)
		}
	}
}
