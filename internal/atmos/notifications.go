package atmos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ReactionEvent describes one reaction that fired during a tick.
type ReactionEvent struct {
	CalculationID string     `json:"calculation_id,omitempty"`
	Tick          int        `json:"tick"`
	Reaction      ReactionID `json:"reaction"`
	Name          string     `json:"name"`
	Priority      string     `json:"priority"`

	// Mixture state right after the reaction applied
	Temperature float64 `json:"temperature_k"`
	Pressure    float64 `json:"pressure_kpa"`
	TotalMoles  float64 `json:"total_moles"`
}

// JSON returns the event as JSON bytes
func (e ReactionEvent) JSON() ([]byte, error) {
	return json.Marshal(e)
}

// Notifier receives reaction events.
type Notifier interface {
	// ID returns a unique identifier for this notifier
	ID() string

	// Type returns the kind of notifier (e.g. "log", "recorder")
	Type() string

	// Notify delivers an event. Delivery is synchronous.
	Notify(ctx context.Context, event ReactionEvent) error

	// Close releases any resources held by the notifier
	Close() error
}

// NotificationManager fans reaction events out to registered notifiers.
// Delivery happens inline on the caller's goroutine, in notifier ID order.
type NotificationManager struct {
	mu        sync.RWMutex
	notifiers map[string]Notifier
	closed    bool
}

// NewNotificationManager creates an empty manager
func NewNotificationManager() *NotificationManager {
	return &NotificationManager{
		notifiers: make(map[string]Notifier),
	}
}

// RegisterNotifier registers a notifier with the manager
func (nm *NotificationManager) RegisterNotifier(notifier Notifier) error {
	if notifier == nil {
		return fmt.Errorf("notifier cannot be nil")
	}

	id := notifier.ID()
	if id == "" {
		return fmt.Errorf("notifier ID cannot be empty")
	}

	nm.mu.Lock()
	defer nm.mu.Unlock()

	if nm.closed {
		return fmt.Errorf("notification manager is closed")
	}
	if _, exists := nm.notifiers[id]; exists {
		return fmt.Errorf("notifier with ID %s already exists", id)
	}

	nm.notifiers[id] = notifier
	return nil
}

// UnregisterNotifier closes and removes a notifier
func (nm *NotificationManager) UnregisterNotifier(id string) error {
	nm.mu.Lock()
	notifier, exists := nm.notifiers[id]
	if exists {
		delete(nm.notifiers, id)
	}
	nm.mu.Unlock()

	if !exists {
		return fmt.Errorf("notifier with ID %s not found", id)
	}

	if err := notifier.Close(); err != nil {
		return fmt.Errorf("error closing notifier %s: %w", id, err)
	}
	return nil
}

// GetNotifier retrieves a notifier by ID
func (nm *NotificationManager) GetNotifier(id string) (Notifier, bool) {
	nm.mu.RLock()
	defer nm.mu.RUnlock()
	notifier, exists := nm.notifiers[id]
	return notifier, exists
}

// ListNotifiers returns the registered notifier IDs, sorted
func (nm *NotificationManager) ListNotifiers() []string {
	nm.mu.RLock()
	defer nm.mu.RUnlock()
	ids := make([]string, 0, len(nm.notifiers))
	for id := range nm.notifiers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Notify delivers the event to every registered notifier. All notifiers are
// attempted; failures are joined into the returned error.
func (nm *NotificationManager) Notify(ctx context.Context, event ReactionEvent) error {
	var errs []error
	for _, id := range nm.ListNotifiers() {
		notifier, ok := nm.GetNotifier(id)
		if !ok {
			continue
		}
		if err := notifier.Notify(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("notifier %s failed: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

// Close closes all registered notifiers. Further registrations fail.
func (nm *NotificationManager) Close() error {
	nm.mu.Lock()
	if nm.closed {
		nm.mu.Unlock()
		return nil
	}
	nm.closed = true
	notifiers := nm.notifiers
	nm.notifiers = make(map[string]Notifier)
	nm.mu.Unlock()

	var errs []error
	for id, notifier := range notifiers {
		if err := notifier.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing notifier %s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

// LogNotifier writes each event to a Logger at debug level.
type LogNotifier struct {
	id     string
	logger Logger
}

// NewLogNotifier creates a notifier that logs events
func NewLogNotifier(id string, logger Logger) *LogNotifier {
	if logger == nil {
		logger = NewNoOpLogger()
	}
	return &LogNotifier{id: id, logger: logger}
}

func (n *LogNotifier) ID() string   { return n.id }
func (n *LogNotifier) Type() string { return "log" }
func (n *LogNotifier) Close() error { return nil }

func (n *LogNotifier) Notify(ctx context.Context, event ReactionEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.logger.Debugf("reaction fired: tick=%d reaction=%q priority=%s temperature=%g pressure=%g",
		event.Tick, event.Name, event.Priority, event.Temperature, event.Pressure)
	return nil
}

// RecordingNotifier keeps every event it receives, in delivery order.
type RecordingNotifier struct {
	id     string
	mu     sync.Mutex
	events []ReactionEvent
}

// NewRecordingNotifier creates an empty recorder
func NewRecordingNotifier(id string) *RecordingNotifier {
	return &RecordingNotifier{id: id}
}

func (n *RecordingNotifier) ID() string   { return n.id }
func (n *RecordingNotifier) Type() string { return "recorder" }
func (n *RecordingNotifier) Close() error { return nil }

func (n *RecordingNotifier) Notify(ctx context.Context, event ReactionEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

// Events returns a copy of the recorded events
func (n *RecordingNotifier) Events() []ReactionEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]ReactionEvent, len(n.events))
	copy(out, n.events)
	return out
}
