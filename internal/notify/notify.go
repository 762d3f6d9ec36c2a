// Package notify provides desktop notifications via D-Bus.
package notify

import (
	"sync"
	"time"
)

// Urgency represents notification priority levels per freedesktop spec.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

const appName = "notedeck"

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional, supports basic markup)
	Icon       string  // Path to image file or icon name (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are disabled or unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

// Disabled returns a notifier that drops everything.
func Disabled() Notifier {
	return &stubNotifier{}
}

// Reporter keeps a single notedeck notification on screen: each report
// replaces the previous one instead of stacking.
type Reporter struct {
	notifier Notifier
	timeout  int32

	mu   sync.Mutex
	last uint32
}

// NewReporter reports through n; notifications expire after timeout.
func NewReporter(n Notifier, timeout time.Duration) *Reporter {
	if n == nil {
		n = Disabled()
	}
	return &Reporter{notifier: n, timeout: int32(timeout / time.Millisecond)}
}

// Report shows body under title, replacing the last report.
func (r *Reporter) Report(title, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.notifier.Notify(Notification{
		Title:      title,
		Body:       body,
		Icon:       "accessories-text-editor",
		Timeout:    r.timeout,
		ReplacesID: r.last,
		Urgency:    UrgencyLow,
	})
	if err != nil {
		return err
	}
	r.last = id
	return nil
}

// Dismiss closes the last report, if any.
func (r *Reporter) Dismiss() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.last == 0 {
		return nil
	}
	id := r.last
	r.last = 0
	return r.notifier.Close(id)
}
