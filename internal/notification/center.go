// Package notification holds the per-session notification list and its read state.
package notification

import (
	"fmt"
	"sync"

	"iot-dashboard/internal/domain"
	"iot-dashboard/internal/query"
)

// Filter values accepted by List
const (
	FilterAll     = query.All
	FilterUnread  = "unread"
	FilterInfo    = string(domain.NotificationInfo)
	FilterWarning = string(domain.NotificationWarning)
	FilterError   = string(domain.NotificationError)
	FilterSuccess = string(domain.NotificationSuccess)
)

// Filters in display order
var Filters = []string{FilterAll, FilterUnread, FilterError, FilterWarning, FilterInfo, FilterSuccess}

const stateRead = "read"

var textFields = []func(domain.Notification) string{
	func(n domain.Notification) string { return n.Title },
	func(n domain.Notification) string { return n.Message },
}

var (
	byType = query.Spec[domain.Notification, string]{
		Fields:   textFields,
		Category: func(n domain.Notification) string { return string(n.Type) },
	}
	byState = query.Spec[domain.Notification, string]{
		Fields: textFields,
		Category: func(n domain.Notification) string {
			if n.IsRead {
				return stateRead
			}
			return FilterUnread
		},
	}
)

// Center owns an ordered notification list. Items never leave the list and IsRead only
// moves from false to true.
type Center struct {
	mu    sync.RWMutex
	items []domain.Notification
	index map[string]int
}

// NewCenter copies seed
func NewCenter(seed []domain.Notification) *Center {
	c := &Center{
		items: append([]domain.Notification(nil), seed...),
		index: make(map[string]int, len(seed)),
	}
	for i, n := range c.items {
		c.index[n.ID] = i
	}
	return c
}

// MarkAsRead flips id to read. Unknown ids and already-read items are ignored; changed
// reports whether anything moved.
func (c *Center) MarkAsRead(id string) (changed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[id]
	if !ok || c.items[i].IsRead {
		return false
	}
	c.items[i].IsRead = true
	return true
}

// MarkAllAsRead returns how many items changed
func (c *Center) MarkAllAsRead() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for i := range c.items {
		if !c.items[i].IsRead {
			c.items[i].IsRead = true
			n++
		}
	}
	return n
}

// UnreadCount counts on every call
func (c *Center) UnreadCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, it := range c.items {
		if !it.IsRead {
			n++
		}
	}
	return n
}

// Len total number of notifications
func (c *Center) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// List applies filter and text to a snapshot of the list
func (c *Center) List(filter, text string) ([]domain.Notification, error) {
	spec, cat, err := specFor(filter)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return query.Filter(c.items, text, cat, spec), nil
}

func specFor(filter string) (query.Spec[domain.Notification, string], query.Category[string], error) {
	switch filter {
	case "", FilterAll:
		return byType, query.AnyCategory[string](), nil
	case FilterUnread:
		return byState, query.Only(FilterUnread), nil
	}
	t, err := domain.ParseNotificationType(filter)
	if err != nil {
		return byType, query.Category[string]{}, fmt.Errorf("invalid notification filter %q", filter)
	}
	return byType, query.Only(string(t)), nil
}
