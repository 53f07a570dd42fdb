package audit

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Action types for audit events
type Action string

const (
	ActionCreate     Action = "create"
	ActionUpdate     Action = "update"
	ActionMove       Action = "move"
	ActionConnect    Action = "connect"
	ActionDisconnect Action = "disconnect"
	ActionDelete     Action = "delete"
	ActionRestore    Action = "restore"
	ActionExport     Action = "export"
)

// ResourceType represents the kind of entity an event refers to
type ResourceType string

const (
	ResourceNode    ResourceType = "node"
	ResourceEdge    ResourceType = "edge"
	ResourceVersion ResourceType = "version"
	ResourceState   ResourceType = "state"
)

// Status represents the outcome of an action
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Event is a single audit trail entry. The author string is supplied by the
// external session layer and recorded verbatim.
type Event struct {
	ID           string       `json:"id"`
	Timestamp    time.Time    `json:"timestamp"`
	Author       string       `json:"author"`
	Role         string       `json:"role,omitempty"`
	Action       Action       `json:"action"`
	ResourceType ResourceType `json:"resource_type"`
	ResourceID   string       `json:"resource_id,omitempty"`
	Status       Status       `json:"status"`
	Detail       string       `json:"detail,omitempty"` // violation text on failure
}

// Filter selects events; zero fields match everything.
type Filter struct {
	Author       string
	Action       Action
	ResourceType ResourceType
	Status       Status
	StartTime    *time.Time
	EndTime      *time.Time
}

// Trail records audit events in a fixed-size circular buffer.
type Trail struct {
	events     []*Event
	bufferSize int
	index      int
	count      int
	mu         sync.RWMutex
}

// NewTrail creates an audit trail with the given buffer size.
func NewTrail(bufferSize int) *Trail {
	if bufferSize <= 0 {
		bufferSize = 1024
	}
	return &Trail{
		events:     make([]*Event, bufferSize),
		bufferSize: bufferSize,
	}
}

// Record stores an event, assigning id and timestamp if unset.
func (t *Trail) Record(event *Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	t.events[t.index] = event
	t.index = (t.index + 1) % t.bufferSize
	if t.count < t.bufferSize {
		t.count++
	}
}

// Events retrieves stored events, oldest first, with optional filtering.
func (t *Trail) Events(filter *Filter) []*Event {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]*Event, 0, t.count)
	for i := 0; i < t.count; i++ {
		idx := (t.index - t.count + i + t.bufferSize) % t.bufferSize
		event := t.events[idx]
		if event == nil || !matches(event, filter) {
			continue
		}
		result = append(result, event)
	}
	return result
}

// Recent returns the n most recent events, newest first.
func (t *Trail) Recent(n int) []*Event {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if n > t.count {
		n = t.count
	}
	result := make([]*Event, 0, n)
	for i := 0; i < n; i++ {
		idx := (t.index - 1 - i + t.bufferSize) % t.bufferSize
		if t.events[idx] != nil {
			result = append(result, t.events[idx])
		}
	}
	return result
}

// Len returns the number of events currently stored.
func (t *Trail) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.count
}

func matches(event *Event, filter *Filter) bool {
	if filter == nil {
		return true
	}
	if filter.Author != "" && event.Author != filter.Author {
		return false
	}
	if filter.Action != "" && event.Action != filter.Action {
		return false
	}
	if filter.ResourceType != "" && event.ResourceType != filter.ResourceType {
		return false
	}
	if filter.Status != "" && event.Status != filter.Status {
		return false
	}
	if filter.StartTime != nil && event.Timestamp.Before(*filter.StartTime) {
		return false
	}
	if filter.EndTime != nil && event.Timestamp.After(*filter.EndTime) {
		return false
	}
	return true
}

// Success builds a successful event.
func Success(author, role string, action Action, resourceType ResourceType, resourceID string) *Event {
	return &Event{
		Author:       author,
		Role:         role,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Status:       StatusSuccess,
	}
}

// Failure builds a failed event carrying the failure detail.
func Failure(author, role string, action Action, resourceType ResourceType, resourceID, detail string) *Event {
	return &Event{
		Author:       author,
		Role:         role,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Status:       StatusFailure,
		Detail:       detail,
	}
}

// String returns a human-readable representation of an event
func (e *Event) String() string {
	return fmt.Sprintf("[%s] %s %s %s %s (status: %s)",
		e.Timestamp.Format(time.RFC3339),
		e.Author,
		e.Action,
		e.ResourceType,
		e.ResourceID,
		e.Status,
	)
}
