package warehouse

import "fmt"

type ApplyEventType int

const (
	RoleCreated ApplyEventType = iota
	RoleDeleted
	NetworkRuleCreated
	NetworkRuleDeleted
	ClusterRequested
	ClusterDeletionRequested
	ConfigurationUpdated
)

func (t ApplyEventType) ToString() string {
	switch t {
	case RoleCreated:
		return "RoleCreated"
	case RoleDeleted:
		return "RoleDeleted"
	case NetworkRuleCreated:
		return "NetworkRuleCreated"
	case NetworkRuleDeleted:
		return "NetworkRuleDeleted"
	case ClusterRequested:
		return "ClusterRequested"
	case ClusterDeletionRequested:
		return "ClusterDeletionRequested"
	case ConfigurationUpdated:
		return "ConfigurationUpdated"
	default:
		return fmt.Sprintf("%d", int(t))
	}
}

type ApplyEventLister interface {
	Handle(eventType ApplyEventType, name string)
}

type EventRecorder struct {
	events []ApplyEventType
}

func (e *EventRecorder) Handle(eventType ApplyEventType, name string) {
	e.events = append(e.events, eventType)
}

func (e *EventRecorder) Events() []ApplyEventType {
	return e.events
}

func (e *EventRecorder) Count(eventType ApplyEventType) int {
	result := 0
	for _, event := range e.events {
		if event == eventType {
			result += 1
		}
	}
	return result
}

func (e *EventRecorder) Reset() {
	e.events = []ApplyEventType{}
}

func (e *EventRecorder) CountAll() int {
	return len(e.events)
}

func (e *EventRecorder) HasHappened(eventTypes ...ApplyEventType) bool {
	for _, eventType := range eventTypes {
		if e.Count(eventType) == 0 {
			return false
		}
	}
	return true
}
