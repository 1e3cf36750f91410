package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventGoalAddRequested    EventType = "GoalAddRequested"
	EventGoalRemoveRequested EventType = "GoalRemoveRequested"
	EventGoalMoveRequested   EventType = "GoalMoveRequested"
	EventGoalsChanged        EventType = "GoalsChanged"
	EventError               EventType = "Error"
	EventConfigLoaded        EventType = "ConfigLoaded"
	EventConfigSaved         EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// GoalAddRequestedEvent asks for a new goal at the end of the list
type GoalAddRequestedEvent struct {
	Task string
}

func (e GoalAddRequestedEvent) Type() EventType { return EventGoalAddRequested }

// GoalRemoveRequestedEvent asks for a goal to be deleted
type GoalRemoveRequestedEvent struct {
	ID string
}

func (e GoalRemoveRequestedEvent) Type() EventType { return EventGoalRemoveRequested }

// GoalMoveRequestedEvent asks for goal ID to be placed in front of
// InFrontOfID. An empty InFrontOfID moves it to the end.
type GoalMoveRequestedEvent struct {
	ID          string
	InFrontOfID string
}

func (e GoalMoveRequestedEvent) Type() EventType { return EventGoalMoveRequested }

// GoalsChangedEvent carries the full goal list after a change
type GoalsChangedEvent struct {
	Goals []Goal
}

func (e GoalsChangedEvent) Type() EventType { return EventGoalsChanged }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
