package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventCatalogueRequested EventType = "CatalogueRequested"
	EventCatalogueLoaded    EventType = "CatalogueLoaded"
	EventLogInRequested     EventType = "LogInRequested"
	EventLogInCompleted     EventType = "LogInCompleted"
	EventSubmitRequested    EventType = "SubmitRequested"
	EventSubmitCompleted    EventType = "SubmitCompleted"
	EventError              EventType = "Error"
	EventConfigLoaded       EventType = "ConfigLoaded"
	EventConfigSaved        EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// CatalogueRequestedEvent asks the catalogue service to fetch a source's
// problem set.
type CatalogueRequestedEvent struct {
	Source string
}

func (e CatalogueRequestedEvent) Type() EventType { return EventCatalogueRequested }

// CatalogueLoadedEvent is emitted when a source's catalogue has been fetched.
type CatalogueLoadedEvent struct {
	Catalogue Catalogue
}

func (e CatalogueLoadedEvent) Type() EventType { return EventCatalogueLoaded }

// LogInRequestedEvent asks the catalogue service to authenticate a source.
type LogInRequestedEvent struct {
	Source string
}

func (e LogInRequestedEvent) Type() EventType { return EventLogInRequested }

// LogInCompletedEvent reports the outcome of an authentication attempt.
type LogInCompletedEvent struct {
	Source string
	Err    error
}

func (e LogInCompletedEvent) Type() EventType { return EventLogInCompleted }

// SubmitRequestedEvent asks the catalogue service to submit a solution file.
type SubmitRequestedEvent struct {
	Source       string
	Problem      Problem
	SolutionPath string
}

func (e SubmitRequestedEvent) Type() EventType { return EventSubmitRequested }

// SubmitCompletedEvent reports the outcome of a submission.
type SubmitCompletedEvent struct {
	Source  string
	Problem Problem
	Err     error
}

func (e SubmitCompletedEvent) Type() EventType { return EventSubmitCompleted }

// ErrorEvent is emitted when a background operation fails.
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded.
type ConfigLoadedEvent struct {
	BaseDir string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved.
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
