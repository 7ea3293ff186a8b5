package queue

type EventType string

const (
	EventUserRegistered      EventType = "user.registered"
	EventOrganizationCreated EventType = "organization.created"
)

func (t EventType) IsValid() bool {
	switch t {
	case EventUserRegistered, EventOrganizationCreated:
		return true
	}
	return false
}

// Event is a domain event carried on the events stream.
type Event struct {
	Type           EventType
	UserID         int64
	OrganizationID *int64
	Email          string
	Username       string
	Name           string
	TraceID        string
	Attempt        int
}
