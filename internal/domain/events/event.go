package events

import "time"

// Status is the lifecycle state of an event. New events always start in
// StatusDraft; later transitions are time-driven and happen outside this
// service.
type Status string

const (
	StatusDraft            Status = "DRAFT"
	StatusPublished        Status = "PUBLISHED"
	StatusBeganEnrollment  Status = "BEGAN_ENROLLMENT"
	StatusClosedEnrollment Status = "CLOSED_ENROLLMENT"
	StatusStarted          Status = "STARTED"
	StatusEnded            Status = "ENDED"
)

// Identity references the account behind a request. The zero value is an
// anonymous requester. Beyond equality against an event's manager the value
// is opaque to this package.
type Identity string

const Anonymous Identity = ""

func (i Identity) IsAnonymous() bool { return i == Anonymous }

// Event is the persisted shape of an event.
//
// Free and Offline are derived from the pricing and location fields on every
// write path and are never accepted from a client. Manager is set once at
// creation from the authenticated requester and is immutable afterwards.
type Event struct {
	ID          string
	Name        string
	Description string
	Location    string

	BeginEnrollment time.Time
	CloseEnrollment time.Time
	BeginEvent      time.Time
	EndEvent        time.Time

	BasePrice         int
	MaxPrice          int
	LimitOfEnrollment int

	Free    bool
	Offline bool

	Status  Status
	Manager Identity

	CreatedAt time.Time
	UpdatedAt time.Time
}
