package events

import (
	"fmt"
	"time"
)

// Profile documentation fragments, one per operation. The profile link is
// always present and does not depend on the requester.
const (
	ProfileCreate = "/docs/index.html#resources-events-create"
	ProfileGet    = "/docs/index.html#resources-events-get"
	ProfileList   = "/docs/index.html#resources-events-list"
	ProfileUpdate = "/docs/index.html#resources-events-update"
)

type Link struct {
	Href string `json:"href"`
}

type Links map[string]Link

// Representation is the outward shape of an event: its fields plus the links
// the current requester may follow. Link presence is recomputed per request;
// representations are never cached across identities.
type Representation struct {
	ID                      string    `json:"id"`
	Name                    string    `json:"name"`
	Description             string    `json:"description"`
	Location                string    `json:"location,omitempty"`
	BeginEnrollmentDateTime time.Time `json:"beginEnrollmentDateTime"`
	CloseEnrollmentDateTime time.Time `json:"closeEnrollmentDateTime"`
	BeginEventDateTime      time.Time `json:"beginEventDateTime"`
	EndEventDateTime        time.Time `json:"endEventDateTime"`
	BasePrice               int       `json:"basePrice"`
	MaxPrice                int       `json:"maxPrice"`
	LimitOfEnrollment       int       `json:"limitOfEnrollment"`
	Free                    bool      `json:"free"`
	Offline                 bool      `json:"offline"`
	EventStatus             Status    `json:"eventStatus"`
	Manager                 string    `json:"manager,omitempty"`
	Links                   Links     `json:"_links"`
}

// PageMetadata mirrors the envelope the original API used for paged results.
type PageMetadata struct {
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
}

type PageRepresentation struct {
	Events []Representation `json:"events"`
	Page   PageMetadata     `json:"page"`
	Links  Links            `json:"_links"`
}

// Assembler builds representations from an event and an already-computed
// permitted action set. It performs no authorization decisions of its own.
type Assembler struct {
	BaseURL string
}

func (a Assembler) eventsURL() string {
	return a.BaseURL + "/api/events"
}

func (a Assembler) eventURL(id string) string {
	return fmt.Sprintf("%s/api/events/%s", a.BaseURL, id)
}

// Assemble builds the representation of a single event. The self and profile
// links are unconditional; the rest follow the permitted action set.
func (a Assembler) Assemble(event *Event, actions ActionSet, profile string) Representation {
	links := Links{
		"self":    {Href: a.eventURL(event.ID)},
		"profile": {Href: a.BaseURL + profile},
	}
	if actions.Has(ActionList) {
		links["query-events"] = Link{Href: a.eventsURL()}
	}
	if actions.Has(ActionCreate) {
		links["create-event"] = Link{Href: a.eventsURL()}
	}
	if actions.Has(ActionUpdate) {
		links["update-event"] = Link{Href: a.eventURL(event.ID)}
	}
	return Representation{
		ID:                      event.ID,
		Name:                    event.Name,
		Description:             event.Description,
		Location:                event.Location,
		BeginEnrollmentDateTime: event.BeginEnrollment,
		CloseEnrollmentDateTime: event.CloseEnrollment,
		BeginEventDateTime:      event.BeginEvent,
		EndEventDateTime:        event.EndEvent,
		BasePrice:               event.BasePrice,
		MaxPrice:                event.MaxPrice,
		LimitOfEnrollment:       event.LimitOfEnrollment,
		Free:                    event.Free,
		Offline:                 event.Offline,
		EventStatus:             event.Status,
		Manager:                 string(event.Manager),
		Links:                   links,
	}
}

// AssemblePage builds the page-level representation for a list result. Each
// item carries its own links computed for the same requester; the page itself
// links navigation plus create-event when the requester may create.
func (a Assembler) AssemblePage(result ListResult, page Page, requester Identity) PageRepresentation {
	items := make([]Representation, 0, len(result.Events))
	for _, event := range result.Events {
		items = append(items, a.Assemble(event, PermittedActions(event, requester), ProfileGet))
	}

	totalPages := 0
	if page.Size > 0 {
		totalPages = int((result.Total + int64(page.Size) - 1) / int64(page.Size))
	}

	links := Links{
		"self":    {Href: a.pageURL(page.Number, page.Size)},
		"profile": {Href: a.BaseURL + ProfileList},
	}
	if totalPages > 0 {
		links["first"] = Link{Href: a.pageURL(0, page.Size)}
		links["last"] = Link{Href: a.pageURL(totalPages-1, page.Size)}
	}
	if page.Number > 0 {
		links["prev"] = Link{Href: a.pageURL(page.Number-1, page.Size)}
	}
	if page.Number < totalPages-1 {
		links["next"] = Link{Href: a.pageURL(page.Number+1, page.Size)}
	}
	if PermittedActions(nil, requester).Has(ActionCreate) {
		links["create-event"] = Link{Href: a.eventsURL()}
	}

	return PageRepresentation{
		Events: items,
		Page: PageMetadata{
			Size:          page.Size,
			TotalElements: result.Total,
			TotalPages:    totalPages,
			Number:        page.Number,
		},
		Links: links,
	}
}

func (a Assembler) pageURL(number, size int) string {
	return fmt.Sprintf("%s/api/events?page=%d&size=%d", a.BaseURL, number, size)
}
