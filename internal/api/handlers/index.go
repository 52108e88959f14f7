package handlers

import (
	"net/http"

	"github.com/eventbook/server/internal/domain/events"
)

type indexRepresentation struct {
	Links events.Links `json:"_links"`
}

// Index is the API entry point. Clients discover the event collection
// from here instead of hard-coding its URL.
func Index(baseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, indexRepresentation{
			Links: events.Links{
				"events": {Href: baseURL + "/api/events"},
			},
		})
	}
}
