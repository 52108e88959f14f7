package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/eventbook/server/internal/api/middleware"
	"github.com/eventbook/server/internal/domain/events"
)

const testBaseURL = "http://localhost:8080"

// fakeEventRepo is an in-memory events.Repository for handler tests.
type fakeEventRepo struct {
	byID    map[string]*events.Event
	order   []string
	nextSeq int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: map[string]*events.Event{}}
}

func (r *fakeEventRepo) Save(_ context.Context, event *events.Event) (*events.Event, error) {
	r.nextSeq++
	stored := *event
	stored.ID = fmt.Sprintf("01HQZX3Y4K6F7G8H9J0K1M2N%02d", r.nextSeq)
	r.byID[stored.ID] = &stored
	r.order = append(r.order, stored.ID)
	copied := stored
	return &copied, nil
}

func (r *fakeEventRepo) Update(_ context.Context, event *events.Event) (*events.Event, error) {
	if _, ok := r.byID[event.ID]; !ok {
		return nil, events.ErrNotFound
	}
	stored := *event
	r.byID[event.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id string) (*events.Event, error) {
	event, ok := r.byID[id]
	if !ok {
		return nil, events.ErrNotFound
	}
	copied := *event
	return &copied, nil
}

func (r *fakeEventRepo) List(_ context.Context, page events.Page) (events.ListResult, error) {
	result := events.ListResult{Total: int64(len(r.order))}
	start := page.Offset()
	for i := start; i < len(r.order) && i < start+page.Size; i++ {
		copied := *r.byID[r.order[i]]
		result.Events = append(result.Events, &copied)
	}
	return result, nil
}

func newEventsHandler() (*EventsHandler, *fakeEventRepo) {
	repo := newFakeEventRepo()
	service := events.NewService(repo, testBaseURL)
	return NewEventsHandler(service, "test"), repo
}

func validSubmissionBody(t *testing.T) []byte {
	t.Helper()
	base := time.Date(2026, 8, 1, 14, 0, 0, 0, time.UTC)
	sub := events.Submission{
		Name:              "Spring REST study",
		Description:       "Hypermedia API workshop",
		Location:          "Gangnam station D2 startup factory",
		BeginEnrollment:   timePtr(base),
		CloseEnrollment:   timePtr(base.AddDate(0, 0, 1)),
		BeginEvent:        timePtr(base.AddDate(0, 0, 7)),
		EndEvent:          timePtr(base.AddDate(0, 0, 8)),
		BasePrice:         100,
		MaxPrice:          200,
		LimitOfEnrollment: 100,
	}
	body, err := json.Marshal(sub)
	require.NoError(t, err)
	return body
}

func timePtr(v time.Time) *time.Time {
	return &v
}

func authenticated(r *http.Request, identity events.Identity) *http.Request {
	return r.WithContext(middleware.ContextWithIdentity(r.Context(), identity))
}

func TestEventsHandler_Create(t *testing.T) {
	handler, _ := newEventsHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader(validSubmissionBody(t)))
	req = authenticated(req, "manager@example.com")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/hal+json", rec.Header().Get("Content-Type"))

	var rep events.Representation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	require.NotEmpty(t, rep.ID)
	require.Equal(t, "Spring REST study", rep.Name)
	require.False(t, rep.Free)
	require.True(t, rep.Offline)
	require.Equal(t, testBaseURL+"/api/events/"+rep.ID, rep.Links["self"].Href)
	require.Contains(t, rep.Links, "update-event")
	require.Equal(t, rep.Links["self"].Href, rec.Header().Get("Location"))
}

func TestEventsHandler_Create_Anonymous(t *testing.T) {
	handler, repo := newEventsHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader(validSubmissionBody(t)))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	require.Empty(t, repo.byID)
}

func TestEventsHandler_Create_ValidationFailures(t *testing.T) {
	handler, repo := newEventsHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader([]byte(`{}`)))
	req = authenticated(req, "manager@example.com")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var body struct {
		Status int `json:"status"`
		Errors []struct {
			Field string `json:"field"`
			Code  string `json:"code"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, http.StatusBadRequest, body.Status)
	require.NotEmpty(t, body.Errors)
	require.Empty(t, repo.byID)
}

func TestEventsHandler_Create_MalformedJSON(t *testing.T) {
	handler, _ := newEventsHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader([]byte(`{not json`)))
	req = authenticated(req, "manager@example.com")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEventsHandler_Get(t *testing.T) {
	handler, _ := newEventsHandler()

	created := createEvent(t, handler, "manager@example.com")

	req := httptest.NewRequest(http.MethodGet, "/api/events/"+created.ID, nil)
	req.SetPathValue("id", created.ID)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var rep events.Representation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	require.Equal(t, created.ID, rep.ID)
	// Anonymous readers never see the update link
	require.NotContains(t, rep.Links, "update-event")
}

func TestEventsHandler_Get_NotFound(t *testing.T) {
	handler, _ := newEventsHandler()

	id := "01HQZX3Y4K6F7G8H9J0K1M2N99"
	req := httptest.NewRequest(http.MethodGet, "/api/events/"+id, nil)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestEventsHandler_Get_InvalidID(t *testing.T) {
	handler, _ := newEventsHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/events/not-a-ulid", nil)
	req.SetPathValue("id", "not-a-ulid")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEventsHandler_List(t *testing.T) {
	handler, _ := newEventsHandler()

	for range 3 {
		createEvent(t, handler, "manager@example.com")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/events?page=0&size=2", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var page events.PageRepresentation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Events, 2)
	require.Equal(t, int64(3), page.Page.TotalElements)
	require.Equal(t, 2, page.Page.TotalPages)
	require.Contains(t, page.Links, "next")
	// Anonymous listings carry no create link
	require.NotContains(t, page.Links, "create-event")
}

func TestEventsHandler_List_InvalidPageParams(t *testing.T) {
	handler, _ := newEventsHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/events?page=-1", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEventsHandler_Update(t *testing.T) {
	handler, _ := newEventsHandler()

	created := createEvent(t, handler, "manager@example.com")

	body := validSubmissionBody(t)
	var sub events.Submission
	require.NoError(t, json.Unmarshal(body, &sub))
	sub.Name = "Renamed study"
	body, err := json.Marshal(sub)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/events/"+created.ID, bytes.NewReader(body))
	req.SetPathValue("id", created.ID)
	req = authenticated(req, "manager@example.com")
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var rep events.Representation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	require.Equal(t, "Renamed study", rep.Name)
	require.Equal(t, created.ID, rep.ID)
}

func TestEventsHandler_Update_NotManager(t *testing.T) {
	handler, _ := newEventsHandler()

	created := createEvent(t, handler, "manager@example.com")

	req := httptest.NewRequest(http.MethodPut, "/api/events/"+created.ID, bytes.NewReader(validSubmissionBody(t)))
	req.SetPathValue("id", created.ID)
	req = authenticated(req, "intruder@example.com")
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func createEvent(t *testing.T, handler *EventsHandler, identity events.Identity) events.Representation {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader(validSubmissionBody(t)))
	req = authenticated(req, identity)
	rec := httptest.NewRecorder()

	handler.Create(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var rep events.Representation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	return rep
}
