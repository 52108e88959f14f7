package events

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	byID    map[string]*Event
	order   []string
	nextSeq int

	saveErr error
	listErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byID: map[string]*Event{}}
}

func (r *fakeRepository) Save(_ context.Context, event *Event) (*Event, error) {
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	r.nextSeq++
	stored := *event
	stored.ID = fmt.Sprintf("01HQZX3Y4K6F7G8H9J0K1M2N%02d", r.nextSeq)
	r.byID[stored.ID] = &stored
	r.order = append(r.order, stored.ID)
	copied := stored
	return &copied, nil
}

func (r *fakeRepository) Update(_ context.Context, event *Event) (*Event, error) {
	if _, ok := r.byID[event.ID]; !ok {
		return nil, ErrNotFound
	}
	stored := *event
	r.byID[event.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeRepository) GetByID(_ context.Context, id string) (*Event, error) {
	event, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *event
	return &copied, nil
}

func (r *fakeRepository) List(_ context.Context, page Page) (ListResult, error) {
	if r.listErr != nil {
		return ListResult{}, r.listErr
	}
	result := ListResult{Total: int64(len(r.order))}
	start := page.Offset()
	for i := start; i < len(r.order) && i < start+page.Size; i++ {
		copied := *r.byID[r.order[i]]
		result.Events = append(result.Events, &copied)
	}
	return result, nil
}

func newTestService() (*Service, *fakeRepository) {
	repo := newFakeRepository()
	return NewService(repo, testBaseURL), repo
}

func TestServiceCreate(t *testing.T) {
	service, _ := newTestService()

	rep, err := service.Create(context.Background(), "user-a", validSubmission())

	require.NoError(t, err)
	require.NotEmpty(t, rep.ID)
	require.Equal(t, StatusDraft, rep.EventStatus)
	require.False(t, rep.Free)
	require.True(t, rep.Offline)
	require.Equal(t, "user-a", rep.Manager)
	require.Contains(t, rep.Links, "self")
	require.Contains(t, rep.Links, "query-events")
	require.Contains(t, rep.Links, "update-event")
	require.Contains(t, rep.Links, "profile")
}

func TestServiceCreateAnonymous(t *testing.T) {
	service, repo := newTestService()

	_, err := service.Create(context.Background(), Anonymous, validSubmission())

	require.ErrorIs(t, err, ErrAuthenticationRequired)
	require.Empty(t, repo.byID)
}

func TestServiceCreateInvalidSubmission(t *testing.T) {
	service, repo := newTestService()
	sub := validSubmission()
	sub.BasePrice = 10000
	sub.MaxPrice = 200

	_, err := service.Create(context.Background(), "user-a", sub)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Failures, 1)
	require.Equal(t, CodeWrongPrices, validationErr.Failures[0].Code)
	require.Empty(t, repo.byID, "invalid submissions are never persisted")
}

func TestServiceCreateDerivesFlagsIgnoringClientValues(t *testing.T) {
	service, _ := newTestService()
	sub := validSubmission()
	sub.BasePrice = 0
	sub.MaxPrice = 0
	sub.Location = ""

	rep, err := service.Create(context.Background(), "user-a", sub)

	require.NoError(t, err)
	require.True(t, rep.Free)
	require.False(t, rep.Offline)
}

func TestServiceGetAnonymousSeesNoUpdateLink(t *testing.T) {
	service, _ := newTestService()
	created, err := service.Create(context.Background(), "user-a", validSubmission())
	require.NoError(t, err)

	rep, err := service.Get(context.Background(), Anonymous, created.ID)

	require.NoError(t, err)
	require.Contains(t, rep.Links, "self")
	require.Contains(t, rep.Links, "query-events")
	require.Contains(t, rep.Links, "profile")
	require.NotContains(t, rep.Links, "update-event")
}

func TestServiceGetNotFound(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Get(context.Background(), Anonymous, "01HQZX3Y4K6F7G8H9J0K1M2N3P")

	require.ErrorIs(t, err, ErrNotFound)
}

func TestServiceListPageLinks(t *testing.T) {
	service, _ := newTestService()
	for i := 0; i < 3; i++ {
		_, err := service.Create(context.Background(), "user-a", validSubmission())
		require.NoError(t, err)
	}

	rep, err := service.List(context.Background(), "user-a", Page{Number: 0, Size: 2})

	require.NoError(t, err)
	require.Len(t, rep.Events, 2)
	require.Equal(t, int64(3), rep.Page.TotalElements)
	require.Equal(t, 2, rep.Page.TotalPages)
	require.Contains(t, rep.Links, "create-event")

	anonymous, err := service.List(context.Background(), Anonymous, Page{Number: 0, Size: 2})
	require.NoError(t, err)
	require.NotContains(t, anonymous.Links, "create-event")
}

func TestServiceUpdate(t *testing.T) {
	service, _ := newTestService()
	created, err := service.Create(context.Background(), "user-a", validSubmission())
	require.NoError(t, err)

	sub := validSubmission()
	sub.Name = "Spring, revised"
	sub.BasePrice = 0
	sub.MaxPrice = 0
	sub.Location = ""

	rep, err := service.Update(context.Background(), "user-a", created.ID, sub)

	require.NoError(t, err)
	require.Equal(t, created.ID, rep.ID)
	require.Equal(t, "Spring, revised", rep.Name)
	require.True(t, rep.Free, "flags are re-derived on update")
	require.False(t, rep.Offline)
	require.Equal(t, "user-a", rep.Manager, "manager survives updates")
	require.Contains(t, rep.Links, "update-event")
}

func TestServiceUpdateByNonOwner(t *testing.T) {
	service, repo := newTestService()
	created, err := service.Create(context.Background(), "user-a", validSubmission())
	require.NoError(t, err)

	sub := validSubmission()
	sub.Name = "hijacked"

	_, err = service.Update(context.Background(), "user-b", created.ID, sub)

	require.ErrorIs(t, err, ErrNotManager)
	require.Equal(t, "Spring", repo.byID[created.ID].Name, "stored record unchanged")
}

func TestServiceUpdateValidationRunsBeforeOwnershipCheck(t *testing.T) {
	service, _ := newTestService()
	created, err := service.Create(context.Background(), "user-a", validSubmission())
	require.NoError(t, err)

	_, err = service.Update(context.Background(), "user-b", created.ID, Submission{})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr, "submission problems are reported before ownership")
}

func TestServiceUpdateNonexistentID(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Update(context.Background(), "user-a", "01HQZX3Y4K6F7G8H9J0K1M2N3P", validSubmission())

	require.ErrorIs(t, err, ErrNotFound)
}

func TestServiceUpdateAnonymous(t *testing.T) {
	service, _ := newTestService()
	created, err := service.Create(context.Background(), "user-a", validSubmission())
	require.NoError(t, err)

	_, err = service.Update(context.Background(), Anonymous, created.ID, validSubmission())

	require.ErrorIs(t, err, ErrNotManager)
}
