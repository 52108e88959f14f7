package events

import "context"

// Page is an offset paging request. Number is zero-based.
type Page struct {
	Number int
	Size   int
}

func (p Page) Offset() int {
	return p.Number * p.Size
}

type ListResult struct {
	Events []*Event
	Total  int64
}

// Repository is the only storage surface this package depends on. Save must
// return a fully populated record with the store-assigned id; Update persists
// an existing record in place. Consistency under concurrent writes is the
// store's concern (last write wins is acceptable).
type Repository interface {
	Save(ctx context.Context, event *Event) (*Event, error)
	Update(ctx context.Context, event *Event) (*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, page Page) (ListResult, error)
}
