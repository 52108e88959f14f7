package pagination

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/eventbook/server/internal/domain/events"
)

const (
	DefaultSize = 20
	MaxSize     = 100
)

type ParamError struct {
	Param   string
	Message string
}

func (e ParamError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Message)
}

// ParsePage reads page and size query parameters. Page numbers are
// zero-based; size is clamped by validation rather than silently.
func ParsePage(values url.Values) (events.Page, error) {
	page := events.Page{Number: 0, Size: DefaultSize}

	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return page, ParamError{Param: "page", Message: "must be a number"}
		}
		if parsed < 0 {
			return page, ParamError{Param: "page", Message: "must not be negative"}
		}
		page.Number = parsed
	}

	if raw := strings.TrimSpace(values.Get("size")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return page, ParamError{Param: "size", Message: "must be a number"}
		}
		if parsed < 1 || parsed > MaxSize {
			return page, ParamError{Param: "size", Message: fmt.Sprintf("must be between 1 and %d", MaxSize)}
		}
		page.Size = parsed
	}

	return page, nil
}
