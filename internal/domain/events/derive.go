package events

import "strings"

// Derived holds the two flags computed from a submission. Both are a pure
// function of the other fields; the previous persisted values are never
// carried forward.
type Derived struct {
	Free    bool
	Offline bool
}

// Derive classifies a submission. An event is free when neither a base nor a
// maximum price is set, and offline when it names a physical location.
func Derive(sub Submission) Derived {
	return Derived{
		Free:    sub.BasePrice == 0 && sub.MaxPrice == 0,
		Offline: strings.TrimSpace(sub.Location) != "",
	}
}
