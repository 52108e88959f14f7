package events

import (
	"strings"

	"github.com/eventbook/server/internal/sanitize"
)

// NormalizeSubmission trims and sanitizes the text fields of a submission so
// validation and derivation see the same values that will be stored. Name and
// location are reduced to plain text; the description keeps safe formatting
// tags.
func NormalizeSubmission(sub Submission) Submission {
	sub.Name = strings.TrimSpace(sanitize.Text(sub.Name))
	sub.Description = strings.TrimSpace(sanitize.HTML(sub.Description))
	sub.Location = strings.TrimSpace(sanitize.Text(sub.Location))
	return sub
}
