package diag

import (
	"talfront/internal/source"
)

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Line     int
	Column   int
}

// Error renders the diagnostic in the compact form used by logs.
func (d Diagnostic) Error() string {
	return d.Code.ID() + " " + d.Severity.String() + " " + d.Message
}
