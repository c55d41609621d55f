package facade

import (
	"fmt"

	"github.com/yourorg/hr-field-resolver/internal/validate"
)

// InvalidStateError is raised when Transform is called against a table
// that hasn't passed validation, per §4.7's precondition.
type InvalidStateError struct {
	Reason string
	Issues []validate.Issue
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("facade: %s (%d issue(s))", e.Reason, len(e.Issues))
}
