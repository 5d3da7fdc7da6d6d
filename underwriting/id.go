package underwriting

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewDecisionID generates a time-ordered decision identifier. The millisecond
// timestamp keeps identifiers sortable by completion time; the random suffix
// keeps them unique when evaluations finalize within the same millisecond.
func NewDecisionID() string {
	now := time.Now().UTC()
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("DEC-%s%03d-%s", now.Format("20060102150405"), now.Nanosecond()/1e6, suffix)
}
