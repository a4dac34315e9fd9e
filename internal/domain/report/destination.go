package report

import (
	"fmt"
	"time"
)

// DestinationID derives the content-addressed identifier a rendered report
// is stored under at the asset host. Combining the run id with the render
// time guarantees repeated approvals of the same run never collide, so a
// retried upload cannot overwrite a previously published report.
func DestinationID(runID int64, generatedAt time.Time) string {
	return fmt.Sprintf("audit-report-%d-%d", runID, generatedAt.UnixMilli())
}
