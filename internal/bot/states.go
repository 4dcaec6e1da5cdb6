package bot

import (
	"time"

	"github.com/gratefultolord/daily_report_bot/internal/db"
)

// State is the closed set of conversational states. A session is always in
// exactly one of them; StateIdle means no flow is in progress.
type State string

const (
	StateIdle State = "idle"

	// registration
	StateAwaitingCode State = "awaiting_code"

	// report submission
	StateAwaitingPhotoOrText State = "awaiting_photo_or_text"
	StateAwaitingText        State = "awaiting_text"

	// admin review queue
	StateReviewing              State = "reviewing"
	StateAwaitingRevisionReason State = "awaiting_revision_reason"

	// task assignment
	StateChoosingTaskType State = "choosing_task_type"
	StateEnteringTaskText State = "entering_task_text"
	StateChoosingAssignee State = "choosing_assignee"
)

// Session holds one user's conversational state plus the scratch data of the
// flow in progress. It lives from the first stateful interaction until the
// flow completes, is cancelled, or the idle sweep removes it.
type Session struct {
	State State

	// report submission scratch
	PhotoFileID string

	// registration scratch
	CodeAttempts int
	LockedUntil  time.Time

	// review queue scratch: snapshot of pending report ids and the cursor
	Queue           []int64
	Cursor          int
	CurrentReportID int64

	// task assignment scratch
	TaskCategory db.TaskCategory
	TaskText     string
	Assignees    map[string]int64

	UpdatedAt time.Time
}
