package attendance

import (
	"time"

	"github.com/sensacion-hr/attendance-backend-go/internal/domain/device"
)

// Classification is the label the classifier derives for a raw punch.
type Classification string

const (
	ClassEntrance  Classification = "entrance"
	ClassExit      Classification = "exit"
	ClassDuplicate Classification = "duplicate"
)

// EventType is the stored type of a ledger event.
type EventType string

const (
	EventEntrance EventType = "entrance"
	EventExit     EventType = "exit"
)

// Source records where a ledger event came from.
type Source string

const (
	SourceDevice Source = "device"
	SourceManual Source = "manual"
)

// Event is one row of the attendance ledger. At most one event exists per
// (EmployeeID, PunchedAt).
type Event struct {
	ID         string
	EmployeeID string
	PunchedAt  time.Time
	Type       EventType
	Source     Source
	SyncedAt   time.Time
	CreatedAt  time.Time
}

// ClassifiedPunch is a raw punch tagged by the classifier.
type ClassifiedPunch struct {
	device.Punch
	Classification Classification
}

// EventType converts an accepted classification into the stored event type.
// ok is false for duplicates.
func (c Classification) EventType() (EventType, bool) {
	switch c {
	case ClassEntrance:
		return EventEntrance, true
	case ClassExit:
		return EventExit, true
	default:
		return "", false
	}
}

// MergeResult summarizes one merge of classified punches into the ledger.
type MergeResult struct {
	Inserted                 int `json:"inserted"`
	SkippedDuplicate         int `json:"skipped_duplicate"`
	SkippedUnmatchedEmployee int `json:"skipped_unmatched_employee"`
	SkippedInvalidTimestamp  int `json:"skipped_invalid_timestamp"`
	DuplicateScans           int `json:"duplicate_scans"`
}
