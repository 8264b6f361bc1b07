package attendance

import (
	"sort"
	"time"

	"github.com/sensacion-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/device"
)

const (
	// DefaultDebounceWindow absorbs accidental double scans on the terminal
	DefaultDebounceWindow = 30 * time.Second

	DefaultFirstLabel       = attendance.ClassEntrance
	DefaultUnparseableLabel = attendance.ClassEntrance
)

// ClassifierPolicy tunes how raw punches are labelled.
type ClassifierPolicy struct {
	// Punches closer than this to the last accepted punch of the same
	// employee and day are duplicates. Zero disables debouncing.
	DebounceWindow time.Duration

	// Label of the first accepted punch of each day
	FirstLabel attendance.Classification

	// Label given to punches without a usable timestamp
	UnparseableLabel attendance.Classification
}

func DefaultClassifierPolicy() ClassifierPolicy {
	return ClassifierPolicy{
		DebounceWindow:   DefaultDebounceWindow,
		FirstLabel:       DefaultFirstLabel,
		UnparseableLabel: DefaultUnparseableLabel,
	}
}

// Classifier derives entrance/exit/duplicate labels for punches. The
// terminal's status code is ignored.
type Classifier struct {
	policy ClassifierPolicy
}

func NewClassifier(policy ClassifierPolicy) *Classifier {
	if policy.FirstLabel != attendance.ClassExit {
		policy.FirstLabel = attendance.ClassEntrance
	}
	if policy.UnparseableLabel != attendance.ClassExit {
		policy.UnparseableLabel = attendance.ClassEntrance
	}
	if policy.DebounceWindow < 0 {
		policy.DebounceWindow = 0
	}
	return &Classifier{policy: policy}
}

func (c *Classifier) Policy() ClassifierPolicy {
	return c.policy
}

type dayKey struct {
	terminalID int
	year       int
	month      time.Month
	day        int
}

// Classify labels every punch. The result has the same length and order as
// punches; the input slice is not modified.
//
// Punches are grouped by terminal id and calendar day, ordered by timestamp
// (ties keep arrival order), debounced against the last accepted punch, and
// accepted punches alternate starting with FirstLabel.
func (c *Classifier) Classify(punches []device.Punch) []attendance.ClassifiedPunch {
	out := make([]attendance.ClassifiedPunch, len(punches))

	groups := make(map[dayKey][]int)
	var keys []dayKey
	for i, p := range punches {
		out[i] = attendance.ClassifiedPunch{Punch: p}
		if p.Timestamp == nil {
			out[i].Classification = c.policy.UnparseableLabel
			continue
		}
		ts := *p.Timestamp
		key := dayKey{terminalID: p.TerminalID, year: ts.Year(), month: ts.Month(), day: ts.Day()}
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], i)
	}

	for _, key := range keys {
		idx := groups[key]
		sort.SliceStable(idx, func(a, b int) bool {
			return punches[idx[a]].Timestamp.Before(*punches[idx[b]].Timestamp)
		})

		var lastAccepted time.Time
		accepted := 0
		for _, i := range idx {
			ts := *punches[i].Timestamp
			if accepted > 0 && ts.Sub(lastAccepted) < c.policy.DebounceWindow {
				out[i].Classification = attendance.ClassDuplicate
				continue
			}
			out[i].Classification = c.alternate(accepted)
			lastAccepted = ts
			accepted++
		}
	}

	return out
}

func (c *Classifier) alternate(n int) attendance.Classification {
	if n%2 == 0 {
		return c.policy.FirstLabel
	}
	if c.policy.FirstLabel == attendance.ClassEntrance {
		return attendance.ClassExit
	}
	return attendance.ClassEntrance
}
