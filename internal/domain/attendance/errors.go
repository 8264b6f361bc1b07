package attendance

import "errors"

var (
	ErrResyncInProgress = errors.New("a full resync is already running")
)
