package device

import "time"

// CaptureMethod is how the terminal verified the employee. Informational only.
type CaptureMethod string

const (
	CaptureFingerprint CaptureMethod = "fingerprint"
	CapturePassword    CaptureMethod = "password"
	CaptureCard        CaptureMethod = "card"
	CaptureFace        CaptureMethod = "face"
	CaptureUnknown     CaptureMethod = "unknown"
)

// Punch is one raw clock record read from the terminal. Timestamp is nil when
// the terminal supplied no parseable time; RawTimestamp keeps what was sent.
// StatusCode is firmware specific and is not trusted as entrance/exit.
type Punch struct {
	TerminalID   int
	Timestamp    *time.Time
	RawTimestamp string
	StatusCode   int
	Method       CaptureMethod
}

// User is a user record enrolled on the terminal.
type User struct {
	UID        int
	TerminalID int
	Name       string
	Privilege  int
	CardID     string
}

// Info describes the terminal currently configured.
type Info struct {
	IP           string `json:"ip"`
	Port         int    `json:"port"`
	Model        string `json:"model"`
	SerialNumber string `json:"serial_number,omitempty"`
	Firmware     string `json:"firmware,omitempty"`
	UserCount    int    `json:"user_count"`
	PunchCount   int    `json:"punch_count"`
}
