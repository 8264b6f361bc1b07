package device

import "context"

// Terminal is the transport to the biometric terminal. Implementations return
// a complete batch or fail with an error wrapping ErrTerminalUnreachable.
type Terminal interface {
	Punches(ctx context.Context) ([]Punch, error)
	Users(ctx context.Context) ([]User, error)
	Info(ctx context.Context) (Info, error)
	Configure(ip string, port int) error
}
