package audit

import (
	"context"
	"time"
)

type Action string

const (
	ActionEmployeeCreate     Action = "employee.create"
	ActionEmployeeUpdate     Action = "employee.update"
	ActionEmployeeDeactivate Action = "employee.deactivate"
	ActionDeviceImportUsers  Action = "device.import_users"
	ActionDeviceConfigure    Action = "device.configure"
	ActionAttendanceSync     Action = "attendance.sync"
	ActionAttendanceResync   Action = "attendance.resync"
	ActionAttendanceManual   Action = "attendance.manual"
	ActionLogin              Action = "auth.login"
	ActionRegister           Action = "auth.register"
	ActionChangePassword     Action = "auth.change_password"
)

// Entry is one append-only audit record.
type Entry struct {
	ID        int64
	Action    Action
	Entity    string
	EntityID  string
	Detail    string
	Username  string
	IP        string
	CreatedAt time.Time
}

// Actor is who performed a request.
type Actor struct {
	Username string
	IP       string
}

type actorKey struct{}

// WithActor stores the acting operator in ctx.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom returns the acting operator, or "system" for background jobs.
func ActorFrom(ctx context.Context) Actor {
	if actor, ok := ctx.Value(actorKey{}).(Actor); ok {
		return actor
	}
	return Actor{Username: "system"}
}
