package device

import "context"

// DeviceService exposes terminal reads and the device user import.
type DeviceService interface {
	// Info tests the connection and returns terminal details
	Info(ctx context.Context) (Info, error)

	// Configure points the transport at a different terminal address
	Configure(ctx context.Context, req ConfigureRequest) (Info, error)

	// ListUsers returns the users enrolled on the terminal
	ListUsers(ctx context.Context) (ListUsersResponse, error)

	// ListPunches returns the raw punch batch as stored on the terminal
	ListPunches(ctx context.Context) (ListPunchesResponse, error)

	// ImportUsers registers terminal users that have no employee record yet
	ImportUsers(ctx context.Context) (ImportUsersResponse, error)
}
