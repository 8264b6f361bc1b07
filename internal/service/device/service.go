package device

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/audit"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/device"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/employee"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/schedule"
	"github.com/sensacion-hr/attendance-backend-go/internal/pkg/validator"
)

// Imported users get the morning shift and Sunday off until edited.
const (
	importShift  = schedule.ShiftMorning
	importDayOff = schedule.Sunday
)

type DeviceServiceImpl struct {
	terminal     device.Terminal
	employeeRepo employee.EmployeeRepository
	auditService audit.AuditService
}

func NewDeviceService(terminal device.Terminal, employeeRepo employee.EmployeeRepository, auditService audit.AuditService) device.DeviceService {
	return &DeviceServiceImpl{
		terminal:     terminal,
		employeeRepo: employeeRepo,
		auditService: auditService,
	}
}

// Info implements device.DeviceService.
func (s *DeviceServiceImpl) Info(ctx context.Context) (device.Info, error) {
	return s.terminal.Info(ctx)
}

// Configure implements device.DeviceService.
func (s *DeviceServiceImpl) Configure(ctx context.Context, req device.ConfigureRequest) (device.Info, error) {
	if err := req.Validate(); err != nil {
		return device.Info{}, err
	}

	if err := s.terminal.Configure(req.IP, req.Port); err != nil {
		return device.Info{}, err
	}
	s.auditService.Record(ctx, audit.ActionDeviceConfigure, "device", "", fmt.Sprintf("%s:%d", req.IP, req.Port))

	// The new address is kept even if the terminal does not answer yet
	return s.terminal.Info(ctx)
}

// ListUsers implements device.DeviceService.
func (s *DeviceServiceImpl) ListUsers(ctx context.Context) (device.ListUsersResponse, error) {
	users, err := s.terminal.Users(ctx)
	if err != nil {
		return device.ListUsersResponse{}, err
	}

	resp := device.ListUsersResponse{
		Total: len(users),
		Users: make([]device.UserResponse, 0, len(users)),
	}
	for _, u := range users {
		resp.Users = append(resp.Users, device.UserResponse{
			UID:        u.UID,
			TerminalID: u.TerminalID,
			Name:       u.Name,
			Privilege:  u.Privilege,
			CardID:     u.CardID,
		})
	}
	return resp, nil
}

// ListPunches implements device.DeviceService.
func (s *DeviceServiceImpl) ListPunches(ctx context.Context) (device.ListPunchesResponse, error) {
	punches, err := s.terminal.Punches(ctx)
	if err != nil {
		return device.ListPunchesResponse{}, err
	}

	resp := device.ListPunchesResponse{
		Total:   len(punches),
		Punches: make([]device.PunchResponse, 0, len(punches)),
	}
	for _, p := range punches {
		var ts *string
		if p.Timestamp != nil {
			formatted := p.Timestamp.Format("2006-01-02 15:04:05")
			ts = &formatted
		}
		resp.Punches = append(resp.Punches, device.PunchResponse{
			TerminalID: p.TerminalID,
			Timestamp:  ts,
			StatusCode: p.StatusCode,
			Method:     string(p.Method),
		})
	}
	return resp, nil
}

// ImportUsers implements device.DeviceService.
func (s *DeviceServiceImpl) ImportUsers(ctx context.Context) (device.ImportUsersResponse, error) {
	users, err := s.terminal.Users(ctx)
	if err != nil {
		return device.ImportUsersResponse{}, err
	}

	index, err := s.employeeRepo.TerminalIndex(ctx)
	if err != nil {
		return device.ImportUsersResponse{}, fmt.Errorf("failed to load terminal ids: %w", err)
	}

	resp := device.ImportUsersResponse{TotalUsers: len(users)}
	hours, _ := importShift.Hours()

	for _, u := range users {
		if u.TerminalID <= 0 {
			resp.Skipped++
			continue
		}
		if _, ok := index[u.TerminalID]; ok {
			resp.Existing++
			continue
		}

		terminalID := u.TerminalID
		newEmployee := employee.Employee{
			ID:               newID(),
			TerminalID:       &terminalID,
			FirstName:        importName(u),
			DocumentNumber:   importDocument(u),
			Position:         employee.DefaultPosition,
			Shift:            importShift,
			ExpectedEntrance: hours.Entrance,
			ExpectedExit:     hours.Exit,
			DayOff:           importDayOff,
			Active:           true,
		}

		created, err := s.employeeRepo.Create(ctx, newEmployee)
		if errors.Is(err, employee.ErrDocumentNumberExists) && newEmployee.DocumentNumber != placeholderDocument(u.TerminalID) {
			// The card number already belongs to someone else
			newEmployee.DocumentNumber = placeholderDocument(u.TerminalID)
			created, err = s.employeeRepo.Create(ctx, newEmployee)
		}
		if errors.Is(err, employee.ErrDocumentNumberExists) || errors.Is(err, employee.ErrTerminalIDExists) {
			slog.Warn("device user not imported", "terminal_id", u.TerminalID, "document_number", newEmployee.DocumentNumber, "error", err)
			resp.Skipped++
			continue
		}
		if err != nil {
			return resp, fmt.Errorf("failed to import device user %d: %w", u.TerminalID, err)
		}

		index[u.TerminalID] = created.ID
		resp.Imported++
	}

	resp.Message = fmt.Sprintf("%d new employees imported from the terminal", resp.Imported)
	slog.Info("device users imported",
		"total_users", resp.TotalUsers,
		"imported", resp.Imported,
		"existing", resp.Existing,
		"skipped", resp.Skipped,
	)
	s.auditService.Record(ctx, audit.ActionDeviceImportUsers, "device", "",
		fmt.Sprintf("users=%d imported=%d", resp.TotalUsers, resp.Imported))

	return resp, nil
}

func importName(u device.User) string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	return fmt.Sprintf("Usuario %d", u.TerminalID)
}

// importDocument uses the enrolled card number when it is a valid document,
// otherwise a placeholder derived from the terminal id.
func importDocument(u device.User) string {
	if validator.IsValidDocumentNumber(u.CardID) {
		return u.CardID
	}
	return placeholderDocument(u.TerminalID)
}

func placeholderDocument(terminalID int) string {
	return fmt.Sprintf("ZK-%05d", terminalID)
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
