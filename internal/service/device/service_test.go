package device

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sensacion-hr/attendance-backend-go/internal/domain/audit"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/device"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/employee"
	"github.com/sensacion-hr/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTerminal struct {
	users   []device.User
	punches []device.Punch
	err     error
	ip      string
	port    int
}

func (f *fakeTerminal) Punches(context.Context) ([]device.Punch, error) { return f.punches, f.err }
func (f *fakeTerminal) Users(context.Context) ([]device.User, error)    { return f.users, f.err }

func (f *fakeTerminal) Info(context.Context) (device.Info, error) {
	if f.err != nil {
		return device.Info{}, f.err
	}
	return device.Info{IP: f.ip, Port: f.port, Model: "ZKTeco", UserCount: len(f.users)}, nil
}

func (f *fakeTerminal) Configure(ip string, port int) error {
	f.ip, f.port = ip, port
	return nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	created []employee.Employee
	index   map[int]string
	docs    map[string]bool
}

func (f *fakeEmployeeRepo) TerminalIndex(context.Context) (map[int]string, error) {
	out := make(map[int]string, len(f.index))
	for k, v := range f.index {
		out[k] = v
	}
	return out, nil
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	if f.docs[emp.DocumentNumber] {
		return employee.Employee{}, employee.ErrDocumentNumberExists
	}
	f.docs[emp.DocumentNumber] = true
	f.index[*emp.TerminalID] = emp.ID
	f.created = append(f.created, emp)
	return emp, nil
}

type noopAudit struct{}

func (noopAudit) Record(context.Context, audit.Action, string, string, string) {}
func (noopAudit) List(context.Context, audit.ListRequest) (audit.ListResponse, error) {
	return audit.ListResponse{}, nil
}

func newFixture(term *fakeTerminal) (*DeviceServiceImpl, *fakeEmployeeRepo) {
	repo := &fakeEmployeeRepo{index: map[int]string{}, docs: map[string]bool{}}
	return NewDeviceService(term, repo, noopAudit{}).(*DeviceServiceImpl), repo
}

func TestImportUsers(t *testing.T) {
	term := &fakeTerminal{users: []device.User{
		{UID: 1, TerminalID: 7, Name: "Ana Quispe", CardID: "70123456"},
		{UID: 2, TerminalID: 8, Name: ""},
		{UID: 3, TerminalID: 9, Name: "Luis"},
		{UID: 4, TerminalID: 0, Name: "Broken"},
		{UID: 5, TerminalID: 10, Name: "Rosa", CardID: "70123456"},
	}}
	svc, repo := newFixture(term)
	repo.index[9] = "existing-employee"

	resp, err := svc.ImportUsers(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, resp.TotalUsers)
	assert.Equal(t, 3, resp.Imported)
	assert.Equal(t, 1, resp.Existing)
	assert.Equal(t, 1, resp.Skipped)

	require.Len(t, repo.created, 3)
	ana := repo.created[0]
	assert.Equal(t, "Ana Quispe", ana.FirstName)
	assert.Equal(t, "70123456", ana.DocumentNumber)
	assert.Equal(t, employee.DefaultPosition, ana.Position)
	assert.Equal(t, "08:00", ana.ExpectedEntrance)
	assert.Equal(t, "17:00", ana.ExpectedExit)
	assert.Equal(t, importDayOff, ana.DayOff)
	assert.True(t, ana.Active)

	assert.Equal(t, "Usuario 8", repo.created[1].FirstName)
	assert.Equal(t, "ZK-00008", repo.created[1].DocumentNumber)

	// Rosa's card repeats Ana's document, so she gets the placeholder
	assert.Equal(t, "Rosa", repo.created[2].FirstName)
	assert.Equal(t, "ZK-00010", repo.created[2].DocumentNumber)
}

func TestImportUsers_PlaceholderTaken(t *testing.T) {
	term := &fakeTerminal{users: []device.User{
		{UID: 1, TerminalID: 10, Name: "Rosa", CardID: "70123456"},
		{UID: 2, TerminalID: 11, Name: "Pedro"},
	}}
	svc, repo := newFixture(term)
	repo.docs["70123456"] = true
	repo.docs["ZK-00010"] = true
	repo.docs["ZK-00011"] = true

	resp, err := svc.ImportUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Imported)
	assert.Equal(t, 2, resp.Skipped)
	assert.Empty(t, repo.created)
}

func TestImportUsers_Idempotent(t *testing.T) {
	term := &fakeTerminal{users: []device.User{{UID: 1, TerminalID: 7, Name: "Ana"}}}
	svc, repo := newFixture(term)

	_, err := svc.ImportUsers(context.Background())
	require.NoError(t, err)

	resp, err := svc.ImportUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Imported)
	assert.Equal(t, 1, resp.Existing)
	assert.Len(t, repo.created, 1)
}

func TestImportUsers_TerminalUnreachable(t *testing.T) {
	term := &fakeTerminal{err: fmt.Errorf("%w: dial tcp: timeout", device.ErrTerminalUnreachable)}
	svc, repo := newFixture(term)

	_, err := svc.ImportUsers(context.Background())
	assert.ErrorIs(t, err, device.ErrTerminalUnreachable)
	assert.Empty(t, repo.created)
}

func TestListPunches(t *testing.T) {
	ts := time.Date(2024, 5, 6, 8, 10, 0, 0, time.UTC)
	term := &fakeTerminal{punches: []device.Punch{
		{TerminalID: 7, Timestamp: &ts, StatusCode: 0, Method: device.CaptureFingerprint},
		{TerminalID: 7, RawTimestamp: "garbage", Method: device.CaptureUnknown},
	}}
	svc, _ := newFixture(term)

	resp, err := svc.ListPunches(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, resp.Total)
	require.NotNil(t, resp.Punches[0].Timestamp)
	assert.Equal(t, "2024-05-06 08:10:00", *resp.Punches[0].Timestamp)
	assert.Equal(t, "fingerprint", resp.Punches[0].Method)
	assert.Nil(t, resp.Punches[1].Timestamp)
}

func TestListUsers(t *testing.T) {
	term := &fakeTerminal{users: []device.User{{UID: 1, TerminalID: 7, Name: "Ana", Privilege: 14}}}
	svc, _ := newFixture(term)

	resp, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, device.UserResponse{UID: 1, TerminalID: 7, Name: "Ana", Privilege: 14}, resp.Users[0])
}

func TestConfigure(t *testing.T) {
	term := &fakeTerminal{}
	svc, _ := newFixture(term)

	info, err := svc.Configure(context.Background(), device.ConfigureRequest{IP: "192.168.1.201"})
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.201", info.IP)
	assert.Equal(t, 4370, info.Port)

	_, err = svc.Configure(context.Background(), device.ConfigureRequest{IP: "nope", Port: 99999})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 2)
	assert.Equal(t, "192.168.1.201", term.ip)
}
