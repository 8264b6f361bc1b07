package zkteco

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sensacion-hr/attendance-backend-go/internal/domain/device"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBridge(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{
		BridgeURL: srv.URL,
		IP:        "192.168.100.200",
		Port:      4370,
		Timeout:   2 * time.Second,
		Location:  time.FixedZone("UTC-5", -5*3600),
	})
	require.NoError(t, err)
	return c
}

func TestPunches(t *testing.T) {
	var gotQuery string
	c := newBridge(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/attendance", r.URL.Path)
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"records":[
			{"user_id":"7","timestamp":"2024-05-06 08:10:00","status":0,"punch":1},
			{"user_id":7,"timestamp":"2024-05-06T17:05:00","status":1,"punch":15},
			{"user_id":"8","timestamp":"","status":0,"punch":0},
			{"user_id":"x","timestamp":"2024-05-06T13:00:00Z","status":0,"punch":99}
		]}`))
	})

	punches, err := c.Punches(context.Background())
	require.NoError(t, err)
	require.Len(t, punches, 4)

	assert.Equal(t, "ip=192.168.100.200&port=4370", gotQuery)

	assert.Equal(t, 7, punches[0].TerminalID)
	require.NotNil(t, punches[0].Timestamp)
	assert.Equal(t, time.Date(2024, 5, 6, 8, 10, 0, 0, time.UTC), *punches[0].Timestamp)
	assert.Equal(t, device.CaptureFingerprint, punches[0].Method)

	assert.Equal(t, 1, punches[1].StatusCode)
	assert.Equal(t, device.CaptureFace, punches[1].Method)

	assert.Nil(t, punches[2].Timestamp)
	assert.Equal(t, device.CapturePassword, punches[2].Method)

	// UTC instant shown on the terminal's clock
	assert.Equal(t, 0, punches[3].TerminalID)
	require.NotNil(t, punches[3].Timestamp)
	assert.Equal(t, time.Date(2024, 5, 6, 8, 0, 0, 0, time.UTC), *punches[3].Timestamp)
	assert.Equal(t, device.CaptureUnknown, punches[3].Method)
}

func TestPunches_BridgeError(t *testing.T) {
	c := newBridge(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "device timeout", http.StatusBadGateway)
	})

	punches, err := c.Punches(context.Background())
	assert.ErrorIs(t, err, device.ErrTerminalUnreachable)
	assert.Nil(t, punches)
}

func TestPunches_Undecodable(t *testing.T) {
	c := newBridge(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	})

	_, err := c.Punches(context.Background())
	assert.ErrorIs(t, err, device.ErrTerminalUnreachable)
}

func TestPunches_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(Config{BridgeURL: url, IP: "10.0.0.1", Timeout: time.Second})
	require.NoError(t, err)

	_, err = c.Punches(context.Background())
	assert.ErrorIs(t, err, device.ErrTerminalUnreachable)
}

func TestUsers(t *testing.T) {
	c := newBridge(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users", r.URL.Path)
		_, _ = w.Write([]byte(`{"users":[
			{"uid":1,"user_id":"7","name":" Ana Quispe ","privilege":0,"card":"0"},
			{"uid":2,"user_id":"12","name":"Luis","privilege":14,"card":"123456"}
		]}`))
	})

	users, err := c.Users(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, device.User{UID: 1, TerminalID: 7, Name: "Ana Quispe"}, users[0])
	assert.Equal(t, "123456", users[1].CardID)
	assert.Equal(t, 14, users[1].Privilege)
}

func TestInfoAndConfigure(t *testing.T) {
	var gotIP string
	c := newBridge(t, func(w http.ResponseWriter, r *http.Request) {
		gotIP = r.URL.Query().Get("ip")
		_, _ = w.Write([]byte(`{"serial_number":"ABC123","firmware":"Ver 6.60","user_count":"25","record_count":1200}`))
	})

	require.NoError(t, c.Configure("10.1.1.5", 4371))

	info, err := c.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "10.1.1.5", gotIP)
	assert.Equal(t, device.Info{
		IP:           "10.1.1.5",
		Port:         4371,
		Model:        "ZKTeco",
		SerialNumber: "ABC123",
		Firmware:     "Ver 6.60",
		UserCount:    25,
		PunchCount:   1200,
	}, info)

	assert.ErrorIs(t, c.Configure("not-an-ip", 4370), device.ErrInvalidAddress)
	assert.ErrorIs(t, c.Configure("10.1.1.5", 70000), device.ErrInvalidAddress)
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient(Config{BridgeURL: "localhost"})
	assert.Error(t, err)
}

func TestParseTimestamp(t *testing.T) {
	lima := time.FixedZone("UTC-5", -5*3600)
	want := time.Date(2024, 5, 6, 8, 10, 0, 0, time.UTC)

	for _, raw := range []string{
		"2024-05-06 08:10:00",
		"2024-05-06T08:10:00",
		"2024-05-06 08:10:00.000000",
		"2024/05/06 08:10:00",
		"06/05/2024 08:10:00",
		"2024-05-06T13:10:00Z",
		"2024-05-06T08:10:00-05:00",
		" 2024-05-06 08:10 ",
	} {
		got := ParseTimestamp(raw, lima)
		if assert.NotNil(t, got, raw) {
			assert.Equal(t, want, *got, raw)
		}
	}

	// Fractions are dropped so same-second punches collapse to one key
	a := ParseTimestamp("2024-05-06 08:10:00.250000", lima)
	b := ParseTimestamp("2024-05-06T08:10:00.900000", lima)
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, *a, *b)
	assert.Zero(t, a.Nanosecond())

	for _, raw := range []string{"", "yesterday", "2024-13-06 08:10:00", "0"} {
		assert.Nil(t, ParseTimestamp(raw, lima), raw)
	}
}
