// Package zkteco talks to a ZKTeco terminal through the bridge agent that
// runs next to it on the branch network. The bridge speaks the terminal's
// binary protocol and exposes each read as a JSON endpoint.
package zkteco

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sensacion-hr/attendance-backend-go/internal/domain/device"
)

const (
	DefaultPort    = 4370
	DefaultTimeout = 15 * time.Second

	maxResponseBytes = 64 << 20
)

type Config struct {
	BridgeURL string
	IP        string
	Port      int
	Timeout   time.Duration

	// Location of the terminal clock; timestamps are reduced to wall clock in it
	Location *time.Location
}

// Client implements device.Terminal over the bridge HTTP API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	loc        *time.Location

	mu   sync.RWMutex
	ip   string
	port int
}

var _ device.Terminal = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BridgeURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid device bridge url %q", cfg.BridgeURL)
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		loc:        cfg.Location,
		ip:         cfg.IP,
		port:       cfg.Port,
	}, nil
}

// Configure points subsequent reads at another terminal.
func (c *Client) Configure(ip string, port int) error {
	if net.ParseIP(ip) == nil || port < 1 || port > 65535 {
		return device.ErrInvalidAddress
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.ip, c.port = ip, port

	slog.Info("terminal address changed", "ip", ip, "port", port)
	return nil
}

func (c *Client) address() (string, int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ip, c.port
}

type punchRecord struct {
	UserID    flexInt `json:"user_id"`
	Timestamp string  `json:"timestamp"`
	Status    flexInt `json:"status"`
	Punch     flexInt `json:"punch"`
}

type punchesPayload struct {
	Records []punchRecord `json:"records"`
}

// Punches implements device.Terminal.
func (c *Client) Punches(ctx context.Context) ([]device.Punch, error) {
	var payload punchesPayload
	if err := c.get(ctx, "/attendance", &payload); err != nil {
		return nil, err
	}

	punches := make([]device.Punch, 0, len(payload.Records))
	invalid := 0
	for _, r := range payload.Records {
		ts := ParseTimestamp(r.Timestamp, c.loc)
		if ts == nil {
			invalid++
		}
		punches = append(punches, device.Punch{
			TerminalID:   int(r.UserID),
			Timestamp:    ts,
			RawTimestamp: r.Timestamp,
			StatusCode:   int(r.Status),
			Method:       captureMethod(int(r.Punch)),
		})
	}

	if invalid > 0 {
		slog.Warn("terminal returned punches without a usable timestamp", "count", invalid)
	}
	slog.Debug("terminal punches read", "count", len(punches))
	return punches, nil
}

type userRecord struct {
	UID       flexInt `json:"uid"`
	UserID    flexInt `json:"user_id"`
	Name      string  `json:"name"`
	Privilege flexInt `json:"privilege"`
	Card      string  `json:"card"`
}

type usersPayload struct {
	Users []userRecord `json:"users"`
}

// Users implements device.Terminal.
func (c *Client) Users(ctx context.Context) ([]device.User, error) {
	var payload usersPayload
	if err := c.get(ctx, "/users", &payload); err != nil {
		return nil, err
	}

	users := make([]device.User, 0, len(payload.Users))
	for _, u := range payload.Users {
		card := strings.TrimSpace(u.Card)
		if card == "0" {
			card = ""
		}
		users = append(users, device.User{
			UID:        int(u.UID),
			TerminalID: int(u.UserID),
			Name:       strings.TrimSpace(u.Name),
			Privilege:  int(u.Privilege),
			CardID:     card,
		})
	}
	return users, nil
}

type infoPayload struct {
	Model        string  `json:"model"`
	SerialNumber string  `json:"serial_number"`
	Firmware     string  `json:"firmware"`
	UserCount    flexInt `json:"user_count"`
	RecordCount  flexInt `json:"record_count"`
}

// Info implements device.Terminal.
func (c *Client) Info(ctx context.Context) (device.Info, error) {
	var payload infoPayload
	if err := c.get(ctx, "/info", &payload); err != nil {
		return device.Info{}, err
	}

	ip, port := c.address()
	model := payload.Model
	if model == "" {
		model = "ZKTeco"
	}
	return device.Info{
		IP:           ip,
		Port:         port,
		Model:        model,
		SerialNumber: payload.SerialNumber,
		Firmware:     payload.Firmware,
		UserCount:    int(payload.UserCount),
		PunchCount:   int(payload.RecordCount),
	}, nil
}

// get performs one bridge read. Every failure wraps device.ErrTerminalUnreachable.
func (c *Client) get(ctx context.Context, path string, out any) error {
	ip, port := c.address()

	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	q := u.Query()
	q.Set("ip", ip)
	q.Set("port", strconv.Itoa(port))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", device.ErrTerminalUnreachable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("terminal bridge request failed", "path", path, "ip", ip, "port", port, "error", err)
		return fmt.Errorf("%w: %v", device.ErrTerminalUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		slog.Error("terminal bridge returned an error", "path", path, "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("%w: bridge responded %d", device.ErrTerminalUnreachable, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("%w: undecodable bridge response: %v", device.ErrTerminalUnreachable, err)
	}
	return nil
}

func captureMethod(code int) device.CaptureMethod {
	switch code {
	case 0:
		return device.CapturePassword
	case 1:
		return device.CaptureFingerprint
	case 2:
		return device.CaptureCard
	case 15:
		return device.CaptureFace
	default:
		return device.CaptureUnknown
	}
}

// flexInt accepts 7, "7" and null. Anything else decodes as 0.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexInt(n)
	return nil
}
