// Package client is a typed HTTP client for the dashboard API.
package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"iot-dashboard/internal/domain"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const resultSuccess = 2000

// APIError a response whose envelope code is not success
type APIError struct {
	Status  int
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("dashboard API error: %s (code: %d, status: %d)", e.Message, e.Code, e.Status)
}

type envelope struct {
	Code    int             `json:"code"`
	Type    string          `json:"type"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

type NavItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type Navigation struct {
	Destinations []NavItem `json:"destinations"`
	CurrentPage  string    `json:"currentPage"`
}

type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	SessionID string      `json:"sessionId"`
	User      domain.User `json:"user"`
	Locale    string      `json:"locale"`
}

type DeviceList struct {
	Items        []domain.Device             `json:"items"`
	Total        int                         `json:"total"`
	CatalogTotal int                         `json:"catalogTotal"`
	StatusCounts map[domain.DeviceStatus]int `json:"statusCounts"`
	CanManage    bool                        `json:"canManage"`
}

type UserRow struct {
	domain.User
	CanEdit   bool `json:"canEdit"`
	CanDelete bool `json:"canDelete"`
}

type UserList struct {
	Items           []UserRow     `json:"items"`
	Total           int           `json:"total"`
	ActiveCount     int           `json:"activeCount"`
	AssignableRoles []domain.Role `json:"assignableRoles"`
	CanManageAdmins bool          `json:"canManageAdmins"`
}

type NotificationItem struct {
	domain.Notification
	Age string `json:"age"`
}

type NotificationList struct {
	Items       []NotificationItem `json:"items"`
	UnreadCount int                `json:"unreadCount"`
	Total       int                `json:"total"`
}

type unreadCount struct {
	UnreadCount int `json:"unreadCount"`
}

// Client one logged-in session against the API. Safe for concurrent use.
type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger

	mu    sync.RWMutex
	token string
}

// New baseURL is the server root, e.g. http://localhost:8080
func New(baseURL string, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL+"/api/v1").
		SetTimeout(10*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Client{httpClient: httpClient, logger: logger}
}

// SetLanguage sends Accept-Language on every request
func (c *Client) SetLanguage(lang string) *Client {
	c.httpClient.SetHeader("Accept-Language", lang)
	return c
}

func (c *Client) request() *resty.Request {
	req := c.httpClient.R()
	c.mu.RLock()
	if c.token != "" {
		req.SetAuthToken(c.token)
	}
	c.mu.RUnlock()
	return req
}

// call sends req and decodes the envelope's result into out (out may be nil)
func (c *Client) call(req *resty.Request, method, path string, out any) error {
	var env envelope
	resp, err := req.SetResult(&env).SetError(&env).Execute(method, path)
	if err != nil {
		c.logger.Error("Dashboard API call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	if env.Code != resultSuccess {
		apiErr := &APIError{Status: resp.StatusCode(), Code: env.Code, Message: env.Message}
		if env.Message == "" {
			apiErr.Message = resp.Status()
		}
		c.logger.Debug("Dashboard API returned error",
			zap.String("path", path),
			zap.Int("status", apiErr.Status),
			zap.Int("code", apiErr.Code),
		)
		return apiErr
	}
	if out == nil || len(env.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", path, err)
	}
	return nil
}

// Login starts a session as role and keeps its token for later calls
func (c *Client) Login(role string) (*LoginResult, error) {
	var out LoginResult
	req := c.httpClient.R().SetBody(map[string]string{"role": role})
	if err := c.call(req, resty.MethodPost, "/auth/login", &out); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.token = out.Token
	c.mu.Unlock()
	return &out, nil
}

func (c *Client) Logout() error {
	if err := c.call(c.request(), resty.MethodPost, "/auth/logout", nil); err != nil {
		return err
	}
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	return nil
}

func (c *Client) Navigation() (*Navigation, error) {
	var out Navigation
	if err := c.call(c.request(), resty.MethodGet, "/navigation", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Devices search and status are passed through; status "" or "all" means any
func (c *Client) Devices(search, status string) (*DeviceList, error) {
	var out DeviceList
	req := c.request().SetQueryParams(queryParams("q", search, "status", status))
	if err := c.call(req, resty.MethodGet, "/devices", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Users(search, role string) (*UserList, error) {
	var out UserList
	req := c.request().SetQueryParams(queryParams("q", search, "role", role))
	if err := c.call(req, resty.MethodGet, "/users", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Notifications(filter, search string) (*NotificationList, error) {
	var out NotificationList
	req := c.request().SetQueryParams(queryParams("filter", filter, "q", search))
	if err := c.call(req, resty.MethodGet, "/notifications", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkRead returns the unread count after marking id
func (c *Client) MarkRead(id string) (int, error) {
	var out unreadCount
	if err := c.call(c.request(), resty.MethodPost, "/notifications/"+url.PathEscape(id)+"/read", &out); err != nil {
		return 0, err
	}
	return out.UnreadCount, nil
}

func (c *Client) MarkAllRead() (int, error) {
	var out unreadCount
	if err := c.call(c.request(), resty.MethodPost, "/notifications/read-all", &out); err != nil {
		return 0, err
	}
	return out.UnreadCount, nil
}

func queryParams(kv ...string) map[string]string {
	out := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != "" {
			out[kv[i]] = kv[i+1]
		}
	}
	return out
}
