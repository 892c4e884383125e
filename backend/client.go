package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tasknest/taskgate/token"
)

// Config defines a public type used by taskgate APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	BaseURL     string
	CallTimeout time.Duration
	HTTPClient  *http.Client
	Policies    CallPolicies
}

// Client defines a public type used by taskgate APIs.
//
// Client instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Client struct {
	baseURL  string
	timeout  time.Duration
	http     *http.Client
	minter   *token.Minter
	policies CallPolicies
}

// NewClient describes the newclient operation and its observable behavior.
//
// NewClient may return an error when input validation, dependency calls, or security checks fail.
// NewClient does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewClient(cfg Config, minter *token.Minter) (*Client, error) {
	if minter == nil {
		return nil, errors.New("minter is required")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.New("base URL must be an absolute http(s) URL")
	}
	if cfg.CallTimeout <= 0 {
		return nil, errors.New("call timeout must be > 0")
	}
	if err := cfg.Policies.Validate(); err != nil {
		return nil, err
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}

	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		timeout:  cfg.CallTimeout,
		http:     hc,
		minter:   minter,
		policies: cfg.Policies,
	}, nil
}

// Policies returns the per-operation 401 policies declared at construction.
func (c *Client) Policies() CallPolicies {
	return c.policies
}

// ListTasks fetches all tasks for the given user, newest first. The request is
// uncached; a degraded outcome is reported as such, never as an empty OK list.
func (c *Client) ListTasks(ctx context.Context, subject, email string) ([]Task, Outcome) {
	body, out := c.do(ctx, http.MethodGet, c.tasksPath(subject), nil, subject, email)
	if !out.OK() {
		return nil, out
	}

	var tasks []Task
	if err := json.Unmarshal(body, &tasks); err != nil {
		return nil, Outcome{Kind: OutcomeAPIError, StatusCode: http.StatusOK, Err: fmt.Errorf("decode task list: %w", err)}
	}

	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID > tasks[j].ID
		}
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})

	return tasks, out
}

// GetTask fetches a single task by ID.
func (c *Client) GetTask(ctx context.Context, subject, email string, id int64) (*Task, Outcome) {
	body, out := c.do(ctx, http.MethodGet, c.taskPath(subject, id), nil, subject, email)
	if !out.OK() {
		return nil, out
	}
	return decodeTask(body)
}

// CreateTask creates a new task for the given user.
func (c *Client) CreateTask(ctx context.Context, subject, email string, in TaskCreate) (*Task, Outcome) {
	body, out := c.do(ctx, http.MethodPost, c.tasksPath(subject), in, subject, email)
	if !out.OK() {
		return nil, out
	}
	return decodeTask(body)
}

// UpdateTask applies a partial update to an existing task.
func (c *Client) UpdateTask(ctx context.Context, subject, email string, id int64, in TaskUpdate) (*Task, Outcome) {
	body, out := c.do(ctx, http.MethodPut, c.taskPath(subject, id), in, subject, email)
	if !out.OK() {
		return nil, out
	}
	return decodeTask(body)
}

func (c *Client) tasksPath(subject string) string {
	return "/api/" + url.PathEscape(subject) + "/tasks"
}

func (c *Client) taskPath(subject string, id int64) string {
	return c.tasksPath(subject) + "/" + strconv.FormatInt(id, 10)
}

// do performs a single attempt against the backend: mint a fresh credential,
// send, and map the response onto the outcome taxonomy. Failures before the
// request leaves the process (minting, encoding) are reported as Unreachable
// since the backend was never consulted.
func (c *Client) do(ctx context.Context, method, path string, payload any, subject, email string) ([]byte, Outcome) {
	cred, err := c.minter.Mint(subject, email)
	if err != nil {
		return nil, Outcome{Kind: OutcomeUnreachable, Err: fmt.Errorf("mint credential: %w", err)}
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, Outcome{Kind: OutcomeUnreachable, Err: fmt.Errorf("encode request: %w", err)}
		}
		reqBody = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, Outcome{Kind: OutcomeUnreachable, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+cred)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodGet {
		req.Header.Set("Cache-Control", "no-store")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, Outcome{Kind: OutcomeUnreachable, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Outcome{Kind: OutcomeUnreachable, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, Outcome{Kind: OutcomeUnauthorized, StatusCode: resp.StatusCode}
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, Outcome{Kind: OutcomeOK, StatusCode: resp.StatusCode}
	default:
		return nil, Outcome{Kind: OutcomeAPIError, StatusCode: resp.StatusCode}
	}
}

func decodeTask(body []byte) (*Task, Outcome) {
	var t Task
	if err := json.Unmarshal(body, &t); err != nil {
		return nil, Outcome{Kind: OutcomeAPIError, StatusCode: http.StatusOK, Err: fmt.Errorf("decode task: %w", err)}
	}
	return &t, Outcome{Kind: OutcomeOK, StatusCode: http.StatusOK}
}
