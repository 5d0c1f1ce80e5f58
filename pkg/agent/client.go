package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// Config points the client at the conversational agent backend. Both values
// come from the service configuration, never from code.
type Config struct {
	BaseURL string `toml:"base_url"`
	AppName string `toml:"app_name"`
}

type Client struct {
	cfg Config
	// no Timeout on the default client: /run_sse responses stay open for as
	// long as the agent keeps producing events
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cli *Client) {
		cli.httpClient = c
	}
}

func New(cfg Config, opts ...Option) *Client {
	cli := &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// ConnectionError reports a failure to establish the stream: transport error
// or a non-2xx response from the agent backend.
type ConnectionError struct {
	StatusCode int
	Err        error
}

func (e *ConnectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("agent connection failed: %v", e.Err)
	}
	return fmt.Sprintf("agent connection failed: status %d", e.StatusCode)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

type RunRequest struct {
	AppName    string   `json:"app_name"`
	UserID     string   `json:"user_id"`
	SessionID  string   `json:"session_id"`
	NewMessage *Message `json:"new_message"`
}

type Message struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

func (c *Client) sessionsURL(userID string) string {
	return fmt.Sprintf("%s/apps/%s/users/%s/sessions", c.cfg.BaseURL, c.cfg.AppName, userID)
}

func (c *Client) doJSON(ctx context.Context, method, url string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("agent request %s %s: status %d", method, url, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// CreateSession opens a new conversation for the user. The backend assigns
// the session id.
func (c *Client) CreateSession(ctx context.Context, userID string) (*Session, error) {
	var session Session
	if err := c.doJSON(ctx, http.MethodPost, c.sessionsURL(userID), struct{}{}, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) GetSession(ctx context.Context, userID, sessionID string) (*Session, error) {
	var session Session
	if err := c.doJSON(ctx, http.MethodGet, c.sessionsURL(userID)+"/"+sessionID, nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) ListSessions(ctx context.Context, userID string) ([]Session, error) {
	var sessions []Session
	if err := c.doJSON(ctx, http.MethodGet, c.sessionsURL(userID), nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (c *Client) DeleteSession(ctx context.Context, userID, sessionID string) error {
	return c.doJSON(ctx, http.MethodDelete, c.sessionsURL(userID)+"/"+sessionID, nil, nil)
}

// SendMessage is the non-streaming variant: the agent runs to completion and
// returns the full event list in one response.
func (c *Client) SendMessage(ctx context.Context, userID, sessionID, text string) ([]Event, error) {
	var events []Event
	err := c.doJSON(ctx, http.MethodPost, c.cfg.BaseURL+"/run", &RunRequest{
		AppName:   c.cfg.AppName,
		UserID:    userID,
		SessionID: sessionID,
		NewMessage: &Message{
			Role:  "user",
			Parts: []Part{{Text: text}},
		},
	}, &events)
	if err != nil {
		return nil, err
	}
	return events, nil
}

var frameDelimiter = []byte("\n\n")

var dataPrefix = []byte("data: ")

// SendMessageStreaming posts the message to /run_sse and relays each decoded
// event to onEvent in arrival order. The session must already exist; callers
// are responsible for passing a non-empty sessionID.
//
// Failure to establish the stream is reported once through onError and
// onComplete is not invoked. Once the stream is open, onComplete fires
// exactly once when it ends; a mid-stream read error goes to onError instead.
func (c *Client) SendMessageStreaming(ctx context.Context, userID, sessionID, text string,
	onEvent func(Event), onError func(error), onComplete func()) {

	raw, err := json.Marshal(&RunRequest{
		AppName:   c.cfg.AppName,
		UserID:    userID,
		SessionID: sessionID,
		NewMessage: &Message{
			Role:  "user",
			Parts: []Part{{Text: text}},
		},
	})
	if err != nil {
		onError(err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/run_sse", bytes.NewReader(raw))
	if err != nil {
		onError(&ConnectionError{Err: err})
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		onError(&ConnectionError{Err: err})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
		onError(&ConnectionError{StatusCode: resp.StatusCode})
		return
	}

	// Frames accumulate as raw bytes and are only parsed once a complete
	// "\n\n"-terminated frame is present, so a multi-byte character split
	// across reads can never be corrupted and a trailing partial frame is
	// never parsed early.
	var buffer []byte
	chunk := make([]byte, 4096)
	for {
		n, err := resp.Body.Read(chunk)
		if n > 0 {
			buffer = append(buffer, chunk[:n]...)
			for {
				idx := bytes.Index(buffer, frameDelimiter)
				if idx < 0 {
					break
				}
				frame := buffer[:idx]
				buffer = buffer[idx+len(frameDelimiter):]
				c.handleFrame(frame, onEvent)
			}
		}

		if err == io.EOF {
			onComplete()
			return
		}
		if err != nil {
			onError(err)
			return
		}
	}
}

// handleFrame decodes a single complete frame. A malformed payload is logged
// and dropped without aborting the stream; frames without the data prefix
// are ignored.
func (c *Client) handleFrame(frame []byte, onEvent func(Event)) {
	if !bytes.HasPrefix(frame, dataPrefix) {
		if len(bytes.TrimSpace(frame)) > 0 {
			slog.Debug("agent stream frame without data prefix", slog.String("frame", string(frame)))
		}
		return
	}

	var event Event
	if err := json.Unmarshal(frame[len(dataPrefix):], &event); err != nil {
		slog.Warn("agent stream frame dropped", slog.String("error", err.Error()), slog.String("data", string(frame)))
		return
	}
	onEvent(event)
}
