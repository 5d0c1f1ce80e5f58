package agent_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vitaehub/vitaehub/pkg/agent"
)

func newTestClient(baseURL string) *agent.Client {
	return agent.New(agent.Config{BaseURL: baseURL, AppName: "vitaehub"})
}

func collectStream(t *testing.T, client *agent.Client) (events []agent.Event, errs []error, completed bool) {
	t.Helper()
	client.SendMessageStreaming(context.Background(), "u1", "s1", "hola",
		func(e agent.Event) { events = append(events, e) },
		func(err error) { errs = append(errs, err) },
		func() { completed = true })
	return
}

func Test_StreamingDecodesFrames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/run_sse", r.URL.Path)

		var req agent.RunRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "vitaehub", req.AppName)
		assert.Equal(t, "u1", req.UserID)
		assert.Equal(t, "s1", req.SessionID)

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"content\":{\"parts\":[{\"text\":\"Hola\"}]},\"partial\":true}\n\n")
		fmt.Fprint(w, "data: {\"content\":{\"parts\":[{\"text\":\"Hola, ¿cómo estás?\"}]}}\n\n")
	}))
	defer srv.Close()

	events, errs, completed := collectStream(t, newTestClient(srv.URL))
	assert.Empty(t, errs)
	assert.True(t, completed)
	assert.Len(t, events, 2)

	text, ok := agent.ExtractText(events[0].Content)
	assert.True(t, ok)
	assert.Equal(t, "Hola", text)
	assert.True(t, events[0].Partial)

	text, ok = agent.ExtractText(events[1].Content)
	assert.True(t, ok)
	assert.Equal(t, "Hola, ¿cómo estás?", text)
	assert.False(t, events[1].Partial)
}

// The decoder must be independent of how the transport chunks the body: a
// frame split anywhere, even inside a multi-byte character, decodes the same.
func Test_StreamingFrameSplitAcrossChunks(t *testing.T) {
	payload := []byte("data: {\"content\":\"señal única\",\"partial\":true}\n\ndata: {\"content\":\"fin\"}\n\n")

	// split inside the two-byte "ñ"
	splitAt := 0
	for i := range payload {
		if payload[i] == 0xc3 {
			splitAt = i + 1
			break
		}
	}
	assert.Greater(t, splitAt, 0)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		w.Write(payload[:splitAt])
		flusher.Flush()
		w.Write(payload[splitAt:])
	}))
	defer srv.Close()

	events, errs, completed := collectStream(t, newTestClient(srv.URL))
	assert.Empty(t, errs)
	assert.True(t, completed)
	assert.Len(t, events, 2)

	text, ok := agent.ExtractText(events[0].Content)
	assert.True(t, ok)
	assert.Equal(t, "señal única", text)
}

func Test_StreamingSkipsMalformedAndNonDataFrames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, ": keepalive comment\n\n")
		fmt.Fprint(w, "data: {not valid json}\n\n")
		fmt.Fprint(w, "event: ping\n\n")
		fmt.Fprint(w, "data: {\"content\":\"ok\"}\n\n")
	}))
	defer srv.Close()

	events, errs, completed := collectStream(t, newTestClient(srv.URL))
	assert.Empty(t, errs)
	assert.True(t, completed)
	assert.Len(t, events, 1)

	text, ok := agent.ExtractText(events[0].Content)
	assert.True(t, ok)
	assert.Equal(t, "ok", text)
}

// A trailing partial frame without its terminator is dropped at EOF, never
// parsed early.
func Test_StreamingDropsUnterminatedTrailingFrame(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: {\"content\":\"completa\"}\n\n")
		fmt.Fprint(w, "data: {\"content\":\"trunca\"")
	}))
	defer srv.Close()

	events, errs, completed := collectStream(t, newTestClient(srv.URL))
	assert.Empty(t, errs)
	assert.True(t, completed)
	assert.Len(t, events, 1)
}

func Test_StreamingConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	events, errs, completed := collectStream(t, newTestClient(srv.URL))
	assert.Empty(t, events)
	assert.False(t, completed)
	assert.Len(t, errs, 1)

	connErr, ok := errs[0].(*agent.ConnectionError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, connErr.StatusCode)
}

func Test_StreamingTransportError(t *testing.T) {
	events, errs, completed := collectStream(t, newTestClient("http://127.0.0.1:1"))
	assert.Empty(t, events)
	assert.False(t, completed)
	assert.Len(t, errs, 1)

	_, ok := errs[0].(*agent.ConnectionError)
	assert.True(t, ok)
}

func Test_SessionLifecycle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/apps/vitaehub/users/u1/sessions":
			json.NewEncoder(w).Encode(agent.Session{ID: "s-new", AppName: "vitaehub", UserID: "u1"})
		case r.Method == http.MethodGet && r.URL.Path == "/apps/vitaehub/users/u1/sessions/s-new":
			json.NewEncoder(w).Encode(agent.Session{ID: "s-new"})
		case r.Method == http.MethodGet && r.URL.Path == "/apps/vitaehub/users/u1/sessions":
			json.NewEncoder(w).Encode([]agent.Session{{ID: "s-new"}})
		case r.Method == http.MethodDelete && r.URL.Path == "/apps/vitaehub/users/u1/sessions/s-new":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	ctx := context.Background()

	session, err := client.CreateSession(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "s-new", session.ID)

	got, err := client.GetSession(ctx, "u1", "s-new")
	assert.NoError(t, err)
	assert.Equal(t, "s-new", got.ID)

	list, err := client.ListSessions(ctx, "u1")
	assert.NoError(t, err)
	assert.Len(t, list, 1)

	assert.NoError(t, client.DeleteSession(ctx, "u1", "s-new"))
}

func Test_SendMessageNonStreaming(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/run", r.URL.Path)
		fmt.Fprint(w, `[{"content":{"parts":[{"text":"respuesta"}]}}]`)
	}))
	defer srv.Close()

	events, err := newTestClient(srv.URL).SendMessage(context.Background(), "u1", "s1", "hola")
	assert.NoError(t, err)
	assert.Len(t, events, 1)

	text, ok := agent.ExtractText(events[0].Content)
	assert.True(t, ok)
	assert.Equal(t, "respuesta", text)
}

func Test_ExtractText(t *testing.T) {
	type testCase struct {
		name    string
		payload string
		want    string
		ok      bool
	}

	cases := []testCase{
		{"string content", `{"content":"hola"}`, "hola", true},
		{"empty string content", `{"content":""}`, "", false},
		{"structured with text", `{"content":{"parts":[{"text":"hola"}]}}`, "hola", true},
		{"structured skips empty parts", `{"content":{"parts":[{"text":""},{"text":"segundo"}]}}`, "segundo", true},
		{"structured without text", `{"content":{"parts":[{"text":""}]}}`, "", false},
		{"no parts", `{"content":{"role":"model"}}`, "", false},
		{"no content", `{}`, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var event agent.Event
			assert.NoError(t, json.Unmarshal([]byte(tc.payload), &event))
			got, ok := agent.ExtractText(event.Content)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func Test_EventContentRoundTrip(t *testing.T) {
	for _, raw := range []string{
		`"texto plano"`,
		`{"role":"model","parts":[{"text":"hola"}]}`,
	} {
		var c agent.EventContent
		assert.NoError(t, json.Unmarshal([]byte(raw), &c))
		out, err := json.Marshal(c)
		assert.NoError(t, err)
		assert.JSONEq(t, raw, string(out))
	}
}
