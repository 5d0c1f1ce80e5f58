package v1

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/vitaehub/vitaehub/app/core"
	"github.com/vitaehub/vitaehub/pkg/agent"
	"github.com/vitaehub/vitaehub/pkg/errors"
	"github.com/vitaehub/vitaehub/pkg/i18n"
	"github.com/vitaehub/vitaehub/pkg/safe"
	"github.com/vitaehub/vitaehub/pkg/types"
	"github.com/vitaehub/vitaehub/pkg/widget"
)

// ChatLogic connects the floating chat widget to the agent backend.
type ChatLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewChatLogic(ctx context.Context, core *core.Core) *ChatLogic {
	return &ChatLogic{
		ctx:  ctx,
		core: core,
	}
}

func (l *ChatLogic) userID() string {
	claims, _ := InjectTokenClaim(l.ctx)
	return claims.User
}

func (l *ChatLogic) widget() *widget.Store {
	return l.core.Widgets().Get(l.userID())
}

// EnsureSession returns the agent session bound to the widget, creating one
// on the backend when the widget has none yet.
func (l *ChatLogic) EnsureSession() (string, error) {
	store := l.widget()
	if sessionID := store.Snapshot().SessionID; sessionID != "" {
		return sessionID, nil
	}

	session, err := l.core.Agent().CreateSession(l.ctx, l.userID())
	if err != nil {
		store.SetConnected(false)
		return "", errors.New("ChatLogic.EnsureSession.Agent.CreateSession", i18n.ERROR_CHAT_CONNECTION, err).Code(http.StatusBadGateway)
	}

	store.SetSessionID(session.ID)
	store.SetConnected(true)
	return session.ID, nil
}

// StreamChunk is one unit of the SSE relay towards the browser.
type StreamChunk struct {
	Type      string `json:"type"` // delta | message | error | done
	MessageID string `json:"message_id,omitempty"`
	Content   string `json:"content,omitempty"`
}

func (l *ChatLogic) connectionBubble() string {
	return GetContentByClientLanguage(l.ctx,
		"Sorry, I could not reach the assistant. Please try again.",
		"Lo siento, no pude conectar con el asistente. Inténtalo de nuevo.")
}

// SendMessageStream runs one user turn against the agent and relays decoded
// output to sink while mirroring it into the widget store. The call blocks
// until the agent stream ends.
//
// On a connection failure the widget gets a system-role error bubble and the
// returned error carries the chat connection message.
func (l *ChatLogic) SendMessageStream(text string, sink func(StreamChunk)) error {
	sessionID, err := l.EnsureSession()
	if err != nil {
		bubble := l.connectionBubble()
		l.widget().AddMessage(types.MESSAGE_ROLE_SYSTEM, bubble)
		sink(StreamChunk{Type: "error", Content: bubble})
		l.core.Metrics().ObserveChatStream("error")
		return err
	}

	store := l.widget()
	store.AddMessage(types.MESSAGE_ROLE_USER, text)
	store.SetLoading(true)

	var (
		assistantID string
		finalized   bool
		failure     error
	)

	onEvent := func(event agent.Event) {
		l.core.Metrics().ObserveChatEvent()

		delta, ok := agent.ExtractText(event.Content)
		if !ok {
			return
		}

		if assistantID == "" || (finalized && !event.Partial) {
			msg := store.AddMessage(types.MESSAGE_ROLE_ASSISTANT, "")
			assistantID = msg.ID
			finalized = false
		}

		if event.Partial {
			store.AppendToMessage(assistantID, delta)
			sink(StreamChunk{Type: "delta", MessageID: assistantID, Content: delta})
			return
		}

		// A non-partial event carries the consolidated text for the bubble.
		store.SetMessageContent(assistantID, delta)
		finalized = true
		sink(StreamChunk{Type: "message", MessageID: assistantID, Content: delta})
	}

	onError := func(err error) {
		store.SetLoading(false)

		var connErr *agent.ConnectionError
		if stderrors.As(err, &connErr) {
			store.SetConnected(false)
		}

		bubble := l.connectionBubble()
		store.AddMessage(types.MESSAGE_ROLE_SYSTEM, bubble)
		sink(StreamChunk{Type: "error", Content: bubble})

		l.core.Metrics().ObserveChatStream("error")
		failure = errors.New("ChatLogic.SendMessageStream.Agent", i18n.ERROR_CHAT_CONNECTION, err).Code(http.StatusBadGateway)
	}

	onComplete := func() {
		store.SetLoading(false)
		store.SetConnected(true)
		sink(StreamChunk{Type: "done"})
		l.core.Metrics().ObserveChatStream("ok")
	}

	l.core.Agent().SendMessageStreaming(l.ctx, l.userID(), sessionID, text, onEvent, onError, onComplete)
	return failure
}

// SendMessage is the non-streaming turn: the agent runs to completion and the
// final text comes back in one response. The widget history is updated the
// same way as the streaming path.
func (l *ChatLogic) SendMessage(text string) (string, error) {
	sessionID, err := l.EnsureSession()
	if err != nil {
		return "", err
	}

	store := l.widget()
	store.AddMessage(types.MESSAGE_ROLE_USER, text)
	store.SetLoading(true)
	defer store.SetLoading(false)

	events, err := l.core.Agent().SendMessage(l.ctx, l.userID(), sessionID, text)
	if err != nil {
		var connErr *agent.ConnectionError
		if stderrors.As(err, &connErr) {
			store.SetConnected(false)
		}
		store.AddMessage(types.MESSAGE_ROLE_SYSTEM, l.connectionBubble())
		return "", errors.New("ChatLogic.SendMessage.Agent", i18n.ERROR_CHAT_CONNECTION, err).Code(http.StatusBadGateway)
	}

	var reply string
	for _, event := range events {
		if text, ok := agent.ExtractText(event.Content); ok {
			reply = text
		}
	}
	if reply != "" {
		store.AddMessage(types.MESSAGE_ROLE_ASSISTANT, reply)
	}
	store.SetConnected(true)
	return reply, nil
}

// History returns the widget snapshot the frontend renders.
func (l *ChatLogic) History() widget.State {
	return l.widget().Snapshot()
}

func (l *ChatLogic) Open()   { l.widget().Open() }
func (l *ChatLogic) Close()  { l.widget().Close() }
func (l *ChatLogic) Toggle() { l.widget().Toggle() }

// ClearSession drops the widget history and deletes the backend session.
// Backend deletion is best effort and detached from the request, a slow or
// unreachable agent must not block the local reset.
func (l *ChatLogic) ClearSession() error {
	store := l.widget()
	sessionID := store.Snapshot().SessionID
	userID := l.userID()
	store.ClearMessages()

	if sessionID == "" {
		return nil
	}
	go safe.Run(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := l.core.Agent().DeleteSession(ctx, userID, sessionID); err != nil {
			slog.Error("failed to delete agent session",
				slog.String("session_id", sessionID),
				slog.Any("error", err))
		}
	})
	return nil
}
