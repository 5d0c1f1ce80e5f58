package widget_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vitaehub/vitaehub/pkg/types"
	"github.com/vitaehub/vitaehub/pkg/widget"
)

func Test_OpenCloseToggle(t *testing.T) {
	store := widget.NewManager().Get("u1")

	assert.False(t, store.Snapshot().IsOpen)
	store.Open()
	assert.True(t, store.Snapshot().IsOpen)
	store.Close()
	assert.False(t, store.Snapshot().IsOpen)
	store.Toggle()
	assert.True(t, store.Snapshot().IsOpen)
}

func Test_MessagesLifecycle(t *testing.T) {
	store := widget.NewManager().Get("u1")
	store.SetSessionID("s1")

	msg := store.AddMessage(types.MESSAGE_ROLE_USER, "hola")
	assert.NotEmpty(t, msg.ID)

	reply := store.AddMessage(types.MESSAGE_ROLE_ASSISTANT, "")
	store.AppendToMessage(reply.ID, "Hola, ")
	store.AppendToMessage(reply.ID, "¿cómo estás?")

	snap := store.Snapshot()
	assert.Len(t, snap.Messages, 2)
	assert.Equal(t, "Hola, ¿cómo estás?", snap.Messages[1].Content)

	store.SetMessageContent(reply.ID, "Hola.")
	assert.Equal(t, "Hola.", store.Snapshot().Messages[1].Content)

	// unknown id is a no-op
	store.AppendToMessage("msg_unknown", "x")
	assert.Len(t, store.Snapshot().Messages, 2)

	store.ClearMessages()
	snap = store.Snapshot()
	assert.Empty(t, snap.Messages)
	assert.Empty(t, snap.SessionID)
}

func Test_SubscribeNotifiesOnChange(t *testing.T) {
	store := widget.NewManager().Get("u1")

	var got []widget.State
	unsubscribe := store.Subscribe(func(s widget.State) {
		got = append(got, s)
	})

	store.Open()
	store.SetLoading(true)
	assert.Len(t, got, 2)
	assert.True(t, got[1].IsOpen)
	assert.True(t, got[1].Loading)

	unsubscribe()
	store.Close()
	assert.Len(t, got, 2)
}

func Test_SnapshotIsolation(t *testing.T) {
	store := widget.NewManager().Get("u1")
	store.AddMessage(types.MESSAGE_ROLE_USER, "original")

	snap := store.Snapshot()
	snap.Messages[0].Content = "mutated"

	assert.Equal(t, "original", store.Snapshot().Messages[0].Content)
}

func Test_ManagerPerUserIsolationAndExpiry(t *testing.T) {
	manager := widget.NewManager()

	a := manager.Get("a")
	b := manager.Get("b")
	assert.NotSame(t, a, b)
	assert.Same(t, a, manager.Get("a"))

	a.AddMessage(types.MESSAGE_ROLE_USER, "hola")
	assert.Empty(t, b.Snapshot().Messages)

	// nothing idle long enough yet
	assert.Equal(t, 0, manager.ExpireIdle(time.Minute))
	// everything is older than a negative idle window
	assert.Equal(t, 2, manager.ExpireIdle(-time.Second))
	assert.NotSame(t, a, manager.Get("a"))
}
