package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"governor/internal/engine"
	"governor/internal/lobby"
	"governor/internal/protocol"
)

func TestClosedHubRefusesClients(t *testing.T) {
	h := NewHub("room", lobby.NewLobby("room", 2, 4), engine.DefaultRules(), 0)
	h.Stop()
	h.Stop()

	c := NewClient(h, nil, "h1", ClientPlayer)
	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.False(t, h.attach(c))
		assert.False(t, h.enqueue(IncomingMessage{Client: c, Envelope: protocol.MustEnvelope(protocol.MsgReady, nil)}))
		h.detach(c)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("closed hub blocked a client")
	}
}

func TestClientBind(t *testing.T) {
	c := NewClient(nil, nil, "", ClientPlayer)
	assert.ErrorIs(t, c.bind(""), errNotSeated)
	assert.NoError(t, c.bind("h1"))
	assert.NoError(t, c.bind(""))
	assert.NoError(t, c.bind("h1"))
	assert.ErrorIs(t, c.bind("h2"), errSeatBound)
	assert.Equal(t, "h1", c.PlayerID())
}

func TestClientAdmit(t *testing.T) {
	tv := NewClient(nil, nil, "", ClientTV)
	phone := NewClient(nil, nil, "", ClientPlayer)

	_, err := tv.admit([]byte(`{"type":"start_game"}`))
	assert.NoError(t, err)
	_, err = tv.admit([]byte(`{"type":"pass"}`))
	assert.ErrorIs(t, err, errTableScreen)

	_, err = phone.admit([]byte(`{"type":"undo"}`))
	assert.ErrorIs(t, err, errNotSeated)
	_, err = phone.admit([]byte(`not json`))
	assert.Error(t, err)

	env, err := phone.admit([]byte(`{"type":"join","payload":{"player_id":"h1","name":"Ann"}}`))
	assert.NoError(t, err)
	assert.Equal(t, protocol.MsgJoin, env.Type)
	assert.Equal(t, "h1", phone.PlayerID())

	_, err = phone.admit([]byte(`{"type":"select_role","payload":{"role":"Builder"}}`))
	assert.NoError(t, err)
	_, err = phone.admit([]byte(`{"type":"teleport"}`))
	assert.ErrorContains(t, err, "unknown message type")
}
