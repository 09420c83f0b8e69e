package lobby_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"governor/internal/lobby"
)

func TestJoinAndStart(t *testing.T) {
	l := lobby.NewLobby("room", 2, 3)
	require.NoError(t, l.Join("a", "Ann"))
	assert.False(t, l.CanStart(), "one player is not enough")

	require.NoError(t, l.Join("b", "Bo"))
	assert.False(t, l.CanStart(), "nobody is ready")

	l.SetReady("a", true)
	l.SetReady("b", true)
	assert.True(t, l.CanStart())
	require.NoError(t, l.Start())
	assert.True(t, l.IsStarted())
	assert.ErrorIs(t, l.Start(), lobby.ErrStarted)
	assert.ErrorIs(t, l.Join("c", "Cy"), lobby.ErrStarted)

	// Reconnecting seats may still rename themselves.
	require.NoError(t, l.Join("a", "Annie"))
	assert.Equal(t, "Annie", l.GetPlayers()[0].Name)
}

func TestLobbyFull(t *testing.T) {
	l := lobby.NewLobby("room", 2, 2)
	require.NoError(t, l.Join("a", "Ann"))
	require.NoError(t, l.Join("b", "Bo"))
	assert.ErrorIs(t, l.Join("c", "Cy"), lobby.ErrFull)
	_, err := l.AddBot("greedy")
	assert.ErrorIs(t, err, lobby.ErrFull)
}

func TestAddBot(t *testing.T) {
	l := lobby.NewLobby("room", 2, 4)
	require.NoError(t, l.Join("a", "Ann"))
	id, err := l.AddBot("greedy")
	require.NoError(t, err)

	players := l.GetPlayers()
	require.Len(t, players, 2)
	bot := players[1]
	assert.Equal(t, id, bot.ID)
	assert.True(t, bot.IsBot())
	assert.True(t, bot.Ready)
	assert.Equal(t, "Bot 1", bot.Name)

	l.SetReady("a", true)
	assert.True(t, l.CanStart())

	l.Leave(id)
	assert.Len(t, l.GetPlayers(), 1)
}

func TestJoinCannotTakeBotSeat(t *testing.T) {
	l := lobby.NewLobby("room", 2, 4)
	id, err := l.AddBot("random")
	require.NoError(t, err)

	assert.ErrorIs(t, l.Join(id, "Mallory"), lobby.ErrBotSeat)
	assert.Equal(t, "Bot 1", l.GetPlayers()[0].Name)
}

func TestManager(t *testing.T) {
	m := lobby.NewManager(2, 4)
	a := m.Create()
	b := m.Create()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 8)

	l := m.Get(a)
	require.NotNil(t, l)
	assert.Equal(t, 2, l.MinPlayers)
	assert.Equal(t, 4, l.MaxPlayers)
	assert.ElementsMatch(t, []string{a, b}, m.IDs())

	m.Remove(a)
	assert.Nil(t, m.Get(a))
}
