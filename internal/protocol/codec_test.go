package protocol_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"governor/internal/bot"
	"governor/internal/engine"
	"governor/internal/protocol"
)

func TestDecodeAction(t *testing.T) {
	tests := []struct {
		kind    engine.ActionKind
		payload string
		want    engine.Action
	}{
		{engine.ActionSelectRole, `{"role":"Councilor"}`, engine.SelectRole{PlayerID: "p1", Role: engine.RoleCouncilor}},
		{engine.ActionSelectRole, ``, engine.SelectRole{PlayerID: "p1"}},
		{engine.ActionBuild, `{"card_id":"smithy-01","payment_ids":["hero-02"],"coins":1}`,
			engine.Build{PlayerID: "p1", CardID: "smithy-01", PaymentIDs: []string{"hero-02"}, Coins: 1}},
		{engine.ActionProduce, `{"building_ids":["indigo-plant-01"]}`,
			engine.Produce{PlayerID: "p1", BuildingIDs: []string{"indigo-plant-01"}}},
		{engine.ActionTrade, `{"building_id":"sugar-mill-03"}`, engine.Trade{PlayerID: "p1", BuildingID: "sugar-mill-03"}},
		{engine.ActionCouncilKeep, `{"discard_ids":["a","b"]}`, engine.CouncilKeep{PlayerID: "p1", DiscardIDs: []string{"a", "b"}}},
		{engine.ActionPass, `{}`, engine.Pass{PlayerID: "p1"}},
		{engine.ActionEndRound, ``, engine.EndRound{}},
		{engine.ActionChapel, `{"card_id":"statue-01"}`, engine.Chapel{PlayerID: "p1", CardID: "statue-01"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			got, err := protocol.DecodeAction(tt.kind, "p1", json.RawMessage(tt.payload))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeActionErrors(t *testing.T) {
	_, err := protocol.DecodeAction(engine.ActionSelectRole, "p1", json.RawMessage(`{"role":"Mayor"}`))
	assert.Error(t, err)
	_, err = protocol.DecodeAction("steal", "p1", nil)
	assert.Error(t, err)
	_, err = protocol.DecodeAction(engine.ActionBuild, "p1", json.RawMessage(`[1,2]`))
	assert.Error(t, err)

	assert.True(t, protocol.IsAction("council_keep"))
	assert.False(t, protocol.IsAction(protocol.MsgJoin))
}

func TestGameLogReplay(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Rules.EndBuildingCount = 5
	s, err := engine.Initialize([]string{"Ann", "Bo", "Cy"}, cfg, 21)
	require.NoError(t, err)
	table := map[string]bot.Policy{"p1": bot.Greedy{}, "p2": bot.NewRandom(1), "p3": bot.NewRandom(2)}
	final, actions, err := bot.Run(s, table, 4000)
	if err != nil {
		require.ErrorIs(t, err, bot.ErrStepLimit)
	}

	players := []protocol.LogPlayer{{ID: "p1", Name: "Ann"}, {ID: "p2", Name: "Bo"}, {ID: "p3", Name: "Cy"}}
	log := protocol.NewGameLog("g1", 21, cfg.Rules, players, actions)

	// Through JSON and back, as a downloaded log would be.
	data, err := json.Marshal(log)
	require.NoError(t, err)
	var loaded protocol.GameLog
	require.NoError(t, json.Unmarshal(data, &loaded))

	replayed, err := loaded.Replay()
	require.NoError(t, err)
	assert.Equal(t, final.Players, replayed.Players)
	assert.Equal(t, final.Phase, replayed.Phase)
	assert.Equal(t, final.Round, replayed.Round)
	assert.Equal(t, final.Pool.Shuffles, replayed.Pool.Shuffles)
}

func TestEnvelopeDecode(t *testing.T) {
	env := protocol.MustEnvelope(protocol.MsgJoin, protocol.JoinMsg{PlayerID: "x", Name: "Ann"})
	var join protocol.JoinMsg
	require.NoError(t, env.Decode(&join))
	assert.Equal(t, "Ann", join.Name)

	var empty protocol.ReadyMsg
	require.NoError(t, protocol.Envelope{Type: protocol.MsgReady}.Decode(&empty))
	assert.False(t, empty.Ready)
}
