package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"governor/internal/bot"
	"governor/internal/config"
	"governor/internal/engine"
	"governor/internal/log"
)

var simOpts struct {
	players int
	games   int
	seed    uint64
	policy  string
	limit   int
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play bot-only games and print the results",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		log.InitLog("governor", cfg.Log.Level)
		// The table goes to stdout; keep log lines out of it.
		log.SetOutput(cmd.ErrOrStderr())
		gameCfg := engine.GameConfig{Catalog: engine.BaseCatalog(), Rules: cfg.GameRules()}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("game", "seed", "rounds", "actions", "winners", "scores")
		for g := range simOpts.games {
			seed := simOpts.seed + uint64(g)
			names := make([]string, simOpts.players)
			for i := range names {
				names[i] = fmt.Sprintf("%s %d", simOpts.policy, i+1)
			}
			s, err := engine.Initialize(names, gameCfg, seed)
			if err != nil {
				return err
			}
			seats := map[string]bot.Policy{}
			for i, p := range s.Players {
				seats[p.ID] = bot.ByName(simOpts.policy, seed+uint64(i))
			}

			final, actions, err := bot.Run(s, seats, simOpts.limit)
			if errors.Is(err, bot.ErrStepLimit) {
				log.Warn("game %d: unfinished after %d actions", g+1, len(actions))
				continue
			}
			if err != nil {
				return fmt.Errorf("game %d: %w", g+1, err)
			}

			var scores []string
			for _, e := range final.Scores {
				scores = append(scores, fmt.Sprintf("%s=%d", e.PlayerID, e.Total))
			}
			t.Row(
				strconv.Itoa(g+1),
				strconv.FormatUint(seed, 10),
				strconv.Itoa(final.Round-1),
				strconv.Itoa(len(actions)),
				strings.Join(final.Winners, ","),
				strings.Join(scores, " "),
			)
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		return nil
	},
}

func init() {
	f := simulateCmd.Flags()
	f.IntVar(&simOpts.players, "players", 4, "seats per game")
	f.IntVar(&simOpts.games, "games", 10, "number of games")
	f.Uint64Var(&simOpts.seed, "seed", 1, "seed of the first game")
	f.StringVar(&simOpts.policy, "policy", "greedy", "bot policy: greedy or random")
	f.IntVar(&simOpts.limit, "limit", 5000, "give up on a game after this many actions")
}
