package game

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sabacc-game/internal/sabacc"
)

func testLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestTable(t *testing.T, variant Variant, cfg Config) *Table {
	t.Helper()
	table, err := NewTable("TESTT", variant, cfg, testLogger(), nil, nil)
	require.NoError(t, err)
	return table
}

// playOut stands every remaining turn and force-resolves any wildcard
// prompts until the game is over.
func playOut(t *testing.T, table *Table) {
	t.Helper()
	for i := 0; i < 100; i++ {
		switch table.Phase() {
		case PhasePlaying:
			id := table.CurrentPlayerID()
			require.NoError(t, table.SubmitAction(id, Action{Type: ActionStand}))
		case PhaseResolvingWildcards:
			table.ForceTimeout()
		case PhaseGameOver:
			return
		default:
			t.Fatalf("unexpected phase %s", table.Phase())
		}
	}
	t.Fatal("game did not finish")
}

func TestJoinRules(t *testing.T) {
	cfg := DefaultConfig(CorellianSpike)
	cfg.PlayerLimit = 2
	table := newTestTable(t, CorellianSpike, cfg)

	require.NoError(t, table.Join("p1", "Han"))
	assert.ErrorIs(t, table.Join("p1", "Han"), ErrAlreadyJoined)
	require.NoError(t, table.Join("p2", "Chewie"))
	assert.ErrorIs(t, table.Join("p3", "Lando"), ErrTableFull)

	assert.ErrorIs(t, table.Start("stranger"), ErrNotAMember)
	require.NoError(t, table.Start("p1"))
	assert.ErrorIs(t, table.Join("p4", "Leia"), ErrAlreadyStarted)
	assert.ErrorIs(t, table.Start("p1"), ErrAlreadyStarted)
}

func TestLeaveInLobby(t *testing.T) {
	table := newTestTable(t, CorellianSpike, DefaultConfig(CorellianSpike))
	require.NoError(t, table.Join("p1", "Han"))
	require.NoError(t, table.Join("p2", "Chewie"))

	require.NoError(t, table.Leave("p1"))
	assert.Equal(t, "p2", table.HostID())
	assert.ErrorIs(t, table.Leave("p1"), ErrNotAMember)
}

func TestCorellianFullGame(t *testing.T) {
	table := newTestTable(t, CorellianSpike, DefaultConfig(CorellianSpike))
	require.NoError(t, table.Join("p1", "Han"))
	require.NoError(t, table.Join("p2", "Chewie"))

	_, err := table.Standings()
	assert.ErrorIs(t, err, ErrGameNotOver)

	require.NoError(t, table.Start("p1"))
	assert.Equal(t, PhasePlaying, table.Phase())
	for _, p := range table.players {
		assert.Equal(t, 3, p.Hand.Count())
	}

	assert.ErrorIs(t, table.SubmitAction("p2", Action{Type: ActionStand}), ErrNotYourTurn)
	assert.ErrorIs(t, table.SubmitAction("ghost", Action{Type: ActionStand}), ErrNotAMember)

	// three rounds of both players standing
	for i := 0; i < 6; i++ {
		require.NoError(t, table.SubmitAction(table.CurrentPlayerID(), Action{Type: ActionStand}))
	}
	assert.Equal(t, PhaseGameOver, table.Phase())

	results, err := table.Standings()
	require.NoError(t, err)
	assert.Len(t, results.Standings, 2)
	assert.NotEmpty(t, results.Winners)
	assert.Equal(t, len(results.Winners) > 1, results.Tie)

	err = table.SubmitAction("p1", Action{Type: ActionStand})
	assert.ErrorIs(t, err, ErrInvalidForState)
}

func TestCorellianDrawDiscardReplace(t *testing.T) {
	table := newTestTable(t, CorellianSpike, DefaultConfig(CorellianSpike))
	require.NoError(t, table.Join("p1", "Han"))
	require.NoError(t, table.Join("p2", "Chewie"))
	require.NoError(t, table.Start("p1"))

	deckBefore := table.deck.Len()
	require.NoError(t, table.SubmitAction("p1", Action{Type: ActionDraw}))
	assert.Equal(t, 4, table.players[0].Hand.Count())
	assert.Equal(t, deckBefore-1, table.deck.Len())

	// a discarded card goes back under the deck, still drawable
	discarded := table.players[1].Hand.Cards()[0]
	require.NoError(t, table.SubmitAction("p2", Action{Type: ActionDiscard, CardIndex: 0}))
	assert.Equal(t, 2, table.players[1].Hand.Count())
	assert.Equal(t, deckBefore, table.deck.Len())
	assert.Equal(t, discarded, table.deck.Cards()[0])

	// a rejected replace leaves the deck untouched
	deckBefore = table.deck.Len()
	err := table.SubmitAction("p1", Action{Type: ActionReplace, CardIndex: 9})
	assert.ErrorIs(t, err, sabacc.ErrNotInHand)
	assert.Equal(t, deckBefore, table.deck.Len())

	// a replace swaps one card for another with the deck staying level
	require.NoError(t, table.SubmitAction("p1", Action{Type: ActionReplace, CardIndex: 0}))
	assert.Equal(t, 4, table.players[0].Hand.Count())
	assert.Equal(t, deckBefore, table.deck.Len())

	// nothing leaves the game: deck plus hands is the whole shoe
	total := table.deck.Len()
	for _, p := range table.players {
		total += p.Hand.Count()
	}
	assert.Equal(t, 62, total)
}

func TestDrawFromEmptyDeckKeepsTurn(t *testing.T) {
	table := newTestTable(t, CorellianSpike, DefaultConfig(CorellianSpike))
	require.NoError(t, table.Join("p1", "Han"))
	require.NoError(t, table.Join("p2", "Chewie"))
	require.NoError(t, table.Start("p1"))

	for table.deck.Len() > 0 {
		_, err := table.deck.Draw()
		require.NoError(t, err)
	}

	before := table.players[0].Hand.Cards()
	err := table.SubmitAction("p1", Action{Type: ActionDraw})
	assert.ErrorIs(t, err, sabacc.ErrDeckEmpty)
	assert.Equal(t, "p1", table.CurrentPlayerID())
	assert.Equal(t, PhasePlaying, table.Phase())
	assert.Equal(t, before, table.players[0].Hand.Cards())

	// the turn is not lost, the player can still act
	require.NoError(t, table.SubmitAction("p1", Action{Type: ActionStand}))
	assert.Equal(t, "p2", table.CurrentPlayerID())
}

func TestTurnOrderRoundRobin(t *testing.T) {
	table := newTestTable(t, CorellianSpike, DefaultConfig(CorellianSpike))
	for _, id := range []string{"p1", "p2", "p3"} {
		require.NoError(t, table.Join(id, id))
	}
	require.NoError(t, table.Start("p1"))

	want := []string{"p1", "p2", "p3", "p1", "p2", "p3"}
	for _, id := range want {
		assert.Equal(t, id, table.CurrentPlayerID())
		require.NoError(t, table.SubmitAction(id, Action{Type: ActionStand}))
	}
}

func TestJunkShrinksRoster(t *testing.T) {
	table := newTestTable(t, CorellianSpike, DefaultConfig(CorellianSpike))
	for _, id := range []string{"p1", "p2", "p3"} {
		require.NoError(t, table.Join(id, id))
	}
	require.NoError(t, table.Start("p1"))

	require.NoError(t, table.SubmitAction("p1", Action{Type: ActionStand}))
	require.NoError(t, table.SubmitAction("p2", Action{Type: ActionJunk}))
	assert.Equal(t, "p3", table.CurrentPlayerID())

	require.NoError(t, table.SubmitAction("p3", Action{Type: ActionStand}))
	assert.Equal(t, "p1", table.CurrentPlayerID())

	// a junked player can take no further actions
	err := table.SubmitAction("p2", Action{Type: ActionStand})
	assert.ErrorIs(t, err, ErrNotAMember)

	require.NoError(t, table.SubmitAction("p1", Action{Type: ActionJunk}))
	assert.Equal(t, PhaseGameOver, table.Phase())

	results, err := table.Standings()
	require.NoError(t, err)
	require.Len(t, results.Winners, 1)
	assert.Equal(t, "p3", results.Winners[0].Identity.ID)
	require.Len(t, results.Standings, 3)
	assert.False(t, results.Standings[0].Junked)
	assert.True(t, results.Standings[1].Junked)
	assert.True(t, results.Standings[2].Junked)
	assert.Equal(t, "Junked", results.Standings[1].Evaluation.Category)
}

func TestSoleSurvivorWins(t *testing.T) {
	table := newTestTable(t, CorellianSpike, DefaultConfig(CorellianSpike))
	require.NoError(t, table.Join("p1", "Han"))
	require.NoError(t, table.Join("p2", "Chewie"))
	require.NoError(t, table.Start("p1"))

	require.NoError(t, table.SubmitAction("p1", Action{Type: ActionJunk}))
	assert.Equal(t, PhaseGameOver, table.Phase())

	results, err := table.Standings()
	require.NoError(t, err)
	require.Len(t, results.Winners, 1)
	assert.Equal(t, "p2", results.Winners[0].Identity.ID)
}

func TestKesselStagedChoice(t *testing.T) {
	table := newTestTable(t, Kessel, DefaultConfig(Kessel))
	require.NoError(t, table.Join("p1", "Han"))
	require.NoError(t, table.Join("p2", "Chewie"))
	require.NoError(t, table.Start("p1"))

	assert.Equal(t, 20, table.posDeck.Len())
	assert.Equal(t, 20, table.negDeck.Len())

	require.NoError(t, table.SubmitAction("p1", Action{Type: ActionDrawPositive}))
	assert.Equal(t, PhaseChoosingKeptCard, table.Phase())
	assert.Equal(t, "p1", table.CurrentPlayerID())

	// only the kept-card choice is accepted now
	err := table.SubmitAction("p1", Action{Type: ActionStand})
	assert.ErrorIs(t, err, ErrInvalidForState)
	err = table.SubmitAction("p2", Action{Type: ActionKeepDrawn})
	assert.ErrorIs(t, err, ErrNotYourTurn)

	require.NoError(t, table.SubmitAction("p1", Action{Type: ActionKeepDrawn}))
	assert.Equal(t, PhasePlaying, table.Phase())
	assert.Equal(t, "p2", table.CurrentPlayerID())
	// the displaced card went back to the deck
	assert.Equal(t, 20, table.posDeck.Len())
	assert.Equal(t, 2, table.players[0].Hand.Count())

	negBefore, _ := table.players[1].Hand.Slot(sabacc.SlotNegative)
	require.NoError(t, table.SubmitAction("p2", Action{Type: ActionDrawNegative}))
	require.NoError(t, table.SubmitAction("p2", Action{Type: ActionKeepExisting}))
	negAfter, _ := table.players[1].Hand.Slot(sabacc.SlotNegative)
	assert.Equal(t, negBefore, negAfter)
	assert.Equal(t, 20, table.negDeck.Len())

	playOut(t, table)

	results, err := table.Standings()
	require.NoError(t, err)
	for _, s := range results.Standings {
		assert.NotEmpty(t, s.Evaluation.Category)
		assert.NotEqual(t, "Incomplete Hand", s.Evaluation.Category)
		require.NotNil(t, s.Evaluation.Total)
	}
}

func TestKesselTimeoutKeepsExistingByDefault(t *testing.T) {
	table := newTestTable(t, Kessel, DefaultConfig(Kessel))
	require.NoError(t, table.Join("p1", "Han"))
	require.NoError(t, table.Join("p2", "Chewie"))
	require.NoError(t, table.Start("p1"))

	before, _ := table.players[0].Hand.Slot(sabacc.SlotPositive)
	require.NoError(t, table.SubmitAction("p1", Action{Type: ActionDrawPositive}))
	table.ForceTimeout()

	assert.Equal(t, PhasePlaying, table.Phase())
	after, _ := table.players[0].Hand.Slot(sabacc.SlotPositive)
	assert.Equal(t, before, after)
	assert.Equal(t, 20, table.posDeck.Len())
}

func TestPlayingTimeoutStands(t *testing.T) {
	table := newTestTable(t, CorellianSpike, DefaultConfig(CorellianSpike))
	require.NoError(t, table.Join("p1", "Han"))
	require.NoError(t, table.Join("p2", "Chewie"))
	require.NoError(t, table.Start("p1"))

	table.ForceTimeout()
	assert.Equal(t, "p2", table.CurrentPlayerID())
	assert.Equal(t, 3, table.players[0].Hand.Count())
}

func TestSoloGameGetsSyntheticOpponent(t *testing.T) {
	table := newTestTable(t, CorellianSpike, DefaultConfig(CorellianSpike))
	require.NoError(t, table.Join("p1", "Han"))
	require.NoError(t, table.Start("p1"))

	playOut(t, table)

	results, err := table.Standings()
	require.NoError(t, err)
	require.Len(t, results.Standings, 2)

	synthetic := 0
	for _, s := range results.Standings {
		if s.Player.Identity.Kind == SyntheticOpponent {
			synthetic++
			assert.Equal(t, 3, s.Player.Hand.Count())
		}
	}
	assert.Equal(t, 1, synthetic)
}

func TestSoloKesselGame(t *testing.T) {
	table := newTestTable(t, Kessel, DefaultConfig(Kessel))
	require.NoError(t, table.Join("p1", "Han"))
	require.NoError(t, table.Start("p1"))

	playOut(t, table)

	results, err := table.Standings()
	require.NoError(t, err)
	require.Len(t, results.Standings, 2)
	for _, s := range results.Standings {
		assert.NotEqual(t, "Incomplete Hand", s.Evaluation.Category)
	}
}

func TestTraditionalCallEnd(t *testing.T) {
	table := newTestTable(t, Traditional, DefaultConfig(Traditional))
	require.NoError(t, table.Join("p1", "Han"))
	require.NoError(t, table.Join("p2", "Chewie"))
	require.NoError(t, table.Start("p1"))

	// the game is open ended, rounds keep going
	for i := 0; i < 10; i++ {
		require.NoError(t, table.SubmitAction(table.CurrentPlayerID(), Action{Type: ActionStand}))
	}
	assert.Equal(t, PhasePlaying, table.Phase())

	require.NoError(t, table.SubmitAction("p1", Action{Type: ActionCallEnd}))
	assert.Equal(t, "p2", table.CurrentPlayerID())

	err := table.SubmitAction("p2", Action{Type: ActionCallEnd})
	assert.ErrorIs(t, err, ErrEndAlreadyCalled)

	// everyone else gets one last turn, then the game ends
	require.NoError(t, table.SubmitAction("p2", Action{Type: ActionStand}))
	assert.Equal(t, PhaseGameOver, table.Phase())
}

func TestCoruscantSelectAndRefill(t *testing.T) {
	table := newTestTable(t, CoruscantShift, DefaultConfig(CoruscantShift))
	require.NoError(t, table.Join("p1", "Han"))
	require.NoError(t, table.Join("p2", "Chewie"))
	require.NoError(t, table.Start("p1"))

	assert.Contains(t, []int{-10, -5, 0, 5, 10}, table.targetNumber)
	assert.Contains(t, []sabacc.Suit{sabacc.Circle, sabacc.Triangle, sabacc.Square}, table.targetSuit)

	require.NoError(t, table.SubmitAction("p1", Action{Type: ActionSelectKeep, Keep: []int{0, 1}}))
	assert.Equal(t, 2, table.players[0].Hand.Count())

	// the second player keeps everything, closing the round
	require.NoError(t, table.SubmitAction("p2", Action{Type: ActionSelectKeep, Keep: []int{0, 1, 2, 3, 4}}))

	// both hands are refilled to five, earlier keeps locked in
	hanHeld := table.players[0].Hand.Held()
	require.Len(t, hanHeld, 5)
	locked := 0
	for _, hc := range hanHeld {
		if hc.Locked {
			locked++
		}
	}
	assert.Equal(t, 2, locked)

	// locked cards cannot be dropped in the second selection
	err := table.SubmitAction("p1", Action{Type: ActionSelectKeep, Keep: []int{2, 3, 4}})
	assert.ErrorIs(t, err, sabacc.ErrCardLocked)

	require.NoError(t, table.SubmitAction("p1", Action{Type: ActionSelectKeep, Keep: []int{0, 1, 2}}))
	require.NoError(t, table.SubmitAction("p2", Action{Type: ActionSelectKeep, Keep: []int{0, 1, 2, 3, 4}}))
	assert.Equal(t, PhaseGameOver, table.Phase())

	// every card is in the shoe, a hand or the discard pile
	total := table.deck.Len() + len(table.discards)
	for _, s := range mustStandings(t, table).Standings {
		total += s.Player.Hand.Count()
	}
	assert.Equal(t, 7*62, total)
}

func TestResetRecyclesFinishedTable(t *testing.T) {
	table := newTestTable(t, CorellianSpike, DefaultConfig(CorellianSpike))
	require.NoError(t, table.Join("p1", "Han"))
	require.NoError(t, table.Join("p2", "Chewie"))
	require.NoError(t, table.Join("p3", "Lando"))
	require.NoError(t, table.Start("p1"))

	assert.ErrorIs(t, table.Reset("p1"), ErrGameNotOver)

	require.NoError(t, table.SubmitAction("p1", Action{Type: ActionStand}))
	require.NoError(t, table.SubmitAction("p2", Action{Type: ActionJunk}))
	playOut(t, table)
	require.Equal(t, PhaseGameOver, table.Phase())

	assert.ErrorIs(t, table.Reset("stranger"), ErrNotAMember)

	// a junked player may ask for the rematch too
	require.NoError(t, table.Reset("p2"))
	assert.Equal(t, PhaseLobby, table.Phase())

	_, err := table.Standings()
	assert.ErrorIs(t, err, ErrGameNotOver)

	// survivors first, then the folded seat, all with empty hands
	require.Len(t, table.players, 3)
	assert.Equal(t, "p2", table.players[2].Identity.ID)
	for _, p := range table.players {
		assert.Equal(t, 0, p.Hand.Count())
	}
	assert.Empty(t, table.junked)

	require.NoError(t, table.Start("p1"))
	playOut(t, table)
	assert.Len(t, mustStandings(t, table).Standings, 3)
}

func TestResetDropsSyntheticOpponent(t *testing.T) {
	table := newTestTable(t, CorellianSpike, DefaultConfig(CorellianSpike))
	require.NoError(t, table.Join("p1", "Han"))
	require.NoError(t, table.Start("p1"))
	playOut(t, table)

	require.NoError(t, table.Reset("p1"))
	require.Len(t, table.players, 1)
	assert.Equal(t, "p1", table.players[0].Identity.ID)
}

func mustStandings(t *testing.T, table *Table) RankedResults {
	t.Helper()
	results, err := table.Standings()
	require.NoError(t, err)
	return results
}
