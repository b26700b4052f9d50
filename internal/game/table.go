package game

import (
	"math"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"sabacc-game/internal/protocol"
	"sabacc-game/internal/sabacc"
)

// Phase represents the current phase of a table.
type Phase string

const (
	PhaseLobby              Phase = "lobby"               // waiting for players
	PhasePlaying            Phase = "playing"             // awaiting the current player's action
	PhaseChoosingKeptCard   Phase = "choosing_kept_card"  // awaiting a keep_drawn/keep_existing choice
	PhaseResolvingWildcards Phase = "resolving_wildcards" // end game, Impostor dice pending
	PhaseGameOver           Phase = "game_over"           // final standings available
)

// MessageSender delivers an already-encoded frame to one client. The Hub
// provides the implementation; a nil sender drops all output.
type MessageSender func(clientID string, message []byte)

// ResultSink receives the final standings of a finished game, for
// persistence outside the game loop.
type ResultSink func(tableCode string, variant Variant, results RankedResults)

// Standing is one evaluated seat in the final ranking.
type Standing struct {
	Player     *Player
	Evaluation Evaluation
	Junked     bool
}

// RankedResults is the full outcome of a finished game. Standings are
// ordered best first, with junked players appended after all active seats.
type RankedResults struct {
	Standings []Standing
	Winners   []*Player
	Tie       bool
}

// Coruscant Shift target dice. The gold die sets the target number, the
// silver die the target suit.
var (
	goldDieFaces   = []int{-10, 10, -5, 5, 0, 0}
	silverDieFaces = []sabacc.Suit{sabacc.Circle, sabacc.Circle, sabacc.Triangle, sabacc.Triangle, sabacc.Square, sabacc.Square}
)

// Table is one game of Sabacc from lobby to final standings. All exported
// methods are safe for concurrent use; everything below them assumes the
// lock is held.
type Table struct {
	mu sync.Mutex

	code    string
	variant Variant
	config  Config
	log     logrus.FieldLogger

	phase           Phase
	players         []*Player
	junked          []*Player
	current         int
	roundsCompleted int

	finalRound bool
	caller     *Player

	deck    *sabacc.Deck
	posDeck *sabacc.Deck
	negDeck *sabacc.Deck

	targetNumber int
	targetSuit   sabacc.Suit

	resolver *wildcardResolver
	discards []sabacc.Card

	startedSolo bool
	results     *RankedResults

	send     MessageSender
	onResult ResultSink
}

// NewTable creates an empty table in the lobby phase.
func NewTable(code string, variant Variant, cfg Config, log logrus.FieldLogger, send MessageSender, onResult ResultSink) (*Table, error) {
	if err := cfg.Validate(variant); err != nil {
		return nil, err
	}
	return &Table{
		code:     code,
		variant:  variant,
		config:   cfg,
		log:      log.WithFields(logrus.Fields{"table": code, "variant": variant}),
		phase:    PhaseLobby,
		send:     send,
		onResult: onResult,
	}, nil
}

func (t *Table) Code() string {
	return t.code
}

func (t *Table) Variant() Variant {
	return t.variant
}

func (t *Table) Phase() Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.phase
}

// HostID returns the ID of the first seated player, or "" for an empty table.
func (t *Table) HostID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.players) == 0 {
		return ""
	}
	return t.players[0].Identity.ID
}

// CurrentPlayerID returns the ID of the player the table is waiting on, or
// "" when no single player holds the turn.
func (t *Table) CurrentPlayerID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.phase {
	case PhasePlaying, PhaseChoosingKeptCard:
		return t.players[t.current].Identity.ID
	case PhaseResolvingWildcards:
		if p, ok := t.resolver.current(); ok {
			return p.player.Identity.ID
		}
	}
	return ""
}

// IsMember reports whether the given player is seated, junked or not.
func (t *Table) IsMember(playerID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.findPlayer(playerID) != nil || t.findJunked(playerID) != nil
}

// Join seats a new player. Only possible before the deal.
func (t *Table) Join(playerID, name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.phase != PhaseLobby {
		return ErrAlreadyStarted
	}
	if t.findPlayer(playerID) != nil {
		return ErrAlreadyJoined
	}
	if len(t.players) >= t.config.PlayerLimit {
		return ErrTableFull
	}

	t.players = append(t.players, NewPlayer(HumanIdentity(playerID, name), t.variant.Slotted()))
	t.log.WithField("player", name).Info("player joined")
	t.broadcastLobby()
	return nil
}

// Leave removes a player. In the lobby the seat is simply freed; during
// play the departing player's hand is junked.
func (t *Table) Leave(playerID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.playerIndex(playerID)
	if i < 0 {
		if t.findJunked(playerID) != nil {
			return nil
		}
		return ErrNotAMember
	}

	switch t.phase {
	case PhaseLobby:
		t.players = append(t.players[:i], t.players[i+1:]...)
		t.broadcastLobby()
		return nil
	case PhasePlaying, PhaseChoosingKeptCard:
		if t.phase == PhaseChoosingKeptCard && i == t.current {
			t.abandonStaged(t.players[i])
			t.phase = PhasePlaying
		}
		t.junkAt(i)
		return nil
	default:
		return nil
	}
}

// Start shuffles, deals and opens the first turn. A single seated player
// gets a synthetic opponent whose hand is revealed at the end of the game.
func (t *Table) Start(playerID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.phase != PhaseLobby {
		return ErrAlreadyStarted
	}
	if t.findPlayer(playerID) == nil {
		return ErrNotAMember
	}
	if len(t.players) < 1 {
		return ErrTooFewPlayers
	}
	t.startedSolo = len(t.players) == 1

	t.buildDecks()
	for _, p := range t.players {
		if err := t.dealHand(p); err != nil {
			return err
		}
	}

	t.phase = PhasePlaying
	t.current = 0
	t.roundsCompleted = 0
	t.log.WithField("players", len(t.players)).Info("game started")

	t.broadcast("game_start", t.gameStartPayload())
	for _, p := range t.players {
		t.sendTo(p, "deal_hand", protocol.DealHandPayload{
			Cards:  p.Hand.Cards(),
			Render: p.Hand.String(),
		})
	}
	t.promptTurn()
	return nil
}

// SubmitAction applies one turn action from the given player.
func (t *Table) SubmitAction(playerID string, action Action) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	active := t.findPlayer(playerID)
	if active == nil {
		return ErrNotAMember
	}

	switch t.phase {
	case PhaseChoosingKeptCard:
		if t.players[t.current] != active {
			return ErrNotYourTurn
		}
		switch action.Type {
		case ActionKeepDrawn:
			return t.resolveKeptCard(true)
		case ActionKeepExisting:
			return t.resolveKeptCard(false)
		default:
			return ErrInvalidForState
		}
	case PhasePlaying:
		// handled below
	default:
		return ErrInvalidForState
	}

	if t.players[t.current] != active {
		return ErrNotYourTurn
	}
	if !variantActions[t.variant][action.Type] {
		return ErrInvalidForState
	}

	switch action.Type {
	case ActionDraw:
		return t.handleDraw(active)
	case ActionDrawPositive:
		return t.handleDrawSlotted(active, sabacc.SlotPositive)
	case ActionDrawNegative:
		return t.handleDrawSlotted(active, sabacc.SlotNegative)
	case ActionDiscard:
		return t.handleDiscard(active, action.CardIndex)
	case ActionReplace:
		return t.handleReplace(active, action.CardIndex)
	case ActionSelectKeep:
		return t.handleSelectKeep(active, action.Keep)
	case ActionStand:
		t.announceAction(active, ActionStand)
		t.advanceTurn()
		return nil
	case ActionCallEnd:
		return t.handleCallEnd(active)
	case ActionJunk:
		t.junkAt(t.current)
		return nil
	default:
		return ErrInvalidForState
	}
}

// ResolveImpostorChoice settles the pending Impostor prompt with one of the
// two rolled dice.
func (t *Table) ResolveImpostorChoice(playerID string, value int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.phase != PhaseResolvingWildcards {
		return ErrInvalidForState
	}
	prompt, ok := t.resolver.current()
	if !ok {
		return ErrInvalidForState
	}
	if prompt.player.Identity.ID != playerID {
		return ErrNotYourTurn
	}
	if err := t.resolver.resolve(value); err != nil {
		return err
	}
	t.announceImpostor(prompt.player, prompt.slot, value)
	t.pumpResolver()
	return nil
}

// ForceTimeout applies the default action for whatever the table is
// currently waiting on. The Hub calls this when a turn timer fires.
func (t *Table) ForceTimeout() {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.phase {
	case PhasePlaying:
		t.log.WithField("player", t.players[t.current].Identity.Name).Info("turn timed out, standing")
		t.announceAction(t.players[t.current], ActionStand)
		t.advanceTurn()
	case PhaseChoosingKeptCard:
		t.resolveKeptCard(t.config.TimeoutKeepsDrawn)
	case PhaseResolvingWildcards:
		prompt, ok := t.resolver.current()
		if !ok {
			return
		}
		value, err := t.resolver.resolveRandom()
		if err != nil {
			return
		}
		t.announceImpostor(prompt.player, prompt.slot, value)
		t.pumpResolver()
	}
}

// Reset recycles a finished table into a fresh lobby with the same
// settings. Every human from the finished game keeps their seat; junked
// players return in the order they folded, after the survivors.
func (t *Table) Reset(playerID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.phase != PhaseGameOver {
		return ErrGameNotOver
	}
	if t.findPlayer(playerID) == nil && t.findJunked(playerID) == nil {
		return ErrNotAMember
	}

	var roster []*Player
	for _, p := range append(t.players, t.junked...) {
		if p.Identity.Kind == Human {
			roster = append(roster, NewPlayer(p.Identity, t.variant.Slotted()))
		}
	}

	t.phase = PhaseLobby
	t.players = roster
	t.junked = nil
	t.current = 0
	t.roundsCompleted = 0
	t.finalRound = false
	t.caller = nil
	t.deck, t.posDeck, t.negDeck = nil, nil, nil
	t.targetNumber = 0
	t.targetSuit = sabacc.SuitNone
	t.resolver = nil
	t.discards = nil
	t.startedSolo = false
	t.results = nil

	t.log.WithField("players", len(roster)).Info("table reset for another game")
	t.broadcastLobby()
	return nil
}

// Standings returns the final ranking once the game is over.
func (t *Table) Standings() (RankedResults, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.results == nil {
		return RankedResults{}, ErrGameNotOver
	}
	return *t.results, nil
}

// --- turn handlers, lock held ---

func (t *Table) handleDraw(p *Player) error {
	card, err := t.deck.Draw()
	if err != nil {
		return err
	}
	p.Hand.Add(card)
	t.announceAction(p, ActionDraw)
	t.sendTo(p, "deal_hand", protocol.DealHandPayload{Cards: p.Hand.Cards(), Render: p.Hand.String()})
	t.advanceTurn()
	return nil
}

func (t *Table) handleDrawSlotted(p *Player, slot sabacc.Slot) error {
	deck, tag := t.negDeck, sabacc.DeckNegative
	if slot == sabacc.SlotPositive {
		deck, tag = t.posDeck, sabacc.DeckPositive
	}
	card, err := deck.Draw()
	if err != nil {
		return err
	}
	if err := p.Hand.StageDrawn(card, tag); err != nil {
		deck.ReturnToBottom(card)
		return err
	}
	existing, _ := p.Hand.Slot(slot)
	t.phase = PhaseChoosingKeptCard
	t.sendTo(p, "choose_kept_card", protocol.ChooseKeptCardPayload{Drawn: card, Existing: existing})
	return nil
}

// resolveKeptCard commits the staged draw one way or the other and sends the
// displaced card back to the bottom of its source deck.
func (t *Table) resolveKeptCard(keepDrawn bool) error {
	p := t.players[t.current]
	staged := p.Hand.Staged()
	if staged == nil {
		return ErrInvalidForState
	}
	returned, err := p.Hand.ResolveStaged(keepDrawn)
	if err != nil {
		return err
	}
	if returned != nil {
		t.sourceDeck(staged.Source).ReturnToBottom(*returned)
	}
	t.phase = PhasePlaying
	action := ActionKeepExisting
	if keepDrawn {
		action = ActionKeepDrawn
	}
	t.announceAction(p, action)
	t.sendTo(p, "deal_hand", protocol.DealHandPayload{Cards: p.Hand.Cards(), Render: p.Hand.String()})
	t.advanceTurn()
	return nil
}

func (t *Table) handleDiscard(p *Player, index int) error {
	if !t.config.AllowDiscard {
		return ErrInvalidForState
	}
	card, err := p.Hand.Remove(index)
	if err != nil {
		return err
	}
	t.deck.ReturnToBottom(card)
	t.announceAction(p, ActionDiscard)
	t.advanceTurn()
	return nil
}

func (t *Table) handleReplace(p *Player, index int) error {
	// Validate before drawing so a rejected action leaves the deck alone.
	held := p.Hand.Held()
	if index < 0 || index >= len(held) {
		return sabacc.ErrNotInHand
	}
	if held[index].Locked {
		return sabacc.ErrCardLocked
	}
	drawn, err := t.deck.Draw()
	if err != nil {
		return err
	}
	old, err := p.Hand.Replace(index, drawn)
	if err != nil {
		t.deck.ReturnToBottom(drawn)
		return err
	}
	t.deck.ReturnToBottom(old)
	t.announceAction(p, ActionReplace)
	t.sendTo(p, "deal_hand", protocol.DealHandPayload{Cards: p.Hand.Cards(), Render: p.Hand.String()})
	t.advanceTurn()
	return nil
}

func (t *Table) handleSelectKeep(p *Player, keep []int) error {
	removed, err := p.Hand.KeepOnly(keep)
	if err != nil {
		return err
	}
	t.discards = append(t.discards, removed...)
	t.announceAction(p, ActionSelectKeep)
	t.sendTo(p, "deal_hand", protocol.DealHandPayload{Cards: p.Hand.Cards(), Render: p.Hand.String()})
	t.advanceTurn()
	return nil
}

func (t *Table) handleCallEnd(p *Player) error {
	if t.finalRound {
		return ErrEndAlreadyCalled
	}
	t.finalRound = true
	t.caller = p
	t.log.WithField("player", p.Identity.Name).Info("final round called")
	t.broadcast("final_round_called", protocol.FinalRoundCalledPayload{
		PlayerID:   p.Identity.ID,
		PlayerName: p.Identity.Name,
	})
	t.advanceTurn()
	return nil
}

// junkAt folds the player at index i. The remaining roster keeps its order;
// a sole survivor ends the game immediately.
func (t *Table) junkAt(i int) {
	heldTurn := i == t.current
	p := t.players[i]
	t.players = append(t.players[:i], t.players[i+1:]...)
	t.junked = append(t.junked, p)
	t.log.WithField("player", p.Identity.Name).Info("player junked")
	t.broadcast("player_junked", protocol.PlayerJunkedPayload{
		PlayerID:   p.Identity.ID,
		PlayerName: p.Identity.Name,
	})

	if len(t.players) <= 1 {
		t.beginEndGame()
		return
	}
	if t.finalRound && p == t.caller {
		// the caller left, the final round ends here
		t.beginEndGame()
		return
	}
	switch {
	case heldTurn:
		// the next seat shifted into index i, advance into it
		t.current = i - 1
		t.advanceTurn()
	case i < t.current:
		t.current--
	}
}

// advanceTurn passes the turn to the next seat, handling round boundaries,
// the final-round caller and the Coruscant Shift refill.
func (t *Table) advanceTurn() {
	next := t.current + 1
	boundary := false
	if next >= len(t.players) {
		next = 0
		boundary = true
	}
	if t.finalRound && t.players[next] == t.caller {
		t.beginEndGame()
		return
	}
	if boundary {
		t.roundsCompleted++
		if t.config.Rounds > 0 && t.roundsCompleted >= t.config.Rounds {
			t.beginEndGame()
			return
		}
		if t.variant == CoruscantShift {
			t.refillHands()
		}
	}
	t.current = next
	t.promptTurn()
}

// refillHands locks every kept card and draws each hand back up to the
// starting size for the next selection round.
func (t *Table) refillHands() {
	for _, p := range t.players {
		p.Hand.LockAll()
		for p.Hand.Count() < t.config.StartingCards {
			card, err := t.deck.Draw()
			if err != nil {
				// short deck, the hand plays on with what it has
				t.log.WithError(err).Warn("deck exhausted during refill")
				break
			}
			p.Hand.Add(card)
		}
		t.sendTo(p, "deal_hand", protocol.DealHandPayload{Cards: p.Hand.Cards(), Render: p.Hand.String()})
	}
}

// beginEndGame freezes all hands and starts wildcard resolution. A solo
// table deals the synthetic opponent's hand here, unseen until now.
func (t *Table) beginEndGame() {
	t.phase = PhaseResolvingWildcards

	if t.startedSolo {
		opponent := NewPlayer(SyntheticIdentity(), t.variant.Slotted())
		if err := t.dealHand(opponent); err != nil {
			t.log.WithError(err).Error("could not deal synthetic opponent")
		} else {
			t.players = append(t.players, opponent)
		}
	}
	if len(t.players) == 0 {
		t.finishGame()
		return
	}

	t.resolver = newWildcardResolver(t.players)
	t.pumpResolver()
}

// pumpResolver walks the Impostor queue, auto-resolving synthetic prompts
// and stopping at the first human one. When the queue drains, Sylops take
// their mirrored values and the game finishes.
func (t *Table) pumpResolver() {
	for {
		prompt, ok := t.resolver.current()
		if !ok {
			break
		}
		if prompt.player.Identity.Kind == SyntheticOpponent {
			value, err := t.resolver.resolveRandom()
			if err != nil {
				return
			}
			t.announceImpostor(prompt.player, prompt.slot, value)
			continue
		}
		t.sendTo(prompt.player, "impostor_prompt", protocol.ImpostorPromptPayload{
			Slot: string(prompt.slot),
			Dice: prompt.dice,
		})
		return
	}
	assignSylopValues(t.players)
	t.finishGame()
}

// finishGame evaluates every frozen hand, ranks the table and publishes the
// final standings.
func (t *Table) finishGame() {
	standings := make([]Standing, 0, len(t.players)+len(t.junked))
	for _, p := range t.players {
		standings = append(standings, Standing{Player: p, Evaluation: t.evaluate(p)})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Evaluation.Key.Less(standings[j].Evaluation.Key)
	})

	var winners []*Player
	if len(standings) > 0 {
		best := standings[0].Evaluation.Key
		for _, s := range standings {
			if s.Evaluation.Key.Equal(best) {
				winners = append(winners, s.Player)
			}
		}
	}
	for _, p := range t.junked {
		standings = append(standings, Standing{
			Player:     p,
			Evaluation: Evaluation{Key: RankKey{math.Inf(1)}, Category: "Junked"},
			Junked:     true,
		})
	}

	t.results = &RankedResults{
		Standings: standings,
		Winners:   winners,
		Tie:       len(winners) > 1,
	}
	t.phase = PhaseGameOver
	t.log.WithField("winners", len(winners)).Info("game over")

	t.broadcast("game_over", t.gameOverPayload())
	if t.onResult != nil {
		t.onResult(t.code, t.variant, *t.results)
	}
}

func (t *Table) evaluate(p *Player) Evaluation {
	switch t.variant {
	case Kessel:
		return evaluateKessel(p)
	case CorellianSpike:
		return evaluateCorellian(p.Hand.Cards())
	case CoruscantShift:
		return evaluateCoruscant(p.Hand.Cards(), t.targetNumber, t.targetSuit)
	default:
		return evaluateTraditional(p.Hand.Cards())
	}
}

// --- setup, lock held ---

func (t *Table) buildDecks() {
	switch t.variant {
	case Kessel:
		t.posDeck = buildKesselDeck(1)
		t.negDeck = buildKesselDeck(-1)
	case CorellianSpike:
		t.deck = buildCorellianDeck()
	case CoruscantShift:
		t.deck = buildCoruscantDeck()
		t.targetSuit = sabacc.Circle
		if t.config.TargetRandomization {
			t.targetNumber = goldDieFaces[rand.IntN(len(goldDieFaces))]
			t.targetSuit = silverDieFaces[rand.IntN(len(silverDieFaces))]
		}
	default:
		t.deck = buildTraditionalDeck()
	}
}

func (t *Table) dealHand(p *Player) error {
	if t.variant.Slotted() {
		pos, err := t.posDeck.Draw()
		if err != nil {
			return err
		}
		neg, err := t.negDeck.Draw()
		if err != nil {
			return err
		}
		p.Hand.SetSlot(sabacc.SlotPositive, pos)
		p.Hand.SetSlot(sabacc.SlotNegative, neg)
		return nil
	}
	for i := 0; i < t.config.StartingCards; i++ {
		card, err := t.deck.Draw()
		if err != nil {
			return err
		}
		p.Hand.Add(card)
	}
	return nil
}

func (t *Table) sourceDeck(tag sabacc.DeckTag) *sabacc.Deck {
	switch tag {
	case sabacc.DeckPositive:
		return t.posDeck
	case sabacc.DeckNegative:
		return t.negDeck
	default:
		return t.deck
	}
}

// abandonStaged discards a pending drawn card back to its deck, for players
// who leave mid-choice.
func (t *Table) abandonStaged(p *Player) {
	staged := p.Hand.Staged()
	if staged == nil {
		return
	}
	if returned, err := p.Hand.ResolveStaged(false); err == nil && returned != nil {
		t.sourceDeck(staged.Source).ReturnToBottom(*returned)
	}
}

// availableActions lists what the current player may submit, in a stable
// display order.
func (t *Table) availableActions() []string {
	order := []ActionType{
		ActionDraw, ActionDrawPositive, ActionDrawNegative,
		ActionDiscard, ActionReplace, ActionSelectKeep,
		ActionStand, ActionCallEnd, ActionJunk,
	}
	var out []string
	for _, a := range order {
		if !variantActions[t.variant][a] {
			continue
		}
		if a == ActionDiscard && !t.config.AllowDiscard {
			continue
		}
		if a == ActionCallEnd && t.finalRound {
			continue
		}
		out = append(out, string(a))
	}
	return out
}

// --- messaging, lock held ---

func (t *Table) promptTurn() {
	p := t.players[t.current]
	t.sendTo(p, "your_turn", protocol.YourTurnPayload{
		Round:   t.roundsCompleted + 1,
		Cards:   p.Hand.Cards(),
		Render:  p.Hand.String(),
		Actions: t.availableActions(),
	})
}

func (t *Table) announceAction(p *Player, action ActionType) {
	counts := make(map[string]int, len(t.players))
	for _, pl := range t.players {
		counts[pl.Identity.ID] = pl.Hand.Count()
	}
	t.broadcast("turn_update", protocol.TurnUpdatePayload{
		PlayerID:   p.Identity.ID,
		PlayerName: p.Identity.Name,
		Action:     string(action),
		Round:      t.roundsCompleted + 1,
		HandCounts: counts,
	})
}

func (t *Table) announceImpostor(p *Player, slot sabacc.Slot, value int) {
	t.broadcast("impostor_chosen", protocol.ImpostorChosenPayload{
		PlayerID:   p.Identity.ID,
		PlayerName: p.Identity.Name,
		Slot:       string(slot),
		Value:      value,
	})
}

func (t *Table) broadcastLobby() {
	t.broadcast("lobby_update", protocol.LobbyUpdatePayload{
		TableCode: t.code,
		Variant:   string(t.variant),
		Players:   t.playerInfos(),
		HostID:    t.hostIDLocked(),
	})
}

func (t *Table) gameStartPayload() protocol.GameStartPayload {
	payload := protocol.GameStartPayload{
		TableCode: t.code,
		Variant:   string(t.variant),
		Players:   t.playerInfos(),
		Rounds:    t.config.Rounds,
	}
	if t.variant == CoruscantShift {
		target := t.targetNumber
		payload.TargetNumber = &target
		payload.TargetSuit = string(t.targetSuit)
	}
	return payload
}

func (t *Table) gameOverPayload() protocol.GameOverPayload {
	payload := protocol.GameOverPayload{Tie: t.results.Tie}
	for _, s := range t.results.Standings {
		payload.Standings = append(payload.Standings, protocol.StandingInfo{
			Player:   playerInfo(s.Player),
			Cards:    s.Player.Hand.Cards(),
			Render:   s.Player.Hand.String(),
			Category: s.Evaluation.Category,
			Total:    s.Evaluation.Total,
			Junked:   s.Junked,
		})
	}
	for _, w := range t.results.Winners {
		payload.Winners = append(payload.Winners, playerInfo(w))
	}
	return payload
}

func playerInfo(p *Player) protocol.PlayerInfo {
	return protocol.PlayerInfo{
		ID:        p.Identity.ID,
		Name:      p.Identity.Name,
		Synthetic: p.Identity.Kind == SyntheticOpponent,
	}
}

func (t *Table) playerInfos() []protocol.PlayerInfo {
	out := make([]protocol.PlayerInfo, len(t.players))
	for i, p := range t.players {
		out[i] = playerInfo(p)
	}
	return out
}

func (t *Table) hostIDLocked() string {
	if len(t.players) == 0 {
		return ""
	}
	return t.players[0].Identity.ID
}

// broadcast sends one frame to every human at the table, junked included.
func (t *Table) broadcast(msgType string, payload interface{}) {
	if t.send == nil {
		return
	}
	msg, err := protocol.NewMessage(msgType, payload)
	if err != nil {
		t.log.WithError(err).Error("could not encode broadcast")
		return
	}
	for _, p := range t.players {
		if p.Identity.Kind == Human {
			t.send(p.Identity.ID, msg)
		}
	}
	for _, p := range t.junked {
		if p.Identity.Kind == Human {
			t.send(p.Identity.ID, msg)
		}
	}
}

func (t *Table) sendTo(p *Player, msgType string, payload interface{}) {
	if t.send == nil || p.Identity.Kind != Human {
		return
	}
	msg, err := protocol.NewMessage(msgType, payload)
	if err != nil {
		t.log.WithError(err).Error("could not encode message")
		return
	}
	t.send(p.Identity.ID, msg)
}

func (t *Table) findPlayer(playerID string) *Player {
	for _, p := range t.players {
		if p.Identity.ID == playerID {
			return p
		}
	}
	return nil
}

func (t *Table) findJunked(playerID string) *Player {
	for _, p := range t.junked {
		if p.Identity.ID == playerID {
			return p
		}
	}
	return nil
}

func (t *Table) playerIndex(playerID string) int {
	for i, p := range t.players {
		if p.Identity.ID == playerID {
			return i
		}
	}
	return -1
}
