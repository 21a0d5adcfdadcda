package bot

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"secrethitler/internal/engine"
	"secrethitler/internal/models"
)

// Runner advances bot players whenever a game is waiting on them. Kick
// it after every mutation; it debounces per game, waits a human-scale
// delay, then plays every pending bot decision through the engine.
type Runner struct {
	strategy Strategy
	delay    time.Duration
	log      *zap.SugaredLogger

	// OnUpdate is invoked after each pass that changed the game, with
	// the game's lock released. The caller uses it to fan state out to
	// connected clients.
	OnUpdate func(g *models.Game)

	mu       sync.Mutex
	inFlight map[string]bool
	pending  map[string]bool
}

// NewRunner builds a runner that plays with the given strategy and
// waits delay before each bot pass.
func NewRunner(strategy Strategy, delay time.Duration, log *zap.SugaredLogger) *Runner {
	return &Runner{
		strategy: strategy,
		delay:    delay,
		log:      log,
		inFlight: make(map[string]bool),
		pending:  make(map[string]bool),
	}
}

// Kick schedules bot play for the game. It returns immediately; the
// pass runs on its own goroutine. A kick while a loop is already
// running marks the game pending so the loop runs at least one more
// pass before exiting, instead of the kick being lost.
func (r *Runner) Kick(g *models.Game) {
	r.mu.Lock()
	if r.inFlight[g.ID] {
		r.pending[g.ID] = true
		r.mu.Unlock()
		return
	}
	r.inFlight[g.ID] = true
	r.mu.Unlock()

	go r.run(g)
}

func (r *Runner) run(g *models.Game) {
	for {
		time.Sleep(r.delay)

		g.Lock()
		changed := r.pass(g)
		g.Unlock()

		if changed {
			if r.OnUpdate != nil {
				r.OnUpdate(g)
			}
			continue
		}

		// Quiescent. A kick that arrived mid-loop means the state may
		// have moved since the last pass; consume it and go again
		// rather than exiting with work possibly waiting.
		r.mu.Lock()
		if r.pending[g.ID] {
			delete(r.pending, g.ID)
			r.mu.Unlock()
			continue
		}
		delete(r.inFlight, g.ID)
		r.mu.Unlock()
		return
	}
}

// pass plays at most one pending decision per bot and reports whether
// anything changed. Caller holds the game's write lock.
func (r *Runner) pass(g *models.Game) bool {
	changed := r.ackReady(g)
	switch g.CurrentPhase {
	case models.PhaseElection:
		return r.nominate(g) || changed
	case models.PhaseVoting:
		return r.vote(g) || changed
	case models.PhaseLegislative:
		return r.legislate(g) || changed
	case models.PhaseExecutive:
		return r.execute(g) || changed
	}
	return changed
}

// ackReady makes bots follow the ready gate once a human has opened the
// round of acknowledgements. Bots never ack first: that would reopen
// the gate immediately after it fires and spin forever at an all-bot
// table.
func (r *Runner) ackReady(g *models.Game) bool {
	if len(g.ReadyStatus) == 0 {
		return false
	}
	changed := false
	for _, p := range g.AlivePlayers() {
		if !p.IsBot || g.ReadyStatus[p.Name] {
			continue
		}
		open, err := engine.AcknowledgeReady(g, p.Name)
		if err != nil {
			continue
		}
		changed = true
		if open {
			break
		}
	}
	return changed
}

func (r *Runner) nominate(g *models.Game) bool {
	president := g.CurrentPresident()
	if president == nil || !president.IsBot {
		return false
	}
	nominee := r.strategy.Nominee(g, president)
	if nominee == "" {
		return false
	}
	if err := engine.Nominate(g, president.Name, nominee); err != nil {
		r.log.Warnw("bot nomination rejected", "game", g.ID, "president", president.Name, "error", err)
		return false
	}
	r.log.Debugw("bot nominated chancellor", "game", g.ID, "president", president.Name, "nominee", nominee)
	return true
}

func (r *Runner) vote(g *models.Game) bool {
	changed := false
	for _, p := range g.AlivePlayers() {
		if !p.IsBot || p.Vote != nil {
			continue
		}
		ballot := r.strategy.Vote(g, p)
		resolved, err := engine.CastVote(g, p.Name, ballot)
		if err != nil {
			r.log.Warnw("bot vote rejected", "game", g.ID, "player", p.Name, "error", err)
			continue
		}
		changed = true
		if resolved {
			// The election flipped the phase; remaining ballots are moot.
			break
		}
	}
	return changed
}

func (r *Runner) legislate(g *models.Game) bool {
	if president := g.CurrentPresident(); president != nil && president.IsBot && len(g.PresidentHand) == 3 {
		idx := r.strategy.DiscardIndex(g, president)
		if err := engine.PresidentDiscard(g, president.Name, idx); err != nil {
			r.log.Warnw("bot discard rejected", "game", g.ID, "president", president.Name, "error", err)
			return false
		}
		return true
	}
	if chancellor := g.PlayerByName(g.NominatedChancellor); chancellor != nil && chancellor.IsBot && len(g.ChancellorHand) == 2 {
		idx := r.strategy.EnactIndex(g, chancellor)
		if _, err := engine.ChancellorEnact(g, chancellor.Name, idx); err != nil {
			r.log.Warnw("bot enact rejected", "game", g.ID, "chancellor", chancellor.Name, "error", err)
			return false
		}
		return true
	}
	return false
}

func (r *Runner) execute(g *models.Game) bool {
	president := g.CurrentPresident()
	if president == nil || !president.IsBot || len(g.AvailableActions) == 0 {
		return false
	}
	kind, target := r.strategy.Action(g, president)
	if err := engine.ExecuteAction(g, president.Name, kind, target); err != nil {
		r.log.Warnw("bot executive action rejected", "game", g.ID, "president", president.Name, "kind", kind, "error", err)
		return false
	}
	r.log.Debugw("bot executive action", "game", g.ID, "president", president.Name, "kind", kind, "target", target)
	return true
}
