package sim

import (
	"context"
	"fmt"

	"autoresolve-sim/internal/action"
	"autoresolve-sim/internal/battle"
	"autoresolve-sim/internal/logging"
)

// Handler resolves one action against the battle.
type Handler func(ctx context.Context, a action.Action) (ActionOutcome, error)

// Processor drains the pending action queue in enqueue order.
type Processor struct {
	state    *battle.State
	handlers map[action.Kind]Handler
}

// NewProcessor returns a processor with no handlers.
func NewProcessor(state *battle.State) *Processor {
	return &Processor{state: state, handlers: make(map[action.Kind]Handler)}
}

// Register installs h for actions of kind k, replacing any previous one.
func (p *Processor) Register(k action.Kind, h Handler) {
	p.handlers[k] = h
}

// Process resolves queued actions until the queue is empty. Handlers may
// enqueue follow-up actions; those are resolved in the same pass. Actions
// whose formation is no longer in play are skipped.
func (p *Processor) Process(ctx context.Context) ([]ActionOutcome, error) {
	log := logging.FromContext(ctx)
	var outcomes []ActionOutcome
	for {
		a, ok := p.state.NextAction()
		if !ok {
			return outcomes, nil
		}
		if !p.state.FormationAlive(a.Actor()) {
			log.Debug("skipping orphaned action", "action", a.String())
			outcomes = append(outcomes, skipped(a, "formation no longer in play"))
			continue
		}
		h, ok := p.handlers[a.Kind()]
		if !ok {
			return outcomes, &StepError{Phase: p.state.Phase(), Kind: KindSetup, Err: fmt.Errorf("%w for %s", ErrNoHandler, a.Kind())}
		}
		out, err := h(ctx, a)
		if err != nil {
			return outcomes, &StepError{Phase: p.state.Phase(), Kind: KindHandler, Err: fmt.Errorf("%s: %w", a, err)}
		}
		if f, ok := p.state.Formation(a.Actor()); ok && out.Status == Resolved {
			f.Done = true
			p.state.RefreshPlayerDone(f.Owner)
		}
		outcomes = append(outcomes, out)
	}
}
