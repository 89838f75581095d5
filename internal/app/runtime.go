package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ziadkadry99/guidebook/internal/guide"
	"github.com/ziadkadry99/guidebook/internal/logging"
)

// ErrStopped is returned by Dispatch once the runtime loop has exited.
var ErrStopped = errors.New("runtime stopped")

// ModeStore persists each session's mode.
type ModeStore interface {
	GetMode(ctx context.Context, sessionID string) (mode string, found bool, err error)
	SetMode(ctx context.Context, sessionID, mode string) error
}

type envelope struct {
	ctx     context.Context
	session string
	msg     Msg
	reply   chan result
}

type result struct {
	model Model
	err   error
}

// Runtime is the central update loop. Messages are applied one at a time in
// arrival order; renders read snapshots concurrently.
type Runtime struct {
	store       ModeStore
	defaultMode Mode
	notifier    *Notifier

	inbox chan envelope
	done  chan struct{}
	once  sync.Once

	mu     sync.RWMutex
	guides guide.Guides
}

// NewRuntime creates a runtime over guides. Sessions without a stored mode
// start in defaultMode.
func NewRuntime(store ModeStore, guides guide.Guides, defaultMode Mode) *Runtime {
	return &Runtime{
		store:       store,
		defaultMode: defaultMode,
		notifier:    NewNotifier(),
		inbox:       make(chan envelope),
		done:        make(chan struct{}),
		guides:      guides,
	}
}

// Notifier returns the notifier pinged after every applied message or guide reload.
func (r *Runtime) Notifier() *Notifier { return r.notifier }

// Guides returns the current guide list.
func (r *Runtime) Guides() guide.Guides {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.guides
}

// SetGuides replaces the guide list and notifies subscribers.
func (r *Runtime) SetGuides(gs guide.Guides) {
	r.mu.Lock()
	r.guides = gs
	r.mu.Unlock()
	r.notifier.Broadcast()
}

// Snapshot returns the model a page for sessionID should be rendered from.
func (r *Runtime) Snapshot(ctx context.Context, sessionID string) (Model, error) {
	mode, err := r.loadMode(ctx, sessionID)
	if err != nil {
		return Model{}, err
	}
	return Model{Guides: r.Guides(), Mode: mode}, nil
}

// Run applies dispatched messages until ctx is cancelled.
func (r *Runtime) Run(ctx context.Context) error {
	defer r.once.Do(func() { close(r.done) })

	log := logging.Component("runtime")
	log.Debug().Msg("update loop started")

	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("update loop stopped")
			return nil
		case env := <-r.inbox:
			model, err := r.apply(env)
			if err == nil {
				r.notifier.Broadcast()
			}
			env.reply <- result{model: model, err: err}
		}
	}
}

// Dispatch sends msg for sessionID to the update loop and waits for the
// resulting model.
func (r *Runtime) Dispatch(ctx context.Context, sessionID string, msg Msg) (Model, error) {
	env := envelope{ctx: ctx, session: sessionID, msg: msg, reply: make(chan result, 1)}

	select {
	case r.inbox <- env:
	case <-r.done:
		return Model{}, ErrStopped
	case <-ctx.Done():
		return Model{}, ctx.Err()
	}

	select {
	case res := <-env.reply:
		return res.model, res.err
	case <-ctx.Done():
		return Model{}, ctx.Err()
	}
}

func (r *Runtime) apply(env envelope) (Model, error) {
	before, err := r.Snapshot(env.ctx, env.session)
	if err != nil {
		return Model{}, err
	}

	after := Update(before, env.msg)
	if after.Mode != before.Mode && env.session != "" && r.store != nil {
		if err := r.store.SetMode(env.ctx, env.session, after.Mode.String()); err != nil {
			return Model{}, fmt.Errorf("saving mode: %w", err)
		}
	}

	log := logging.WithSession(env.session)
	log.Info().
		Str("msg", env.msg.Name()).
		Str("mode", after.Mode.String()).
		Msg("message applied")
	return after, nil
}

func (r *Runtime) loadMode(ctx context.Context, sessionID string) (Mode, error) {
	if sessionID == "" || r.store == nil {
		return r.defaultMode, nil
	}
	raw, found, err := r.store.GetMode(ctx, sessionID)
	if err != nil {
		return r.defaultMode, fmt.Errorf("loading mode: %w", err)
	}
	if !found {
		return r.defaultMode, nil
	}
	mode, err := ParseMode(raw)
	if err != nil {
		return r.defaultMode, nil
	}
	return mode, nil
}
