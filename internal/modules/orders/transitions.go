package orders

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pedrosavio99/cafe-online-ifpb/internal/shared/apperr"
)

type Action string

const (
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionFinalize Action = "finalize"
)

type transition struct {
	from, to Status
}

// transitionTable is the single source of truth for which actions are legal
// from which locally known status. UI affordances and Apply both read it.
var transitionTable = map[Action]transition{
	ActionApprove:  {from: StatusPending, to: StatusApproved},
	ActionReject:   {from: StatusPending, to: StatusRejected},
	ActionFinalize: {from: StatusApproved, to: StatusFinalized},
}

// StatusUpdater mutates an order's status in the external store.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, id string, status Status) error
}

// Refresher re-fetches all buckets after a successful transition.
type Refresher interface {
	Refresh(ctx context.Context)
}

// Controller issues guarded transition requests. Preconditions are checked
// against the locally known status before any network call; the store remains
// the ultimate authority and may still reject.
type Controller struct {
	store   StatusUpdater
	reg     *Registry
	refresh Refresher
	log     *slog.Logger

	mu       sync.Mutex
	selected string
}

func NewController(store StatusUpdater, reg *Registry, refresh Refresher, log *slog.Logger) *Controller {
	return &Controller{store: store, reg: reg, refresh: refresh, log: log}
}

func (c *Controller) Select(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = id
}

func (c *Controller) Selected() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected, c.selected != ""
}

func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = ""
}

// AllowedActions drives the enabled/disabled affordances for one order.
func (c *Controller) AllowedActions(id string) []Action {
	st, ok := c.reg.StatusOf(id)
	if !ok {
		return nil
	}
	var out []Action
	for _, a := range []Action{ActionApprove, ActionReject, ActionFinalize} {
		if transitionTable[a].from == st {
			out = append(out, a)
		}
	}
	return out
}

// Apply runs one transition. On success it clears the open order detail and
// triggers a loading-visible refresh of all four buckets, since a transition
// moves an order between two of them. On store failure no local state moves.
func (c *Controller) Apply(ctx context.Context, action Action, id string) error {
	t, ok := transitionTable[action]
	if !ok {
		return apperr.InvalidErr("Ação desconhecida.", nil)
	}

	known, ok := c.reg.StatusOf(id)
	if !ok {
		return &apperr.AppError{Kind: apperr.NotFound, PublicMsg: "Pedido não encontrado.", Err: ErrUnknownOrder}
	}
	if known != t.from {
		return &apperr.AppError{Kind: apperr.Invalid, PublicMsg: "Transição de status não permitida.", Err: ErrInvalidTransition}
	}

	if err := c.store.UpdateStatus(ctx, id, t.to); err != nil {
		return err
	}

	c.log.Info("order_transition",
		slog.String("order_id", id),
		slog.String("action", string(action)),
		slog.String("from", string(known)),
		slog.String("to", string(t.to)),
	)

	c.ClearSelection()
	c.refresh.Refresh(ctx)
	return nil
}
