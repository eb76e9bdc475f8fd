package commands

import (
	"context"
	"fmt"

	"github.com/sagikazarmark/slog-shim"
)

// Chain runs its actions in order, feeding each result to the next action as
// extra arguments. The first failure stops the chain; finished actions are not undone.
type Chain struct {
	Actions []*Action
	logger  *slog.Logger
}

func NewChain(actions ...*Action) *Chain {
	return &Chain{
		Actions: actions,
		logger:  slog.Default().With("source", "chain"),
	}
}

func (c *Chain) WithLogger(logger *slog.Logger) *Chain {
	c.logger = logger.With("source", "chain")
	return c
}

func (c *Chain) Execute(ctx context.Context, conn Connection) error {
	args := Result{}
	for i, a := range c.Actions {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("chain stopped before action %d (%s): %w", i, a, err)
		}

		res, err := a.Execute(ctx, conn, args)
		if err != nil {
			return fmt.Errorf("action %d (%s): %w", i, a, err)
		}

		c.logger.Info("action complete", "action", a.String(), "result", res)
		args = res
	}
	return nil
}
