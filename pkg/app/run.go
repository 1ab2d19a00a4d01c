package app

import "context"

// Drain runs effects one at a time on the calling goroutine and applies each
// resulting event, including effects those events produce. It returns the
// first error Apply reported.
func Drain(ctx context.Context, c *Controller, effects []Effect) error {
	var first error
	for len(effects) > 0 {
		eff := effects[0]
		effects = effects[1:]

		more, err := c.Apply(eff(ctx))
		if err != nil && first == nil {
			first = err
		}
		effects = append(effects, more...)
	}
	return first
}

// RunSync dispatches cmd and drains its effects.
func RunSync(ctx context.Context, c *Controller, cmd Command) error {
	effects, err := c.Dispatch(cmd)
	if err != nil {
		return err
	}
	return Drain(ctx, c, effects)
}
