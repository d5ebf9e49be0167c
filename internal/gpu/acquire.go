package gpu

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// ErrNoContext is returned when no candidate could provide a drawing context.
// Callers should render nothing instead of failing.
var ErrNoContext = errors.New("gpu: no usable drawing context")

// Candidate is one way of obtaining a context, ordered from the most capable
// to the most compatible.
type Candidate struct {
	Name string
	Open func() (Context, error)
}

// Acquire opens the first candidate that succeeds. Failures of earlier
// candidates are logged and the next one is tried.
func Acquire(candidates ...Candidate) (Context, error) {
	var errs []error
	for _, c := range candidates {
		if c.Open == nil {
			continue
		}
		ctx, err := c.Open()
		if err == nil && ctx != nil {
			log.Info("drawing context acquired", "backend", c.Name)
			return ctx, nil
		}
		if err == nil {
			err = errors.New("no context returned")
		}
		log.Warn("drawing context unavailable", "backend", c.Name, "err", err)
		errs = append(errs, fmt.Errorf("%s: %w", c.Name, err))
	}
	if len(errs) == 0 {
		return nil, ErrNoContext
	}
	return nil, fmt.Errorf("%w: %w", ErrNoContext, errors.Join(errs...))
}
