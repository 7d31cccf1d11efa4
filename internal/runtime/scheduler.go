package runtime

import (
	"errors"

	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/generator"
	"github.com/aretw0/tendril/pkg/port"
	"github.com/aretw0/tendril/pkg/registry"
)

// Step runs one frame: every generator of reg is stepped once, in
// registration order. A propagation overflow aborts the frame and is returned
// as a *domain.TickError; other step errors are collected and the frame goes on.
func Step(reg *registry.Registry, frame uint64) error {
	if reg == nil {
		return nil
	}

	var errs []error
	err := reg.Each(func(name string, g generator.Generator) error {
		err := g.Step()
		if err == nil {
			return nil
		}
		te := &domain.TickError{Frame: frame, Generator: name, Err: err}
		if errors.Is(err, port.ErrPropagationDepth) {
			return te
		}
		errs = append(errs, te)
		return nil
	})
	if err != nil {
		return err
	}
	return errors.Join(errs...)
}
