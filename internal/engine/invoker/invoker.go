// Package invoker runs the external tools requested after generation.
package invoker

import (
	"context"
	"errors"
	"sync"

	"go.trai.ch/fpdgen/internal/core/domain"
	"go.trai.ch/fpdgen/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Status is the state of one invocation.
type Status string

const (
	// StatusPending indicates the invocation is waiting to run.
	StatusPending Status = "Pending"
	// StatusRunning indicates the invocation is executing.
	StatusRunning Status = "Running"
	// StatusCompleted indicates the invocation exited successfully.
	StatusCompleted Status = "Completed"
	// StatusFailed indicates the invocation failed.
	StatusFailed Status = "Failed"
	// StatusSkipped indicates an earlier invocation of the same group failed.
	StatusSkipped Status = "Skipped"
)

// Invoker runs groups of invocations. Groups run concurrently, the invocations
// of one group run in order and stop at the first failure.
type Invoker struct {
	executor ports.Executor
	tracer   ports.Tracer

	mu     sync.RWMutex
	status map[string]Status
}

// New creates a new Invoker.
func New(executor ports.Executor, tracer ports.Tracer) *Invoker {
	return &Invoker{
		executor: executor,
		tracer:   tracer,
		status:   make(map[string]Status),
	}
}

// Status returns the state of the named invocation from the last Run.
func (i *Invoker) Status(name string) (Status, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	s, ok := i.status[name]
	return s, ok
}

func (i *Invoker) setStatus(name string, s Status) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.status[name] = s
}

// Run executes every group with at most parallelism groups in flight.
// A failing group does not stop the others; all failures are joined.
func (i *Invoker) Run(ctx context.Context, groups [][]domain.Invocation, parallelism int) error {
	if parallelism < 1 {
		parallelism = 1
	}

	var planned []string
	i.mu.Lock()
	clear(i.status)
	for _, group := range groups {
		for _, inv := range group {
			planned = append(planned, inv.Name)
			i.status[inv.Name] = StatusPending
		}
	}
	i.mu.Unlock()

	if len(planned) == 0 {
		return nil
	}
	i.tracer.EmitPlan(ctx, planned)

	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs error
	)
	g.SetLimit(parallelism)

	for _, group := range groups {
		g.Go(func() error {
			if err := i.runGroup(ctx, group); err != nil {
				mu.Lock()
				errs = errors.Join(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		errs = errors.Join(errs, err)
	}
	return errs
}

func (i *Invoker) runGroup(ctx context.Context, group []domain.Invocation) error {
	for n := range group {
		inv := &group[n]
		if err := ctx.Err(); err != nil {
			i.skip(group[n:])
			return err
		}

		i.setStatus(inv.Name, StatusRunning)
		if err := i.invoke(ctx, inv); err != nil {
			i.setStatus(inv.Name, StatusFailed)
			i.skip(group[n+1:])
			err = zerr.With(zerr.Wrap(err, domain.ErrToolInvocationFailed.Error()), "invocation", inv.Name)
			return err
		}
		i.setStatus(inv.Name, StatusCompleted)
	}
	return nil
}

// invoke ends the span before returning so renderers see the completion first.
func (i *Invoker) invoke(ctx context.Context, inv *domain.Invocation) error {
	ctx, span := i.tracer.Start(ctx, inv.Name)
	defer span.End()

	if err := i.executor.Execute(ctx, inv, span, span); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (i *Invoker) skip(rest []domain.Invocation) {
	for _, inv := range rest {
		i.setStatus(inv.Name, StatusSkipped)
	}
}
