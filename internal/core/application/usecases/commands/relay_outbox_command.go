package commands

import (
	"errors"

	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrRelayOutboxCommandIsNotConstructed = errors.New(
	"RelayOutboxCommand must be created via NewRelayOutboxCommand constructor",
)

// RelayOutboxCommand publishes up to batchSize pending outbox events. Events that
// failed maxAttempts times are left for an operator.
type RelayOutboxCommand struct { //nolint:recvcheck //using for validation
	batchSize   int
	maxAttempts int

	guard guard.ConstructorGuard
}

func NewRelayOutboxCommand(batchSize, maxAttempts int) (RelayOutboxCommand, error) {
	var sizeErr, attemptsErr error
	if batchSize <= 0 {
		sizeErr = errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, "unbounded")
	}
	if maxAttempts <= 0 {
		attemptsErr = errs.NewValueIsOutOfRangeError("maxAttempts", maxAttempts, 1, "unbounded")
	}
	if err := errors.Join(sizeErr, attemptsErr); err != nil {
		return RelayOutboxCommand{}, err
	}

	return RelayOutboxCommand{
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RelayOutboxCommand) Validate() error {
	return c.guard.Validate(ErrRelayOutboxCommandIsNotConstructed)
}

func (c RelayOutboxCommand) BatchSize() int {
	return c.batchSize
}

func (c RelayOutboxCommand) MaxAttempts() int {
	return c.maxAttempts
}
