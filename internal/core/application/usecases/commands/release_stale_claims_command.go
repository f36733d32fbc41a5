package commands

import (
	"errors"
	"time"

	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrReleaseStaleClaimsCommandIsNotConstructed = errors.New(
	"ReleaseStaleClaimsCommand must be created via NewReleaseStaleClaimsCommand constructor",
)

// ReleaseStaleClaimsCommand returns abandoned processing claims to the queue.
type ReleaseStaleClaimsCommand struct { //nolint:recvcheck //using for validation
	timeout time.Duration

	guard guard.ConstructorGuard
}

func NewReleaseStaleClaimsCommand(timeout time.Duration) (ReleaseStaleClaimsCommand, error) {
	if timeout <= 0 {
		return ReleaseStaleClaimsCommand{}, errs.NewValueIsOutOfRangeError("timeout", timeout, "1ns", "unbounded")
	}
	return ReleaseStaleClaimsCommand{timeout: timeout, guard: guard.NewConstructorGuard()}, nil
}

func (c ReleaseStaleClaimsCommand) Validate() error {
	return c.guard.Validate(ErrReleaseStaleClaimsCommandIsNotConstructed)
}

// Timeout is the age after which an open claim counts as abandoned.
func (c ReleaseStaleClaimsCommand) Timeout() time.Duration {
	return c.timeout
}
