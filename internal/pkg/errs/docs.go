// Package errs provides the typed error taxonomy shared by the laundry service.
//
// Every kind follows the same pattern:
//   - a sentinel error variable (e.g. ErrObjectNotFound) usable with errors.Is
//   - a struct type carrying details (parameter name, id, cause)
//   - constructors with and without a cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// Business outcomes map onto the kinds as follows:
//   - NotFound: ObjectNotFoundError
//   - Conflict: ConflictError (claim already held, exclusivity violated)
//   - Forbidden: ForbiddenError (actor does not hold the claim)
//   - Expired: ExpiredError (grace window elapsed)
//   - InvalidState: InvalidStateError (illegal transition)
//   - ValidationError: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError
//
// Anything else returned by the core is an infrastructure failure and must not be
// interpreted as one of the kinds above.
package errs
