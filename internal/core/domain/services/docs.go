// Package services provides domain services for rules that span several aggregates
// and do not belong to any single one of them.
//
// The package includes:
//   - AvailabilityChecker: admission control for driver absence windows
//   - RoutePlanner: orders a driver's stops by travel distance
//   - WorkQueue: orders pending work so emergency orders come first
//
// Services are stateless. Callers load the aggregates inside a unit of work, call the
// service, and persist the result in the same unit of work.
package services
