// Package kernel provides the value objects shared by every aggregate of the laundry domain.
//
// The package includes:
//   - UUID: identifiers for orders, assignments, absences and actors
//   - GeoPoint and Address: pickup and delivery locations with haversine distance
//   - TimeRange: half-open [start, end) intervals used for driver absence windows
//
// All value objects are immutable and guarded, so a zero value never passes Validate.
package kernel
