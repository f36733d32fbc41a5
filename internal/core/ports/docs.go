// Package ports defines the contracts between the application core and its adapters:
// the unit of work with its repositories, and the external collaborators (clock,
// photo storage, pricing, event bus, timeline cache).
//
// The core depends only on these interfaces. Adapters under internal/adapters
// implement them and cmd wires the concrete types together.
package ports
