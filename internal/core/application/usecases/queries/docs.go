// Package queries holds the read side. Handlers read through *gorm.DB with raw SQL
// and return flat response structs; they never load aggregates or open a unit of
// work.
package queries
