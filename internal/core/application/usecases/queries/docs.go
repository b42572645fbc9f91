// Package queries contains read-only operations that bypass the aggregates
// and read reporting views straight from the database.
package queries
