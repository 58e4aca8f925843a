// Package punchlog implements the client-side session and
// authorization state machine for the punchlog time-tracking service.
//
// The Store is the single source of truth for "who is logged in". It
// verifies a persisted credential at startup, broadcasts the bearer
// token to every registered API client, and notifies subscribers after
// each state change. Guard gates protected views on the session state,
// and Handle is the reactive binding surface view code consumes.
package punchlog
