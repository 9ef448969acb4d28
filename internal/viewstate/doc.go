// Package viewstate holds the UI-facing state of the word list and the word
// editor and turns UI events into use case calls.
//
// Each holder serializes its events: Handle may be called from any
// goroutine, but events are applied one at a time. State snapshots returned
// by State are copies and never change after being returned.
//
// The list holder keeps exactly one live query open. Changing the ordering
// cancels it before subscribing again, and snapshots that belong to a
// cancelled query are dropped even if they were already in flight.
package viewstate
