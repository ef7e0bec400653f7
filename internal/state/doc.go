// Package state persists the record of the last successful generation.
//
// A run record is stored per game configuration as a JSON file in the
// lightfix state directory (~/.lightfix/state by default). It lets the
// status command report when the overlay was generated, which packages it
// depends on and whether the file on disk still matches what was written.
//
// Key concepts:
//   - RunRecord: summary of one successful generation
//   - ComputeConfigID: stable file key derived from the game configuration path
//   - RunStore: interface for persisting and loading run records
package state
