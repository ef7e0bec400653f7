// Package merge folds parsed content packages into one overlay.
//
// Packages are visited in processing order, the reverse of the declared load
// order, so the package that wins at game-load time is seen first and its
// version of each record identity is the one admitted. The fold is strictly
// sequential: admission and dependency ordering both depend on it.
//
// Key concepts:
//   - Rules: exclusion and override lookups (a compiled pattern table)
//   - Accumulator: admitted identities, transformed records and the master list
//   - Merger.Fold: one package into the accumulator
//   - Accumulator.Finish: the overlay, or ErrNoDependencies
package merge
