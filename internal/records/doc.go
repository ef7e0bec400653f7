// Package records defines the light and cell records lightfix reads from
// content packages and writes into the overlay package.
//
// Records are plain values. A record handed to the merge phase is owned by
// it from then on; the overlay keeps its own copies.
//
// Key types:
//   - LightRecord: a light with color, radius, duration and flags
//   - CellRecord: a cell with optional interior atmosphere data
//   - Package: the Light and Cell records of one content package
//   - Overlay: the generated package with its dependency header
package records
