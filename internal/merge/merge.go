package merge

import (
	"context"
	"errors"
	"strings"

	"github.com/danieljhkim/lightfix/internal/override"
	"github.com/danieljhkim/lightfix/internal/records"
	"github.com/danieljhkim/lightfix/internal/transform"
)

// ErrNoDependencies indicates no package contributed a record.
var ErrNoDependencies = errors.New("no package contributed records to the overlay")

// Rules answers the per-identity questions asked during the fold.
type Rules interface {
	ExcludesID(id string) bool
	MatchLight(id string) (*override.LightOverride, bool)
	MatchAmbient(id string) (*override.AmbientOverride, bool)
}

// Options configures a Merger.
type Options struct {
	Settings transform.Settings

	// DisableInteriorSun zeroes the sunlight of every admitted interior.
	DisableInteriorSun bool

	// OwnName is the overlay's own file name. Lights from it are never admitted.
	OwnName string
}

// Stats counts what the fold skipped.
type Stats struct {
	Excluded   int
	Duplicates int
	Unchanged  int
	OwnOutput  int
}

// Accumulator is the state threaded through the fold.
type Accumulator struct {
	// ids is shared by cells and lights: one identity names one record.
	ids map[string]struct{}

	Lights  []records.LightRecord
	Cells   []records.CellRecord
	Masters records.MasterList
	Stats   Stats
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() Accumulator {
	return Accumulator{
		ids:     make(map[string]struct{}),
		Masters: records.MasterList{},
	}
}

// RecordCount returns the number of admitted records.
func (a *Accumulator) RecordCount() int {
	return len(a.Lights) + len(a.Cells)
}

// Finish assembles the overlay. It fails with ErrNoDependencies when no
// package contributed.
func (a *Accumulator) Finish() (*records.Overlay, error) {
	if len(a.Masters) == 0 {
		return nil, ErrNoDependencies
	}

	header := records.NewHeader()
	header.Masters = append(records.MasterList{}, a.Masters...)
	header.RecordCount = a.RecordCount()

	return &records.Overlay{
		Header: header,
		Cells:  a.Cells,
		Lights: a.Lights,
	}, nil
}

// Merger folds packages using fixed rules and options.
type Merger struct {
	rules Rules
	opts  Options
}

// NewMerger creates a Merger.
func NewMerger(rules Rules, opts Options) *Merger {
	return &Merger{rules: rules, opts: opts}
}

// Run folds pkgs, given in declared load order, in processing order and
// returns the finished overlay along with the final accumulator.
func (m *Merger) Run(ctx context.Context, pkgs []records.Package) (*records.Overlay, Accumulator, error) {
	acc := NewAccumulator()
	for i := len(pkgs) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, acc, err
		}
		acc = m.Fold(acc, pkgs[i])
	}
	overlay, err := acc.Finish()
	return overlay, acc, err
}

// Fold merges one package into acc and returns the updated accumulator.
// The package's master entry is inserted at the front of the list if it
// contributed at least one record.
func (m *Merger) Fold(acc Accumulator, pkg records.Package) Accumulator {
	contributed := 0

	for _, cell := range pkg.Cells {
		if !cell.HasInteriorAtmosphere() {
			continue
		}
		id := records.NormalizeID(cell.ID)
		if !m.admissible(&acc, id) {
			continue
		}

		cell.StripPlacements()
		ov, _ := m.rules.MatchAmbient(id)
		atmo, changed := transform.Ambient(m.opts.DisableInteriorSun, ov, *cell.Atmosphere)
		if !changed {
			acc.Stats.Unchanged++
			continue
		}
		cell.Atmosphere = &atmo
		acc.ids[id] = struct{}{}
		acc.Cells = append(acc.Cells, cell)
		contributed++
	}

	ownOutput := m.opts.OwnName != "" && strings.EqualFold(pkg.Name, m.opts.OwnName)
	for _, light := range pkg.Lights {
		if ownOutput {
			acc.Stats.OwnOutput++
			continue
		}
		id := records.NormalizeID(light.ID)
		if !m.admissible(&acc, id) {
			continue
		}
		acc.ids[id] = struct{}{}

		ov, _ := m.rules.MatchLight(id)
		acc.Lights = append(acc.Lights, transform.Light(m.opts.Settings, ov, light))
		contributed++
	}

	if contributed > 0 {
		acc.Masters.InsertFront(pkg.Name, pkg.Size)
	}
	return acc
}

// admissible applies exclusion and first-processed-wins. Callers mark the
// id once the record is actually emitted; an unchanged cell does not claim
// its id.
func (m *Merger) admissible(acc *Accumulator, id string) bool {
	if m.rules.ExcludesID(id) {
		acc.Stats.Excluded++
		return false
	}
	if _, ok := acc.ids[id]; ok {
		acc.Stats.Duplicates++
		return false
	}
	return true
}
