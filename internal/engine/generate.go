package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danieljhkim/lightfix/internal/config"
	"github.com/danieljhkim/lightfix/internal/gamecfg"
	"github.com/danieljhkim/lightfix/internal/logger"
	"github.com/danieljhkim/lightfix/internal/merge"
	"github.com/danieljhkim/lightfix/internal/pattern"
	"github.com/danieljhkim/lightfix/internal/pkgsource"
	"github.com/danieljhkim/lightfix/internal/state"
	"github.com/danieljhkim/lightfix/internal/transform"
)

// Generate builds the overlay for the load order of req.Paths.GameConfig and
// writes it. Recoverable problems are returned as warnings on the result;
// structural failures abort the run with one of the sentinel errors.
func (e *Engine) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error) {
	log := logger.FromContext(ctx)

	gameCfg, err := gamecfg.Load(e.fs, req.Paths.GameConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGameConfig, err)
	}

	res, _, err := e.resolveConfig(req.Paths, config.ResolveInput{
		Env:       req.Env,
		Patch:     req.Patch,
		Classic:   req.Classic,
		ForceSave: req.SaveConfig,
	})
	if err != nil {
		return nil, err
	}

	// Compile consumes the override tables, so keep a copy for the result.
	result := &GenerateResult{Effective: res.Effective.Clone()}
	eff := res.Effective

	for _, key := range eff.UnknownKeys {
		result.warn(log, "ignored light configuration key", fmt.Errorf("unknown key %q in %s", key, req.Paths.LightConfig))
	}

	if res.ShouldPersist {
		if err := config.SaveDocument(e.fs, req.Paths.LightConfig, &res.Persistable); err != nil {
			result.warn(log, "failed to save light configuration", err)
		} else {
			result.Persisted = true
			log.Debug("saved light configuration", "path", req.Paths.LightConfig)
		}
	}

	table := pattern.Compile(&eff)
	result.Dropped = table.Dropped()
	for _, d := range result.Dropped {
		log.Debug("dropped pattern", "kind", d.Kind, "pattern", d.Pattern, "error", d.Err)
	}

	if len(gameCfg.Content) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoContent, gameCfg.Path)
	}

	loader := pkgsource.NewLoader(
		e.fs,
		pkgsource.NewResolver(e.fs, gameCfg.SearchDirs()),
		e.parser,
		table,
		OverlayName,
		pkgsource.WithLimit(e.parseLimit),
		pkgsource.WithLogger(log),
	)
	loaded, err := loader.Load(ctx, gameCfg.Content)
	if err != nil {
		return nil, err
	}
	for _, l := range loaded {
		switch l.Skipped {
		case pkgsource.SkipParseFailed:
			result.Failed = append(result.Failed, l.Package.Name)
		case pkgsource.SkipNone:
		default:
			log.Debug("skipped package", "package", l.Package.Name, "reason", string(l.Skipped))
		}
	}

	merger := merge.NewMerger(table, merge.Options{
		Settings:           transform.SettingsFrom(&eff),
		DisableInteriorSun: eff.DisableInteriorSun,
		OwnName:            OverlayName,
	})
	overlay, acc, err := merger.Run(ctx, pkgsource.Packages(loaded))
	if err != nil {
		return nil, err
	}
	result.Overlay = overlay
	result.Stats = acc.Stats
	log.Debug("merged packages",
		"lights", len(overlay.Lights),
		"cells", len(overlay.Cells),
		"masters", len(overlay.Header.Masters),
		"duplicates", acc.Stats.Duplicates,
		"excluded", acc.Stats.Excluded,
	)

	data, err := encodeOverlay(overlay)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOutput, err)
	}

	outDir, err := e.outputDir(eff.OutputDir, gameCfg.DataLocal, req.CWD)
	if err != nil {
		result.warn(log, "output directory unavailable, using the working directory", err)
	}
	result.OutputPath, err = e.writeOverlay(outDir, gameCfg.DataLocal, data)
	if err != nil {
		return nil, err
	}

	if eff.SaveLog {
		if err := e.writeDump(req.Paths.Log, overlay); err != nil {
			result.warn(log, "failed to write log", err)
		} else {
			result.LogPath = req.Paths.Log
		}
	}

	if eff.AutoEnable && gameCfg.AddContent(OverlayName) {
		if err := gameCfg.Save(e.fs); err != nil {
			result.warn(log, "failed to enable overlay", err)
		} else {
			result.Enabled = true
		}
	}

	rec := &state.RunRecord{
		GameConfig:  req.Paths.GameConfig,
		GeneratedAt: e.clock.Now(),
		OutputPath:  result.OutputPath,
		Checksum:    e.hasher.HashBytes(data),
		RecordCount: overlay.Header.RecordCount,
		Lights:      len(overlay.Lights),
		Cells:       len(overlay.Cells),
		Dropped:     len(result.Dropped),
		Failed:      result.Failed,
	}
	for _, m := range overlay.Header.Masters {
		rec.Masters = append(rec.Masters, state.MasterEntry{Name: m.Name, Size: m.Size})
	}
	if err := e.runStore.SaveRun(state.ComputeConfigID(req.Paths.GameConfig), rec); err != nil {
		result.warn(log, "failed to save run record", err)
	}

	return result, nil
}

// resolveConfig loads the persisted document and layers in on top of the
// defaults. It returns the document path if one was loaded.
func (e *Engine) resolveConfig(paths config.Paths, in config.ResolveInput) (*config.Resolution, string, error) {
	persisted, exists, err := config.LoadDocument(e.fs, paths.LightConfig)
	if err != nil {
		if errors.Is(err, config.ErrParse) {
			return nil, "", fmt.Errorf("%w: %w", ErrConfigParse, err)
		}
		return nil, "", err
	}

	in.Defaults = config.Defaults()
	in.Persisted = persisted

	source := ""
	if exists {
		source = paths.LightConfig
	}
	return config.Resolve(in), source, nil
}

func (r *GenerateResult) warn(log *slog.Logger, msg string, err error) {
	log.Warn(msg, "error", err)
	r.Warnings = append(r.Warnings, fmt.Sprintf("%s: %v", msg, err))
}
