package engine

import (
	"context"

	"github.com/danieljhkim/lightfix/internal/config"
	"github.com/danieljhkim/lightfix/internal/pattern"
)

// ShowConfig resolves the effective configuration without persisting it or
// generating anything.
func (e *Engine) ShowConfig(ctx context.Context, req *ConfigRequest) (*ConfigResult, error) {
	res, source, err := e.resolveConfig(req.Paths, config.ResolveInput{
		Env:     req.Env,
		Patch:   req.Patch,
		Classic: req.Classic,
	})
	if err != nil {
		return nil, err
	}

	scratch := res.Effective.Clone()
	return &ConfigResult{
		Effective: res.Effective,
		Source:    source,
		Dropped:   pattern.Compile(&scratch).Dropped(),
	}, nil
}
