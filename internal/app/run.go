package app

import (
	"context"
	"fmt"

	"github.com/vk/vecmap/internal/hcl"
	"github.com/vk/vecmap/internal/mapper"
	"github.com/vk/vecmap/internal/simplify"
	"github.com/vk/vecmap/internal/vector"
	"github.com/zclconf/go-cty/cty"
)

// Run loads the results file, simplifies its results and writes the
// container in the configured output format.
func (a *App) Run(ctx context.Context) error {
	ctx = a.Context(ctx)
	a.logger.Debug("App.Run method started.", "input", a.config.InputPath)

	in, err := a.loader.Load(ctx, a.config.InputPath)
	if err != nil {
		return err
	}

	opts := simplify.Options{
		Type:    in.Type,
		Strict:  in.Strict || a.config.Strict,
		Workers: a.config.Workers,
	}
	if a.config.Type != "" {
		t, err := hcl.ParseType(ctx, a.config.Type)
		if err != nil {
			return fmt.Errorf("invalid -type: %w", err)
		}
		opts.Type = t
	}

	out, err := mapper.MapVec(ctx, in.Results, func(ctx context.Context, val cty.Value, _ int) (vector.Value, error) {
		return hcl.DecodeValueAs(ctx, val, opts.Type)
	}, opts)
	if err != nil {
		return fmt.Errorf("simplification failed: %w", err)
	}
	a.logger.Info("Results simplified.", "type", out.Type().String(), "length", out.Len())

	if a.config.OutputFormat == "hcl" {
		if _, err := a.outW.Write(hcl.MarshalHCL(out)); err != nil {
			return err
		}
	} else {
		data, err := hcl.MarshalJSON(out)
		if err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		if _, err := fmt.Fprintln(a.outW, string(data)); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
