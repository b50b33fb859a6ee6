// Package batch drives sequential slide analysis over a directory of images.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/graemejk/StA-Slides/internal/extraction"
	"github.com/graemejk/StA-Slides/internal/identifier"
	"github.com/graemejk/StA-Slides/internal/providers"
	"github.com/graemejk/StA-Slides/internal/records"
)

// Runner processes a directory of slide images one at a time, spacing model
// calls by Delay to stay inside the provider's request quota.
type Runner struct {
	Provider    providers.Provider
	Assembler   *records.Assembler
	Model       string
	Temperature float64
	Prompt      string

	// Delay is the minimum gap between consecutive model calls. The default
	// of 12s keeps the run at five calls per minute.
	Delay time.Duration

	// Limit restricts the run to the first N eligible images when positive
	// (test mode); zero processes everything.
	Limit int

	// CallTimeout bounds each model call; zero means no explicit bound.
	CallTimeout time.Duration
}

// Run enumerates the eligible images under dir and produces one catalogue
// record per image. A failing item is recorded and the run continues; only
// an unreadable directory or an empty one fails the run outright. On context
// cancellation Run stops between items and returns the records collected so
// far alongside the context error, so the caller can still flush a partial
// result set.
func (r *Runner) Run(ctx context.Context, dir string) ([]records.Record, error) {
	names, err := ListImages(dir)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no image files found in %s", dir)
	}

	slog.Info("Found images", "dir", dir, "count", len(names))

	if r.Limit > 0 && r.Limit < len(names) {
		names = names[:r.Limit]
		slog.Info("Test mode: limiting run", "limit", r.Limit)
	}

	results := make([]records.Record, 0, len(names))

	for i, name := range names {
		slog.Info("Analyzing image", "index", i+1, "total", len(names), "file", name)

		rec := r.processItem(ctx, filepath.Join(dir, name), name)
		results = append(results, rec)

		if rec.Status == records.StatusSuccess {
			if rec.EADUnitTitle != "" {
				slog.Info("Extracted title", "file", name, "title", rec.EADUnitTitle)
			}
			if rec.EADUnitDate != "" {
				slog.Info("Extracted date", "file", name, "date", rec.EADUnitDate)
			}
		}

		if i == len(names)-1 {
			break
		}

		// Idle between calls to respect the rate ceiling; a cancelled
		// context cuts the run short with the partial results intact.
		slog.Info("Waiting before next image", "delay", r.Delay)
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		case <-time.After(r.Delay):
		}
	}

	return results, nil
}

// processItem runs one image through identifier extraction, the model call,
// response parsing and record assembly. Every failure mode still yields a
// record, so no slide silently drops out of the result set.
func (r *Runner) processItem(ctx context.Context, path, name string) records.Record {
	id := identifier.Extract(name)

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("Failed to read image", "file", name, "error", err)
		return r.Assembler.AssembleFailed(name, id, fmt.Errorf("failed to read image: %w", err))
	}

	format, ok := ImageFormat(name)
	if !ok {
		slog.Error("Unsupported image format", "file", name)
		return r.Assembler.AssembleFailed(name, id, fmt.Errorf("unsupported image format: %s", name))
	}

	callCtx := ctx
	if r.CallTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, r.CallTimeout)
		defer cancel()
	}

	raw, err := r.Provider.AnalyzeImage(callCtx, providers.Config{
		Model:       r.Model,
		Temperature: r.Temperature,
		Prompt:      r.Prompt,
	}, providers.Image{Data: data, Format: format})
	if err != nil {
		slog.Error("Model call failed", "file", name, "error", err)
		return r.Assembler.AssembleFailed(name, id, err)
	}

	fields, parsed := extraction.Parse(raw)
	if !parsed {
		slog.Warn("Response was not structured JSON, kept as description", "file", name)
	}

	return r.Assembler.Assemble(name, fields, id, parsed)
}
