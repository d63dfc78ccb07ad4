// Package pipeline coordinates rasterize, extract, write, and the repeated-run
// consistency check for each configured job.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tmorell/tabledict/internal/export"
	"github.com/tmorell/tabledict/internal/llm"
)

// Rasterizer renders one page of a PDF into a PNG data URL.
type Rasterizer interface {
	PageDataURL(path string, pageIndex int, zoom float64) (string, error)
}

// Config carries the per-run knobs shared by every job.
type Config struct {
	SchemaFormat map[string]any
	PageIndex    int
	Zoom         float64
	WriteXLSX    bool
}

// Outcome is the ephemeral result of a single run, used only for the
// consistency comparison.
type Outcome struct {
	SHA256 string
	Rows   int
}

// Report summarizes a job after one or more runs.
type Report struct {
	Consistent bool
	Outcomes   []Outcome
	RunFiles   []string // per-run temporary files; empty for a single run
}

// Last returns the outcome of the final run.
func (r Report) Last() Outcome {
	return r.Outcomes[len(r.Outcomes)-1]
}

// Runner executes extraction runs. Runs are strictly sequential; repeated
// runs share only the read-only schema contract.
type Runner struct {
	logger    *slog.Logger
	cfg       Config
	raster    Rasterizer
	extractor llm.TableExtractor
}

func NewRunner(logger *slog.Logger, cfg Config, raster Rasterizer, extractor llm.TableExtractor) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger, cfg: cfg, raster: raster, extractor: extractor}
}

// RunOnce executes rasterize → extract → write for one PDF, returning the
// content hash and record count of the produced CSV.
func (r *Runner) RunOnce(ctx context.Context, pdfPath, outCSV string) (Outcome, error) {
	start := time.Now()
	base := filepath.Base(pdfPath)

	img, err := r.raster.PageDataURL(pdfPath, r.cfg.PageIndex, r.cfg.Zoom)
	if err != nil {
		return Outcome{}, fmt.Errorf("rasterize %s: %w", pdfPath, err)
	}

	rs, _, err := r.extractor.ExtractTable(ctx, llm.ExtractRequest{
		SchemaFormat: r.cfg.SchemaFormat,
		ImageDataURL: img,
		SourceName:   base,
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("extract %s: %w", base, err)
	}

	if err := export.WriteCSV(outCSV, rs); err != nil {
		return Outcome{}, err
	}
	if r.cfg.WriteXLSX {
		if err := export.WriteXLSX(xlsxPath(outCSV), rs); err != nil {
			return Outcome{}, err
		}
	}

	sha, err := hashFile(outCSV)
	if err != nil {
		return Outcome{}, err
	}

	r.logger.Info("pipeline.run.ok",
		"pdf", base,
		"out", outCSV,
		"rows", len(rs.DataRecords),
		"sha256", sha[:16],
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return Outcome{SHA256: sha, Rows: len(rs.DataRecords)}, nil
}

// Run executes the job once (runs <= 1) or repeats it, comparing content
// hashes across runs. When every hash matches, the LAST run file is promoted
// to the job's canonical output path and earlier run files are left in place
// for inspection. Any mismatch keeps all run files and never creates the
// canonical path. Hash equality across a handful of samples is evidence of
// deterministic extraction, not proof.
func (r *Runner) Run(ctx context.Context, job Job, runs int) (Report, error) {
	if runs <= 1 {
		out, err := r.RunOnce(ctx, job.PDFPath, job.OutCSV)
		if err != nil {
			return Report{}, err
		}
		return Report{Consistent: true, Outcomes: []Outcome{out}}, nil
	}

	report := Report{}
	for i := 1; i <= runs; i++ {
		tmp := runFilePath(job.OutCSV, i)
		out, err := r.RunOnce(ctx, job.PDFPath, tmp)
		if err != nil {
			return Report{}, fmt.Errorf("run %d/%d: %w", i, runs, err)
		}
		r.logger.Info("pipeline.consistency.run",
			"iter", i,
			"of", runs,
			"file", filepath.Base(tmp),
			"rows", out.Rows,
			"sha256", out.SHA256[:16],
		)
		report.Outcomes = append(report.Outcomes, out)
		report.RunFiles = append(report.RunFiles, tmp)
	}

	report.Consistent = allHashesEqual(report.Outcomes)
	if report.Consistent {
		last := report.RunFiles[len(report.RunFiles)-1]
		if err := os.Rename(last, job.OutCSV); err != nil {
			return Report{}, fmt.Errorf("promote %s to %s: %w", last, job.OutCSV, err)
		}
		r.logger.Info("pipeline.consistency.ok", "out", job.OutCSV, "runs", runs)
	} else {
		counts := make([]int, 0, len(report.Outcomes))
		for _, o := range report.Outcomes {
			counts = append(counts, o.Rows)
		}
		r.logger.Warn("pipeline.consistency.divergent",
			"pdf", job.PDFPath,
			"runs", runs,
			"row_counts", counts,
		)
	}
	return report, nil
}

func allHashesEqual(outcomes []Outcome) bool {
	for _, o := range outcomes[1:] {
		if o.SHA256 != outcomes[0].SHA256 {
			return false
		}
	}
	return true
}

// runFilePath derives the per-run temporary path: out.csv -> out.run3.csv.
func runFilePath(outCSV string, i int) string {
	if strings.HasSuffix(outCSV, ".csv") {
		return fmt.Sprintf("%s.run%d.csv", strings.TrimSuffix(outCSV, ".csv"), i)
	}
	return fmt.Sprintf("%s.run%d.csv", outCSV, i)
}

func xlsxPath(outCSV string) string {
	return strings.TrimSuffix(outCSV, filepath.Ext(outCSV)) + ".xlsx"
}

// hashFile computes the SHA-256 digest over the raw file bytes.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s for hashing: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
