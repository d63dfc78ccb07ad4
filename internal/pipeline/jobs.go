package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tmorell/tabledict/constants"
)

// Job is one configured (input PDF, output CSV) pair. The job list is
// immutable for the process lifetime.
type Job struct {
	PDFPath string `json:"pdf_path"`
	OutCSV  string `json:"out_csv"`
}

// DefaultJobs is the built-in extraction set: the IBES data-dictionary
// documents, first page each.
func DefaultJobs() []Job {
	return []Job{
		{PDFPath: "./ibes_detail_history_docs_13.pdf", OutCSV: "./ibes_detail_history_docs_13.csv"},
		{PDFPath: "./ibes_summary_history_docs_14.pdf", OutCSV: "./ibes_summary_history_docs_14.csv"},
		{PDFPath: "./ibes_detail_history_docs_15.pdf", OutCSV: "./ibes_detail_history_docs_15.csv"},
	}
}

// LoadJobs reads a JSON array of jobs from path. An empty path selects the
// default set.
func LoadJobs(path string) ([]Job, error) {
	if path == "" {
		return DefaultJobs(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read jobs file %s: %w", path, err)
	}
	var jobs []Job
	if err := json.Unmarshal(b, &jobs); err != nil {
		return nil, fmt.Errorf("parse jobs file %s: %w", path, err)
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("jobs file %s contains no jobs", path)
	}
	for i, j := range jobs {
		if j.PDFPath == "" || j.OutCSV == "" {
			return nil, fmt.Errorf("jobs file %s: job %d must set pdf_path and out_csv", path, i)
		}
		ext := constants.NormalizeExt(filepath.Ext(j.PDFPath))
		if _, ok := constants.AllowedExtensions[ext]; !ok {
			return nil, fmt.Errorf("jobs file %s: job %d input %s is not a supported document type", path, i, j.PDFPath)
		}
	}
	return jobs, nil
}
