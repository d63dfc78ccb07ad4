package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadJobsDefault(t *testing.T) {
	jobs, err := LoadJobs("")
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	for _, j := range jobs {
		require.NotEmpty(t, j.PDFPath)
		require.NotEmpty(t, j.OutCSV)
	}
}

func TestLoadJobsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"pdf_path": "./a.pdf", "out_csv": "./a.csv"},
		{"pdf_path": "./b.pdf", "out_csv": "./b.csv"}
	]`), 0o644))

	jobs, err := LoadJobs(path)
	require.NoError(t, err)
	require.Equal(t, []Job{
		{PDFPath: "./a.pdf", OutCSV: "./a.csv"},
		{PDFPath: "./b.pdf", OutCSV: "./b.csv"},
	}, jobs)
}

func TestLoadJobsErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty array", content: `[]`},
		{name: "missing out_csv", content: `[{"pdf_path": "./a.pdf"}]`},
		{name: "unsupported input type", content: `[{"pdf_path": "./a.docx", "out_csv": "./a.csv"}]`},
		{name: "invalid json", content: `{not json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "jobs.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := LoadJobs(path)
			require.Error(t, err)
		})
	}
}

func TestLoadJobsMissingFile(t *testing.T) {
	_, err := LoadJobs(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
