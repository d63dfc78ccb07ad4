package llm

import "context"

// DataRecord is one extracted table row from a data-dictionary page.
// length/start/end must arrive as JSON numbers, never quoted strings;
// the schema validation gate enforces that.
type DataRecord struct {
	FileName string `json:"file_name"`
	Key      string `json:"key"`
	Item     string `json:"item"`
	DataType string `json:"data_type"`
	Format   string `json:"format"`
	Length   int    `json:"length"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Comments string `json:"comments"`
}

// RecordSet is the validated response shape: an ordered sequence of
// records, mapped 1:1 from the model output.
type RecordSet struct {
	DataRecords []DataRecord `json:"data_records"`
}

type ExtractRequest struct {
	// SchemaFormat is the opaque output-format contract from the schema
	// descriptor file, forwarded to the inference call unmodified.
	SchemaFormat map[string]any

	// ImageDataURL is the rasterized page as a data:image/png;base64 URL.
	ImageDataURL string

	// SourceName is the base name of the source PDF; every record's
	// file_name must be stamped with it verbatim.
	SourceName string
}

// TableExtractor is the capability interface the pipeline depends on.
// Implementations return the validated record set together with the raw
// JSON the model produced.
type TableExtractor interface {
	ExtractTable(ctx context.Context, req ExtractRequest) (RecordSet, []byte /*rawJSON*/, error)
}
