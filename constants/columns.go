package constants

// CSVHeader is the fixed, ordered column set for extraction output files.
var CSVHeader = []string{
	"file_name",
	"key",
	"item",
	"data_type",
	"format",
	"length",
	"start",
	"end",
	"comments",
}

// APIKeyPrefix is the required prefix for the credential file content.
const APIKeyPrefix = "sk-"

// BlankCommentSentinel replaces an empty comments cell in extracted records.
const BlankCommentSentinel = "na"

// SchemaFormatKey is the top-level key of the schema descriptor file that
// holds the output-format contract forwarded to the inference call.
const SchemaFormatKey = "format"
