package llm

import (
	"strings"

	"github.com/tmorell/tabledict/constants"
)

// NormalizeRecords applies the blank-comment sentinel to a validated record
// set: a comments cell that is empty or whitespace-only becomes "na".
// Nothing else is touched; extracted text is preserved exactly as returned.
func NormalizeRecords(rs *RecordSet) []string {
	var coerced []string
	for i := range rs.DataRecords {
		if strings.TrimSpace(rs.DataRecords[i].Comments) == "" {
			rs.DataRecords[i].Comments = constants.BlankCommentSentinel
			coerced = append(coerced, rs.DataRecords[i].Key)
		}
	}
	return coerced
}
