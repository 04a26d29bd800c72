package output

import (
	"encoding/json"
	"io"

	"github.com/dshills/facet/internal/review"
)

// JSONWriter outputs the full result as indented JSON, including cost
// accounting and any structured findings.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, result *review.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
