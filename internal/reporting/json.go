package reporting

import (
	"encoding/json"
	"fmt"

	"github.com/arunsidharrth/SDWAN/internal/models"
	"github.com/arunsidharrth/SDWAN/internal/validation"
)

// MarshalReport serializes r as indented JSON and validates it against the
// report schema. Schema violations are returned as warnings; the bytes are
// still usable.
func MarshalReport(r *models.Report) ([]byte, []string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("marshaling report: %w", err)
	}
	data = append(data, '\n')
	return data, validation.ValidateReportBytes(data), nil
}
