package importer

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ReadCSV reads purchases from a comma separated file with a header row.
func ReadCSV(r io.Reader) (Batch, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return Batch{}, fmt.Errorf("cannot read csv: %w", err)
	}
	return purchases(records)
}
