package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/MKhiriev/go-sql-trainer/models"
)

// WriteCSV writes t as CSV: a header with the real column names followed by
// every row.
func WriteCSV(w io.Writer, t models.TableData) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("error writing csv header of %s: %w", t.Table.Name, err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("error writing csv rows of %s: %w", t.Table.Name, err)
	}
	return nil
}
