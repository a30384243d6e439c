// Package export renders extracted polymer records as CSV files and
// markdown tables.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dreamingbumblebee/biopaper-parser/internal/extract"
)

const (
	csvSuffix      = "_results.csv"
	markdownSuffix = "_results.md"
)

// CSVPath returns the results CSV path for a document, derived from its stem.
func CSVPath(docPath string) string {
	return stem(docPath) + csvSuffix
}

// MarkdownPath returns the report path for a document.
func MarkdownPath(docPath string) string {
	return stem(docPath) + markdownSuffix
}

func stem(docPath string) string {
	base := filepath.Base(docPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// WriteCSV writes records to path with the fixed column order, one row per
// record. Existing content is replaced.
func WriteCSV(path string, records []extract.PolymerRecord) error {
	if len(records) == 0 {
		return extract.ErrNoData
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(extract.Header()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, record := range records {
		if err := w.Write(record.Row()); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}
