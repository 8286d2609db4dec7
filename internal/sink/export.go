package sink

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Exporter writes one-shot JSON dumps of a table. Each call produces a new
// timestamp-named file; in-memory state is never touched.
type Exporter struct {
	dir   string
	table *Table
}

func NewExporter(dir string, table *Table) *Exporter {
	return &Exporter{dir: dir, table: table}
}

// Export dumps the table's current records as a JSON array of flattened
// export objects and returns the written file path.
func (e *Exporter) Export() (string, error) {
	notes := e.table.Snapshot()
	records := make([]any, 0, len(notes))
	for _, note := range notes {
		records = append(records, note.Export())
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode export data: %w", err)
	}

	filename := fmt.Sprintf("notes_%s.json", time.Now().Format("20060102_150405"))
	path := filepath.Join(e.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export file %s: %w", path, err)
	}

	slog.Info("Exported notes", "count", len(records), "path", path)
	return path, nil
}
