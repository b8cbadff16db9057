package export

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"moodchart/internal/journalerr"
	"moodchart/internal/models"
	"moodchart/internal/providers"
)

var header = []string{"date", "rating", "note", "moods", "activities"}

type CsvExporter struct {
	logger providers.Logger
}

func NewCsvExporter(logger providers.Logger) *CsvExporter {
	return &CsvExporter{logger: logger}
}

// Export writes entries to path. Failures are KindExportIO and carry the path.
func (e *CsvExporter) Export(path string, entries []models.JournalEntry) error {
	file, err := os.Create(path)
	if err != nil {
		return journalerr.WithPath(journalerr.KindExportIO, path, err)
	}

	err = Write(file, entries)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return journalerr.WithPath(journalerr.KindExportIO, path, err)
	}

	e.logger.Infof(providers.TypeStorage, "Exported %d entries to %s", len(entries), path)
	return nil
}

// Write emits a header row followed by one row per entry.
func Write(w io.Writer, entries []models.JournalEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, e := range entries {
		moods := make([]string, len(e.Moods))
		for i, m := range e.Moods {
			moods[i] = m.String()
		}
		activities := make([]string, len(e.Activities))
		for i, a := range e.Activities {
			activities[i] = a.Name()
		}
		row := []string{
			e.Timestamp.Format(time.RFC3339),
			strconv.FormatFloat(e.Rating, 'f', -1, 64),
			e.Note,
			strings.Join(moods, ", "),
			strings.Join(activities, ", "),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
