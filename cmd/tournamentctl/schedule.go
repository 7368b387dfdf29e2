package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Dosada05/tournament-scheduler/export"
	"github.com/Dosada05/tournament-scheduler/models"
	"github.com/Dosada05/tournament-scheduler/schedule"
)

func loadSchedule(path string) ([]models.CanonicalMatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schedule: %w", err)
	}
	records, err := schedule.DecodeRecords(data)
	if err != nil {
		return nil, fmt.Errorf("parsing schedule: %w", err)
	}
	return schedule.ToCanonicalMatchList(records), nil
}

func runNormalize(w io.Writer, path string) error {
	matches, err := loadSchedule(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(matches)
}

func runExport(w io.Writer, path, output string) error {
	matches, err := loadSchedule(path)
	if err != nil {
		return err
	}
	f, err := export.Workbook(matches)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(output); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	fmt.Fprintf(w, "✓ Wrote %d matches to %s\n", len(matches), output)
	return nil
}
