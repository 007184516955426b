package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type GameRecord struct {
	ID int
	GameMetric
}

// WriteGameRecords writes one CSV row per game to path, creating its directory.
func WriteGameRecords(path string, records []GameRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create game records file: %w", err)
	}
	defer f.Close()

	return writeGameRecords(f, records)
}

func writeGameRecords(w io.Writer, records []GameRecord) error {
	writer := csv.NewWriter(w)

	header := []string{"id", "winner", "turns", "measurements", "rejected", "peak_branches", "start_time", "end_time", "duration"}
	err := writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write game records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Winner),
			strconv.Itoa(record.Turns),
			strconv.Itoa(record.Measurements),
			strconv.Itoa(record.Rejected),
			strconv.Itoa(record.PeakBranches),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write game record row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
