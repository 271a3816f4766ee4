package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tmcnab/exifscope/internal/metadata"
)

const timestampLayout = "2006-01-02_15-04-05"

// Save writes the report as indented JSON into dir, named
// {original filename}_metadata_{timestamp}.json, and returns the
// written path. The write goes through a temp file and rename so a
// crash never leaves a half-written report behind.
func Save(rep *metadata.Report, dir string, now time.Time) (string, error) {
	name := fmt.Sprintf("%s_metadata_%s.json", rep.File.Name, now.Format(timestampLayout))
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("replace report: %w", err)
	}
	return path, nil
}
