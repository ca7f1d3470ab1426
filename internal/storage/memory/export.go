package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// exportJSON writes each stored drawing to its own JSON file in the
// configured output directory. Drawings without an outline are still
// exported so the conversion counts survive.
func (b *Backend) exportJSON() error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(b.records) == 0 {
		return nil
	}

	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	for id, rec := range b.records {
		name := strings.TrimSuffix(filepath.Base(rec.Meta.FileName), filepath.Ext(rec.Meta.FileName))
		name = strings.ReplaceAll(name, " ", "_")
		if name == "" {
			name = "drawing"
		}

		var filename string
		if b.cfg.CompressOutput {
			filename = fmt.Sprintf("%s_%d_%s.json.gz", name, id, timestamp)
		} else {
			filename = fmt.Sprintf("%s_%d_%s.json", name, id, timestamp)
		}
		outputPath := filepath.Join(b.cfg.OutputDir, filename)

		var err error
		if b.cfg.CompressOutput {
			err = writeGzipJSON(outputPath, rec)
		} else {
			err = writeJSON(outputPath, rec)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(path string, data *DrawingRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	return encoder.Encode(data)
}

func writeGzipJSON(path string, data *DrawingRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	gzWriter := gzip.NewWriter(f)
	defer gzWriter.Close()

	encoder := json.NewEncoder(gzWriter)
	return encoder.Encode(data)
}
