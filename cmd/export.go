package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/habedi/conflux/db"
	"github.com/habedi/conflux/pkg/clierr"
	"github.com/habedi/conflux/pkg/validation"
	"github.com/rs/zerolog/log"
)

func checkExportFormat(format string) error {
	return validation.ValidateExportFormat(strings.ToLower(format))
}

// writeExport writes pages to a timestamped file named after prefix inside dir
// and returns its path.
func writeExport(dir, prefix, format string, pages []db.CachedPage) (string, error) {
	format = strings.ToLower(format)
	if err := checkExportFormat(format); err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Error().Err(err).Msg("Failed to create export directory.")
		return "", clierr.NewValidation("Failed to create export directory "+dir+": "+err.Error(), err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.%s", prefix, timestamp, format))

	var err error
	if format == "json" {
		err = writePagesToJSON(path, pages)
	} else {
		err = writePagesToCSV(path, pages)
	}
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to write export file")
		return "", clierr.NewUnexpected("Failed to write "+path+": "+err.Error(), err)
	}

	log.Info().Str("path", path).Int("pages", len(pages)).Msg("Export written")
	return path, nil
}

func writePagesToJSON(path string, pages []db.CachedPage) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if pages == nil {
		pages = []db.CachedPage{}
	}
	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(pages)
}

func writePagesToCSV(path string, pages []db.CachedPage) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"id", "title", "space_key", "version", "fetched_at", "body"}); err != nil {
		return err
	}
	for _, p := range pages {
		row := []string{p.ID, p.Title, p.SpaceKey, strconv.Itoa(p.Version), p.FetchedAt.UTC().Format(time.RFC3339), p.Body}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
