// Package history persists prediction records and closes the loop between
// predictions and realized price movement.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/MoodTracker/models"
)

// FileStore keeps the append-only prediction log in a single JSON file.
// Writes replace the whole file via a temp file and rename, so concurrent
// readers never observe a partial log.
type FileStore struct {
	path   string
	logger zerolog.Logger
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:   path,
		logger: log.With().Str("component", "history_store").Str("path", path).Logger(),
	}
}

// Load reads the full record log. A missing file or unparsable content
// yields an empty log: a corrupt history must not take the pipeline down.
func (s *FileStore) Load() ([]models.PredictionRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading predictions file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var records []models.PredictionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn().Err(err).Msg("predictions file unparsable, starting with empty log")
		return nil, nil
	}
	return records, nil
}

// Replace atomically rewrites the full record log
func (s *FileStore) Replace(records []models.PredictionRecord) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding predictions: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "predictions-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing predictions file: %w", err)
	}
	return nil
}
