// Package store persists the learning examples collected from user
// corrections and bulk imports.
package store

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"fjacquet/stmt-categorizer/internal/logging"
	"fjacquet/stmt-categorizer/internal/models"

	"github.com/gocarina/gocsv"
)

// Maturity labels.
const (
	MaturityLearning    = "Learning Mode"
	MaturityWellTrained = "Well Trained"

	wellTrainedThreshold = 10
)

// LearningStore is an append-only collection of learning examples kept in
// insertion order. The in-memory view is authoritative: persistence
// failures are logged and otherwise ignored.
type LearningStore struct {
	mu       sync.RWMutex
	key      string
	medium   Medium
	examples []models.LearningExample
	logger   logging.Logger
}

// NewLearningStore loads the examples saved under key. An unreadable or
// corrupt document is logged and the store starts empty.
// BackupSuffix is appended to the store key to hold a document that could
// not be decoded.
const BackupSuffix = ".bak"

func NewLearningStore(medium Medium, key string, logger logging.Logger) *LearningStore {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if medium == nil {
		medium = NewMemoryMedium()
	}
	s := &LearningStore{key: key, medium: medium, logger: logger}
	s.load()
	return s
}

func (s *LearningStore) fields() []logging.Field {
	return []logging.Field{
		logging.F(logging.FieldStoreKey, s.key),
		logging.F(logging.FieldBackend, s.medium.Name()),
	}
}

func (s *LearningStore) load() {
	data, found, err := s.medium.Load(s.key)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load learning data", s.fields()...)
		return
	}
	if !found || len(data) == 0 {
		s.logger.Debug("No learning data stored yet", s.fields()...)
		return
	}

	var examples []models.LearningExample
	if err := json.Unmarshal(data, &examples); err != nil {
		s.logger.WithError(err).Warn("Ignoring corrupt learning data", s.fields()...)
		// The next persist overwrites the key; keep the unreadable bytes.
		if err := s.medium.Save(s.key+BackupSuffix, data); err != nil {
			s.logger.WithError(err).Warn("Failed to back up corrupt learning data", s.fields()...)
		}
		return
	}
	s.examples = examples
	s.logger.Debug("Loaded learning data", append(s.fields(), logging.F(logging.FieldCount, len(examples)))...)
}

// persist writes the current examples. Callers hold the write lock.
func (s *LearningStore) persist() {
	data, err := json.Marshal(s.examples)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to encode learning data", s.fields()...)
		return
	}
	if err := s.medium.Save(s.key, data); err != nil {
		s.logger.WithError(err).Warn("Failed to persist learning data", s.fields()...)
	}
}

// Append adds one example and persists the collection.
func (s *LearningStore) Append(example models.LearningExample) {
	s.AppendAll([]models.LearningExample{example})
}

// AppendAll adds examples in order and persists once.
func (s *LearningStore) AppendAll(examples []models.LearningExample) {
	if len(examples) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.examples = append(s.examples, examples...)
	s.persist()
}

// Ingest runs fn with exclusive access to the store. fn receives the
// current examples and returns the ones to append. Nothing is appended when
// fn fails.
func (s *LearningStore) Ingest(fn func(current []models.LearningExample) ([]models.LearningExample, error)) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added, err := fn(append([]models.LearningExample(nil), s.examples...))
	if err != nil {
		return 0, err
	}
	if len(added) > 0 {
		s.examples = append(s.examples, added...)
		s.persist()
	}
	return len(added), nil
}

// Snapshot returns a copy of the examples in insertion order.
func (s *LearningStore) Snapshot() []models.LearningExample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.LearningExample(nil), s.examples...)
}

// Len returns the number of stored examples.
func (s *LearningStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.examples)
}

// Clear drops every example and removes the persisted document.
func (s *LearningStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.examples = nil
	if err := s.medium.Delete(s.key); err != nil {
		s.logger.WithError(err).Warn("Failed to delete learning data", s.fields()...)
	}
}

// Accuracy is the rounded percentage of examples whose prediction already
// matched the correction. It is 0 for an empty store.
func (s *LearningStore) Accuracy() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.examples) == 0 {
		return 0
	}
	correct := 0
	for _, ex := range s.examples {
		if ex.IsCorrectPrediction() {
			correct++
		}
	}
	return int(math.Round(float64(correct) * 100 / float64(len(s.examples))))
}

// Maturity labels how much the store has learned.
func (s *LearningStore) Maturity() string {
	if s.Len() > wellTrainedThreshold {
		return MaturityWellTrained
	}
	return MaturityLearning
}

// Close releases the medium.
func (s *LearningStore) Close() error {
	return s.medium.Close()
}

// historyRow is one line of the CSV history export.
type historyRow struct {
	Timestamp        string `csv:"timestamp"`
	Narration        string `csv:"narration"`
	Amount           string `csv:"amount"`
	OriginalCategory string `csv:"originalCategory"`
	CorrectCategory  string `csv:"correctCategory"`
	Source           string `csv:"source"`
}

// ExportCSV writes the examples as CSV, oldest first.
func (s *LearningStore) ExportCSV(w io.Writer) error {
	examples := s.Snapshot()
	rows := make([]historyRow, 0, len(examples))
	for _, ex := range examples {
		rows = append(rows, historyRow{
			Timestamp:        ex.Timestamp.UTC().Format(time.RFC3339),
			Narration:        ex.Narration,
			Amount:           ex.Amount.String(),
			OriginalCategory: string(ex.OriginalCategory),
			CorrectCategory:  string(ex.CorrectCategory),
			Source:           string(ex.Source),
		})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("error exporting learning history: %w", err)
	}
	return nil
}
