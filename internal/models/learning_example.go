package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// LearningSource records how a LearningExample was obtained.
type LearningSource string

const (
	SourceInteractive LearningSource = "user_correction"
	SourceBulkImport  LearningSource = "excel_training"
)

// LearningExample is a user correction: what the categorizer predicted for
// a narration and amount, and what the user says it should have been.
type LearningExample struct {
	Narration        string
	Amount           decimal.Decimal
	OriginalCategory Category
	CorrectCategory  Category
	Timestamp        time.Time
	Features         map[string]int
	Source           LearningSource

	// Extra keeps wire fields this version does not know about.
	Extra map[string]json.RawMessage
}

// Wire field names.
const (
	fieldNarration        = "narration"
	fieldAmount           = "amount"
	fieldOriginalCategory = "originalCategory"
	fieldCorrectCategory  = "correctCategory"
	fieldTimestamp        = "timestamp"
	fieldFeatures         = "features"
	fieldSource           = "source"
)

// IsCorrectPrediction reports whether the prediction matched the correction.
func (e LearningExample) IsCorrectPrediction() bool {
	return e.OriginalCategory == e.CorrectCategory
}

// MarshalJSON encodes the example with unknown fields carried through.
// Amount is a JSON number and Timestamp is milliseconds since the epoch.
func (e LearningExample) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(e.Extra)+7)
	for k, v := range e.Extra {
		out[k] = v
	}

	put := func(key string, v interface{}) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		out[key] = raw
		return nil
	}

	if err := put(fieldNarration, e.Narration); err != nil {
		return nil, err
	}
	out[fieldAmount] = json.RawMessage(e.Amount.String())
	if err := put(fieldOriginalCategory, string(e.OriginalCategory)); err != nil {
		return nil, err
	}
	if err := put(fieldCorrectCategory, string(e.CorrectCategory)); err != nil {
		return nil, err
	}
	if err := put(fieldTimestamp, e.Timestamp.UnixMilli()); err != nil {
		return nil, err
	}
	if e.Features != nil {
		if err := put(fieldFeatures, e.Features); err != nil {
			return nil, err
		}
	}
	if e.Source != "" {
		if err := put(fieldSource, string(e.Source)); err != nil {
			return nil, err
		}
	}

	return json.Marshal(out)
}

// UnmarshalJSON decodes an example, keeping unrecognised fields in Extra.
func (e *LearningExample) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("learning example is not an object: %w", err)
	}

	var decoded LearningExample
	take := func(key string, dst interface{}) error {
		v, ok := raw[key]
		if !ok {
			return nil
		}
		delete(raw, key)
		if string(v) == "null" {
			return nil
		}
		if err := json.Unmarshal(v, dst); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		return nil
	}

	var original, correct, source string
	var millis json.Number
	if err := take(fieldNarration, &decoded.Narration); err != nil {
		return err
	}
	if err := take(fieldAmount, &decoded.Amount); err != nil {
		return err
	}
	if err := take(fieldOriginalCategory, &original); err != nil {
		return err
	}
	if err := take(fieldCorrectCategory, &correct); err != nil {
		return err
	}
	if err := take(fieldTimestamp, &millis); err != nil {
		return err
	}
	if err := take(fieldFeatures, &decoded.Features); err != nil {
		return err
	}
	if err := take(fieldSource, &source); err != nil {
		return err
	}

	decoded.OriginalCategory = Category(original)
	decoded.CorrectCategory = Category(correct)
	decoded.Source = LearningSource(source)
	if millis != "" {
		ms, err := millis.Float64()
		if err != nil {
			return fmt.Errorf("invalid %s: %w", fieldTimestamp, err)
		}
		decoded.Timestamp = time.UnixMilli(int64(ms))
	}
	if len(raw) > 0 {
		decoded.Extra = raw
	}

	*e = decoded
	return nil
}

// TrainingSummary reports the outcome of a bulk import. Processed counts the
// rows carrying a known category.
type TrainingSummary struct {
	Processed     int `json:"totalProcessed" yaml:"totalProcessed"`
	NewExamples   int `json:"newLearningExamples" yaml:"newLearningExamples"`
	TotalExamples int `json:"totalLearningData" yaml:"totalLearningData"`
}
