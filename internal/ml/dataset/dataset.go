// Package dataset turns raw resume records into train/validation shards of
// training examples.
package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/interview-ace/ace/internal/ml/feature"
	"github.com/interview-ace/ace/pkg/logx"
)

const (
	// minTextLength excludes records whose flattened text is too short to
	// carry any signal.
	minTextLength = 50

	// DefaultValRatio is the fraction of surviving records assigned to the
	// validation shard.
	DefaultValRatio = 0.2

	// maxLineBytes bounds a single NDJSON line. Resume records are small
	// but the source files are third-party exports.
	maxLineBytes = 4 << 20
)

// Example is one supervised training example derived from a resume record.
type Example struct {
	Text              string   `json:"text"`
	Skills            []string `json:"skills"`
	ExperienceSummary string   `json:"experience_summary"`
	EducationLevel    string   `json:"education_level"`
	ExperienceYears   float64  `json:"experience_years"`
	Score             int      `json:"score"`
}

// FromRecord derives an Example from a parsed resume record. The boolean is
// false when the flattened text is below the minimum usable length.
func FromRecord(rec feature.Record) (Example, bool) {
	text := feature.FlattenText(rec)
	if len(text) < minTextLength {
		return Example{}, false
	}

	skills := feature.ExtractSkills(rec)
	years := feature.ExtractExperienceYears(rec)
	level := feature.ExtractEducationLevel(rec)

	return Example{
		Text:              text,
		Skills:            skills,
		ExperienceSummary: feature.ExtractExperienceSummary(rec),
		EducationLevel:    level,
		ExperienceYears:   years,
		Score:             feature.QualityScore(rec, skills, years, level),
	}, true
}

// Build streams newline-delimited resume records from r and returns the
// surviving examples in source order. Malformed lines are logged and skipped.
func Build(r io.Reader) ([]Example, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var examples []Example
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec feature.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			logx.Warnf("dataset: skipping malformed record at line %d: %v", lineNo, err)
			continue
		}

		if ex, ok := FromRecord(rec); ok {
			examples = append(examples, ex)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return examples, nil
}

// Split partitions examples into train and validation shards without
// shuffling. The first ceil(N*(1-valRatio)) examples go to training.
func Split(examples []Example, valRatio float64) (train, val []Example) {
	if valRatio < 0 {
		valRatio = 0
	}
	if valRatio > 1 {
		valRatio = 1
	}
	cut := int(math.Ceil(float64(len(examples)) * (1 - valRatio)))
	return examples[:cut], examples[cut:]
}

// WriteShard writes examples as newline-delimited JSON to w.
func WriteShard(w io.Writer, examples []Example) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, ex := range examples {
		if err := enc.Encode(ex); err != nil {
			return fmt.Errorf("encode example: %w", err)
		}
	}
	return bw.Flush()
}

// ReadShard reads a newline-delimited JSON shard back into memory. Unlike
// Build, a malformed line here is fatal: shards are files we wrote ourselves.
func ReadShard(r io.Reader) ([]Example, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var examples []Example
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var ex Example
		if err := json.Unmarshal(line, &ex); err != nil {
			return nil, fmt.Errorf("parse shard line %d: %w", lineNo, err)
		}
		examples = append(examples, ex)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read shard: %w", err)
	}
	return examples, nil
}

// BuildFiles runs the whole pipeline: read sourcePath, split, and write the
// two shard files. It returns the shard sizes.
func BuildFiles(sourcePath, trainPath, valPath string, valRatio float64) (trainCount, valCount int, err error) {
	src, err := os.Open(sourcePath)
	if err != nil {
		return 0, 0, fmt.Errorf("open source: %w", err)
	}
	defer src.Close()

	examples, err := Build(src)
	if err != nil {
		return 0, 0, err
	}

	train, val := Split(examples, valRatio)

	if err := writeShardFile(trainPath, train); err != nil {
		return 0, 0, err
	}
	if err := writeShardFile(valPath, val); err != nil {
		return 0, 0, err
	}

	logx.Infof("dataset: built %d train / %d validation examples from %s", len(train), len(val), sourcePath)
	return len(train), len(val), nil
}

func writeShardFile(path string, examples []Example) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create shard %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteShard(f, examples); err != nil {
		return err
	}
	return f.Close()
}

// ReadShardFile reads a shard from disk.
func ReadShardFile(path string) ([]Example, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open shard %s: %w", path, err)
	}
	defer f.Close()
	return ReadShard(f)
}
