package job

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ReadRaw decodes newline-delimited raw postings. Malformed lines are skipped
// with a warning so one bad record never aborts the batch.
func ReadRaw(r io.Reader, logger *zap.Logger) ([]*Raw, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var jobs []*Raw
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var raw Raw
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			logger.Warn("skipping malformed input line",
				zap.Int("line", lineNum),
				zap.Error(err),
			)
			continue
		}
		jobs = append(jobs, &raw)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	return jobs, nil
}

// ReadRawFile reads raw postings from a JSONL file.
func ReadRawFile(path string, logger *zap.Logger) ([]*Raw, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadRaw(file, logger)
}

// WriteRawFile writes raw postings as JSONL, creating parent directories.
func WriteRawFile(path string, raws []*Raw) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetEscapeHTML(false)
	for _, raw := range raws {
		if err := enc.Encode(raw); err != nil {
			return fmt.Errorf("encode raw posting: %w", err)
		}
	}

	return nil
}

// ReadFile loads normalized postings from a JSONL file.
func ReadFile(path string) (*Jobs, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	jobs := &Jobs{}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var norm Norm
		if err := json.Unmarshal([]byte(line), &norm); err != nil {
			return nil, fmt.Errorf("decode normalized posting: %w", err)
		}
		jobs.Items = append(jobs.Items, &norm)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}

// Write encodes the batch as one JSON object per line. Multibyte text is
// written as-is rather than escaped.
func (j *Jobs) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	for _, item := range j.Items {
		if item.Skills == nil {
			item.Skills = []string{}
		}
		if err := enc.Encode(item); err != nil {
			return fmt.Errorf("encode normalized posting: %w", err)
		}
	}

	return nil
}

// ToFile writes the batch to a JSONL file, creating parent directories.
func (j *Jobs) ToFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	return j.Write(file)
}
