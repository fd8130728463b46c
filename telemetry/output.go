package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/nstehr/myco/myco-core/config"
)

// Output writes one match's telemetry: ticks-<match>.csv and
// decisions-<match>.jsonl.zst. A nil *Output discards everything.
type Output struct {
	dir   string
	match string

	ticksFile     *os.File
	headerWritten bool
	decisions     *DecisionLog
}

// NewOutput creates the output directory and the match's files.
// Returns nil if dir is empty (output disabled).
func NewOutput(dir, match string) (*Output, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, fmt.Sprintf("ticks-%s.csv", match)))
	if err != nil {
		return nil, fmt.Errorf("creating tick csv: %w", err)
	}

	log, err := OpenDecisionLog(filepath.Join(dir, fmt.Sprintf("decisions-%s.jsonl.zst", match)))
	if err != nil {
		f.Close()
		return nil, err
	}

	return &Output{dir: dir, match: match, ticksFile: f, decisions: log}, nil
}

// WriteConfig saves the effective configuration next to the match files.
func (o *Output) WriteConfig(cfg *config.Config) error {
	if o == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(o.dir, fmt.Sprintf("config-%s.yaml", o.match)))
}

// WriteTick appends a CSV row.
func (o *Output) WriteTick(stats TickStats) error {
	if o == nil {
		return nil
	}

	records := []TickStats{stats}
	if !o.headerWritten {
		if err := gocsv.Marshal(records, o.ticksFile); err != nil {
			return fmt.Errorf("writing tick stats: %w", err)
		}
		o.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, o.ticksFile); err != nil {
		return fmt.Errorf("writing tick stats: %w", err)
	}
	return nil
}

// WriteDecision appends a record to the compressed decision log.
func (o *Output) WriteDecision(rec DecisionRecord) error {
	if o == nil {
		return nil
	}
	return o.decisions.Write(rec)
}

// Dir returns the output directory path.
func (o *Output) Dir() string {
	if o == nil {
		return ""
	}
	return o.dir
}

// Close flushes and closes all output files.
func (o *Output) Close() error {
	if o == nil {
		return nil
	}

	var firstErr error
	if err := o.decisions.Close(); err != nil {
		firstErr = err
	}
	if o.ticksFile != nil {
		if err := o.ticksFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		o.ticksFile = nil
	}
	return firstErr
}

// ReadTicks loads a tick CSV written by Output.
func ReadTicks(path string) ([]TickStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []TickStats
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("reading tick stats: %w", err)
	}
	return rows, nil
}
