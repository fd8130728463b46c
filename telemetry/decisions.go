package telemetry

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/nstehr/myco/myco-core/ipc"
)

// DecisionRecord is one line of the decision log.
type DecisionRecord struct {
	Tick      int          `json:"tick"`
	Fired     []string     `json:"fired"`
	Sacrifice string       `json:"sacrifice,omitempty"`
	Events    []string     `json:"events,omitempty"`
	Actions   []ipc.Action `json:"actions"`
}

// DecisionLog appends zstd-compressed JSON lines, one per tick.
type DecisionLog struct {
	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

// OpenDecisionLog creates (or truncates) the log at path.
func OpenDecisionLog(path string) (*DecisionLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating decision log: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	return &DecisionLog{f: f, enc: enc, w: bufio.NewWriterSize(enc, 64*1024)}, nil
}

// Write appends one record. Records are buffered until Close.
func (l *DecisionLog) Write(rec DecisionRecord) error {
	if l == nil {
		return nil
	}
	if rec.Actions == nil {
		rec.Actions = []ipc.Action{}
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling decision: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.w == nil {
		return fmt.Errorf("decision log closed")
	}
	if _, err := l.w.Write(b); err != nil {
		return err
	}
	return l.w.WriteByte('\n')
}

// Close flushes the buffer and finishes the zstd frame.
func (l *DecisionLog) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.w == nil {
		return nil
	}

	var firstErr error
	if err := l.w.Flush(); err != nil {
		firstErr = err
	}
	if err := l.enc.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := l.f.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	l.w, l.enc, l.f = nil, nil, nil
	return firstErr
}

// LoggedDecision mirrors DecisionRecord with actions left undecoded.
type LoggedDecision struct {
	Tick      int               `json:"tick"`
	Fired     []string          `json:"fired"`
	Sacrifice string            `json:"sacrifice,omitempty"`
	Events    []string          `json:"events,omitempty"`
	Actions   []json.RawMessage `json:"actions"`
}

// ReadDecisionLog decodes every record in a decision log.
func ReadDecisionLog(path string) ([]LoggedDecision, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer dec.Close()

	var out []LoggedDecision
	jd := json.NewDecoder(dec)
	for {
		var d LoggedDecision
		if err := jd.Decode(&d); err == io.EOF {
			break
		} else if err != nil {
			return out, fmt.Errorf("decoding decision %d: %w", len(out), err)
		}
		out = append(out, d)
	}
	return out, nil
}
