package ai

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DecisionLog appends advisory decisions to a JSON-lines file, one record
// per line: {"step":int,"decision":Decision}. The file is opened per append;
// O_APPEND gives sufficient atomicity for line-oriented records.
type DecisionLog struct {
	Path string
}

type decisionRecord struct {
	Step     int       `json:"step"`
	Decision *Decision `json:"decision"`
}

// Append writes one decision record.
func (l *DecisionLog) Append(step int, d *Decision) error {
	if err := os.MkdirAll(filepath.Dir(l.Path), 0o755); err != nil {
		return fmt.Errorf("ai: create log dir: %w", err)
	}

	line, err := json.Marshal(decisionRecord{Step: step, Decision: d})
	if err != nil {
		return fmt.Errorf("ai: marshal decision: %w", err)
	}

	f, err := os.OpenFile(l.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("ai: open decision log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("ai: write decision log: %w", err)
	}
	return nil
}
