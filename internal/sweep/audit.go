package sweep

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"musweep/internal/pass"
)

// AuditLog appends one JSON line per pass with the raw agent outputs, for
// offline inspection of what the metrics were computed from.
type AuditLog struct {
	mu   sync.Mutex
	path string
}

// NewAuditLog creates an audit log at path. An empty path disables auditing
// and Append becomes a no-op.
func NewAuditLog(path string) *AuditLog {
	return &AuditLog{path: path}
}

type auditEntry struct {
	Beta        float64 `json:"beta"`
	K           float64 `json:"k"`
	Tau         float64 `json:"tau"`
	Alpha       float64 `json:"alpha"`
	Seed        int     `json:"seed"`
	Adversarial bool    `json:"adversarial"`
	pass.RawOutputs
}

// Append writes the raw outputs of one pass as a single line.
func (l *AuditLog) Append(record pass.Record) error {
	if l == nil || l.path == "" {
		return nil
	}
	entry := auditEntry{
		Beta:        record.Beta,
		K:           record.K,
		Tau:         record.Tau,
		Alpha:       record.Alpha,
		Seed:        record.Seed,
		Adversarial: record.Adversarial,
		RawOutputs:  record.Raw,
	}
	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode audit entry: %w", err)
	}
	line = append(line, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer file.Close()
	if _, err := file.Write(line); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}
