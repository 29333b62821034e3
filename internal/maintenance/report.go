package maintenance

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// Report is the side channel of per-item outcomes a maintenance run
// produces beside its gating error. Safe for concurrent use; fan-out tasks
// record warnings as they complete.
type Report struct {
	mu       sync.Mutex
	warnings []string
}

func NewReport() *Report {
	return &Report{}
}

// Warnf records one human-readable warning and logs it.
func (r *Report) Warnf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	log.Warn().Msg("maintenance: " + line)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, line)
}

// Warnings returns the recorded warnings in arrival order.
func (r *Report) Warnings() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.warnings))
	copy(out, r.warnings)
	return out
}
