// Package draft holds the in-memory editing session for a slip that has not
// been persisted yet (or for a stored record being edited). The draft has no
// id until it is saved through the store.
package draft

import (
	"encoding/base64"
	"io"
	"net/http"
	"sync"

	"slipgen/internal/domain/slip"
)

// Session owns a single draft record for one editing session.
type Session struct {
	mu     sync.Mutex
	record slip.SalaryRecord
}

func NewSession() *Session {
	return &Session{}
}

// Load replaces the draft with a copy of an existing record.
func (s *Session) Load(rec slip.SalaryRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = rec
}

// Reset clears the draft back to the all-defaults record.
func (s *Session) Reset() {
	s.Load(slip.SalaryRecord{})
}

// Snapshot returns the current draft state.
func (s *Session) Snapshot() slip.SalaryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record
}

// ApplyField applies one raw form edit to the draft. The value goes through
// the same whitelist normalization as the store boundary, so a numeric field
// that fails to parse reads as zero, never as NaN.
func (s *Session) ApplyField(name, raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slip.Apply(&s.record, map[string]any{name: raw})
}

// ApplyLogo ingests a logo image asynchronously, replacing the draft's logo
// with an embeddable data URL once the read completes. The draft is
// unaffected until then. When two uploads overlap, each replaces the logo as
// its own read finishes: last writer wins, no cancellation of an in-flight
// read. The returned channel reports the completion of this one read.
func (s *Session) ApplyLogo(r io.Reader, contentType string) <-chan error {
	done := make(chan error, 1)
	go func() {
		data, err := io.ReadAll(r)
		if err != nil {
			done <- err
			return
		}
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}
		encoded := "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)

		s.mu.Lock()
		s.record.CompanyLogo = encoded
		s.mu.Unlock()
		done <- nil
	}()
	return done
}
