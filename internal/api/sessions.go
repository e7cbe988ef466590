package api

import (
	"fmt"
	"time"

	"github.com/terra-clan/career-assessment/internal/models"
)

// IdleSessions lists sessions untouched since cutoff.
// Student sessions with an outstanding submission are never idle.
func (s *Server) IdleSessions(cutoff time.Time) []models.SessionRef {
	var refs []models.SessionRef

	for _, session := range s.students.List() {
		last := session.LastActive()
		if session.InProgress() || !last.Before(cutoff) {
			continue
		}
		refs = append(refs, models.SessionRef{ID: session.ID(), Kind: models.KindStudent, LastActive: last})
	}

	for _, editor := range s.editors.List() {
		last := editor.LastActive()
		if !last.Before(cutoff) {
			continue
		}
		refs = append(refs, models.SessionRef{ID: editor.ID(), Kind: models.KindEditor, LastActive: last})
	}

	return refs
}

// CloseSession removes a session and ends its watch feeds
func (s *Server) CloseSession(ref models.SessionRef) error {
	defer s.trackSessions()

	switch ref.Kind {
	case models.KindStudent:
		session, err := s.students.Delete(ref.ID)
		if err != nil {
			return err
		}
		session.Close()
		return nil
	case models.KindEditor:
		_, err := s.editors.Delete(ref.ID)
		return err
	default:
		return fmt.Errorf("unknown session kind %q", ref.Kind)
	}
}
