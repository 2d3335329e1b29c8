package session

import (
	"log/slog"

	"cafefinder/internal/domain/entity"
)

// SelectFromList handles a click on a list entry: the marker is also
// brought into view.
func (s *Session) SelectFromList(id string) {
	s.selectCafe(id, true)
}

// SelectFromMarker handles a click on a map marker. The map already shows
// it, so no refocus is requested.
func (s *Session) SelectFromMarker(id string) {
	s.selectCafe(id, false)
}

// selectCafe keeps at most one entry highlighted. Ids that are not rendered
// (a stale marker from an earlier result set) produce no presentation calls
// but still become the selection.
func (s *Session) selectCafe(id string, refocus bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected != "" {
		if _, ok := s.rendered[s.selected]; ok {
			s.presenter.Highlight(s.selected, false)
		}
	}

	if cafe, ok := s.rendered[id]; ok {
		s.presenter.Highlight(id, true)
		s.presenter.OpenPopup(id)
		if refocus {
			s.presenter.Focus(id, cafe.Point(), s.opts.MinZoom)
		}
	} else {
		s.logger.Debug("Selected cafe is not rendered", slog.String("id", id))
	}

	s.selected = id
}

// View is a point-in-time copy of the session state.
type View struct {
	Origin     *entity.Point
	Radius     int
	Query      string
	Cafes      []entity.Cafe // Filtered set, in display order.
	Total      int           // Size of the canonical set.
	Selected   string
	State      entity.SearchState
	Message    string
	Source     entity.SourceKind
	Generation uint64
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := View{
		Radius:     s.radius,
		Query:      s.query,
		Cafes:      append([]entity.Cafe(nil), s.filtered...),
		Total:      len(s.canonical),
		Selected:   s.selected,
		State:      s.state,
		Message:    s.message,
		Source:     s.source,
		Generation: s.generation,
	}
	if s.origin != nil {
		origin := *s.origin
		view.Origin = &origin
	}

	return view
}
