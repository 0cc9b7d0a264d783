package roster

import (
	"context"
	"time"

	"github.com/google/uuid"

	"staffhub/internal/platform/jsonstore"
)

type JSONStore struct {
	assignments *jsonstore.Collection[Assignment]
	hours       *jsonstore.Collection[LocalHours]
}

func NewJSONStore(dir string) (*JSONStore, error) {
	assignments, err := jsonstore.New(dir, "turnos",
		func(a Assignment) string { return a.ID },
		func(a *Assignment, id string) { a.ID = id },
	)
	if err != nil {
		return nil, err
	}
	hours, err := jsonstore.New(dir, "local_horarios",
		func(h LocalHours) string { return h.ID },
		func(h *LocalHours, id string) { h.ID = id },
	)
	if err != nil {
		return nil, err
	}
	return &JSONStore{assignments: assignments, hours: hours}, nil
}

func (s *JSONStore) ListAssignments(ctx context.Context, locale, from, to string) ([]Assignment, error) {
	return s.assignments.List(func(a Assignment) bool {
		return a.Locale == locale && a.Date >= from && a.Date <= to
	})
}

// ReplaceAssignment rewrites the collection once: the stale row disappears and
// the new one lands in the same file write.
func (s *JSONStore) ReplaceAssignment(ctx context.Context, assignment Assignment) (Assignment, error) {
	assignment.ID = uuid.NewString()
	assignment.CreatedAt = time.Now().UTC()
	err := s.assignments.Mutate(func(rows []Assignment) []Assignment {
		kept := make([]Assignment, 0, len(rows)+1)
		for _, row := range rows {
			if row.Locale == assignment.Locale && row.Person == assignment.Person && row.Date == assignment.Date {
				continue
			}
			kept = append(kept, row)
		}
		return append(kept, assignment)
	})
	if err != nil {
		return Assignment{}, err
	}
	return assignment, nil
}

func (s *JSONStore) DeleteAssignment(ctx context.Context, locale, person, date string) error {
	return s.assignments.Mutate(func(rows []Assignment) []Assignment {
		kept := make([]Assignment, 0, len(rows))
		for _, row := range rows {
			if row.Locale == locale && row.Person == person && row.Date == date {
				continue
			}
			kept = append(kept, row)
		}
		return kept
	})
}

func (s *JSONStore) DeleteByPerson(ctx context.Context, locale, person string) error {
	return s.assignments.Mutate(func(rows []Assignment) []Assignment {
		kept := make([]Assignment, 0, len(rows))
		for _, row := range rows {
			if row.Locale == locale && row.Person == person {
				continue
			}
			kept = append(kept, row)
		}
		return kept
	})
}

func (s *JSONStore) LocalHours(ctx context.Context, locale string) (LocalHours, bool, error) {
	rows, err := s.hours.List(func(h LocalHours) bool { return h.Locale == locale })
	if err != nil {
		return LocalHours{}, false, err
	}
	if len(rows) == 0 {
		return LocalHours{}, false, nil
	}
	return rows[0], true, nil
}

func (s *JSONStore) SaveLocalHours(ctx context.Context, hours LocalHours) (LocalHours, error) {
	existing, found, err := s.LocalHours(ctx, hours.Locale)
	if err != nil {
		return LocalHours{}, err
	}
	if !found {
		return s.hours.Create(hours)
	}
	hours.ID = existing.ID
	return s.hours.Update(existing.ID, func(row *LocalHours) {
		*row = hours
	})
}
