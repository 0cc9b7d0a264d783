package roster

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"staffhub/internal/domain/people"
	"staffhub/internal/platform/pdf"
)

// PeopleSource supplies the schedulable staff for a location.
type PeopleSource interface {
	ListEmployees(ctx context.Context, locale string) ([]people.Employee, error)
	ListExtras(ctx context.Context, locale string) ([]people.Extra, error)
}

type Service struct {
	store  Store
	people PeopleSource
}

func NewService(store Store, source PeopleSource) *Service {
	return &Service{store: store, people: source}
}

// HoursConfig returns the location's shift windows, creating the row with the
// hardcoded defaults the first time a location is asked about.
func (s *Service) HoursConfig(ctx context.Context, locale string) (LocalHours, error) {
	hours, found, err := s.store.LocalHours(ctx, locale)
	if err != nil {
		return LocalHours{}, err
	}
	if found {
		return hours, nil
	}
	return s.store.SaveLocalHours(ctx, DefaultLocalHours(locale))
}

func (s *Service) UpdateHoursConfig(ctx context.Context, hours LocalHours) (LocalHours, error) {
	if hours.Locale == "" {
		return LocalHours{}, fmt.Errorf("locale is required")
	}
	return s.store.SaveLocalHours(ctx, hours)
}

// People merges employees and extra staff into one schedulable list. The two
// tables load in parallel.
func (s *Service) People(ctx context.Context, locale string) ([]Person, error) {
	var employees []people.Employee
	var extras []people.Extra

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		employees, err = s.people.ListEmployees(groupCtx, locale)
		return err
	})
	group.Go(func() error {
		var err error
		extras, err = s.people.ListExtras(groupCtx, locale)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	merged := make([]Person, 0, len(employees)+len(extras))
	for _, employee := range employees {
		shift, _ := ParseShift(employee.Shift)
		merged = append(merged, Person{
			ID:       employee.ID,
			Name:     employee.Name,
			Role:     employee.Role,
			RoleRank: ParseRole(employee.Role),
			Shift:    shift,
			Locale:   employee.Locale,
		})
	}
	for _, extra := range extras {
		shift, _ := ParseShift(extra.Shift)
		merged = append(merged, Person{
			ID:        extra.ID,
			Name:      extra.Name,
			Role:      extra.Role,
			RoleRank:  ParseRole(extra.Role),
			Shift:     shift,
			StartTime: extra.StartTime,
			EndTime:   extra.EndTime,
			IsExtra:   true,
			Locale:    extra.Locale,
		})
	}
	return merged, nil
}

// Assign puts a person on a shift for one day, replacing whatever was there.
// A non-empty explicitHours overrides the resolved window.
func (s *Service) Assign(ctx context.Context, locale, personName, date, shiftRaw, explicitHours string) (Assignment, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return Assignment{}, fmt.Errorf("invalid fecha %q", date)
	}
	shift, ok := ParseShift(shiftRaw)
	if !ok {
		return Assignment{}, fmt.Errorf("unknown turno %q", shiftRaw)
	}

	hours, err := s.HoursConfig(ctx, locale)
	if err != nil {
		return Assignment{}, err
	}
	person, err := s.findPerson(ctx, locale, personName)
	if err != nil {
		return Assignment{}, err
	}

	window := explicitHours
	if window == "" {
		window = ResolveHours(person, shift, hours)
	}
	return s.store.ReplaceAssignment(ctx, Assignment{
		Locale: locale,
		Person: person.Name,
		Date:   date,
		Week:   WeekKey(day),
		Shift:  shift,
		Hours:  window,
	})
}

// Unassign clears the cell. Clearing an already-empty cell succeeds.
func (s *Service) Unassign(ctx context.Context, locale, personName, date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("invalid fecha %q", date)
	}
	return s.store.DeleteAssignment(ctx, locale, personName, date)
}

func (s *Service) findPerson(ctx context.Context, locale, name string) (Person, error) {
	staff, err := s.People(ctx, locale)
	if err != nil {
		return Person{}, err
	}
	for _, person := range staff {
		if person.Name == name {
			return person, nil
		}
	}
	return Person{}, fmt.Errorf("person %q not found in %s", name, locale)
}

// WeekGrid builds the 7-day grid for the week starting at weekStart. The staff
// list and the assignment rows load in parallel.
func (s *Service) WeekGrid(ctx context.Context, locale string, weekStart time.Time, filter string) (WeekGrid, error) {
	dates := WeekDates(weekStart)

	var staff []Person
	var assignments []Assignment

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		staff, err = s.People(groupCtx, locale)
		return err
	})
	group.Go(func() error {
		var err error
		assignments, err = s.store.ListAssignments(groupCtx, locale, dates[0], dates[6])
		return err
	})
	if err := group.Wait(); err != nil {
		return WeekGrid{}, err
	}

	return BuildWeekGrid(weekStart, FilterPeople(staff, filter), assignments), nil
}

// Month returns the month's assignments grouped by date.
func (s *Service) Month(ctx context.Context, locale string, ref time.Time) (map[string][]Assignment, error) {
	from, to := MonthRange(ref)
	assignments, err := s.store.ListAssignments(ctx, locale, from, to)
	if err != nil {
		return nil, err
	}
	return MonthBuckets(assignments), nil
}

// ExportWeekPDF renders the week grid as a printable table.
func (s *Service) ExportWeekPDF(ctx context.Context, locale string, weekStart time.Time, filter string) ([]byte, error) {
	grid, err := s.WeekGrid(ctx, locale, weekStart, filter)
	if err != nil {
		return nil, err
	}
	title := fmt.Sprintf("Horario %s", locale)
	subtitle := fmt.Sprintf("Semana del %s", weekStart.Format(dateLayout))
	return pdf.RenderTable(title, subtitle, ExportHeaders(weekStart), ExportRows(grid))
}
