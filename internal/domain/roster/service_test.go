package roster

import (
	"context"
	"testing"
	"time"

	"staffhub/internal/domain/people"
)

type fakePeople struct {
	employees []people.Employee
	extras    []people.Extra
}

func (f *fakePeople) ListEmployees(ctx context.Context, locale string) ([]people.Employee, error) {
	return f.employees, nil
}

func (f *fakePeople) ListExtras(ctx context.Context, locale string) ([]people.Extra, error) {
	return f.extras, nil
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	source := &fakePeople{
		employees: []people.Employee{
			{ID: "e1", Name: "Carmen", Role: "Encargada", Locale: "Brutal Soul"},
		},
		extras: []people.Extra{
			{ID: "x1", Name: "Luis", Role: "Camarero", StartTime: "18:00", EndTime: "23:00", Locale: "Brutal Soul"},
		},
	}
	return NewService(store, source)
}

func TestAssignReplacesSameDay(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	first, err := svc.Assign(ctx, "Brutal Soul", "Carmen", "2024-07-01", "Mañana", "")
	if err != nil {
		t.Fatalf("first assign: %v", err)
	}
	if first.Shift != ShiftManana || first.Week != "2024-27" {
		t.Fatalf("first assignment wrong: %+v", first)
	}
	if first.Hours != "09:00 - 15:00" {
		t.Fatalf("expected default morning window, got %q", first.Hours)
	}

	second, err := svc.Assign(ctx, "Brutal Soul", "Carmen", "2024-07-01", "Tarde", "")
	if err != nil {
		t.Fatalf("second assign: %v", err)
	}
	if second.Shift != ShiftTarde {
		t.Fatalf("second assignment wrong: %+v", second)
	}

	rows, err := svc.store.ListAssignments(ctx, "Brutal Soul", "2024-07-01", "2024-07-01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].Shift != ShiftTarde {
		t.Fatalf("expected one Tarde row after replace, got %+v", rows)
	}
}

func TestAssignExtraUsesPersonalWindow(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	assignment, err := svc.Assign(ctx, "Brutal Soul", "Luis", "2024-07-02", "Extra", "")
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if assignment.Hours != "18:00 - 23:00" {
		t.Fatalf("expected Luis's personal window, got %q", assignment.Hours)
	}
}

func TestAssignExplicitHoursOverride(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	assignment, err := svc.Assign(ctx, "Brutal Soul", "Carmen", "2024-07-01", "Mañana", "10:00 - 14:00")
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if assignment.Hours != "10:00 - 14:00" {
		t.Fatalf("explicit hours must win over defaults, got %q", assignment.Hours)
	}
}

func TestAssignValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.Assign(ctx, "Brutal Soul", "Carmen", "01/07/2024", "Tarde", ""); err == nil {
		t.Fatalf("bad date must be rejected")
	}
	if _, err := svc.Assign(ctx, "Brutal Soul", "Carmen", "2024-07-01", "noche", ""); err == nil {
		t.Fatalf("unknown turno must be rejected")
	}
	if _, err := svc.Assign(ctx, "Brutal Soul", "Nadie", "2024-07-01", "Tarde", ""); err == nil {
		t.Fatalf("unknown person must be rejected")
	}
}

func TestUnassignIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.Assign(ctx, "Brutal Soul", "Carmen", "2024-07-01", "Tarde", ""); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := svc.Unassign(ctx, "Brutal Soul", "Carmen", "2024-07-01"); err != nil {
		t.Fatalf("first unassign: %v", err)
	}
	if err := svc.Unassign(ctx, "Brutal Soul", "Carmen", "2024-07-01"); err != nil {
		t.Fatalf("second unassign should be a no-op: %v", err)
	}
}

func TestHoursConfigLazyCreate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	hours, err := svc.HoursConfig(ctx, "Stella Brutal")
	if err != nil {
		t.Fatalf("hours: %v", err)
	}
	if hours.ID == "" || hours.MananaStart != "09:00" || hours.ExtraEnd != "02:00" {
		t.Fatalf("expected persisted defaults, got %+v", hours)
	}

	hours.TardeEnd = "23:30"
	updated, err := svc.UpdateHoursConfig(ctx, hours)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != hours.ID {
		t.Fatalf("update must keep the row, got new id %q", updated.ID)
	}

	again, err := svc.HoursConfig(ctx, "Stella Brutal")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.TardeEnd != "23:30" {
		t.Fatalf("edit did not stick: %+v", again)
	}
}

func TestWeekGridMergesEmployeesAndExtras(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.Assign(ctx, "Brutal Soul", "Luis", "2024-07-01", "Extra", ""); err != nil {
		t.Fatalf("assign: %v", err)
	}

	monday := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	grid, err := svc.WeekGrid(ctx, "Brutal Soul", monday, "")
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	if len(grid.Rows) != 2 {
		t.Fatalf("expected employee and extra rows, got %d", len(grid.Rows))
	}
	// Camarero before encargada.
	if grid.Rows[0].Person.Name != "Luis" || !grid.Rows[0].Person.IsExtra {
		t.Fatalf("expected Luis first, got %+v", grid.Rows[0].Person)
	}
	if cell := grid.Rows[0].Cells[0]; cell == nil || cell.Hours != "18:00 - 23:00" {
		t.Fatalf("Luis Monday cell wrong: %+v", cell)
	}

	filtered, err := svc.WeekGrid(ctx, "Brutal Soul", monday, "encarg")
	if err != nil {
		t.Fatalf("filtered grid: %v", err)
	}
	if len(filtered.Rows) != 1 || filtered.Rows[0].Person.Name != "Carmen" {
		t.Fatalf("filter should keep only Carmen: %+v", filtered.Rows)
	}
}

func TestMonthGroupsByDate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	for _, date := range []string{"2024-07-01", "2024-07-01", "2024-07-15"} {
		if _, err := svc.Assign(ctx, "Brutal Soul", "Carmen", date, "Tarde", ""); err != nil {
			t.Fatalf("assign %s: %v", date, err)
		}
	}
	if _, err := svc.Assign(ctx, "Brutal Soul", "Luis", "2024-07-01", "Extra", ""); err != nil {
		t.Fatalf("assign extra: %v", err)
	}

	buckets, err := svc.Month(ctx, "Brutal Soul", time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("month: %v", err)
	}
	// Carmen's double assign on the 1st collapsed to one row.
	if len(buckets["2024-07-01"]) != 2 {
		t.Fatalf("expected 2 rows on the 1st, got %+v", buckets["2024-07-01"])
	}
	if len(buckets["2024-07-15"]) != 1 {
		t.Fatalf("expected 1 row on the 15th")
	}
}

func TestExportWeekPDF(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.Assign(ctx, "Brutal Soul", "Carmen", "2024-07-01", "Mañana", ""); err != nil {
		t.Fatalf("assign: %v", err)
	}

	monday := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	data, err := svc.ExportWeekPDF(ctx, "Brutal Soul", monday, "")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(data) == 0 || string(data[:4]) != "%PDF" {
		t.Fatalf("expected a PDF document, got %d bytes", len(data))
	}
}
