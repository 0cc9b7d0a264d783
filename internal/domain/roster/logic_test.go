package roster

import (
	"testing"
	"time"
)

func TestParseShift(t *testing.T) {
	cases := map[string]ShiftCategory{
		"Mañana":   ShiftManana,
		"manana":   ShiftManana,
		"TARDE":    ShiftTarde,
		"extra":    ShiftExtra,
		"Descanso": ShiftDescanso,
	}
	for raw, want := range cases {
		got, ok := ParseShift(raw)
		if !ok || got != want {
			t.Fatalf("ParseShift(%q) = %q, %v; want %q", raw, got, ok, want)
		}
	}
	if _, ok := ParseShift("noche"); ok {
		t.Fatalf("ParseShift accepted unknown category")
	}
}

func TestParseRoleOrdering(t *testing.T) {
	if ParseRole("Camarera") != RoleCamarero {
		t.Fatalf("feminine variant should map to the same role")
	}
	if ParseRole("JEFE DE COCINA") != RoleJefeCocina {
		t.Fatalf("case should not matter")
	}
	if ParseRole("Ayudante de Cocina") >= RoleJefeCocina {
		t.Fatalf("ayudante must rank before jefe de cocina")
	}
	if ParseRole("consultor externo") != RoleUnknown {
		t.Fatalf("unrecognized text must rank last")
	}
}

func TestResolveHoursExtraWindowWins(t *testing.T) {
	hours := DefaultLocalHours("Brutal Soul")
	luis := Person{Name: "Luis", IsExtra: true, StartTime: "18:00", EndTime: "23:00"}
	if got := ResolveHours(luis, ShiftExtra, hours); got != "18:00 - 23:00" {
		t.Fatalf("extra personal window should win, got %q", got)
	}
	// The personal window wins for any category, not just Extra.
	if got := ResolveHours(luis, ShiftManana, hours); got != "18:00 - 23:00" {
		t.Fatalf("personal window should win on Manana too, got %q", got)
	}

	// An extra without a window falls back like an employee.
	luis.StartTime = ""
	if got := ResolveHours(luis, ShiftExtra, hours); got != "20:00 - 02:00" {
		t.Fatalf("expected location default, got %q", got)
	}

	ana := Person{Name: "Ana"}
	if got := ResolveHours(ana, ShiftManana, hours); got != "09:00 - 15:00" {
		t.Fatalf("expected morning window, got %q", got)
	}
	if got := ResolveHours(ana, ShiftDescanso, hours); got != "" {
		t.Fatalf("descanso has no window, got %q", got)
	}
}

func TestSortPeopleRoleThenName(t *testing.T) {
	staff := []Person{
		{Name: "Óscar", Role: "Camarero", RoleRank: RoleCamarero},
		{Name: "Pedro", Role: "Jefe de cocina", RoleRank: RoleJefeCocina},
		{Name: "Ana", Role: "Cocinera", RoleRank: RoleCocinero},
		{Name: "Pablo", Role: "Camarero", RoleRank: RoleCamarero},
	}
	SortPeople(staff)

	want := []string{"Óscar", "Pablo", "Ana", "Pedro"}
	for i, name := range want {
		if staff[i].Name != name {
			t.Fatalf("position %d: got %q, want %q", i, staff[i].Name, name)
		}
	}
}

func TestFilterPeople(t *testing.T) {
	staff := []Person{
		{Name: "Ana López", Role: "Cocinera"},
		{Name: "Luis", Role: "Camarero"},
	}
	if got := FilterPeople(staff, "  "); len(got) != 2 {
		t.Fatalf("blank term must keep everyone, got %d", len(got))
	}
	if got := FilterPeople(staff, "lópez"); len(got) != 1 || got[0].Name != "Ana López" {
		t.Fatalf("name match failed: %+v", got)
	}
	if got := FilterPeople(staff, "CAMARERO"); len(got) != 1 || got[0].Name != "Luis" {
		t.Fatalf("role match failed: %+v", got)
	}
}

func TestBuildWeekGrid(t *testing.T) {
	monday := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	staff := []Person{
		{Name: "Ana", RoleRank: RoleCocinero},
		{Name: "Luis", RoleRank: RoleCamarero},
	}
	assignments := []Assignment{
		{Person: "Ana", Date: "2024-07-03", Shift: ShiftManana, Hours: "09:00 - 15:00"},
		{Person: "Luis", Date: "2024-07-01", Shift: ShiftTarde},
	}

	grid := BuildWeekGrid(monday, staff, assignments)
	if grid.WeekStart != "2024-07-01" || grid.Dates[6] != "2024-07-07" {
		t.Fatalf("unexpected date span: %s .. %s", grid.WeekStart, grid.Dates[6])
	}
	if len(grid.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(grid.Rows))
	}
	// Camarero sorts before cocinero.
	if grid.Rows[0].Person.Name != "Luis" {
		t.Fatalf("expected Luis first, got %q", grid.Rows[0].Person.Name)
	}
	if cell := grid.Rows[0].Cells[0]; cell == nil || cell.Shift != ShiftTarde {
		t.Fatalf("Luis Monday cell wrong: %+v", cell)
	}
	if cell := grid.Rows[1].Cells[2]; cell == nil || cell.Hours != "09:00 - 15:00" {
		t.Fatalf("Ana Wednesday cell wrong: %+v", cell)
	}
	if grid.Rows[1].Cells[1] != nil {
		t.Fatalf("empty day should stay nil")
	}
}

func TestBuildWeekGridEmptyStaff(t *testing.T) {
	monday := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	grid := BuildWeekGrid(monday, nil, []Assignment{{Person: "Ana", Date: "2024-07-01"}})
	if len(grid.Rows) != 0 {
		t.Fatalf("no staff should mean no rows, got %d", len(grid.Rows))
	}
}

func TestWeekKey(t *testing.T) {
	monday := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	if got := WeekKey(monday); got != "2024-27" {
		t.Fatalf("WeekKey = %q", got)
	}
}

func TestMonthBucketsKeepInsertionOrder(t *testing.T) {
	buckets := MonthBuckets([]Assignment{
		{Person: "Ana", Date: "2024-07-05"},
		{Person: "Luis", Date: "2024-07-05"},
		{Person: "Ana", Date: "2024-07-06"},
	})
	day := buckets["2024-07-05"]
	if len(day) != 2 || day[0].Person != "Ana" || day[1].Person != "Luis" {
		t.Fatalf("bucket order wrong: %+v", day)
	}
	if len(buckets["2024-07-06"]) != 1 {
		t.Fatalf("missing second bucket")
	}
}

func TestExportRowsAndHeaders(t *testing.T) {
	monday := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	headers := ExportHeaders(monday)
	if headers[0] != "Empleado" || headers[1] != "Lun 1" || headers[7] != "Dom 7" {
		t.Fatalf("headers wrong: %v", headers)
	}

	grid := BuildWeekGrid(monday,
		[]Person{{Name: "Ana", RoleRank: RoleCocinero}},
		[]Assignment{{Person: "Ana", Date: "2024-07-01", Shift: ShiftManana, Hours: "09:00 - 15:00"}},
	)
	rows := ExportRows(grid)
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	if rows[0][0] != "Ana" || rows[0][1] != "Manana\n09:00 - 15:00" {
		t.Fatalf("row cells wrong: %v", rows[0])
	}
	for day := 2; day < 8; day++ {
		if rows[0][day] != "-" {
			t.Fatalf("empty day %d should print '-', got %q", day, rows[0][day])
		}
	}
}

func TestMonthRange(t *testing.T) {
	from, to := MonthRange(time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC))
	if from != "2024-02-01" || to != "2024-02-29" {
		t.Fatalf("leap february range wrong: %s .. %s", from, to)
	}
}
