package roster

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const dateLayout = "2006-01-02"

// ResolveHours picks the display time window for an assignment: an extra
// worker's personal window wins, then the location defaults for the category.
func ResolveHours(person Person, category ShiftCategory, hours LocalHours) string {
	if person.IsExtra && person.StartTime != "" && person.EndTime != "" {
		return window(person.StartTime, person.EndTime)
	}
	return hours.Window(category)
}

// SortPeople orders by role ordinal, then by name under Spanish collation.
func SortPeople(people []Person) {
	collator := collate.New(language.Spanish)
	sort.SliceStable(people, func(i, j int) bool {
		if people[i].RoleRank != people[j].RoleRank {
			return people[i].RoleRank < people[j].RoleRank
		}
		return collator.CompareString(people[i].Name, people[j].Name) < 0
	})
}

// FilterPeople keeps people whose name or role contains term,
// case-insensitive. An empty term keeps everyone. Filter and sort are
// independent projections; apply in either order.
func FilterPeople(people []Person, term string) []Person {
	trimmed := strings.ToLower(strings.TrimSpace(term))
	if trimmed == "" {
		return people
	}
	out := make([]Person, 0, len(people))
	for _, person := range people {
		if strings.Contains(strings.ToLower(person.Name), trimmed) ||
			strings.Contains(strings.ToLower(person.Role), trimmed) {
			out = append(out, person)
		}
	}
	return out
}

// WeekDates returns the 7 ISO dates starting at weekStart.
func WeekDates(weekStart time.Time) [7]string {
	var dates [7]string
	for i := 0; i < 7; i++ {
		dates[i] = weekStart.AddDate(0, 0, i).Format(dateLayout)
	}
	return dates
}

// WeekKey renders the semana column value, e.g. "2024-27".
func WeekKey(weekStart time.Time) string {
	year, week := weekStart.ISOWeek()
	return fmt.Sprintf("%04d-%02d", year, week)
}

type WeekRow struct {
	Person Person         `json:"persona"`
	Cells  [7]*Assignment `json:"celdas"`
}

type WeekGrid struct {
	WeekStart string    `json:"semana_inicio"`
	Dates     [7]string `json:"fechas"`
	Rows      []WeekRow `json:"filas"`
}

// BuildWeekGrid lays assignments into 7 columns per person. People come in
// already filtered; the grid sorts them. An empty person list yields an empty
// grid, not an error.
func BuildWeekGrid(weekStart time.Time, people []Person, assignments []Assignment) WeekGrid {
	grid := WeekGrid{
		WeekStart: weekStart.Format(dateLayout),
		Dates:     WeekDates(weekStart),
		Rows:      make([]WeekRow, 0, len(people)),
	}

	index := make(map[string]*Assignment, len(assignments))
	for i := range assignments {
		a := &assignments[i]
		index[a.Person+"|"+a.Date] = a
	}

	SortPeople(people)
	for _, person := range people {
		row := WeekRow{Person: person}
		for day, date := range grid.Dates {
			row.Cells[day] = index[person.Name+"|"+date]
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid
}

// MonthBuckets groups assignments by date. Order within a day follows the
// input (insertion order); any display cap is the caller's concern.
func MonthBuckets(assignments []Assignment) map[string][]Assignment {
	buckets := make(map[string][]Assignment)
	for _, a := range assignments {
		buckets[a.Date] = append(buckets[a.Date], a)
	}
	return buckets
}

// ExportRows projects a week grid into printable rows: one row per person,
// one column per day, "shift\nhours" cells with "-" for empty slots.
func ExportRows(grid WeekGrid) [][]string {
	rows := make([][]string, 0, len(grid.Rows))
	for _, gridRow := range grid.Rows {
		row := make([]string, 0, 8)
		row = append(row, gridRow.Person.Name)
		for _, cell := range gridRow.Cells {
			if cell == nil {
				row = append(row, "-")
				continue
			}
			label := string(cell.Shift)
			if cell.Hours != "" {
				label += "\n" + cell.Hours
			}
			row = append(row, label)
		}
		rows = append(rows, row)
	}
	return rows
}

var spanishWeekdays = [7]string{"Lun", "Mar", "Mie", "Jue", "Vie", "Sab", "Dom"}

// ExportHeaders builds the column headers for a week starting at weekStart
// (expected to be a Monday, but any start day keeps the 7-day sequence).
func ExportHeaders(weekStart time.Time) []string {
	headers := make([]string, 0, 8)
	headers = append(headers, "Empleado")
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		headers = append(headers, fmt.Sprintf("%s %d", spanishWeekdays[(int(day.Weekday())+6)%7], day.Day()))
	}
	return headers
}

// MonthRange returns the first and last dates of the month containing ref.
func MonthRange(ref time.Time) (string, string) {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format(dateLayout), last.Format(dateLayout)
}
