package roster

import (
	"strings"
	"time"
)

// ShiftCategory is the kind of work period assigned to a person on a day.
// Values match the stored turno column.
type ShiftCategory string

const (
	ShiftManana   ShiftCategory = "Manana"
	ShiftTarde    ShiftCategory = "Tarde"
	ShiftExtra    ShiftCategory = "Extra"
	ShiftDescanso ShiftCategory = "Descanso"
)

// ParseShift normalizes free text ("Mañana", "tarde") to a category.
func ParseShift(raw string) (ShiftCategory, bool) {
	switch foldSpanish(raw) {
	case "manana":
		return ShiftManana, true
	case "tarde":
		return ShiftTarde, true
	case "extra":
		return ShiftExtra, true
	case "descanso":
		return ShiftDescanso, true
	}
	return "", false
}

// Assignment is one turnos row: at most one exists per (person, date, locale).
type Assignment struct {
	ID        string        `json:"id"`
	Locale    string        `json:"locale"`
	Person    string        `json:"empleado"`
	Date      string        `json:"fecha"`
	Week      string        `json:"semana"`
	Shift     ShiftCategory `json:"turno"`
	Hours     string        `json:"horas"`
	CreatedAt time.Time     `json:"created_at"`
}

// LocalHours holds the default shift windows for one location.
type LocalHours struct {
	ID          string `json:"id,omitempty"`
	Locale      string `json:"locale"`
	MananaStart string `json:"manana_inicio"`
	MananaEnd   string `json:"manana_fin"`
	TardeStart  string `json:"tarde_inicio"`
	TardeEnd    string `json:"tarde_fin"`
	ExtraStart  string `json:"extra_inicio"`
	ExtraEnd    string `json:"extra_fin"`
}

// DefaultLocalHours are the hardcoded fallbacks used until a config row for
// the location exists.
func DefaultLocalHours(locale string) LocalHours {
	return LocalHours{
		Locale:      locale,
		MananaStart: "09:00",
		MananaEnd:   "15:00",
		TardeStart:  "16:00",
		TardeEnd:    "22:00",
		ExtraStart:  "20:00",
		ExtraEnd:    "02:00",
	}
}

// Window renders the default time window for a category. Descanso has none.
func (h LocalHours) Window(category ShiftCategory) string {
	switch category {
	case ShiftManana:
		return window(h.MananaStart, h.MananaEnd)
	case ShiftTarde:
		return window(h.TardeStart, h.TardeEnd)
	case ShiftExtra:
		return window(h.ExtraStart, h.ExtraEnd)
	}
	return ""
}

func window(start, end string) string {
	if start == "" || end == "" {
		return ""
	}
	return start + " - " + end
}

// Person is the merged roster view over employees and extra staff.
type Person struct {
	ID        string        `json:"id"`
	Name      string        `json:"nombre"`
	Role      string        `json:"puesto"`
	RoleRank  Role          `json:"-"`
	Shift     ShiftCategory `json:"turno"`
	StartTime string        `json:"hora_inicio,omitempty"`
	EndTime   string        `json:"hora_fin,omitempty"`
	IsExtra   bool          `json:"es_extra"`
	Locale    string        `json:"locale"`
}

// foldSpanish lowercases and strips the accented vowels and enye that show up
// in the stored free text.
func foldSpanish(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	replacer := strings.NewReplacer(
		"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
	)
	return replacer.Replace(lowered)
}
