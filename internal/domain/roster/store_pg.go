package roster

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGStore struct {
	DB *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{DB: pool}
}

func (s *PGStore) ListAssignments(ctx context.Context, locale, from, to string) ([]Assignment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, locale, empleado, fecha, semana, turno, horas, created_at
    FROM turnos
    WHERE locale = $1 AND fecha >= $2 AND fecha <= $3
    ORDER BY created_at
  `, locale, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []Assignment
	for rows.Next() {
		assignment, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}
	return assignments, rows.Err()
}

// ReplaceAssignment runs the delete-then-insert inside one transaction so a
// failure cannot leave the day transiently unassigned.
func (s *PGStore) ReplaceAssignment(ctx context.Context, assignment Assignment) (Assignment, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Assignment{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    DELETE FROM turnos WHERE locale = $1 AND empleado = $2 AND fecha = $3
  `, assignment.Locale, assignment.Person, assignment.Date); err != nil {
		return Assignment{}, err
	}

	if err := tx.QueryRow(ctx, `
    INSERT INTO turnos (locale, empleado, fecha, semana, turno, horas)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id, created_at
  `, assignment.Locale, assignment.Person, assignment.Date, assignment.Week, string(assignment.Shift), assignment.Hours,
	).Scan(&assignment.ID, &assignment.CreatedAt); err != nil {
		return Assignment{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Assignment{}, err
	}
	return assignment, nil
}

func (s *PGStore) DeleteAssignment(ctx context.Context, locale, person, date string) error {
	_, err := s.DB.Exec(ctx, `
    DELETE FROM turnos WHERE locale = $1 AND empleado = $2 AND fecha = $3
  `, locale, person, date)
	return err
}

func (s *PGStore) DeleteByPerson(ctx context.Context, locale, person string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM turnos WHERE locale = $1 AND empleado = $2", locale, person)
	return err
}

func (s *PGStore) LocalHours(ctx context.Context, locale string) (LocalHours, bool, error) {
	var hours LocalHours
	err := s.DB.QueryRow(ctx, `
    SELECT id, locale, manana_inicio, manana_fin, tarde_inicio, tarde_fin, extra_inicio, extra_fin
    FROM local_horarios
    WHERE locale = $1
  `, locale).Scan(&hours.ID, &hours.Locale, &hours.MananaStart, &hours.MananaEnd,
		&hours.TardeStart, &hours.TardeEnd, &hours.ExtraStart, &hours.ExtraEnd)
	if errors.Is(err, pgx.ErrNoRows) {
		return LocalHours{}, false, nil
	}
	if err != nil {
		return LocalHours{}, false, err
	}
	return hours, true, nil
}

func (s *PGStore) SaveLocalHours(ctx context.Context, hours LocalHours) (LocalHours, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO local_horarios (locale, manana_inicio, manana_fin, tarde_inicio, tarde_fin, extra_inicio, extra_fin)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    ON CONFLICT (locale) DO UPDATE SET
      manana_inicio = EXCLUDED.manana_inicio, manana_fin = EXCLUDED.manana_fin,
      tarde_inicio = EXCLUDED.tarde_inicio, tarde_fin = EXCLUDED.tarde_fin,
      extra_inicio = EXCLUDED.extra_inicio, extra_fin = EXCLUDED.extra_fin
    RETURNING id
  `, hours.Locale, hours.MananaStart, hours.MananaEnd, hours.TardeStart, hours.TardeEnd,
		hours.ExtraStart, hours.ExtraEnd).Scan(&hours.ID)
	return hours, err
}

func scanAssignment(row pgx.Row) (Assignment, error) {
	var a Assignment
	var fecha time.Time
	var turno string
	err := row.Scan(&a.ID, &a.Locale, &a.Person, &fecha, &a.Week, &turno, &a.Hours, &a.CreatedAt)
	if err != nil {
		return Assignment{}, err
	}
	a.Date = fecha.Format(dateLayout)
	a.Shift = ShiftCategory(turno)
	return a, nil
}
