package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/classroom-api/internal/models"
)

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	store
}

// NewStudentRepository constructs a StudentRepository. observer may be nil.
func NewStudentRepository(db *sqlx.DB, observer QueryObserver) *StudentRepository {
	return &StudentRepository{store{db: db, observer: observer}}
}

// Ensure creates the student when absent and returns the stored row. An
// existing student keeps its suspension flag.
func (r *StudentRepository) Ensure(ctx context.Context, email string) (*models.Student, error) {
	defer r.observe("students.ensure", time.Now())
	conn := r.conn(ctx)

	const insertQuery = `INSERT INTO students (email) VALUES ($1) ON CONFLICT (email) DO NOTHING`
	if _, err := conn.ExecContext(ctx, insertQuery, email); err != nil {
		return nil, fmt.Errorf("insert student: %w", err)
	}

	const selectQuery = `SELECT id, email, suspended, created_at FROM students WHERE email = $1`
	var student models.Student
	if err := conn.GetContext(ctx, &student, selectQuery, email); err != nil {
		return nil, fmt.Errorf("load student: %w", err)
	}
	return &student, nil
}

// Suspend flags the student as suspended and reports how many rows changed.
// Unknown emails affect zero rows.
func (r *StudentRepository) Suspend(ctx context.Context, email string) (int64, error) {
	defer r.observe("students.suspend", time.Now())

	const query = `UPDATE students SET suspended = TRUE WHERE email = $1`
	res, err := r.conn(ctx).ExecContext(ctx, query, email)
	if err != nil {
		return 0, fmt.Errorf("suspend student: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("suspend student rows: %w", err)
	}
	return affected, nil
}

// ListSuspendedEmails returns which of the given emails belong to suspended students.
func (r *StudentRepository) ListSuspendedEmails(ctx context.Context, emails []string) ([]string, error) {
	if len(emails) == 0 {
		return []string{}, nil
	}
	defer r.observe("students.list_suspended", time.Now())

	const query = `SELECT email FROM students WHERE email = ANY($1) AND suspended = TRUE ORDER BY id`
	suspended := []string{}
	if err := r.conn(ctx).SelectContext(ctx, &suspended, query, pq.Array(emails)); err != nil {
		return nil, fmt.Errorf("list suspended students: %w", err)
	}
	return suspended, nil
}
