package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/classroom-api/internal/models"
)

// TeacherRepository manages persistence for teachers.
type TeacherRepository struct {
	store
}

// NewTeacherRepository constructs a TeacherRepository. observer may be nil.
func NewTeacherRepository(db *sqlx.DB, observer QueryObserver) *TeacherRepository {
	return &TeacherRepository{store{db: db, observer: observer}}
}

// Ensure creates the teacher when absent and returns the stored row.
func (r *TeacherRepository) Ensure(ctx context.Context, email string) (*models.Teacher, error) {
	defer r.observe("teachers.ensure", time.Now())
	conn := r.conn(ctx)

	const insertQuery = `INSERT INTO teachers (email) VALUES ($1) ON CONFLICT (email) DO NOTHING`
	if _, err := conn.ExecContext(ctx, insertQuery, email); err != nil {
		return nil, fmt.Errorf("insert teacher: %w", err)
	}

	const selectQuery = `SELECT id, email, created_at FROM teachers WHERE email = $1`
	var teacher models.Teacher
	if err := conn.GetContext(ctx, &teacher, selectQuery, email); err != nil {
		return nil, fmt.Errorf("load teacher: %w", err)
	}
	return &teacher, nil
}
