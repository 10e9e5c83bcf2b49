package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/classroom-api/internal/models"
)

// TeacherStudentRepository manages the teacher ↔ student roster links.
type TeacherStudentRepository struct {
	store
}

// NewTeacherStudentRepository constructs a TeacherStudentRepository. observer may be nil.
func NewTeacherStudentRepository(db *sqlx.DB, observer QueryObserver) *TeacherStudentRepository {
	return &TeacherStudentRepository{store{db: db, observer: observer}}
}

// Link registers the student under the teacher; an existing link is left untouched.
func (r *TeacherStudentRepository) Link(ctx context.Context, link models.TeacherStudent) error {
	defer r.observe("teacher_students.link", time.Now())

	const query = `INSERT INTO teacher_students (teacher_id, student_id) VALUES (:teacher_id, :student_id)
		ON CONFLICT (teacher_id, student_id) DO NOTHING`
	if _, err := r.conn(ctx).NamedExecContext(ctx, query, link); err != nil {
		return fmt.Errorf("link student to teacher: %w", err)
	}
	return nil
}

// ListCommonStudentEmails returns the students registered to every teacher in
// teacherEmails. The emails must be distinct; each student is kept only when
// the number of distinct matching teachers equals len(teacherEmails).
func (r *TeacherStudentRepository) ListCommonStudentEmails(ctx context.Context, teacherEmails []string) ([]string, error) {
	if len(teacherEmails) == 0 {
		return []string{}, nil
	}
	defer r.observe("teacher_students.common", time.Now())

	const query = `SELECT s.email
		FROM students s
		JOIN teacher_students ts ON ts.student_id = s.id
		JOIN teachers t ON t.id = ts.teacher_id
		WHERE t.email = ANY($1)
		GROUP BY s.id, s.email
		HAVING COUNT(DISTINCT t.email) = $2
		ORDER BY s.id`
	emails := []string{}
	if err := r.conn(ctx).SelectContext(ctx, &emails, query, pq.Array(teacherEmails), len(teacherEmails)); err != nil {
		return nil, fmt.Errorf("list common students: %w", err)
	}
	return emails, nil
}

// ListActiveStudentEmails returns the non-suspended students registered to the teacher.
func (r *TeacherStudentRepository) ListActiveStudentEmails(ctx context.Context, teacherEmail string) ([]string, error) {
	defer r.observe("teacher_students.active", time.Now())

	const query = `SELECT s.email
		FROM students s
		JOIN teacher_students ts ON ts.student_id = s.id
		JOIN teachers t ON t.id = ts.teacher_id
		WHERE t.email = $1 AND s.suspended = FALSE
		ORDER BY s.id`
	emails := []string{}
	if err := r.conn(ctx).SelectContext(ctx, &emails, query, teacherEmail); err != nil {
		return nil, fmt.Errorf("list registered students: %w", err)
	}
	return emails, nil
}
