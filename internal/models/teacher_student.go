package models

// TeacherStudent links a student to a teacher. The pair is unique.
type TeacherStudent struct {
	TeacherID int64 `db:"teacher_id" json:"teacher_id"`
	StudentID int64 `db:"student_id" json:"student_id"`
}
