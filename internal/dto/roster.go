package dto

// RegisterStudentsRequest registers students under a teacher.
type RegisterStudentsRequest struct {
	Teacher  string   `json:"teacher" validate:"required"`
	Students []string `json:"students" validate:"required,min=1,dive,required"`
}

// SuspendStudentRequest suspends a single student.
type SuspendStudentRequest struct {
	Student string `json:"student" validate:"required"`
}

// CommonStudentsResponse lists students registered to every requested teacher.
type CommonStudentsResponse struct {
	Students []string `json:"students"`
}
