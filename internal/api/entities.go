package api

import "academic-records/console/internal/session"

// User is an account managed through the admin screens.
type User struct {
	ID        int          `json:"id,omitempty"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Password  string       `json:"password,omitempty"`
	Role      session.Role `json:"role"`
	Active    bool         `json:"active,omitempty"`
	CreatedAt string       `json:"createdAt,omitempty"`
	UpdatedAt string       `json:"updatedAt,omitempty"`
}

// Course is a degree program.
type Course struct {
	ID                int    `json:"id,omitempty"`
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	TotalHours        int    `json:"totalHours"`
	DurationSemesters int    `json:"durationSemesters"`
	Active            bool   `json:"active,omitempty"`
	CreatedAt         string `json:"createdAt,omitempty"`
	UpdatedAt         string `json:"updatedAt,omitempty"`
}

// Semester is one numbered term within a course.
type Semester struct {
	ID         int    `json:"id,omitempty"`
	Number     int    `json:"number"`
	CourseID   int    `json:"courseId,omitempty"`
	CourseName string `json:"courseName,omitempty"`
	Active     bool   `json:"active,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

// Discipline is a subject taught in a semester.
type Discipline struct {
	ID             int    `json:"id,omitempty"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	Workload       int    `json:"workload"`
	SemesterID     int    `json:"semesterId,omitempty"`
	SemesterNumber int    `json:"semesterNumber,omitempty"`
	CourseID       int    `json:"courseId,omitempty"`
	CourseName     string `json:"courseName,omitempty"`
	Active         bool   `json:"active,omitempty"`
	CreatedAt      string `json:"createdAt,omitempty"`
	UpdatedAt      string `json:"updatedAt,omitempty"`
}

// Curriculum is one flat row linking a course, semester, and discipline,
// optionally carrying a student enrollment.
type Curriculum struct {
	ID                 int    `json:"id,omitempty"`
	CourseID           int    `json:"courseId"`
	CourseName         string `json:"courseName,omitempty"`
	SemesterID         int    `json:"semesterId,omitempty"`
	SemesterNumber     int    `json:"semesterNumber,omitempty"`
	DisciplineID       int    `json:"disciplineId"`
	DisciplineName     string `json:"disciplineName,omitempty"`
	DisciplineWorkload int    `json:"disciplineWorkload,omitempty"`
	StudentID          int    `json:"studentId,omitempty"`
	Status             string `json:"status,omitempty"`
	Active             bool   `json:"active,omitempty"`
	CreatedAt          string `json:"createdAt,omitempty"`
	UpdatedAt          string `json:"updatedAt,omitempty"`
}
