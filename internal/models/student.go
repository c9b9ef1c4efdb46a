package models

// Student is the editable record exchanged with the backend API.
// Gpa and CampusID are nullable and always serialized, so a submitted record
// carries the full key set. Validation mirrors the form's input constraints,
// so imageUrl is free text.
type Student struct {
	ID        int      `json:"id" validate:"required,gte=1"`
	Firstname string   `json:"firstname" validate:"required"`
	Lastname  string   `json:"lastname" validate:"required"`
	Email     string   `json:"email" validate:"required,email"`
	ImageURL  string   `json:"imageUrl"`
	GPA       *float64 `json:"gpa" validate:"omitempty,gte=0,lte=4"`
	CampusID  *int     `json:"campusId" validate:"omitempty,gte=1"`
}

// StudentDetail is a student with its campus already resolved.
type StudentDetail struct {
	Student
	Campus *Campus `json:"campus"`
}

func (s Student) FullName() string {
	return s.Firstname + " " + s.Lastname
}
