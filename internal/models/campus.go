package models

type Campus struct {
	ID          int    `json:"id" validate:"required,gte=1"`
	Name        string `json:"name" validate:"required"`
	Address     string `json:"address" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// CampusDetail is a campus together with its enrolled students.
type CampusDetail struct {
	Campus
	Students []Student `json:"students"`
}
