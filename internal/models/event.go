package models

type StudentEditedEvent struct {
	EventID   string `json:"event_id"`
	StudentID int    `json:"student_id"`
	CampusID  *int   `json:"campus_id,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

type CampusEditedEvent struct {
	EventID   string `json:"event_id"`
	CampusID  int    `json:"campus_id"`
	Timestamp int64  `json:"timestamp"`
}
