package store

import "github.com/ZhongweiL/CSCI-39548-final-project-client/internal/models"

// Action is a plain state transition applied by the reducer.
type Action interface {
	Slice() Slice
}

type StudentsFetched struct {
	Students []models.Student
}

type StudentEdited struct {
	Student models.Student
}

type CampusesFetched struct {
	Campuses []models.Campus
}

type CampusEdited struct {
	Campus models.Campus
}

func (StudentsFetched) Slice() Slice { return AllStudents }
func (StudentEdited) Slice() Slice   { return AllStudents }
func (CampusesFetched) Slice() Slice { return AllCampuses }
func (CampusEdited) Slice() Slice    { return AllCampuses }

func reduce(state State, action Action) State {
	switch a := action.(type) {
	case StudentsFetched:
		state.AllStudents = append([]models.Student(nil), a.Students...)
	case StudentEdited:
		state.AllStudents = upsertStudent(state.AllStudents, a.Student)
	case CampusesFetched:
		state.AllCampuses = append([]models.Campus(nil), a.Campuses...)
	case CampusEdited:
		state.AllCampuses = upsertCampus(state.AllCampuses, a.Campus)
	}
	return state
}

func upsertStudent(students []models.Student, s models.Student) []models.Student {
	for i := range students {
		if students[i].ID == s.ID {
			students[i] = s
			return students
		}
	}
	return append(students, s)
}

func upsertCampus(campuses []models.Campus, c models.Campus) []models.Campus {
	for i := range campuses {
		if campuses[i].ID == c.ID {
			campuses[i] = c
			return campuses
		}
	}
	return append(campuses, c)
}
