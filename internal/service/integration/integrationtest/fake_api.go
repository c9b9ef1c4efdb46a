// Package integrationtest provides an in-memory backend for tests.
package integrationtest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/models"
)

// FakeAPI implements integration.APIClient over in-memory maps and records
// every call it receives.
type FakeAPI struct {
	mu sync.Mutex

	Students map[int]models.Student
	Campuses map[int]models.Campus

	// Err, when set, is returned by every method.
	Err error

	FetchAllStudentsCalls int
	FetchAllCampusesCalls int
	UpdatedStudents       []models.Student
	UpdatedCampuses       []models.Campus
}

func NewFakeAPI() *FakeAPI {
	return &FakeAPI{
		Students: make(map[int]models.Student),
		Campuses: make(map[int]models.Campus),
	}
}

func (f *FakeAPI) GetAllStudents(ctx context.Context) ([]models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.FetchAllStudentsCalls++
	if f.Err != nil {
		return nil, f.Err
	}

	out := make([]models.Student, 0, len(f.Students))
	for _, id := range sortedKeys(f.Students) {
		out = append(out, f.Students[id])
	}
	return out, nil
}

func (f *FakeAPI) GetStudent(ctx context.Context, id int) (*models.StudentDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Err != nil {
		return nil, f.Err
	}
	s, ok := f.Students[id]
	if !ok {
		return nil, fmt.Errorf("failed to fetch student %d: %w", id, models.ErrNotFound)
	}

	detail := &models.StudentDetail{Student: s}
	if s.CampusID != nil {
		if c, ok := f.Campuses[*s.CampusID]; ok {
			detail.Campus = &c
		}
	}
	return detail, nil
}

func (f *FakeAPI) UpdateStudent(ctx context.Context, student models.Student) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.UpdatedStudents = append(f.UpdatedStudents, student)
	if f.Err != nil {
		return nil, f.Err
	}
	f.Students[student.ID] = student
	return &student, nil
}

func (f *FakeAPI) GetAllCampuses(ctx context.Context) ([]models.Campus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.FetchAllCampusesCalls++
	if f.Err != nil {
		return nil, f.Err
	}

	out := make([]models.Campus, 0, len(f.Campuses))
	for _, id := range sortedKeys(f.Campuses) {
		out = append(out, f.Campuses[id])
	}
	return out, nil
}

func (f *FakeAPI) GetCampus(ctx context.Context, id int) (*models.CampusDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Err != nil {
		return nil, f.Err
	}
	c, ok := f.Campuses[id]
	if !ok {
		return nil, fmt.Errorf("failed to fetch campus %d: %w", id, models.ErrNotFound)
	}

	detail := &models.CampusDetail{Campus: c}
	for _, sid := range sortedKeys(f.Students) {
		s := f.Students[sid]
		if s.CampusID != nil && *s.CampusID == id {
			detail.Students = append(detail.Students, s)
		}
	}
	return detail, nil
}

func (f *FakeAPI) UpdateCampus(ctx context.Context, campus models.Campus) (*models.Campus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.UpdatedCampuses = append(f.UpdatedCampuses, campus)
	if f.Err != nil {
		return nil, f.Err
	}
	f.Campuses[campus.ID] = campus
	return &campus, nil
}

// Calls returns the fetch-all counters under the lock.
func (f *FakeAPI) Calls() (students, campuses int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.FetchAllStudentsCalls, f.FetchAllCampusesCalls
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
