package store

import (
	"context"
	"time"

	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/models"
	"github.com/google/uuid"
)

func FetchAllStudentsThunk() Thunk {
	return func(ctx context.Context, env Env) error {
		students, err := env.API.GetAllStudents(ctx)
		if err != nil {
			return err
		}
		env.Dispatch(StudentsFetched{Students: students})
		return nil
	}
}

func FetchAllCampusesThunk() Thunk {
	return func(ctx context.Context, env Env) error {
		campuses, err := env.API.GetAllCampuses(ctx)
		if err != nil {
			return err
		}
		env.Dispatch(CampusesFetched{Campuses: campuses})
		return nil
	}
}

// FetchStudentThunk loads one student with its campus into out.
func FetchStudentThunk(id int, out *models.StudentDetail) Thunk {
	return func(ctx context.Context, env Env) error {
		student, err := env.API.GetStudent(ctx, id)
		if err != nil {
			return err
		}
		*out = *student
		return nil
	}
}

// FetchCampusThunk loads one campus with its students into out.
func FetchCampusThunk(id int, out *models.CampusDetail) Thunk {
	return func(ctx context.Context, env Env) error {
		campus, err := env.API.GetCampus(ctx, id)
		if err != nil {
			return err
		}
		*out = *campus
		return nil
	}
}

func EditStudentThunk(student models.Student) Thunk {
	return func(ctx context.Context, env Env) error {
		updated, err := env.API.UpdateStudent(ctx, student)
		if err != nil {
			return err
		}
		env.Dispatch(StudentEdited{Student: *updated})

		env.Logger.Info().Int("student_id", updated.ID).Msg("Student edited")

		if env.Events != nil {
			event := &models.StudentEditedEvent{
				EventID:   uuid.NewString(),
				StudentID: updated.ID,
				CampusID:  updated.CampusID,
				Timestamp: time.Now().Unix(),
			}
			if err := env.Events.PublishStudentEdited(ctx, event); err != nil {
				env.Logger.Error().Err(err).Int("student_id", updated.ID).Msg("Failed to publish student edited event")
			}
		}
		return nil
	}
}

func EditCampusThunk(campus models.Campus) Thunk {
	return func(ctx context.Context, env Env) error {
		updated, err := env.API.UpdateCampus(ctx, campus)
		if err != nil {
			return err
		}
		env.Dispatch(CampusEdited{Campus: *updated})

		env.Logger.Info().Int("campus_id", updated.ID).Msg("Campus edited")

		if env.Events != nil {
			event := &models.CampusEditedEvent{
				EventID:   uuid.NewString(),
				CampusID:  updated.ID,
				Timestamp: time.Now().Unix(),
			}
			if err := env.Events.PublishCampusEdited(ctx, event); err != nil {
				env.Logger.Error().Err(err).Int("campus_id", updated.ID).Msg("Failed to publish campus edited event")
			}
		}
		return nil
	}
}
