package container

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/models"
	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/store"
	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/view"
	"github.com/rs/zerolog"
)

// StudentField names one editable student input.
type StudentField string

const (
	StudentID        StudentField = "id"
	StudentFirstname StudentField = "firstname"
	StudentLastname  StudentField = "lastname"
	StudentEmail     StudentField = "email"
	StudentImageURL  StudentField = "imageUrl"
	StudentGPA       StudentField = "gpa"
	StudentCampusID  StudentField = "campusId"
)

var studentFields = []StudentField{
	StudentID, StudentFirstname, StudentLastname, StudentEmail, StudentImageURL, StudentGPA, StudentCampusID,
}

// StudentDraft mirrors the edit student form. The zero value is the empty draft.
type StudentDraft struct {
	ID        *int
	Firstname string
	Lastname  string
	Email     string
	ImageURL  string
	GPA       *float64
	CampusID  *int
}

var studentSetters = map[StudentField]func(*StudentDraft, string) error{
	StudentID: func(d *StudentDraft, v string) error {
		id, err := parseOptionalInt("id", v)
		if err != nil {
			return err
		}
		d.ID = id
		return nil
	},
	StudentFirstname: func(d *StudentDraft, v string) error { d.Firstname = v; return nil },
	StudentLastname:  func(d *StudentDraft, v string) error { d.Lastname = v; return nil },
	StudentEmail:     func(d *StudentDraft, v string) error { d.Email = v; return nil },
	StudentImageURL:  func(d *StudentDraft, v string) error { d.ImageURL = v; return nil },
	StudentGPA: func(d *StudentDraft, v string) error {
		gpa, err := parseOptionalFloat("gpa", v)
		if err != nil {
			return err
		}
		d.GPA = gpa
		return nil
	},
	StudentCampusID: func(d *StudentDraft, v string) error {
		id, err := parseOptionalInt("campusId", v)
		if err != nil {
			return err
		}
		d.CampusID = id
		return nil
	},
}

// Record builds the student record submitted to the store.
func (d StudentDraft) Record() models.Student {
	s := models.Student{
		Firstname: d.Firstname,
		Lastname:  d.Lastname,
		Email:     d.Email,
		ImageURL:  d.ImageURL,
		GPA:       d.GPA,
		CampusID:  d.CampusID,
	}
	if d.ID != nil {
		s.ID = *d.ID
	}
	return s
}

type StudentRender struct {
	RedirectTo string
	Form       view.EditStudentForm
}

type EditStudentContainer struct {
	store  Connector
	logger zerolog.Logger

	mu          sync.Mutex
	mounted     bool
	unsubscribe func()
	allStudents []models.Student
	draft       StudentDraft
	raw         map[StudentField]string
	fieldErrs   map[StudentField]error
	err         error
	redirect    bool
	redirectID  int
}

func NewEditStudentContainer(s Connector, logger zerolog.Logger) *EditStudentContainer {
	return &EditStudentContainer{
		store:     s,
		logger:    logger.With().Str("container", "edit_student").Logger(),
		raw:       make(map[StudentField]string),
		fieldErrs: make(map[StudentField]error),
	}
}

// Mount subscribes to allStudents and fetches it when the store has none yet.
func (c *EditStudentContainer) Mount(ctx context.Context) error {
	c.mu.Lock()
	if c.mounted {
		c.mu.Unlock()
		return nil
	}
	c.mounted = true
	c.unsubscribe = c.store.Subscribe(store.AllStudents, c.onStudentsChanged)
	c.allStudents = c.store.GetState().AllStudents
	empty := len(c.allStudents) == 0
	c.mu.Unlock()

	if !empty {
		return nil
	}

	if err := c.store.Dispatch(ctx, store.FetchAllStudentsThunk()); err != nil {
		c.logger.Error().Err(err).Msg("Failed to load students")
		err = fmt.Errorf("failed to load students: %w", err)
		c.setErr(err)
		return err
	}
	return nil
}

func (c *EditStudentContainer) onStudentsChanged(state store.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.allStudents = state.AllStudents
}

// HandleChange overwrites the named draft field and nothing else.
func (c *EditStudentContainer) HandleChange(ev ChangeEvent) error {
	field := StudentField(ev.Name)
	set, ok := studentSetters[field]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, ev.Name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.raw[field] = ev.Value
	if err := set(&c.draft, ev.Value); err != nil {
		c.fieldErrs[field] = err
		return err
	}
	delete(c.fieldErrs, field)
	return nil
}

// HandleSubmit validates the draft and dispatches the edit. Only a successful
// edit resets the draft and arms the redirect.
func (c *EditStudentContainer) HandleSubmit(ctx context.Context) error {
	c.mu.Lock()
	if err := joinFieldErrors(c.fieldErrs, studentFields); err != nil {
		c.err = err
		c.mu.Unlock()
		return err
	}
	record := c.draft.Record()
	c.mu.Unlock()

	if err := models.Validate(record); err != nil {
		c.setErr(err)
		return err
	}

	if err := c.store.Dispatch(ctx, store.EditStudentThunk(record)); err != nil {
		c.logger.Error().Err(err).Int("student_id", record.ID).Msg("Failed to edit student")
		err = fmt.Errorf("failed to edit student %d: %w", record.ID, err)
		c.setErr(err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = StudentDraft{}
	c.raw = make(map[StudentField]string)
	c.err = nil
	c.redirect = true
	c.redirectID = record.ID
	return nil
}

// Unmount clears the redirect so a remounted container starts on the form.
func (c *EditStudentContainer) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.redirect = false
	c.redirectID = 0
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.mounted = false
}

func (c *EditStudentContainer) Render() StudentRender {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.redirect {
		return StudentRender{RedirectTo: "/student/" + strconv.Itoa(c.redirectID)}
	}

	return StudentRender{Form: view.EditStudentForm{
		Action: "/editstudent",
		MaxID:  len(c.allStudents),
		Values: view.StudentFormValues{
			ID:        c.raw[StudentID],
			Firstname: c.raw[StudentFirstname],
			Lastname:  c.raw[StudentLastname],
			Email:     c.raw[StudentEmail],
			ImageURL:  c.raw[StudentImageURL],
			GPA:       c.raw[StudentGPA],
			CampusID:  c.raw[StudentCampusID],
		},
		Error: errorMessage(c.err),
	}}
}

func (c *EditStudentContainer) Draft() StudentDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *EditStudentContainer) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *EditStudentContainer) setErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}
