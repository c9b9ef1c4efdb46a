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

type CampusField string

const (
	CampusID          CampusField = "id"
	CampusName        CampusField = "name"
	CampusAddress     CampusField = "address"
	CampusDescription CampusField = "description"
	CampusImageURL    CampusField = "imageUrl"
)

var campusFields = []CampusField{CampusID, CampusName, CampusAddress, CampusDescription, CampusImageURL}

type CampusDraft struct {
	ID          *int
	Name        string
	Address     string
	Description string
	ImageURL    string
}

var campusSetters = map[CampusField]func(*CampusDraft, string) error{
	CampusID: func(d *CampusDraft, v string) error {
		id, err := parseOptionalInt("id", v)
		if err != nil {
			return err
		}
		d.ID = id
		return nil
	},
	CampusName:        func(d *CampusDraft, v string) error { d.Name = v; return nil },
	CampusAddress:     func(d *CampusDraft, v string) error { d.Address = v; return nil },
	CampusDescription: func(d *CampusDraft, v string) error { d.Description = v; return nil },
	CampusImageURL:    func(d *CampusDraft, v string) error { d.ImageURL = v; return nil },
}

func (d CampusDraft) Record() models.Campus {
	c := models.Campus{
		Name:        d.Name,
		Address:     d.Address,
		Description: d.Description,
		ImageURL:    d.ImageURL,
	}
	if d.ID != nil {
		c.ID = *d.ID
	}
	return c
}

type CampusRender struct {
	RedirectTo string
	Form       view.EditCampusForm
}

type EditCampusContainer struct {
	store  Connector
	logger zerolog.Logger

	mu          sync.Mutex
	mounted     bool
	unsubscribe func()
	allCampuses []models.Campus
	draft       CampusDraft
	raw         map[CampusField]string
	fieldErrs   map[CampusField]error
	err         error
	redirect    bool
	redirectID  int
}

func NewEditCampusContainer(s Connector, logger zerolog.Logger) *EditCampusContainer {
	return &EditCampusContainer{
		store:     s,
		logger:    logger.With().Str("container", "edit_campus").Logger(),
		raw:       make(map[CampusField]string),
		fieldErrs: make(map[CampusField]error),
	}
}

func (c *EditCampusContainer) Mount(ctx context.Context) error {
	c.mu.Lock()
	if c.mounted {
		c.mu.Unlock()
		return nil
	}
	c.mounted = true
	c.unsubscribe = c.store.Subscribe(store.AllCampuses, c.onCampusesChanged)
	c.allCampuses = c.store.GetState().AllCampuses
	empty := len(c.allCampuses) == 0
	c.mu.Unlock()

	if !empty {
		return nil
	}

	if err := c.store.Dispatch(ctx, store.FetchAllCampusesThunk()); err != nil {
		c.logger.Error().Err(err).Msg("Failed to load campuses")
		err = fmt.Errorf("failed to load campuses: %w", err)
		c.setErr(err)
		return err
	}
	return nil
}

func (c *EditCampusContainer) onCampusesChanged(state store.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.allCampuses = state.AllCampuses
}

func (c *EditCampusContainer) HandleChange(ev ChangeEvent) error {
	field := CampusField(ev.Name)
	set, ok := campusSetters[field]
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

func (c *EditCampusContainer) HandleSubmit(ctx context.Context) error {
	c.mu.Lock()
	if err := joinFieldErrors(c.fieldErrs, campusFields); err != nil {
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

	if err := c.store.Dispatch(ctx, store.EditCampusThunk(record)); err != nil {
		c.logger.Error().Err(err).Int("campus_id", record.ID).Msg("Failed to edit campus")
		err = fmt.Errorf("failed to edit campus %d: %w", record.ID, err)
		c.setErr(err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = CampusDraft{}
	c.raw = make(map[CampusField]string)
	c.err = nil
	c.redirect = true
	c.redirectID = record.ID
	return nil
}

func (c *EditCampusContainer) Unmount() {
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

func (c *EditCampusContainer) Render() CampusRender {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.redirect {
		return CampusRender{RedirectTo: "/campus/" + strconv.Itoa(c.redirectID)}
	}

	return CampusRender{Form: view.EditCampusForm{
		Action: "/editcampus",
		MaxID:  len(c.allCampuses),
		Values: view.CampusFormValues{
			ID:          c.raw[CampusID],
			Name:        c.raw[CampusName],
			Address:     c.raw[CampusAddress],
			Description: c.raw[CampusDescription],
			ImageURL:    c.raw[CampusImageURL],
		},
		Error: errorMessage(c.err),
	}}
}

func (c *EditCampusContainer) Draft() CampusDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *EditCampusContainer) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *EditCampusContainer) setErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}
