package container

import (
	"context"
	"errors"
	"testing"

	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/models"
	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/service/integration/integrationtest"
	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCampusFixture(t *testing.T, seed ...models.Campus) (*integrationtest.FakeAPI, *store.Store, *EditCampusContainer) {
	t.Helper()
	api := integrationtest.NewFakeAPI()
	for _, c := range seed {
		api.Campuses[c.ID] = c
	}
	st := store.New(api, zerolog.Nop())
	return api, st, NewEditCampusContainer(st, zerolog.Nop())
}

func fillCampus(t *testing.T, c *EditCampusContainer, fields map[CampusField]string) {
	t.Helper()
	for _, f := range campusFields {
		if v, ok := fields[f]; ok {
			require.NoError(t, c.HandleChange(ChangeEvent{Name: string(f), Value: v}))
		}
	}
}

var hunter = map[CampusField]string{
	CampusID:          "2",
	CampusName:        "Hunter College",
	CampusAddress:     "695 Park Ave",
	CampusDescription: "Upper East Side",
	CampusImageURL:    "",
}

func TestCampusMountSkipsFetchWhenLoaded(t *testing.T) {
	api := integrationtest.NewFakeAPI()
	st := store.New(api, zerolog.Nop(), store.WithInitialState(store.State{
		AllCampuses: []models.Campus{{ID: 1, Name: "Baruch", Address: "55 Lexington Ave"}},
	}))
	c := NewEditCampusContainer(st, zerolog.Nop())

	require.NoError(t, c.Mount(context.Background()))
	_, campuses := api.Calls()
	assert.Equal(t, 0, campuses)
	assert.Equal(t, 1, c.Render().Form.MaxID)
}

func TestCampusMountFetchesWhenEmpty(t *testing.T) {
	api, _, c := newCampusFixture(t,
		models.Campus{ID: 1, Name: "Baruch", Address: "55 Lexington Ave"},
		models.Campus{ID: 2, Name: "Hunter", Address: "695 Park Ave"},
	)

	require.NoError(t, c.Mount(context.Background()))
	_, campuses := api.Calls()
	assert.Equal(t, 1, campuses)
	assert.Equal(t, 2, c.Render().Form.MaxID)
}

func TestCampusHandleChangeTouchesOnlyNamedField(t *testing.T) {
	_, _, c := newCampusFixture(t)
	fillCampus(t, c, hunter)
	before := c.Draft()

	cases := []struct {
		field CampusField
		value string
		apply func(*CampusDraft)
	}{
		{CampusID, "9", func(d *CampusDraft) { n := 9; d.ID = &n }},
		{CampusName, "Hunter", func(d *CampusDraft) { d.Name = "Hunter" }},
		{CampusAddress, "1 Main St", func(d *CampusDraft) { d.Address = "1 Main St" }},
		{CampusDescription, "", func(d *CampusDraft) { d.Description = "" }},
		{CampusImageURL, "images/hunter.png", func(d *CampusDraft) { d.ImageURL = "images/hunter.png" }},
	}

	for _, tc := range cases {
		t.Run(string(tc.field), func(t *testing.T) {
			_, _, c := newCampusFixture(t)
			fillCampus(t, c, hunter)

			require.NoError(t, c.HandleChange(ChangeEvent{Name: string(tc.field), Value: tc.value}))

			want := before
			tc.apply(&want)
			assert.Equal(t, want, c.Draft())
		})
	}
}

func TestCampusHandleChangeUnknownField(t *testing.T) {
	_, _, c := newCampusFixture(t)
	fillCampus(t, c, hunter)
	before := c.Draft()

	assert.True(t, errors.Is(c.HandleChange(ChangeEvent{Name: "students"}), ErrUnknownField))
	assert.Equal(t, before, c.Draft())
}

func TestCampusSubmitRedirects(t *testing.T) {
	api, _, c := newCampusFixture(t, models.Campus{ID: 2, Name: "Hunter", Address: "695 Park Ave"})
	require.NoError(t, c.Mount(context.Background()))
	fillCampus(t, c, hunter)

	require.NoError(t, c.HandleSubmit(context.Background()))

	require.Len(t, api.UpdatedCampuses, 1)
	assert.Equal(t, models.Campus{ID: 2, Name: "Hunter College", Address: "695 Park Ave", Description: "Upper East Side"}, api.UpdatedCampuses[0])
	assert.Equal(t, CampusDraft{}, c.Draft())
	assert.Equal(t, "/campus/2", c.Render().RedirectTo)

	c.Unmount()
	assert.Empty(t, c.Render().RedirectTo)
}

func TestCampusSubmitFailureKeepsForm(t *testing.T) {
	api, _, c := newCampusFixture(t, models.Campus{ID: 2, Name: "Hunter", Address: "695 Park Ave"})
	require.NoError(t, c.Mount(context.Background()))
	fillCampus(t, c, hunter)

	api.Err = models.ErrRejected
	err := c.HandleSubmit(context.Background())
	assert.True(t, errors.Is(err, models.ErrRejected))

	out := c.Render()
	assert.Empty(t, out.RedirectTo)
	assert.Equal(t, "Hunter College", out.Form.Values.Name)
	assert.Contains(t, out.Form.Error, "failed to edit campus 2")
}

func TestCampusSubmitRequiresAddress(t *testing.T) {
	api, _, c := newCampusFixture(t)
	fillCampus(t, c, map[CampusField]string{CampusID: "2", CampusName: "Hunter"})

	err := c.HandleSubmit(context.Background())
	assert.True(t, errors.Is(err, models.ErrValidation))
	assert.Contains(t, err.Error(), "address is required")
	assert.Empty(t, api.UpdatedCampuses)
}

func TestCampusUnmountClearsRedirect(t *testing.T) {
	_, _, c := newCampusFixture(t, models.Campus{ID: 2, Name: "Hunter", Address: "695 Park Ave"})
	require.NoError(t, c.Mount(context.Background()))
	fillCampus(t, c, hunter)
	require.NoError(t, c.HandleSubmit(context.Background()))
	require.Equal(t, "/campus/2", c.Render().RedirectTo)

	c.Unmount()
	require.NoError(t, c.Mount(context.Background()))

	out := c.Render()
	assert.Empty(t, out.RedirectTo)
	assert.Equal(t, "/editcampus", out.Form.Action)
}

func TestCampusSubmitAcceptsRelativeImage(t *testing.T) {
	api, _, c := newCampusFixture(t)
	fields := map[CampusField]string{}
	for k, v := range hunter {
		fields[k] = v
	}
	fields[CampusImageURL] = "images/hunter.png"
	fillCampus(t, c, fields)

	require.NoError(t, c.HandleSubmit(context.Background()))
	require.Len(t, api.UpdatedCampuses, 1)
	assert.Equal(t, "images/hunter.png", api.UpdatedCampuses[0].ImageURL)
	assert.Equal(t, "/campus/2", c.Render().RedirectTo)
}
