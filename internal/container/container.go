// Package container holds the stateful edit containers. A container owns a
// draft of one record, mirrors one store slice while mounted, and submits the
// draft through the store's edit thunk.
//
// Lifecycle: Mount, any number of HandleChange calls, HandleSubmit, Render,
// Unmount. A container may be used from several goroutines; store
// notifications arrive on whichever goroutine dispatched the change.
package container

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/models"
	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/store"
)

var ErrUnknownField = errors.New("unknown field")

// ChangeEvent carries one input's name and its new value.
type ChangeEvent struct {
	Name  string
	Value string
}

// Connector is the part of the store a container talks to.
type Connector interface {
	GetState() store.State
	Dispatch(ctx context.Context, thunk store.Thunk) error
	Subscribe(slice store.Slice, fn func(store.State)) func()
}

func parseOptionalInt(field, value string) (*int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a whole number", models.ErrValidation, field)
	}
	return &n, nil
}

func parseOptionalFloat(field, value string) (*float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", models.ErrValidation, field)
	}
	return &f, nil
}

// joinFieldErrors folds pending per-field input errors into one validation error.
func joinFieldErrors[F ~string](errs map[F]error, order []F) error {
	msgs := make([]string, 0, len(errs))
	for _, f := range order {
		if err, ok := errs[f]; ok {
			msgs = append(msgs, strings.TrimPrefix(err.Error(), models.ErrValidation.Error()+": "))
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", models.ErrValidation, strings.Join(msgs, "; "))
}

func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
