package form

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type draftUnit struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Rent  float64  `json:"rent"`
	Tags  []string `json:"tags,omitempty"`
}

func TestOpenStartsClean(t *testing.T) {
	s := Open(draftUnit{ID: "u-1", Label: "2+kk"}, nil, nil)
	assert.False(t, s.Dirty())
}

func TestDirtyRoundTrip(t *testing.T) {
	s := Open(draftUnit{ID: "u-1", Label: "2+kk", Rent: 12000}, nil, nil)

	s.Update(func(d *draftUnit) { d.Rent = 15000 })
	assert.True(t, s.Dirty())

	// Inverse patch restores the baseline value.
	s.Update(func(d *draftUnit) { d.Rent = 12000 })
	assert.False(t, s.Dirty())
}

func TestDirtyComparesAgainstBaselineNotPreviousValue(t *testing.T) {
	s := Open(draftUnit{Label: "a", Tags: []string{"x"}}, nil, nil)

	s.Update(func(d *draftUnit) { d.Tags = append(d.Tags, "y") })
	s.Update(func(d *draftUnit) { d.Label = "b" })
	s.Update(func(d *draftUnit) { d.Label = "a" })
	assert.True(t, s.Dirty())

	s.Update(func(d *draftUnit) { d.Tags = []string{"x"} })
	assert.False(t, s.Dirty())
}

func TestSubmitValidationFailureSkipsService(t *testing.T) {
	saved := false
	s := Open(draftUnit{},
		func(d draftUnit) *ValidationError {
			if d.Label == "" {
				return Invalid("label", "chybí označení jednotky")
			}
			return nil
		},
		func(_ context.Context, d draftUnit) (draftUnit, error) {
			saved = true
			return d, nil
		},
	)

	_, err := s.Submit(context.Background())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "label", verr.Field)
	assert.False(t, saved)
}

func TestSubmitRebaselinesToSavedRecord(t *testing.T) {
	s := Open(draftUnit{Label: "2+kk"}, nil,
		func(_ context.Context, d draftUnit) (draftUnit, error) {
			d.ID = "u-9" // the service assigns the id
			return d, nil
		},
	)
	s.Update(func(d *draftUnit) { d.Rent = 9000 })
	require.True(t, s.Dirty())

	saved, err := s.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "u-9", saved.ID)
	assert.False(t, s.Dirty())
	assert.Equal(t, "u-9", s.Value().ID)
}

func TestSubmitServiceFailureKeepsDraftDirty(t *testing.T) {
	s := Open(draftUnit{Label: "2+kk"}, nil,
		func(_ context.Context, d draftUnit) (draftUnit, error) {
			return draftUnit{}, errors.New("server unavailable")
		},
	)
	s.Update(func(d *draftUnit) { d.Rent = 100 })

	_, err := s.Submit(context.Background())

	require.Error(t, err)
	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
	assert.True(t, s.Dirty())
	assert.Equal(t, float64(100), s.Value().Rent)
}
