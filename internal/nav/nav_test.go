package nav

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNoIDIsList(t *testing.T) {
	s := Parse(url.Values{"t": {"040.units"}})

	assert.Equal(t, "040.units", s.TileID)
	assert.Equal(t, ModeList, s.ViewMode)
	assert.Empty(t, s.EntityID)
}

func TestParseReadAndEdit(t *testing.T) {
	s := Parse(url.Values{"id": {"x"}, "vm": {"edit"}})
	assert.Equal(t, ModeEdit, s.ViewMode)
	assert.Equal(t, "x", s.EntityID)

	s = Parse(url.Values{"id": {"x"}, "vm": {"read"}})
	assert.Equal(t, ModeRead, s.ViewMode)

	// Unknown vm with an id falls back to read.
	s = Parse(url.Values{"id": {"x"}, "vm": {"bogus"}})
	assert.Equal(t, ModeRead, s.ViewMode)
}

func TestParseNewIDIsCreateWithTypePreSeed(t *testing.T) {
	s := Parse(url.Values{"id": {"new"}, "type": {"osoba"}})

	assert.Equal(t, ModeCreate, s.ViewMode)
	assert.Equal(t, NewEntityID, s.EntityID)
	assert.Equal(t, "osoba", s.TypeFilter)
}

func TestParseAttachmentsOverlayWinsOverViewMode(t *testing.T) {
	s := Parse(url.Values{"id": {"5"}, "vm": {"edit"}, "am": {"1"}})

	assert.Equal(t, ModeAttachments, s.ViewMode)
	assert.Equal(t, "5", s.EntityID)
	assert.True(t, s.Attachments)
}

func TestParseAttachmentsFlagWithoutIDIsIgnored(t *testing.T) {
	s := Parse(url.Values{"am": {"1"}})

	assert.Equal(t, ModeList, s.ViewMode)
	assert.False(t, s.Attachments)
}

func TestParseRelations(t *testing.T) {
	s := Parse(url.Values{"id": {"7"}, "vm": {"relations"}})
	assert.Equal(t, ModeRelations, s.ViewMode)
	assert.Equal(t, "7", s.EntityID)
}

func TestValuesRoundTrip(t *testing.T) {
	cases := []url.Values{
		{"t": {"040.units"}},
		{"t": {"040.units"}, "id": {"x"}, "vm": {"edit"}},
		{"t": {"060.contracts"}, "id": {"x"}, "vm": {"read"}},
		{"t": {"050.tenants"}, "id": {"new"}, "type": {"firma"}},
		{"t": {"040.units"}, "id": {"5"}, "am": {"1"}},
		{"t": {"040.units"}, "id": {"7"}, "vm": {"relations"}},
		{"t": {"010.landlords"}, "id": {"new"}, "type": {"zastupce"}, "fromUserId": {"u-9"}},
	}

	for _, q := range cases {
		first := Parse(q)
		second := Parse(first.Values())
		assert.Equal(t, first, second, "query %v", q)
	}
}

func TestCloseClearsSelectionBackToList(t *testing.T) {
	s := Parse(url.Values{"t": {"040.units"}, "id": {"5"}, "vm": {"edit"}, "type": {"byt"}, "am": {"1"}})

	closed := s.Close()

	assert.Equal(t, "040.units", closed.TileID)
	assert.Equal(t, ModeList, closed.ViewMode)
	assert.Empty(t, closed.EntityID)
	assert.Empty(t, closed.TypeFilter)
	assert.False(t, closed.Attachments)

	q := closed.Values()
	assert.Empty(t, q.Get(ParamID))
	assert.Empty(t, q.Get(ParamViewMode))
	assert.Empty(t, q.Get(ParamType))
	assert.Empty(t, q.Get(ParamAttachments))
}

func TestOpenAndCreateTransitions(t *testing.T) {
	s := State{TileID: "040.units"}

	opened := s.Open("5", ModeEdit)
	assert.Equal(t, "5", opened.EntityID)
	assert.Equal(t, ModeEdit, opened.ViewMode)

	overlay := s.Open("5", ModeAttachments)
	assert.True(t, overlay.Attachments)

	created := s.Create("osoba")
	assert.Equal(t, NewEntityID, created.EntityID)
	assert.Equal(t, ModeCreate, created.ViewMode)
	assert.Equal(t, "osoba", created.TypeFilter)
}

func TestParseLink(t *testing.T) {
	s, err := ParseLink("t=040.units&id=5&vm=edit")
	require.NoError(t, err)
	assert.Equal(t, "040.units", s.TileID)
	assert.Equal(t, ModeEdit, s.ViewMode)

	_, err = ParseLink("%zz")
	assert.Error(t, err)
}
