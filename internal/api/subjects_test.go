package api

import (
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectTypeCacheLoadsOnce(t *testing.T) {
	var hits atomic.Int32
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/subject-types", r.URL.Path)
		hits.Add(1)
		w.Write(jsonResponse([]map[string]any{
			{"code": SubjectPerson, "label": "Osoba", "order_index": 1},
			{"code": SubjectCompany, "label": "Firma", "order_index": 3, "corporate": true},
		}))
	})

	cache := NewSubjectTypeCache(client)

	st, ok := cache.Lookup(SubjectCompany)
	require.True(t, ok)
	assert.True(t, st.Corporate)

	_, ok = cache.Lookup(SubjectPerson)
	require.True(t, ok)
	assert.Len(t, cache.All(), 2)
	assert.Equal(t, int32(1), hits.Load(), "taxonomy should be fetched once")

	_, ok = cache.Lookup("druzstvo")
	assert.False(t, ok)
}

func TestSubjectTypeCacheRefreshRefetches(t *testing.T) {
	var hits atomic.Int32
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write(jsonResponse([]map[string]any{
			{"code": SubjectPerson, "label": "Osoba", "order_index": 1},
		}))
	})

	cache := NewSubjectTypeCache(client)
	_, _ = cache.Lookup(SubjectPerson)
	cache.Refresh()
	_, ok := cache.Lookup(SubjectPerson)
	require.True(t, ok)
	assert.Equal(t, int32(2), hits.Load())
}

func TestSubjectTypeCacheFetchFailureIsNotCached(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write(jsonResponse([]map[string]any{
			{"code": SubjectPerson, "label": "Osoba", "order_index": 1},
		}))
	})

	cache := NewSubjectTypeCache(client)
	_, ok := cache.Lookup(SubjectPerson)
	assert.False(t, ok)

	fail.Store(false)
	_, ok = cache.Lookup(SubjectPerson)
	assert.True(t, ok)
}
