package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL, "dmv_testkey")
	return srv, client
}

func jsonResponse(data any) []byte {
	b, _ := json.Marshal(map[string]any{"data": data})
	return b
}

func TestGetUnit(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Bearer dmv_testkey", r.Header.Get("Authorization"))
		assert.Equal(t, "/api/units/u-1", r.URL.Path)
		w.Write(jsonResponse(map[string]any{
			"id":          "u-1",
			"property_id": "p-1",
			"label":       "2+kk, 3. patro",
			"rent":        12500,
		}))
	})

	unit, err := client.GetUnit("u-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", unit.ID)
	assert.Equal(t, "2+kk, 3. patro", unit.Label)
	assert.Equal(t, float64(12500), unit.Rent)
}

func TestListUnitsSendsFilterParams(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/units", r.URL.Path)
		assert.Equal(t, "novák", r.URL.Query().Get("search_text"))
		assert.Equal(t, "byt", r.URL.Query().Get("type"))
		assert.Equal(t, "1", r.URL.Query().Get("include_archived"))
		w.Write(jsonResponse([]map[string]any{
			{"id": "u-1", "label": "1+1"},
			{"id": "u-2", "label": "3+kk"},
		}))
	})

	units, err := client.ListUnits(ListFilter{Search: "novák", TypeCode: "byt", IncludeArchived: true})
	require.NoError(t, err)
	assert.Len(t, units, 2)
}

func TestListFilterOmitsEmptyParams(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("search_text"))
		assert.Empty(t, r.URL.Query().Get("type"))
		assert.Empty(t, r.URL.Query().Get("include_archived"))
		w.Write(jsonResponse([]map[string]any{}))
	})

	_, err := client.ListUnits(ListFilter{})
	require.NoError(t, err)
}

func TestListFilterKeyDistinguishesQueries(t *testing.T) {
	a := ListFilter{Search: "novak"}
	b := ListFilter{Search: "novak", IncludeArchived: true}
	c := ListFilter{Search: "novak", TypeCode: "byt"}

	assert.NotEqual(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
	assert.Equal(t, a.Key(), ListFilter{Search: "novak"}.Key())
}

func TestSaveContractCreatesWithPost(t *testing.T) {
	var method, path string
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.Write(jsonResponse(map[string]any{"id": "c-9", "number": "2026/001", "status": "draft"}))
	})

	saved, err := client.SaveContract(Contract{Number: "2026/001"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/api/contracts", path)
	assert.Equal(t, "c-9", saved.ID)
}

func TestSaveContractUpdatesWithPatch(t *testing.T) {
	var method, path string
	var captured Contract
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		json.NewDecoder(r.Body).Decode(&captured)
		w.Write(jsonResponse(map[string]any{"id": "c-1", "status": "active"}))
	})

	_, err := client.SaveContract(Contract{ID: "c-1", Status: ContractActive})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, method)
	assert.Equal(t, "/api/contracts/c-1", path)
	assert.Equal(t, ContractActive, captured.Status)
}

func TestArchiveUnit(t *testing.T) {
	var captured map[string]bool
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/units/u-1/archive", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&captured)
		w.Write(jsonResponse(map[string]any{}))
	})

	require.NoError(t, client.ArchiveUnit("u-1", true))
	assert.True(t, captured["archived"])
}

func TestListEvidenceSheets(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/contracts/c-1/evidence-sheets", r.URL.Path)
		w.Write(jsonResponse([]map[string]any{
			{"id": "es-2", "contract_id": "c-1", "version": 2, "rent_amount": 13000, "service_total": 2100},
			{"id": "es-1", "contract_id": "c-1", "version": 1, "rent_amount": 12000, "service_total": 1900, "valid_to": "2025-12-31"},
		}))
	})

	sheets, err := client.ListEvidenceSheets("c-1")
	require.NoError(t, err)
	require.Len(t, sheets, 2)
	assert.Equal(t, 2, sheets[0].Version)
	assert.Equal(t, "2025-12-31", sheets[1].ValidTo.String())
}

func TestAttachmentEndpoints(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/attachments/unit/u-1":
			w.Write(jsonResponse([]map[string]any{
				{"id": "a-1", "entity_type": "unit", "entity_id": "u-1", "name": "Předávací protokol", "version": 1},
			}))
		case r.Method == http.MethodPost && r.URL.Path == "/api/attachments/a-1/versions":
			w.Write(jsonResponse(map[string]any{"id": "a-1", "version": 2}))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	atts, err := client.ListAttachments("unit", "u-1")
	require.NoError(t, err)
	require.Len(t, atts, 1)
	assert.Equal(t, "Předávací protokol", atts[0].Name)

	next, err := client.UploadAttachmentVersion("a-1", UploadAttachmentInput{FileName: "protokol-v2.pdf"})
	require.NoError(t, err)
	assert.Equal(t, 2, next.Version)
}

func TestViewPrefsRoundTrip(t *testing.T) {
	var stored json.RawMessage
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			assert.Equal(t, "/api/view-prefs/040.units.list", r.URL.Path)
			var body struct {
				Prefs json.RawMessage `json:"prefs"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			stored = body.Prefs
			w.Write(jsonResponse(map[string]any{}))
		case http.MethodGet:
			w.Write(jsonResponse(map[string]any{"view_key": "040.units.list", "prefs": json.RawMessage(stored)}))
		}
	})

	require.NoError(t, client.PutViewPrefs("040.units.list", json.RawMessage(`{"version":1}`)))

	rec, err := client.GetViewPrefs("040.units.list")
	require.NoError(t, err)
	assert.Equal(t, "040.units.list", rec.ViewKey)
	assert.JSONEq(t, `{"version":1}`, string(rec.Prefs))
}

func TestHTTPErrorUsesEnvelopeMessage(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":{"code":"unit_occupied","message":"jednotka je obsazena"}}`))
	})

	_, err := client.GetUnit("u-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unit_occupied")
	assert.Contains(t, err.Error(), "jednotka je obsazena")
}

func TestHTTPErrorPlainDetail(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"neplatný filtr"}`))
	})

	_, err := client.ListTenants(ListFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neplatný filtr")
}

func TestHTTPErrorFallsBackToStatus(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`oops`))
	})

	_, err := client.GetLandlord("l-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestDateMarshalRoundTrip(t *testing.T) {
	d := NewDate(2026, 3, 15)
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-15"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, "2026-03-15", back.String())

	var ts Date
	require.NoError(t, json.Unmarshal([]byte(`"2026-03-15T00:00:00Z"`), &ts))
	assert.Equal(t, "2026-03-15", ts.String())
}
