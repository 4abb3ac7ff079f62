package ui

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spravado/domovnik/internal/api"
)

func subjectTypesCache(t *testing.T) *api.SubjectTypeCache {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/subject-types", r.URL.Path)
		writeData(t, w, []map[string]any{
			{"code": "osoba", "label": "Osoba", "order_index": 1, "corporate": false},
			{"code": "firma", "label": "Firma", "order_index": 3, "corporate": true},
		})
	}))
	t.Cleanup(srv.Close)
	return api.NewSubjectTypeCache(api.NewClient(srv.URL, "dmv_testkey"))
}

func validContractDraft() map[string]string {
	return map[string]string{
		"number":                "S-2026-001",
		"status":                api.ContractDraft,
		"unit_id":               "u-1",
		"property_id":           "p-1",
		"landlord_id":           "l-1",
		"tenant_id":             "t-1",
		"landlord_bank_account": "123/0800",
		"tenant_bank_account":   "456/0100",
	}
}

func TestContractValidateDraftStatusStillRequiresAccounts(t *testing.T) {
	desc := contractsDesc(subjectTypesCache(t))

	draft := validContractDraft()
	draft["landlord_bank_account"] = ""
	draft["tenant_bank_account"] = ""

	verr := desc.Validate(draft)
	require.NotNil(t, verr)
	assert.Equal(t, "Účet pronajímatele", verr.Field)

	draft["landlord_bank_account"] = "123/0800"
	verr = desc.Validate(draft)
	require.NotNil(t, verr)
	assert.Equal(t, "Účet nájemníka", verr.Field)

	draft["tenant_bank_account"] = "456/0100"
	assert.Nil(t, desc.Validate(draft))
}

func TestContractValidateActiveStatusRequiresBothAccounts(t *testing.T) {
	desc := contractsDesc(subjectTypesCache(t))

	draft := validContractDraft()
	draft["status"] = api.ContractActive
	draft["landlord_bank_account"] = ""

	verr := desc.Validate(draft)
	require.NotNil(t, verr)
	assert.Equal(t, "Účet pronajímatele", verr.Field)

	draft["landlord_bank_account"] = "123/0800"
	draft["tenant_bank_account"] = ""
	verr = desc.Validate(draft)
	require.NotNil(t, verr)
	assert.Equal(t, "Účet nájemníka", verr.Field)

	draft["tenant_bank_account"] = "456/0100"
	assert.Nil(t, desc.Validate(draft))
}

func TestContractValidateTerminatedAlsoRequiresAccounts(t *testing.T) {
	desc := contractsDesc(subjectTypesCache(t))

	draft := validContractDraft()
	draft["status"] = api.ContractTerminated
	draft["tenant_bank_account"] = ""

	verr := desc.Validate(draft)
	require.NotNil(t, verr)
}

func TestContractValidateCorporateTenantRequiresDelegates(t *testing.T) {
	desc := contractsDesc(subjectTypesCache(t))

	draft := validContractDraft()
	draft["status"] = api.ContractActive
	draft["tenant_subject_type"] = "firma"

	verr := desc.Validate(draft)
	require.NotNil(t, verr)
	assert.Equal(t, "Zástupci", verr.Field)
	assert.Contains(t, verr.Error(), "zástupce")

	draft["delegates"] = "d-1, d-2"
	assert.Nil(t, desc.Validate(draft))
}

func TestContractValidateDraftCorporateTenantSkipsDelegates(t *testing.T) {
	desc := contractsDesc(subjectTypesCache(t))

	draft := validContractDraft()
	draft["tenant_subject_type"] = "firma"
	assert.Nil(t, desc.Validate(draft))
}

func TestContractValidatePersonTenantNeedsNoDelegates(t *testing.T) {
	desc := contractsDesc(subjectTypesCache(t))

	draft := validContractDraft()
	draft["tenant_subject_type"] = "osoba"
	assert.Nil(t, desc.Validate(draft))
}

func TestContractValidateUnknownTypeSkipsDelegateRule(t *testing.T) {
	desc := contractsDesc(subjectTypesCache(t))

	draft := validContractDraft()
	draft["tenant_subject_type"] = "neznamy"
	assert.Nil(t, desc.Validate(draft))
}

func TestUnitValidateRejectsNonNumericRent(t *testing.T) {
	desc := unitsDesc()

	draft := map[string]string{"label": "Byt 1", "property_id": "p-1", "rent": "hodně"}
	verr := desc.Validate(draft)
	require.NotNil(t, verr)
	assert.Equal(t, "Nájemné", verr.Field)

	draft["rent"] = "12500.50"
	assert.Nil(t, desc.Validate(draft))
}

func TestDescriptorsCoverEveryTile(t *testing.T) {
	descs := Descriptors(subjectTypesCache(t))

	wantOrder := []string{
		TileLandlords, TileProperties, TileUnits, TileTenants,
		TileContracts, TileEquipment, TileServices,
	}
	require.Len(t, descs, len(wantOrder))
	for i, want := range wantOrder {
		d := descs[i]
		assert.Equal(t, want, d.TileID)
		assert.NotEmpty(t, d.Title)
		assert.NotEmpty(t, d.Columns)
		assert.NotEmpty(t, d.FixedFirst)
		assert.NotEmpty(t, d.DiscriminatorKey)
		assert.NotNil(t, d.List)
		assert.NotNil(t, d.Get)
		assert.NotNil(t, d.Save)
		assert.NotNil(t, d.Archive)
		assert.NotNil(t, d.Delete)
		assert.NotNil(t, d.Validate)
		assert.Equal(t, want+".list", d.ViewKey())

		// The pinned first column must exist and be one of the fields.
		found := false
		for _, c := range d.Columns {
			if c.Key == d.FixedFirst {
				found = true
			}
		}
		assert.True(t, found, "tile %s fixed first column", want)
	}
}

func TestUnitRowCellsAndSearch(t *testing.T) {
	idx := 4
	r := unitRow(api.Unit{
		ID:             "u-1",
		Label:          "Byt 2.01",
		TypeCode:       "byt",
		Floor:          2,
		Layout:         "2+kk",
		AreaM2:         54.5,
		Rent:           14500,
		TypeOrderIndex: &idx,
		Archived:       true,
	})

	assert.Equal(t, "u-1", r.ID)
	assert.True(t, r.Archived)
	require.NotNil(t, r.OrderIndex)
	assert.Equal(t, 4, *r.OrderIndex)
	assert.Equal(t, "Byt 2.01", r.Cells["label"].Text)
	assert.Equal(t, "54.5", r.Cells["area_m2"].Text)
	assert.True(t, r.Cells["rent"].IsNum)
	assert.Contains(t, r.Search, "2+kk")
}

func TestContractDraftRoundTripsDelegates(t *testing.T) {
	draft := contractDraft(api.Contract{
		ID:          "c-1",
		Number:      "S-1",
		Status:      api.ContractActive,
		DelegateIDs: []string{"d-1", "d-2"},
	})
	assert.Equal(t, "d-1, d-2", draft["delegates"])
	assert.Equal(t, []string{"d-1", "d-2"}, splitIDList(draft["delegates"]))
}

func TestSplitIDList(t *testing.T) {
	assert.Nil(t, splitIDList(""))
	assert.Nil(t, splitIDList("  "))
	assert.Equal(t, []string{"a", "b"}, splitIDList("a, b,"))
}

func TestRelationLineDropsEmptyParts(t *testing.T) {
	assert.Equal(t, "Byt 1  ·  2+kk", relationLine("Byt 1", "", "2+kk", ""))
	assert.Equal(t, "", relationLine("", ""))
}
