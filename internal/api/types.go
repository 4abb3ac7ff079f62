package api

import (
	"encoding/json"
	"fmt"
	"time"
)

// --- API Response Envelope ---

type apiResponse[T any] struct {
	Data  T       `json:"data"`
	Error *apiErr `json:"error,omitempty"`
}

type apiErr struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JSONMap handles JSONB fields that the store may return as strings.
type JSONMap map[string]any

func (j *JSONMap) UnmarshalJSON(data []byte) error {
	// Try as object first
	var m map[string]any
	if err := json.Unmarshal(data, &m); err == nil {
		*j = m
		return nil
	}
	// Try as string containing JSON
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" || s == "null" {
			*j = make(map[string]any)
			return nil
		}
		return json.Unmarshal([]byte(s), (*map[string]any)(j))
	}
	*j = make(map[string]any)
	return nil
}

// --- Query ---

// QueryParams is a map of URL query parameters.
type QueryParams map[string]string

// ListFilter is the common filter every entity list accepts.
type ListFilter struct {
	Search          string
	TypeCode        string
	IncludeArchived bool
}

// Params renders the filter as query parameters.
func (f ListFilter) Params() QueryParams {
	p := QueryParams{}
	if f.Search != "" {
		p["search_text"] = f.Search
	}
	if f.TypeCode != "" {
		p["type"] = f.TypeCode
	}
	if f.IncludeArchived {
		p["include_archived"] = "1"
	}
	return p
}

// Key is the effective query key used to coalesce concurrent reloads of
// the same list.
func (f ListFilter) Key() string {
	return fmt.Sprintf("%s|%s|archived=%t", f.Search, f.TypeCode, f.IncludeArchived)
}

// --- Subject types ---

// Subject type codes used as form discriminators across persons and
// organizations.
const (
	SubjectPerson      = "osoba"
	SubjectSoleTrader  = "osvc"
	SubjectCompany     = "firma"
	SubjectAssociation = "spolek"
	SubjectStateBody   = "stat"
	SubjectDelegate    = "zastupce"
)

// SubjectType is one entry of the subject-type taxonomy. OrderIndex
// drives the default list grouping; Corporate marks types that act
// through delegates on contracts.
type SubjectType struct {
	Code       string `json:"code"`
	Label      string `json:"label"`
	OrderIndex int    `json:"order_index"`
	Corporate  bool   `json:"corporate"`
}

// --- Landlord ---

// Landlord is a property owner (pronajímatel).
type Landlord struct {
	ID             string    `json:"id"`
	SubjectType    string    `json:"subject_type"`
	Name           string    `json:"name"`
	ICO            string    `json:"ico,omitempty"`
	DIC            string    `json:"dic,omitempty"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Street         string    `json:"street,omitempty"`
	City           string    `json:"city,omitempty"`
	Zip            string    `json:"zip,omitempty"`
	BankAccount    string    `json:"bank_account,omitempty"`
	TypeOrderIndex *int      `json:"type_order_index,omitempty"`
	Archived       bool      `json:"archived"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// --- Property ---

// Property is a building or land parcel (nemovitost).
type Property struct {
	ID             string    `json:"id"`
	LandlordID     string    `json:"landlord_id"`
	Name           string    `json:"name"`
	TypeCode       string    `json:"type_code,omitempty"`
	Street         string    `json:"street,omitempty"`
	City           string    `json:"city,omitempty"`
	Zip            string    `json:"zip,omitempty"`
	CadastralArea  string    `json:"cadastral_area,omitempty"`
	ParcelNo       string    `json:"parcel_no,omitempty"`
	UnitCount      int       `json:"unit_count"`
	TypeOrderIndex *int      `json:"type_order_index,omitempty"`
	Archived       bool      `json:"archived"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// --- Unit ---

// Unit is a rentable part of a property (jednotka).
type Unit struct {
	ID             string    `json:"id"`
	PropertyID     string    `json:"property_id"`
	TenantID       string    `json:"tenant_id,omitempty"`
	Label          string    `json:"label"`
	TypeCode       string    `json:"type_code,omitempty"`
	Floor          int       `json:"floor"`
	Layout         string    `json:"layout,omitempty"`
	AreaM2         float64   `json:"area_m2,omitempty"`
	Rent           float64   `json:"rent,omitempty"`
	TypeOrderIndex *int      `json:"type_order_index,omitempty"`
	Archived       bool      `json:"archived"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// --- Tenant ---

// Tenant is a renting subject (nájemník).
type Tenant struct {
	ID             string    `json:"id"`
	SubjectType    string    `json:"subject_type"`
	Name           string    `json:"name"`
	ICO            string    `json:"ico,omitempty"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	BankAccount    string    `json:"bank_account,omitempty"`
	TypeOrderIndex *int      `json:"type_order_index,omitempty"`
	Archived       bool      `json:"archived"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// --- Contract ---

// Contract statuses.
const (
	ContractDraft      = "draft"
	ContractActive     = "active"
	ContractTerminated = "terminated"
)

// Contract binds a unit, its property and landlord, and a tenant
// (smlouva). RentAmount is denormalized server-side from the current
// evidence sheet and is read-only for clients.
type Contract struct {
	ID                  string    `json:"id"`
	Number              string    `json:"number"`
	UnitID              string    `json:"unit_id"`
	PropertyID          string    `json:"property_id"`
	LandlordID          string    `json:"landlord_id"`
	TenantID            string    `json:"tenant_id"`
	TenantSubjectType   string    `json:"tenant_subject_type,omitempty"`
	Status              string    `json:"status"`
	SignedAt            *Date     `json:"signed_at,omitempty"`
	ValidFrom           *Date     `json:"valid_from,omitempty"`
	ValidTo             *Date     `json:"valid_to,omitempty"`
	RentAmount          float64   `json:"rent_amount,omitempty"`
	Deposit             float64   `json:"deposit,omitempty"`
	LandlordBankAccount string    `json:"landlord_bank_account,omitempty"`
	TenantBankAccount   string    `json:"tenant_bank_account,omitempty"`
	DelegateIDs         []string  `json:"delegate_ids,omitempty"`
	TypeOrderIndex      *int      `json:"type_order_index,omitempty"`
	Archived            bool      `json:"archived"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// --- Equipment ---

// Equipment is an inventoried fixture of a unit (vybavení).
type Equipment struct {
	ID             string    `json:"id"`
	UnitID         string    `json:"unit_id"`
	Name           string    `json:"name"`
	TypeCode       string    `json:"type_code,omitempty"`
	Condition      string    `json:"condition,omitempty"`
	Price          float64   `json:"price,omitempty"`
	PurchasedAt    *Date     `json:"purchased_at,omitempty"`
	TypeOrderIndex *int      `json:"type_order_index,omitempty"`
	Archived       bool      `json:"archived"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// --- Service ---

// Service is a recurring supply tied to a property (služba).
type Service struct {
	ID             string    `json:"id"`
	PropertyID     string    `json:"property_id"`
	Name           string    `json:"name"`
	TypeCode       string    `json:"type_code,omitempty"`
	Supplier       string    `json:"supplier,omitempty"`
	MonthlyFee     float64   `json:"monthly_fee,omitempty"`
	TypeOrderIndex *int      `json:"type_order_index,omitempty"`
	Archived       bool      `json:"archived"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// --- Evidence sheet ---

// EvidenceSheet is a versioned snapshot of a contract's occupancy and
// billing terms valid over a date range; a newer sheet supersedes the
// prior one. Totals are computed server-side from line items.
type EvidenceSheet struct {
	ID           string    `json:"id"`
	ContractID   string    `json:"contract_id"`
	Version      int       `json:"version"`
	ValidFrom    *Date     `json:"valid_from,omitempty"`
	ValidTo      *Date     `json:"valid_to,omitempty"`
	Persons      int       `json:"persons"`
	RentAmount   float64   `json:"rent_amount"`
	ServiceTotal float64   `json:"service_total"`
	SupersedesID string    `json:"supersedes_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// --- Attachment ---

// Attachment is one stored document version addressed to an entity.
type Attachment struct {
	ID         string    `json:"id"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Name       string    `json:"name"`
	FileName   string    `json:"file_name"`
	Version    int       `json:"version"`
	MimeType   string    `json:"mime_type,omitempty"`
	SizeBytes  int64     `json:"size_bytes,omitempty"`
	Metadata   JSONMap   `json:"metadata,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// --- View preferences ---

// ViewPrefsRecord is the stored column/sort customization of one list
// view, keyed by a stable view key like "040.units.list".
type ViewPrefsRecord struct {
	ViewKey   string          `json:"view_key"`
	Prefs     json.RawMessage `json:"prefs"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// --- Date ---

// Date is a calendar date serialized as "2006-01-02". The store keeps
// validity ranges as plain dates without a time component.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// NewDate builds a Date from year, month, day.
func NewDate(year int, month time.Month, day int) *Date {
	return &Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		// Some exports carry full timestamps; accept those too.
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("parse date %q: %w", s, err)
		}
	}
	d.Time = t
	return nil
}

// String renders the date in the wire layout.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}
