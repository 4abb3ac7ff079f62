package ui

import (
	"fmt"
	"strings"

	"github.com/spravado/domovnik/internal/api"
	"github.com/spravado/domovnik/internal/form"
	"github.com/spravado/domovnik/internal/listview"
)

// Tile ids. The numeric prefix is the back-office screen number and is
// part of the stored preference keys, so it never changes.
const (
	TileLandlords  = "010.landlords"
	TileProperties = "020.properties"
	TileUnits      = "040.units"
	TileTenants    = "050.tenants"
	TileContracts  = "060.contracts"
	TileEquipment  = "070.equipment"
	TileServices   = "080.services"
)

var subjectTypeOptions = []string{
	api.SubjectPerson,
	api.SubjectSoleTrader,
	api.SubjectCompany,
	api.SubjectAssociation,
	api.SubjectStateBody,
}

var contractStatusOptions = []string{
	api.ContractDraft,
	api.ContractActive,
	api.ContractTerminated,
}

// Descriptors builds the tile descriptors in screen order. The subject
// type cache backs the contract validator's corporate check.
func Descriptors(types *api.SubjectTypeCache) []EntityDesc {
	return []EntityDesc{
		landlordsDesc(),
		propertiesDesc(),
		unitsDesc(),
		tenantsDesc(),
		contractsDesc(types),
		equipmentDesc(),
		servicesDesc(),
	}
}

// --- Landlords (pronajímatelé) ---

func landlordsDesc() EntityDesc {
	d := EntityDesc{
		TileID:           TileLandlords,
		Title:            "Pronajímatelé",
		FixedFirst:       "name",
		Required:         []string{"name"},
		AttachmentType:   "landlord",
		TypeOptions:      subjectTypeOptions,
		DiscriminatorKey: "subject_type",
		Columns: []listview.Column{
			{Key: "name", Label: "Jméno", Width: 28, Sortable: true},
			{Key: "subject_type", Label: "Typ", Width: 10, Sortable: true},
			{Key: "ico", Label: "IČO", Width: 10, Sortable: true},
			{Key: "email", Label: "E-mail", Width: 24, Sortable: true},
			{Key: "phone", Label: "Telefon", Width: 14},
			{Key: "city", Label: "Město", Width: 16, Sortable: true},
		},
		Fields: []Field{
			{Key: "id", Label: "ID", ReadOnly: true},
			{Key: "name", Label: "Jméno", Required: true},
			{Key: "subject_type", Label: "Typ subjektu", Required: true, Options: subjectTypeOptions},
			{Key: "ico", Label: "IČO"},
			{Key: "dic", Label: "DIČ"},
			{Key: "email", Label: "E-mail"},
			{Key: "phone", Label: "Telefon"},
			{Key: "street", Label: "Ulice"},
			{Key: "city", Label: "Město"},
			{Key: "zip", Label: "PSČ"},
			{Key: "bank_account", Label: "Bankovní účet"},
		},
	}
	d.List = func(c *api.Client, f api.ListFilter) ([]Row, error) {
		items, err := c.ListLandlords(f)
		if err != nil {
			return nil, err
		}
		rows := make([]Row, len(items))
		for i, l := range items {
			rows[i] = landlordRow(l)
		}
		return rows, nil
	}
	d.Get = func(c *api.Client, id string) (map[string]string, error) {
		l, err := c.GetLandlord(id)
		if err != nil {
			return nil, err
		}
		return landlordDraft(*l), nil
	}
	d.Save = func(c *api.Client, draft map[string]string) (map[string]string, error) {
		saved, err := c.SaveLandlord(api.Landlord{
			ID:          draftGet(draft, "id"),
			SubjectType: draftGet(draft, "subject_type"),
			Name:        draftGet(draft, "name"),
			ICO:         draftGet(draft, "ico"),
			DIC:         draftGet(draft, "dic"),
			Email:       draftGet(draft, "email"),
			Phone:       draftGet(draft, "phone"),
			Street:      draftGet(draft, "street"),
			City:        draftGet(draft, "city"),
			Zip:         draftGet(draft, "zip"),
			BankAccount: draftGet(draft, "bank_account"),
		})
		if err != nil {
			return nil, err
		}
		return landlordDraft(*saved), nil
	}
	d.Archive = func(c *api.Client, id string, archived bool) error { return c.ArchiveLandlord(id, archived) }
	d.Delete = func(c *api.Client, id string) error { return c.DeleteLandlord(id) }
	fields := d.Fields
	d.Validate = func(draft map[string]string) *form.ValidationError {
		if verr := requireFields(draft, fields); verr != nil {
			return verr
		}
		return requireNumeric(draft, fields)
	}
	d.Relations = []RelationPane{
		{Title: "Nemovitosti", Load: landlordProperties},
	}
	return d
}

func landlordRow(l api.Landlord) Row {
	return Row{
		ID:         l.ID,
		Archived:   l.Archived,
		OrderIndex: l.TypeOrderIndex,
		TypeCode:   l.SubjectType,
		Cells: map[string]listview.Value{
			"name":         listview.TextValue(l.Name),
			"subject_type": listview.TextValue(l.SubjectType),
			"ico":          listview.TextValue(l.ICO),
			"email":        listview.TextValue(l.Email),
			"phone":        listview.TextValue(l.Phone),
			"city":         listview.TextValue(l.City),
		},
		Search: searchBlob(l.Name, l.ICO, l.Email, l.Phone, l.City, l.Street),
	}
}

func landlordDraft(l api.Landlord) map[string]string {
	return map[string]string{
		"id":           l.ID,
		"name":         l.Name,
		"subject_type": l.SubjectType,
		"ico":          l.ICO,
		"dic":          l.DIC,
		"email":        l.Email,
		"phone":        l.Phone,
		"street":       l.Street,
		"city":         l.City,
		"zip":          l.Zip,
		"bank_account": l.BankAccount,
	}
}

func landlordProperties(c *api.Client, id string) ([]string, error) {
	props, err := c.ListProperties(api.ListFilter{IncludeArchived: true})
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, p := range props {
		if p.LandlordID != id {
			continue
		}
		lines = append(lines, relationLine(p.Name, p.City, fmt.Sprintf("%d jednotek", p.UnitCount), archivedMark(p.Archived)))
	}
	return lines, nil
}

// --- Properties (nemovitosti) ---

func propertiesDesc() EntityDesc {
	d := EntityDesc{
		TileID:           TileProperties,
		Title:            "Nemovitosti",
		FixedFirst:       "name",
		Required:         []string{"name"},
		AttachmentType:   "property",
		DiscriminatorKey: "type_code",
		Columns: []listview.Column{
			{Key: "name", Label: "Název", Width: 26, Sortable: true},
			{Key: "type_code", Label: "Typ", Width: 10, Sortable: true},
			{Key: "city", Label: "Město", Width: 16, Sortable: true},
			{Key: "street", Label: "Ulice", Width: 20},
			{Key: "unit_count", Label: "Jednotky", Width: 8, Sortable: true, Align: listview.AlignRight},
		},
		Fields: []Field{
			{Key: "id", Label: "ID", ReadOnly: true},
			{Key: "name", Label: "Název", Required: true},
			{Key: "landlord_id", Label: "Pronajímatel", Required: true},
			{Key: "type_code", Label: "Typ"},
			{Key: "street", Label: "Ulice"},
			{Key: "city", Label: "Město"},
			{Key: "zip", Label: "PSČ"},
			{Key: "cadastral_area", Label: "Katastrální území"},
			{Key: "parcel_no", Label: "Parcelní číslo"},
			{Key: "unit_count", Label: "Počet jednotek", ReadOnly: true},
		},
	}
	d.List = func(c *api.Client, f api.ListFilter) ([]Row, error) {
		items, err := c.ListProperties(f)
		if err != nil {
			return nil, err
		}
		rows := make([]Row, len(items))
		for i, p := range items {
			rows[i] = propertyRow(p)
		}
		return rows, nil
	}
	d.Get = func(c *api.Client, id string) (map[string]string, error) {
		p, err := c.GetProperty(id)
		if err != nil {
			return nil, err
		}
		return propertyDraft(*p), nil
	}
	d.Save = func(c *api.Client, draft map[string]string) (map[string]string, error) {
		saved, err := c.SaveProperty(api.Property{
			ID:            draftGet(draft, "id"),
			LandlordID:    draftGet(draft, "landlord_id"),
			Name:          draftGet(draft, "name"),
			TypeCode:      draftGet(draft, "type_code"),
			Street:        draftGet(draft, "street"),
			City:          draftGet(draft, "city"),
			Zip:           draftGet(draft, "zip"),
			CadastralArea: draftGet(draft, "cadastral_area"),
			ParcelNo:      draftGet(draft, "parcel_no"),
		})
		if err != nil {
			return nil, err
		}
		return propertyDraft(*saved), nil
	}
	d.Archive = func(c *api.Client, id string, archived bool) error { return c.ArchiveProperty(id, archived) }
	d.Delete = func(c *api.Client, id string) error { return c.DeleteProperty(id) }
	fields := d.Fields
	d.Validate = func(draft map[string]string) *form.ValidationError {
		if verr := requireFields(draft, fields); verr != nil {
			return verr
		}
		return requireNumeric(draft, fields)
	}
	d.Relations = []RelationPane{
		{Title: "Jednotky", Load: propertyUnits},
		{Title: "Služby", Load: propertyServices},
	}
	return d
}

func propertyRow(p api.Property) Row {
	return Row{
		ID:         p.ID,
		Archived:   p.Archived,
		OrderIndex: p.TypeOrderIndex,
		TypeCode:   p.TypeCode,
		Cells: map[string]listview.Value{
			"name":       listview.TextValue(p.Name),
			"type_code":  listview.TextValue(p.TypeCode),
			"city":       listview.TextValue(p.City),
			"street":     listview.TextValue(p.Street),
			"unit_count": listview.NumValue(float64(p.UnitCount)),
		},
		Search: searchBlob(p.Name, p.City, p.Street, p.CadastralArea, p.ParcelNo),
	}
}

func propertyDraft(p api.Property) map[string]string {
	return map[string]string{
		"id":             p.ID,
		"name":           p.Name,
		"landlord_id":    p.LandlordID,
		"type_code":      p.TypeCode,
		"street":         p.Street,
		"city":           p.City,
		"zip":            p.Zip,
		"cadastral_area": p.CadastralArea,
		"parcel_no":      p.ParcelNo,
		"unit_count":     formatInt(p.UnitCount),
	}
}

func propertyUnits(c *api.Client, id string) ([]string, error) {
	units, err := c.ListPropertyUnits(id)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, u := range units {
		lines = append(lines, relationLine(u.Label, u.Layout, formatFloat(u.Rent), archivedMark(u.Archived)))
	}
	return lines, nil
}

func propertyServices(c *api.Client, id string) ([]string, error) {
	services, err := c.ListServices(api.ListFilter{IncludeArchived: true})
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, s := range services {
		if s.PropertyID != id {
			continue
		}
		lines = append(lines, relationLine(s.Name, s.Supplier, formatFloat(s.MonthlyFee), archivedMark(s.Archived)))
	}
	return lines, nil
}

// --- Units (jednotky) ---

func unitsDesc() EntityDesc {
	d := EntityDesc{
		TileID:           TileUnits,
		Title:            "Jednotky",
		FixedFirst:       "label",
		Required:         []string{"label"},
		AttachmentType:   "unit",
		DiscriminatorKey: "type_code",
		Columns: []listview.Column{
			{Key: "label", Label: "Označení", Width: 22, Sortable: true},
			{Key: "type_code", Label: "Typ", Width: 10, Sortable: true},
			{Key: "floor", Label: "Podlaží", Width: 7, Sortable: true, Align: listview.AlignRight},
			{Key: "layout", Label: "Dispozice", Width: 10, Sortable: true},
			{Key: "area_m2", Label: "Plocha m²", Width: 9, Sortable: true, Align: listview.AlignRight},
			{Key: "rent", Label: "Nájemné", Width: 10, Sortable: true, Align: listview.AlignRight},
		},
		Fields: []Field{
			{Key: "id", Label: "ID", ReadOnly: true},
			{Key: "label", Label: "Označení", Required: true},
			{Key: "property_id", Label: "Nemovitost", Required: true},
			{Key: "type_code", Label: "Typ"},
			{Key: "floor", Label: "Podlaží", Numeric: true},
			{Key: "layout", Label: "Dispozice"},
			{Key: "area_m2", Label: "Plocha m²", Numeric: true},
			{Key: "rent", Label: "Nájemné", Numeric: true},
		},
	}
	d.List = func(c *api.Client, f api.ListFilter) ([]Row, error) {
		items, err := c.ListUnits(f)
		if err != nil {
			return nil, err
		}
		rows := make([]Row, len(items))
		for i, u := range items {
			rows[i] = unitRow(u)
		}
		return rows, nil
	}
	d.Get = func(c *api.Client, id string) (map[string]string, error) {
		u, err := c.GetUnit(id)
		if err != nil {
			return nil, err
		}
		return unitDraft(*u), nil
	}
	d.Save = func(c *api.Client, draft map[string]string) (map[string]string, error) {
		saved, err := c.SaveUnit(api.Unit{
			ID:         draftGet(draft, "id"),
			PropertyID: draftGet(draft, "property_id"),
			Label:      draftGet(draft, "label"),
			TypeCode:   draftGet(draft, "type_code"),
			Floor:      draftInt(draft, "floor"),
			Layout:     draftGet(draft, "layout"),
			AreaM2:     draftFloat(draft, "area_m2"),
			Rent:       draftFloat(draft, "rent"),
		})
		if err != nil {
			return nil, err
		}
		return unitDraft(*saved), nil
	}
	d.Archive = func(c *api.Client, id string, archived bool) error { return c.ArchiveUnit(id, archived) }
	d.Delete = func(c *api.Client, id string) error { return c.DeleteUnit(id) }
	fields := d.Fields
	d.Validate = func(draft map[string]string) *form.ValidationError {
		if verr := requireFields(draft, fields); verr != nil {
			return verr
		}
		return requireNumeric(draft, fields)
	}
	d.Relations = []RelationPane{
		{Title: "Nemovitost", Load: unitProperty},
		{Title: "Nájemník", Load: unitTenant},
		{Title: "Vybavení", Load: unitEquipment},
		{Title: "Smlouvy", Load: unitContracts},
	}
	return d
}

// unitProperty walks from the unit up to its property and the
// property's landlord. A reference that fails to resolve keeps its
// place in the pane as a bare id line.
func unitProperty(c *api.Client, id string) ([]string, error) {
	u, err := c.GetUnit(id)
	if err != nil {
		return nil, err
	}
	if u.PropertyID == "" {
		return nil, nil
	}
	p, err := c.GetProperty(u.PropertyID)
	if err != nil {
		return []string{unresolvedLine(u.PropertyID)}, nil
	}
	lines := []string{relationLine(p.Name, p.TypeCode, p.City, p.Street, archivedMark(p.Archived))}
	if p.LandlordID == "" {
		return lines, nil
	}
	l, err := c.GetLandlord(p.LandlordID)
	if err != nil {
		return append(lines, unresolvedLine(p.LandlordID)), nil
	}
	return append(lines, relationLine(l.Name, l.Email, l.Phone, archivedMark(l.Archived))), nil
}

// unitTenant resolves the unit's current tenant through the active
// contract.
func unitTenant(c *api.Client, id string) ([]string, error) {
	items, err := c.ListContracts(api.ListFilter{IncludeArchived: true})
	if err != nil {
		return nil, err
	}
	for _, ct := range items {
		if ct.UnitID != id || ct.Status != api.ContractActive {
			continue
		}
		tn, err := c.GetTenant(ct.TenantID)
		if err != nil {
			return []string{unresolvedLine(ct.TenantID)}, nil
		}
		return []string{relationLine(tn.Name, tn.Email, tn.Phone, archivedMark(tn.Archived))}, nil
	}
	return nil, nil
}

func unitRow(u api.Unit) Row {
	return Row{
		ID:         u.ID,
		Archived:   u.Archived,
		OrderIndex: u.TypeOrderIndex,
		TypeCode:   u.TypeCode,
		Cells: map[string]listview.Value{
			"label":     listview.TextValue(u.Label),
			"type_code": listview.TextValue(u.TypeCode),
			"floor":     listview.NumValue(float64(u.Floor)),
			"layout":    listview.TextValue(u.Layout),
			"area_m2":   listview.NumValue(u.AreaM2),
			"rent":      listview.NumValue(u.Rent),
		},
		Search: searchBlob(u.Label, u.Layout, u.TypeCode),
	}
}

func unitDraft(u api.Unit) map[string]string {
	return map[string]string{
		"id":          u.ID,
		"label":       u.Label,
		"property_id": u.PropertyID,
		"type_code":   u.TypeCode,
		"floor":       formatInt(u.Floor),
		"layout":      u.Layout,
		"area_m2":     formatFloat(u.AreaM2),
		"rent":        formatFloat(u.Rent),
	}
}

func unitEquipment(c *api.Client, id string) ([]string, error) {
	items, err := c.ListEquipment(api.ListFilter{IncludeArchived: true})
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, e := range items {
		if e.UnitID != id {
			continue
		}
		lines = append(lines, relationLine(e.Name, e.Condition, formatFloat(e.Price), archivedMark(e.Archived)))
	}
	return lines, nil
}

func unitContracts(c *api.Client, id string) ([]string, error) {
	items, err := c.ListContracts(api.ListFilter{IncludeArchived: true})
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, ct := range items {
		if ct.UnitID != id {
			continue
		}
		lines = append(lines, relationLine(ct.Number, ct.Status, formatDate(ct.ValidFrom), archivedMark(ct.Archived)))
	}
	return lines, nil
}

// --- Tenants (nájemníci) ---

func tenantsDesc() EntityDesc {
	d := EntityDesc{
		TileID:           TileTenants,
		Title:            "Nájemníci",
		FixedFirst:       "name",
		Required:         []string{"name"},
		AttachmentType:   "tenant",
		TypeOptions:      subjectTypeOptions,
		DiscriminatorKey: "subject_type",
		Columns: []listview.Column{
			{Key: "name", Label: "Jméno", Width: 28, Sortable: true},
			{Key: "subject_type", Label: "Typ", Width: 10, Sortable: true},
			{Key: "ico", Label: "IČO", Width: 10},
			{Key: "email", Label: "E-mail", Width: 24, Sortable: true},
			{Key: "phone", Label: "Telefon", Width: 14},
		},
		Fields: []Field{
			{Key: "id", Label: "ID", ReadOnly: true},
			{Key: "name", Label: "Jméno", Required: true},
			{Key: "subject_type", Label: "Typ subjektu", Required: true, Options: subjectTypeOptions},
			{Key: "ico", Label: "IČO"},
			{Key: "email", Label: "E-mail"},
			{Key: "phone", Label: "Telefon"},
			{Key: "bank_account", Label: "Bankovní účet"},
		},
	}
	d.List = func(c *api.Client, f api.ListFilter) ([]Row, error) {
		items, err := c.ListTenants(f)
		if err != nil {
			return nil, err
		}
		rows := make([]Row, len(items))
		for i, tn := range items {
			rows[i] = tenantRow(tn)
		}
		return rows, nil
	}
	d.Get = func(c *api.Client, id string) (map[string]string, error) {
		tn, err := c.GetTenant(id)
		if err != nil {
			return nil, err
		}
		return tenantDraft(*tn), nil
	}
	d.Save = func(c *api.Client, draft map[string]string) (map[string]string, error) {
		saved, err := c.SaveTenant(api.Tenant{
			ID:          draftGet(draft, "id"),
			SubjectType: draftGet(draft, "subject_type"),
			Name:        draftGet(draft, "name"),
			ICO:         draftGet(draft, "ico"),
			Email:       draftGet(draft, "email"),
			Phone:       draftGet(draft, "phone"),
			BankAccount: draftGet(draft, "bank_account"),
		})
		if err != nil {
			return nil, err
		}
		return tenantDraft(*saved), nil
	}
	d.Archive = func(c *api.Client, id string, archived bool) error { return c.ArchiveTenant(id, archived) }
	d.Delete = func(c *api.Client, id string) error { return c.DeleteTenant(id) }
	fields := d.Fields
	d.Validate = func(draft map[string]string) *form.ValidationError {
		return requireFields(draft, fields)
	}
	d.Relations = []RelationPane{
		{Title: "Smlouvy", Load: tenantContracts},
	}
	return d
}

func tenantRow(t api.Tenant) Row {
	return Row{
		ID:         t.ID,
		Archived:   t.Archived,
		OrderIndex: t.TypeOrderIndex,
		TypeCode:   t.SubjectType,
		Cells: map[string]listview.Value{
			"name":         listview.TextValue(t.Name),
			"subject_type": listview.TextValue(t.SubjectType),
			"ico":          listview.TextValue(t.ICO),
			"email":        listview.TextValue(t.Email),
			"phone":        listview.TextValue(t.Phone),
		},
		Search: searchBlob(t.Name, t.ICO, t.Email, t.Phone),
	}
}

func tenantDraft(t api.Tenant) map[string]string {
	return map[string]string{
		"id":           t.ID,
		"name":         t.Name,
		"subject_type": t.SubjectType,
		"ico":          t.ICO,
		"email":        t.Email,
		"phone":        t.Phone,
		"bank_account": t.BankAccount,
	}
}

func tenantContracts(c *api.Client, id string) ([]string, error) {
	items, err := c.ListContracts(api.ListFilter{IncludeArchived: true})
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, ct := range items {
		if ct.TenantID != id {
			continue
		}
		lines = append(lines, relationLine(ct.Number, ct.Status, formatDate(ct.ValidFrom), archivedMark(ct.Archived)))
	}
	return lines, nil
}

// --- Contracts (smlouvy) ---

func contractsDesc(types *api.SubjectTypeCache) EntityDesc {
	d := EntityDesc{
		TileID:           TileContracts,
		Title:            "Smlouvy",
		FixedFirst:       "number",
		Required:         []string{"number"},
		AttachmentType:   "contract",
		TypeOptions:      contractStatusOptions,
		DiscriminatorKey: "status",
		LinkUserKey:      "delegates",
		Columns: []listview.Column{
			{Key: "number", Label: "Číslo", Width: 12, Sortable: true},
			{Key: "status", Label: "Stav", Width: 10, Sortable: true},
			{Key: "valid_from", Label: "Od", Width: 10, Sortable: true},
			{Key: "valid_to", Label: "Do", Width: 10, Sortable: true},
			{Key: "rent_amount", Label: "Nájemné", Width: 10, Sortable: true, Align: listview.AlignRight},
			{Key: "deposit", Label: "Kauce", Width: 10, Align: listview.AlignRight},
		},
		Fields: []Field{
			{Key: "id", Label: "ID", ReadOnly: true},
			{Key: "number", Label: "Číslo smlouvy", Required: true},
			{Key: "status", Label: "Stav", Required: true, Options: contractStatusOptions},
			{Key: "unit_id", Label: "Jednotka", Required: true},
			{Key: "property_id", Label: "Nemovitost", Required: true},
			{Key: "landlord_id", Label: "Pronajímatel", Required: true},
			{Key: "tenant_id", Label: "Nájemník", Required: true},
			{Key: "tenant_subject_type", Label: "Typ nájemníka", Options: subjectTypeOptions},
			{Key: "signed_at", Label: "Podepsáno"},
			{Key: "valid_from", Label: "Platnost od"},
			{Key: "valid_to", Label: "Platnost do"},
			{Key: "deposit", Label: "Kauce", Numeric: true},
			{Key: "landlord_bank_account", Label: "Účet pronajímatele"},
			{Key: "tenant_bank_account", Label: "Účet nájemníka"},
			{Key: "delegates", Label: "Zástupci"},
			{Key: "rent_amount", Label: "Nájemné (z evid. listu)", ReadOnly: true},
		},
	}
	d.List = func(c *api.Client, f api.ListFilter) ([]Row, error) {
		items, err := c.ListContracts(f)
		if err != nil {
			return nil, err
		}
		rows := make([]Row, len(items))
		for i, ct := range items {
			rows[i] = contractRow(ct)
		}
		return rows, nil
	}
	d.Get = func(c *api.Client, id string) (map[string]string, error) {
		ct, err := c.GetContract(id)
		if err != nil {
			return nil, err
		}
		return contractDraft(*ct), nil
	}
	d.Save = func(c *api.Client, draft map[string]string) (map[string]string, error) {
		ct := api.Contract{
			ID:                  draftGet(draft, "id"),
			Number:              draftGet(draft, "number"),
			UnitID:              draftGet(draft, "unit_id"),
			PropertyID:          draftGet(draft, "property_id"),
			LandlordID:          draftGet(draft, "landlord_id"),
			TenantID:            draftGet(draft, "tenant_id"),
			TenantSubjectType:   draftGet(draft, "tenant_subject_type"),
			Status:              draftGet(draft, "status"),
			SignedAt:            draftDate(draft, "signed_at"),
			ValidFrom:           draftDate(draft, "valid_from"),
			ValidTo:             draftDate(draft, "valid_to"),
			Deposit:             draftFloat(draft, "deposit"),
			LandlordBankAccount: draftGet(draft, "landlord_bank_account"),
			TenantBankAccount:   draftGet(draft, "tenant_bank_account"),
			DelegateIDs:         splitIDList(draftGet(draft, "delegates")),
		}
		saved, err := c.SaveContract(ct)
		if err != nil {
			return nil, err
		}
		return contractDraft(*saved), nil
	}
	d.Archive = func(c *api.Client, id string, archived bool) error { return c.ArchiveContract(id, archived) }
	d.Delete = func(c *api.Client, id string) error { return c.DeleteContract(id) }
	fields := d.Fields
	d.Validate = func(draft map[string]string) *form.ValidationError {
		if verr := requireFields(draft, fields); verr != nil {
			return verr
		}
		if verr := requireNumeric(draft, fields); verr != nil {
			return verr
		}
		// Both settlement accounts must be known whatever the status.
		if draftGet(draft, "landlord_bank_account") == "" {
			return form.Invalid("Účet pronajímatele", "smlouva vyžaduje bankovní účet")
		}
		if draftGet(draft, "tenant_bank_account") == "" {
			return form.Invalid("Účet nájemníka", "smlouva vyžaduje bankovní účet")
		}
		// Past the draft stage corporate tenants act through delegates.
		if draftGet(draft, "status") != api.ContractDraft {
			if code := draftGet(draft, "tenant_subject_type"); code != "" {
				if st, ok := types.Lookup(code); ok && st.Corporate && draftGet(draft, "delegates") == "" {
					return form.Invalid("Zástupci", "právnická osoba musí mít alespoň jednoho zástupce")
				}
			}
		}
		return nil
	}
	d.Relations = []RelationPane{
		{Title: "Evidenční listy", Load: contractEvidenceSheets},
	}
	return d
}

func contractRow(ct api.Contract) Row {
	return Row{
		ID:         ct.ID,
		Archived:   ct.Archived,
		OrderIndex: ct.TypeOrderIndex,
		TypeCode:   ct.Status,
		Cells: map[string]listview.Value{
			"number":      listview.TextValue(ct.Number),
			"status":      listview.TextValue(ct.Status),
			"valid_from":  listview.TextValue(formatDate(ct.ValidFrom)),
			"valid_to":    listview.TextValue(formatDate(ct.ValidTo)),
			"rent_amount": listview.NumValue(ct.RentAmount),
			"deposit":     listview.NumValue(ct.Deposit),
		},
		Search: searchBlob(ct.Number, ct.Status),
	}
}

func contractDraft(ct api.Contract) map[string]string {
	return map[string]string{
		"id":                    ct.ID,
		"number":                ct.Number,
		"status":                ct.Status,
		"unit_id":               ct.UnitID,
		"property_id":           ct.PropertyID,
		"landlord_id":           ct.LandlordID,
		"tenant_id":             ct.TenantID,
		"tenant_subject_type":   ct.TenantSubjectType,
		"signed_at":             formatDate(ct.SignedAt),
		"valid_from":            formatDate(ct.ValidFrom),
		"valid_to":              formatDate(ct.ValidTo),
		"deposit":               formatFloat(ct.Deposit),
		"landlord_bank_account": ct.LandlordBankAccount,
		"tenant_bank_account":   ct.TenantBankAccount,
		"delegates":             strings.Join(ct.DelegateIDs, ", "),
		"rent_amount":           formatFloat(ct.RentAmount),
	}
}

func contractEvidenceSheets(c *api.Client, id string) ([]string, error) {
	sheets, err := c.ListEvidenceSheets(id)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, es := range sheets {
		lines = append(lines, relationLine(
			fmt.Sprintf("v%d", es.Version),
			fmt.Sprintf("%s – %s", formatDate(es.ValidFrom), formatDate(es.ValidTo)),
			fmt.Sprintf("nájem %s + služby %s", formatFloat(es.RentAmount), formatFloat(es.ServiceTotal)),
			fmt.Sprintf("%d osob", es.Persons),
		))
	}
	return lines, nil
}

// --- Equipment (vybavení) ---

func equipmentDesc() EntityDesc {
	d := EntityDesc{
		TileID:           TileEquipment,
		Title:            "Vybavení",
		FixedFirst:       "name",
		Required:         []string{"name"},
		AttachmentType:   "equipment",
		DiscriminatorKey: "type_code",
		Columns: []listview.Column{
			{Key: "name", Label: "Název", Width: 24, Sortable: true},
			{Key: "type_code", Label: "Typ", Width: 10, Sortable: true},
			{Key: "condition", Label: "Stav", Width: 10},
			{Key: "price", Label: "Cena", Width: 10, Sortable: true, Align: listview.AlignRight},
			{Key: "purchased_at", Label: "Pořízeno", Width: 10, Sortable: true},
		},
		Fields: []Field{
			{Key: "id", Label: "ID", ReadOnly: true},
			{Key: "name", Label: "Název", Required: true},
			{Key: "unit_id", Label: "Jednotka", Required: true},
			{Key: "type_code", Label: "Typ"},
			{Key: "condition", Label: "Stav"},
			{Key: "price", Label: "Cena", Numeric: true},
			{Key: "purchased_at", Label: "Pořízeno"},
		},
	}
	d.List = func(c *api.Client, f api.ListFilter) ([]Row, error) {
		items, err := c.ListEquipment(f)
		if err != nil {
			return nil, err
		}
		rows := make([]Row, len(items))
		for i, e := range items {
			rows[i] = equipmentRow(e)
		}
		return rows, nil
	}
	d.Get = func(c *api.Client, id string) (map[string]string, error) {
		e, err := c.GetEquipment(id)
		if err != nil {
			return nil, err
		}
		return equipmentDraft(*e), nil
	}
	d.Save = func(c *api.Client, draft map[string]string) (map[string]string, error) {
		saved, err := c.SaveEquipment(api.Equipment{
			ID:          draftGet(draft, "id"),
			UnitID:      draftGet(draft, "unit_id"),
			Name:        draftGet(draft, "name"),
			TypeCode:    draftGet(draft, "type_code"),
			Condition:   draftGet(draft, "condition"),
			Price:       draftFloat(draft, "price"),
			PurchasedAt: draftDate(draft, "purchased_at"),
		})
		if err != nil {
			return nil, err
		}
		return equipmentDraft(*saved), nil
	}
	d.Archive = func(c *api.Client, id string, archived bool) error { return c.ArchiveEquipment(id, archived) }
	d.Delete = func(c *api.Client, id string) error { return c.DeleteEquipment(id) }
	fields := d.Fields
	d.Validate = func(draft map[string]string) *form.ValidationError {
		if verr := requireFields(draft, fields); verr != nil {
			return verr
		}
		return requireNumeric(draft, fields)
	}
	return d
}

func equipmentRow(e api.Equipment) Row {
	return Row{
		ID:         e.ID,
		Archived:   e.Archived,
		OrderIndex: e.TypeOrderIndex,
		TypeCode:   e.TypeCode,
		Cells: map[string]listview.Value{
			"name":         listview.TextValue(e.Name),
			"type_code":    listview.TextValue(e.TypeCode),
			"condition":    listview.TextValue(e.Condition),
			"price":        listview.NumValue(e.Price),
			"purchased_at": listview.TextValue(formatDate(e.PurchasedAt)),
		},
		Search: searchBlob(e.Name, e.Condition, e.TypeCode),
	}
}

func equipmentDraft(e api.Equipment) map[string]string {
	return map[string]string{
		"id":           e.ID,
		"name":         e.Name,
		"unit_id":      e.UnitID,
		"type_code":    e.TypeCode,
		"condition":    e.Condition,
		"price":        formatFloat(e.Price),
		"purchased_at": formatDate(e.PurchasedAt),
	}
}

// --- Services (služby) ---

func servicesDesc() EntityDesc {
	d := EntityDesc{
		TileID:           TileServices,
		Title:            "Služby",
		FixedFirst:       "name",
		Required:         []string{"name"},
		AttachmentType:   "service",
		DiscriminatorKey: "type_code",
		Columns: []listview.Column{
			{Key: "name", Label: "Název", Width: 24, Sortable: true},
			{Key: "type_code", Label: "Typ", Width: 10, Sortable: true},
			{Key: "supplier", Label: "Dodavatel", Width: 20, Sortable: true},
			{Key: "monthly_fee", Label: "Měsíčně", Width: 10, Sortable: true, Align: listview.AlignRight},
		},
		Fields: []Field{
			{Key: "id", Label: "ID", ReadOnly: true},
			{Key: "name", Label: "Název", Required: true},
			{Key: "property_id", Label: "Nemovitost", Required: true},
			{Key: "type_code", Label: "Typ"},
			{Key: "supplier", Label: "Dodavatel"},
			{Key: "monthly_fee", Label: "Měsíční platba", Numeric: true},
		},
	}
	d.List = func(c *api.Client, f api.ListFilter) ([]Row, error) {
		items, err := c.ListServices(f)
		if err != nil {
			return nil, err
		}
		rows := make([]Row, len(items))
		for i, s := range items {
			rows[i] = serviceRow(s)
		}
		return rows, nil
	}
	d.Get = func(c *api.Client, id string) (map[string]string, error) {
		s, err := c.GetService(id)
		if err != nil {
			return nil, err
		}
		return serviceDraft(*s), nil
	}
	d.Save = func(c *api.Client, draft map[string]string) (map[string]string, error) {
		saved, err := c.SaveService(api.Service{
			ID:         draftGet(draft, "id"),
			PropertyID: draftGet(draft, "property_id"),
			Name:       draftGet(draft, "name"),
			TypeCode:   draftGet(draft, "type_code"),
			Supplier:   draftGet(draft, "supplier"),
			MonthlyFee: draftFloat(draft, "monthly_fee"),
		})
		if err != nil {
			return nil, err
		}
		return serviceDraft(*saved), nil
	}
	d.Archive = func(c *api.Client, id string, archived bool) error { return c.ArchiveService(id, archived) }
	d.Delete = func(c *api.Client, id string) error { return c.DeleteService(id) }
	fields := d.Fields
	d.Validate = func(draft map[string]string) *form.ValidationError {
		if verr := requireFields(draft, fields); verr != nil {
			return verr
		}
		return requireNumeric(draft, fields)
	}
	return d
}

func serviceRow(s api.Service) Row {
	return Row{
		ID:         s.ID,
		Archived:   s.Archived,
		OrderIndex: s.TypeOrderIndex,
		TypeCode:   s.TypeCode,
		Cells: map[string]listview.Value{
			"name":        listview.TextValue(s.Name),
			"type_code":   listview.TextValue(s.TypeCode),
			"supplier":    listview.TextValue(s.Supplier),
			"monthly_fee": listview.NumValue(s.MonthlyFee),
		},
		Search: searchBlob(s.Name, s.Supplier, s.TypeCode),
	}
}

func serviceDraft(s api.Service) map[string]string {
	return map[string]string{
		"id":          s.ID,
		"name":        s.Name,
		"property_id": s.PropertyID,
		"type_code":   s.TypeCode,
		"supplier":    s.Supplier,
		"monthly_fee": formatFloat(s.MonthlyFee),
	}
}

// --- shared formatting ---

// unresolvedLine stands in for a referenced record that could not be
// fetched. The id is all the referencing side knows about it.
func unresolvedLine(id string) string {
	return relationLine(id, "záznam nedostupný")
}

func relationLine(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "  ·  ")
}

func splitIDList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
