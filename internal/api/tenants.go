package api

// --- Tenant Methods ---

const tenantsPath = "/api/tenants"

func (c *Client) ListTenants(filter ListFilter) ([]Tenant, error) {
	return listResource[Tenant](c, tenantsPath, filter)
}

func (c *Client) GetTenant(id string) (*Tenant, error) {
	return getResource[Tenant](c, tenantsPath, id)
}

func (c *Client) SaveTenant(input Tenant) (*Tenant, error) {
	return saveResource[Tenant](c, tenantsPath, input.ID, input)
}

func (c *Client) ArchiveTenant(id string, archived bool) error {
	return archiveResource(c, tenantsPath, id, archived)
}

func (c *Client) DeleteTenant(id string) error {
	return deleteResource(c, tenantsPath, id)
}
