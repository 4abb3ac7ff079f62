package api

// --- Service Methods ---

const servicesPath = "/api/services"

func (c *Client) ListServices(filter ListFilter) ([]Service, error) {
	return listResource[Service](c, servicesPath, filter)
}

func (c *Client) GetService(id string) (*Service, error) {
	return getResource[Service](c, servicesPath, id)
}

func (c *Client) SaveService(input Service) (*Service, error) {
	return saveResource[Service](c, servicesPath, input.ID, input)
}

func (c *Client) ArchiveService(id string, archived bool) error {
	return archiveResource(c, servicesPath, id, archived)
}

func (c *Client) DeleteService(id string) error {
	return deleteResource(c, servicesPath, id)
}
