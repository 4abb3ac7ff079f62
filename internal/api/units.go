package api

// --- Unit Methods ---

const unitsPath = "/api/units"

func (c *Client) ListUnits(filter ListFilter) ([]Unit, error) {
	return listResource[Unit](c, unitsPath, filter)
}

func (c *Client) GetUnit(id string) (*Unit, error) {
	return getResource[Unit](c, unitsPath, id)
}

func (c *Client) SaveUnit(input Unit) (*Unit, error) {
	return saveResource[Unit](c, unitsPath, input.ID, input)
}

func (c *Client) ArchiveUnit(id string, archived bool) error {
	return archiveResource(c, unitsPath, id, archived)
}

func (c *Client) DeleteUnit(id string) error {
	return deleteResource(c, unitsPath, id)
}
