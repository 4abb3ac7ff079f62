package api

// --- Landlord Methods ---

const landlordsPath = "/api/landlords"

func (c *Client) ListLandlords(filter ListFilter) ([]Landlord, error) {
	return listResource[Landlord](c, landlordsPath, filter)
}

func (c *Client) GetLandlord(id string) (*Landlord, error) {
	return getResource[Landlord](c, landlordsPath, id)
}

func (c *Client) SaveLandlord(input Landlord) (*Landlord, error) {
	return saveResource[Landlord](c, landlordsPath, input.ID, input)
}

func (c *Client) ArchiveLandlord(id string, archived bool) error {
	return archiveResource(c, landlordsPath, id, archived)
}

func (c *Client) DeleteLandlord(id string) error {
	return deleteResource(c, landlordsPath, id)
}
