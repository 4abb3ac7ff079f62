package api

// --- Equipment Methods ---

const equipmentPath = "/api/equipment"

func (c *Client) ListEquipment(filter ListFilter) ([]Equipment, error) {
	return listResource[Equipment](c, equipmentPath, filter)
}

func (c *Client) GetEquipment(id string) (*Equipment, error) {
	return getResource[Equipment](c, equipmentPath, id)
}

func (c *Client) SaveEquipment(input Equipment) (*Equipment, error) {
	return saveResource[Equipment](c, equipmentPath, input.ID, input)
}

func (c *Client) ArchiveEquipment(id string, archived bool) error {
	return archiveResource(c, equipmentPath, id, archived)
}

func (c *Client) DeleteEquipment(id string) error {
	return deleteResource(c, equipmentPath, id)
}
