package api

import "fmt"

// --- Property Methods ---

const propertiesPath = "/api/properties"

func (c *Client) ListProperties(filter ListFilter) ([]Property, error) {
	return listResource[Property](c, propertiesPath, filter)
}

func (c *Client) GetProperty(id string) (*Property, error) {
	return getResource[Property](c, propertiesPath, id)
}

func (c *Client) SaveProperty(input Property) (*Property, error) {
	return saveResource[Property](c, propertiesPath, input.ID, input)
}

func (c *Client) ArchiveProperty(id string, archived bool) error {
	return archiveResource(c, propertiesPath, id, archived)
}

func (c *Client) DeleteProperty(id string) error {
	return deleteResource(c, propertiesPath, id)
}

// ListPropertyUnits fetches the units belonging to one property.
func (c *Client) ListPropertyUnits(propertyID string) ([]Unit, error) {
	data, err := c.get(fmt.Sprintf("%s/%s/units", propertiesPath, propertyID))
	if err != nil {
		return nil, err
	}
	return decodeList[Unit](data)
}
