package api

import "fmt"

// --- Contract Methods ---

const contractsPath = "/api/contracts"

func (c *Client) ListContracts(filter ListFilter) ([]Contract, error) {
	return listResource[Contract](c, contractsPath, filter)
}

func (c *Client) GetContract(id string) (*Contract, error) {
	return getResource[Contract](c, contractsPath, id)
}

func (c *Client) SaveContract(input Contract) (*Contract, error) {
	return saveResource[Contract](c, contractsPath, input.ID, input)
}

func (c *Client) ArchiveContract(id string, archived bool) error {
	return archiveResource(c, contractsPath, id, archived)
}

func (c *Client) DeleteContract(id string) error {
	return deleteResource(c, contractsPath, id)
}

// ListEvidenceSheets fetches a contract's evidence sheets, newest
// version first.
func (c *Client) ListEvidenceSheets(contractID string) ([]EvidenceSheet, error) {
	data, err := c.get(fmt.Sprintf("%s/%s/evidence-sheets", contractsPath, contractID))
	if err != nil {
		return nil, err
	}
	return decodeList[EvidenceSheet](data)
}
