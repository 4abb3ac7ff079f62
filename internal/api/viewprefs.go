package api

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// --- View Preference Methods ---

// GetViewPrefs fetches the stored preference blob for one view key.
func (c *Client) GetViewPrefs(viewKey string) (*ViewPrefsRecord, error) {
	data, err := c.get(fmt.Sprintf("/api/view-prefs/%s", url.PathEscape(viewKey)))
	if err != nil {
		return nil, err
	}
	return decodeOne[ViewPrefsRecord](data)
}

// PutViewPrefs stores the preference blob for one view key,
// overwriting any prior value.
func (c *Client) PutViewPrefs(viewKey string, prefs json.RawMessage) error {
	_, err := c.put(fmt.Sprintf("/api/view-prefs/%s", url.PathEscape(viewKey)), map[string]any{
		"prefs": prefs,
	})
	return err
}
