package api

// LoginResponse is returned by the login endpoint.
type LoginResponse struct {
	APIKey   string `json:"api_key"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Login exchanges a username for an API key.
func (c *Client) Login(username string) (*LoginResponse, error) {
	data, err := c.post("/api/login", map[string]string{"username": username})
	if err != nil {
		return nil, err
	}
	return decodeOne[LoginResponse](data)
}

// Health pings the API root.
func (c *Client) Health() error {
	_, err := c.get("/api/health")
	return err
}
