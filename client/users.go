package client

import "context"

// CurrentUser returns the account the credentials belong to.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var u User
	if _, err := c.getJSON(ctx, v1Prefix+"/user/current", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
