package historysdk

import (
	"context"
)

// Health reports whether the service is up and for how long.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	res, err := c.request(ctx).Get(pathHealth)
	if err := handleAPIError(res, err, actFetchHealth); err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(res, &health); err != nil {
		return nil, err
	}

	return &health, nil
}

// Version returns the build version of the service.
func (c *Client) Version(ctx context.Context) (*VersionResponse, error) {
	res, err := c.request(ctx).Get(pathVersion)
	if err := handleAPIError(res, err, actFetchVersion); err != nil {
		return nil, err
	}

	var ver VersionResponse
	if err := decodeJSON(res, &ver); err != nil {
		return nil, err
	}

	return &ver, nil
}
