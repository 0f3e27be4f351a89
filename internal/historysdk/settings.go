package historysdk

import (
	"context"
	"fmt"
)

// GetSettings fetches the current backend settings.
func (c *Client) GetSettings(ctx context.Context) (*AppSettings, error) {
	res, err := c.request(ctx).Get(pathSettings)
	if err := handleAPIError(res, err, actFetchSettings); err != nil {
		return nil, err
	}

	var settings AppSettings
	if err := decodeJSON(res, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// UpdateSettings replaces the backend settings with settings.
func (c *Client) UpdateSettings(ctx context.Context, settings *AppSettings) (*UpdateSettingsResponse, error) {
	body, err := jsonMarshal(settings)
	if err != nil {
		return nil, fmt.Errorf("marshal settings: %w", err)
	}

	res, err := c.request(ctx).
		SetBodyBytes(body).
		SetContentType(ContentTypeJSON).
		Put(pathSettings)
	if err := handleAPIError(res, err, actUpdateSettings); err != nil {
		return nil, err
	}

	var update UpdateSettingsResponse
	if err := decodeJSON(res, &update); err != nil {
		return nil, err
	}

	return &update, nil
}
