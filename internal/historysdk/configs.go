package historysdk

import (
	"context"
)

// GetConfigs lists every tracked config.
func (c *Client) GetConfigs(ctx context.Context) ([]ConfigMetadata, error) {
	res, err := c.request(ctx).Get(pathConfigs)
	if err := handleAPIError(res, err, actFetchConfigs); err != nil {
		return nil, err
	}

	var configs []ConfigMetadata
	if err := decodeJSON(res, &configs); err != nil {
		return nil, err
	}

	return configs, nil
}

// GetConfigBackups lists the backups stored for a config, newest first as ordered by the server.
func (c *Client) GetConfigBackups(ctx context.Context, group, id string) ([]BackupInfo, error) {
	path, err := buildPath(tmplBackups, group, id)
	if err != nil {
		return nil, err
	}

	res, err := c.request(ctx).Get(path)
	if err := handleAPIError(res, err, actFetchBackups); err != nil {
		return nil, err
	}

	var backups []BackupInfo
	if err := decodeJSON(res, &backups); err != nil {
		return nil, err
	}

	return backups, nil
}
