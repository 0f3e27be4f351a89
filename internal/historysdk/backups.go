package historysdk

import (
	"context"

	"github.com/imroc/req/v3"
)

// GetBackupContent returns the raw content of a backup file.
func (c *Client) GetBackupContent(ctx context.Context, group, id, filename string) (string, error) {
	path, err := buildPath(tmplBackupFile, group, id, filename)
	if err != nil {
		return "", err
	}

	res, err := c.request(ctx).Get(path)
	if err := handleAPIError(res, err, actFetchBackupContent); err != nil {
		return "", err
	}

	return res.String(), nil
}

// CompareBackups asks the server to diff two backups of the same config.
func (c *Client) CompareBackups(ctx context.Context, group, id, leftFilename, rightFilename string) (*BackupDiffResponse, error) {
	path, err := buildPath(tmplBackupDiff, group, id, leftFilename, rightFilename)
	if err != nil {
		return nil, err
	}

	res, err := c.request(ctx).Get(path)
	if err := handleAPIError(res, err, actFetchBackupDiff); err != nil {
		return nil, err
	}

	var diff BackupDiffResponse
	if err := decodeJSON(res, &diff); err != nil {
		return nil, err
	}

	return &diff, nil
}

// RestoreBackup writes a backup back over the live config.
func (c *Client) RestoreBackup(ctx context.Context, group, id, filename string) (*RestoreBackupResponse, error) {
	path, err := buildPath(tmplBackupRestore, group, id, filename)
	if err != nil {
		return nil, err
	}

	res, err := c.request(ctx).Post(path)
	if err := handleAPIError(res, err, actRestoreBackup); err != nil {
		return nil, err
	}

	var restore RestoreBackupResponse
	if err := decodeJSON(res, &restore); err != nil {
		return nil, err
	}

	return &restore, nil
}

// TriggerBackup starts a backup run over every configured source.
func (c *Client) TriggerBackup(ctx context.Context) (*StatusResponse, error) {
	res, err := c.request(ctx).Post(pathBackup)
	if err := handleAPIError(res, err, actTriggerBackup); err != nil {
		return nil, err
	}

	return decodeStatus(res)
}

// DeleteBackup removes a single backup file.
func (c *Client) DeleteBackup(ctx context.Context, group, id, filename string) (*StatusResponse, error) {
	path, err := buildPath(tmplBackupFile, group, id, filename)
	if err != nil {
		return nil, err
	}

	res, err := c.request(ctx).Delete(path)
	if err := handleAPIError(res, err, actDeleteBackup); err != nil {
		return nil, err
	}

	return decodeStatus(res)
}

// DeleteAllBackups removes every backup of a config.
func (c *Client) DeleteAllBackups(ctx context.Context, group, id string) (*StatusResponse, error) {
	path, err := buildPath(tmplConfig, group, id)
	if err != nil {
		return nil, err
	}

	res, err := c.request(ctx).Delete(path)
	if err := handleAPIError(res, err, actDeleteAllBackups); err != nil {
		return nil, err
	}

	return decodeStatus(res)
}

func decodeStatus(res *req.Response) (*StatusResponse, error) {
	var status StatusResponse
	if err := decodeJSON(res, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
