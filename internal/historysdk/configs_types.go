package historysdk

import "time"

type BackupType string

const (
	BackupTypeSingle    BackupType = "single"
	BackupTypeMultiple  BackupType = "multiple"
	BackupTypeDirectory BackupType = "directory"
)

// ConfigMetadata describes one tracked config, identified by its group and id.
type ConfigMetadata struct {
	Group        string     `json:"group"`
	ID           string     `json:"id"`
	FriendlyName string     `json:"friendlyName"`
	BackupType   BackupType `json:"backupType"`
	BackupCount  int        `json:"backupCount"`
	BackupsSize  int64      `json:"backupsSize"`
	LastBackup   time.Time  `json:"lastBackup"`
}

// BackupInfo is a single stored snapshot of a config.
type BackupInfo struct {
	Filename string    `json:"filename"`
	Date     time.Time `json:"date"`
	Size     int64     `json:"size"`
}
