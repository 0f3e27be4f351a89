package historysdk

// BackupDiffResponse is the comparison of two backups of the same config.
type BackupDiffResponse struct {
	LeftFilename  string `json:"leftFilename"`
	RightFilename string `json:"rightFilename"`
	LeftContent   string `json:"leftContent"`
	RightContent  string `json:"rightContent"`
	Diff          string `json:"diff"`
}

type RestoreBackupResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// StatusResponse acknowledges trigger and delete operations.
type StatusResponse struct {
	Status string `json:"status"`
}
