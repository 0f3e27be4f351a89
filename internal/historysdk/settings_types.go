package historysdk

// AppSettings is the backend-wide configuration that drives backup behavior.
type AppSettings struct {
	HomeAssistantConfigDir  string                 `json:"homeAssistantConfigDir" yaml:"homeAssistantConfigDir"`
	BackupDir               string                 `json:"backupDir" yaml:"backupDir"`
	Port                    string                 `json:"port" yaml:"port"`
	CronSchedule            *string                `json:"cronSchedule,omitempty" yaml:"cronSchedule,omitempty"`
	DefaultMaxBackups       *int                   `json:"defaultMaxBackups,omitempty" yaml:"defaultMaxBackups,omitempty"`
	DefaultMaxBackupAgeDays *int                   `json:"defaultMaxBackupAgeDays,omitempty" yaml:"defaultMaxBackupAgeDays,omitempty"`
	Configs                 []*ConfigBackupOptions `json:"configs" yaml:"configs"`
}

// ConfigBackupOptions describes one source the backend watches.
// For BackupTypeMultiple the file holds a YAML sequence and IdNode names the key
// that identifies each entry.
type ConfigBackupOptions struct {
	Name             string     `json:"name" yaml:"name"`
	Path             string     `json:"path" yaml:"path"`
	BackupType       BackupType `json:"backupType" yaml:"backupType"`
	IdNode           *string    `json:"idNode,omitempty" yaml:"idNode,omitempty"`
	FriendlyNameNode *string    `json:"friendlyNameNode,omitempty" yaml:"friendlyNameNode,omitempty"`
	MaxBackups       *int       `json:"maxBackups,omitempty" yaml:"maxBackups,omitempty"`
	MaxBackupAgeDays *int       `json:"maxBackupAgeDays,omitempty" yaml:"maxBackupAgeDays,omitempty"`
}

type UpdateSettingsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
