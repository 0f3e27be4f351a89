package historysdk

type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

type VersionResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
}
