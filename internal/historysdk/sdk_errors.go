package historysdk

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/imroc/req/v3"
)

var (
	// sdk common
	ErrNoServerURL      = errors.New("sdk: server url missing")
	ErrInvalidServerURL = errors.New("sdk: server url must be absolute")

	// requests
	ErrRequestFailed      = errors.New("sdk: request failed")
	ErrInvalidPathSegment = errors.New("sdk: invalid path segment")
)

// Actions name the operation in "Failed to <action>: <status text>" messages.
const (
	actFetchConfigs       = "fetch configs"
	actFetchBackups       = "fetch backups"
	actFetchBackupContent = "fetch backup content"
	actFetchBackupDiff    = "fetch backup diff"
	actFetchSettings      = "fetch settings"
	actUpdateSettings     = "update settings"
	actRestoreBackup      = "restore backup"
	actTriggerBackup      = "trigger backup"
	actDeleteBackup       = "delete backup"
	actDeleteAllBackups   = "delete all backups"
	actFetchHealth        = "fetch health"
	actFetchVersion       = "fetch version"
)

// RequestError is returned when the server answers with a status outside 2xx.
// The response body is never inspected.
type RequestError struct {
	Action     string
	StatusCode int
	StatusText string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("Failed to %s: %s", e.Action, e.StatusText)
}

func (e *RequestError) Unwrap() error {
	return ErrRequestFailed
}

var _ error = (*RequestError)(nil)

// IsStatus reports whether err is a RequestError carrying the given status code.
func IsStatus(err error, code int) bool {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode == code
	}
	return false
}

// handleAPIError is a helper function that handles the common error pattern
func handleAPIError(resp *req.Response, requestErr error, action string) error {
	if requestErr != nil {
		return fmt.Errorf("http request error: %s: %w", action, requestErr)
	}

	if resp == nil || resp.Response == nil {
		return fmt.Errorf("http request error: %s: no response", action)
	}

	if !resp.IsSuccessState() {
		return &RequestError{
			Action:     action,
			StatusCode: resp.StatusCode,
			StatusText: statusText(resp.Response),
		}
	}

	return nil
}

// statusText returns the reason phrase of the response, "Not Found" for "404 Not Found".
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	if text == "" {
		text = "status code " + strconv.Itoa(resp.StatusCode)
	}
	return text
}
