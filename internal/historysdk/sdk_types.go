package historysdk

import (
	"fmt"
	"runtime"

	"github.com/ha-config-history/cfgctl/internal/version"
)

const (
	HeaderUserAgent   = "User-Agent"
	HeaderContentType = "Content-Type"
	HeaderRequestID   = "X-Request-ID"
	HeaderClientVer   = "X-Cfgctl-Version"

	ContentTypeJSON = "application/json"
)

var DefaultUserAgent = fmt.Sprintf("cfgctl/%s (%s; %s; %s)", version.Version, version.Revision, runtime.GOOS, runtime.GOARCH)
