package historysdk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		cfg := &Config{BaseURL: "http://127.0.0.1:8080"}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing base url fails", func(t *testing.T) {
		cfg := &Config{BaseURL: ""}
		assert.ErrorIs(t, cfg.Validate(), ErrNoServerURL)
	})

	t.Run("slashes only is treated as missing", func(t *testing.T) {
		cfg := &Config{BaseURL: "///"}
		assert.ErrorIs(t, cfg.Validate(), ErrNoServerURL)
	})

	t.Run("relative base url fails", func(t *testing.T) {
		cfg := &Config{BaseURL: "/api/hassio_ingress/abc"}
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidServerURL)
	})
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://host/", "https://host"},
		{"https://host", "https://host"},
		{"https://host///", "https://host"},
		{"https://host/api/hassio_ingress/tok/", "https://host/api/hassio_ingress/tok"},
		{"https://host/app/?tab=history#top", "https://host/app"},
		{"  http://127.0.0.1:8080/  ", "http://127.0.0.1:8080"},
		{"", ""},
		{"/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeBaseURL(tt.in))
		})
	}
}
