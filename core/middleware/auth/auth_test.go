package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		apiKey     string
		header     string
		target     string
		wantStatus int
	}{
		{"Disabled", "", "", "/", fiber.StatusOK},
		{"MissingKey", "secret", "", "/", fiber.StatusUnauthorized},
		{"WrongKey", "secret", "nope", "/", fiber.StatusUnauthorized},
		{"HeaderKey", "secret", "secret", "/", fiber.StatusOK},
		{"QueryKey", "secret", "", "/?api_key=secret", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(New(Config{ApiKey: tt.apiKey}))
			app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

			req := httptest.NewRequest("GET", tt.target, nil)
			if tt.header != "" {
				req.Header.Set(Header, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
