package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultTimeout applies when TimeoutSeconds is unset.
const DefaultTimeout = 30 * time.Second

// ErrInvalidEndpoint is returned for endpoints with an unsupported scheme or a path.
var ErrInvalidEndpoint = errors.New("invalid storage endpoint")

// Config holds configuration for the storage provider.
type Config struct {
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket holding project files.
	Bucket string `mapstructure:"bucket" default:"projects"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Timeout returns the connection timeout.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Address returns the host:port MinIO dials and whether TLS is used.
// An explicit http or https scheme overrides UseSSL.
func (c Config) Address() (host string, secure bool, err error) {
	host, secure = strings.TrimSpace(c.Endpoint), c.UseSSL
	if scheme, rest, ok := strings.Cut(host, "://"); ok {
		switch strings.ToLower(scheme) {
		case "http":
			secure = false
		case "https":
			secure = true
		default:
			return "", false, fmt.Errorf("%q: %w", c.Endpoint, ErrInvalidEndpoint)
		}
		host = rest
	}
	host = strings.TrimSuffix(host, "/")
	if host == "" || strings.Contains(host, "/") {
		return "", false, fmt.Errorf("%q: %w", c.Endpoint, ErrInvalidEndpoint)
	}
	return host, secure, nil
}
