package identity

import (
	"net/http"
	"time"
)

// Header names sent to the identity service.
const (
	HeaderUsername       = "X-Api-Username"
	HeaderPassword       = "X-Api-Password"
	HeaderDeviceID       = "X-Device-Id"
	HeaderAppVersion     = "X-App-Version"
	HeaderOrganizationID = "organizationID"
	HeaderProjectID      = "projectID"
	HeaderAppID          = "appID"
	HeaderClientID       = "X-Client-Id"
)

// Config holds the identity service endpoint, static credentials and resilience settings.
type Config struct {
	BaseURL        string `env:"IDENTITY_BASE_URL"`
	Username       string `env:"IDENTITY_API_USERNAME"`
	Password       string `env:"IDENTITY_API_PASSWORD"`
	DeviceID       string `env:"IDENTITY_DEVICE_ID"`
	AppVersion     string `env:"IDENTITY_APP_VERSION"`
	OrganizationID string `env:"IDENTITY_ORGANIZATION_ID"`
	ProjectID      string `env:"IDENTITY_PROJECT_ID"`
	AppID          string `env:"IDENTITY_APP_ID"`

	Timeout          time.Duration `env:"IDENTITY_TIMEOUT" envDefault:"5s"`
	RetryAttempts    int           `env:"IDENTITY_RETRY_ATTEMPTS" envDefault:"2"`
	RetryInterval    time.Duration `env:"IDENTITY_RETRY_INTERVAL" envDefault:"200ms"`
	BreakerThreshold int           `env:"IDENTITY_BREAKER_THRESHOLD" envDefault:"5"`
	BreakerCooldown  time.Duration `env:"IDENTITY_BREAKER_COOLDOWN" envDefault:"30s"`
}

// Headers returns the static credential headers. Names are kept exactly as
// listed above, so the lower camel case ids are not canonicalized.
func (c Config) Headers() http.Header {
	return http.Header{
		HeaderUsername:       {c.Username},
		HeaderPassword:       {c.Password},
		HeaderDeviceID:       {c.DeviceID},
		HeaderAppVersion:     {c.AppVersion},
		HeaderOrganizationID: {c.OrganizationID},
		HeaderProjectID:      {c.ProjectID},
		HeaderAppID:          {c.AppID},
	}
}

// NewFromConfig creates a client from cfg. Options are applied after the config values.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	base := []Option{
		WithTimeout(cfg.Timeout),
		WithRetry(cfg.RetryAttempts, cfg.RetryInterval),
		WithBreaker(cfg.BreakerThreshold, cfg.BreakerCooldown),
	}
	return New(cfg.BaseURL, cfg.Headers(), append(base, opts...)...)
}
