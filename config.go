package punchlog

import (
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"
)

// DefaultAPIURL is where a locally run backend listens.
const DefaultAPIURL = "http://localhost:8080/api"

// Config holds the client application options.
type Config struct {
	// APIURL is the backend base, e.g. http://localhost:8080/api
	APIURL string `yaml:"api_url"`
	// CredentialFile overrides the default token location
	CredentialFile string `yaml:"credential_file"`
	// RequestTimeoutExpression is a duration string, e.g. "15s"
	RequestTimeoutExpression string `yaml:"request_timeout"`
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.APIURL, validation.Required, is.URL),
	)
}

// GetAPIURL returns the backend base URL.
func (c Config) GetAPIURL() string {
	if c.APIURL == "" {
		return DefaultAPIURL
	}
	return c.APIURL
}

// GetRequestTimeout parses the timeout expression, zero when unset or
// unparseable so callers fall back to their own default.
func (c Config) GetRequestTimeout() time.Duration {
	if c.RequestTimeoutExpression == "" {
		return 0
	}
	dur, err := time.ParseDuration(c.RequestTimeoutExpression)
	if err != nil {
		return 0
	}
	return dur
}

// LoadConfig reads and validates a yaml config file. A missing file is
// not an error: defaults apply.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "unable to read config file")
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to parse config file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid configuration")
	}

	return cfg, nil
}
