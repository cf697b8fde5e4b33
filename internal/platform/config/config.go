package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAPIURL is used when neither NOTELY_API_URL nor REACT_APP_API_URL is set.
const DefaultAPIURL = "http://localhost:5000/api"

// Client captures everything the CLI needs to talk to the notes backend.
type Client struct {
	APIURL         string
	Profile        string
	SessionFile    string
	SessionRedis   string
	HTTPTimeout    time.Duration
	LogLevel       string
	MetricsFile    string
	OTLPEndpoint   string
	OTLPInsecure   bool
	ServiceVersion string
}

// Version is set at build time via ldflags.
var Version = "dev"

// FromEnv builds a Client config from environment variables so main stays lean.
// A .env file in the working directory is applied first; variables already
// present in the environment win.
func FromEnv() Client {
	_ = godotenv.Load()

	apiURL := os.Getenv("NOTELY_API_URL")
	if apiURL == "" {
		apiURL = os.Getenv("REACT_APP_API_URL")
	}
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	profile := os.Getenv("NOTELY_PROFILE")
	if profile == "" {
		profile = "default"
	}

	sessionFile := os.Getenv("NOTELY_SESSION_FILE")
	if sessionFile == "" {
		sessionFile = defaultSessionFile(profile)
	}

	// Zero means no client timeout, matching the browser client.
	var timeout time.Duration
	if v := os.Getenv("NOTELY_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			timeout = d
		}
	}

	logLevel := strings.ToLower(os.Getenv("NOTELY_LOG_LEVEL"))
	if logLevel == "" {
		logLevel = "warn"
	}

	return Client{
		APIURL:         strings.TrimRight(apiURL, "/"),
		Profile:        profile,
		SessionFile:    sessionFile,
		SessionRedis:   os.Getenv("NOTELY_SESSION_REDIS_URL"),
		HTTPTimeout:    timeout,
		LogLevel:       logLevel,
		MetricsFile:    os.Getenv("NOTELY_METRICS_FILE"),
		OTLPEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTLPInsecure:   os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") == "true",
		ServiceVersion: Version,
	}
}

func defaultSessionFile(profile string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	name := "session.json"
	if profile != "default" {
		name = "session-" + profile + ".json"
	}
	return filepath.Join(dir, "notely", name)
}

// MockAPI configures the fake backend binary used for local demos.
type MockAPI struct {
	Addr       string
	SigningKey string
	LogLevel   string
}

// MockAPIFromEnv reads MOCKAPI_ADDR, MOCKAPI_SIGNING_KEY and NOTELY_LOG_LEVEL.
func MockAPIFromEnv() MockAPI {
	_ = godotenv.Load()

	addr := os.Getenv("MOCKAPI_ADDR")
	if addr == "" {
		addr = ":5000"
	}
	key := os.Getenv("MOCKAPI_SIGNING_KEY")
	if key == "" {
		key = "notely-local-demo-key"
	}
	level := strings.ToLower(os.Getenv("NOTELY_LOG_LEVEL"))
	if level == "" {
		level = "info"
	}
	return MockAPI{Addr: addr, SigningKey: key, LogLevel: level}
}
