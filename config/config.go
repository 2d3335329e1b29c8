package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "16KB"

	PreferenceDriverBlob     = "blob"
	PreferenceDriverPostgres = "postgres"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Postgres is only required when preferences.driver is "postgres"
	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Overpass *OverpassConfig `json:"overpass" yaml:"overpass"`

	Fallback *FallbackConfig `json:"fallback" yaml:"fallback"`

	Preferences *PreferencesConfig `json:"preferences" yaml:"preferences"`

	Search *SearchConfig `json:"search" yaml:"search"`

	Geolocation *GeolocationConfig `json:"geolocation" yaml:"geolocation"`

	Websocket *WebsocketConfig `json:"websocket" yaml:"websocket"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// OverpassConfig configures the live geodata query
type OverpassConfig struct {
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Client-side HTTP timeout for a single query
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// Server-side processing timeout sent as [timeout:N]
	ServerTimeout time.Duration `json:"serverTimeout" yaml:"serverTimeout"`

	// Maximum number of queries in flight against the endpoint
	MaxParallel int `json:"maxParallel" yaml:"maxParallel"`
}

// FallbackConfig locates the static dataset
type FallbackConfig struct {
	// gocloud bucket URL (file:///..., gs://..., s3://...). Empty uses the embedded dataset.
	BucketURL string `json:"bucketUrl" yaml:"bucketUrl"`
	Key       string `json:"key" yaml:"key"`
}

// PreferencesConfig selects the preference backend
type PreferencesConfig struct {
	// Driver is "blob" or "postgres"
	Driver    string `json:"driver" yaml:"driver"`
	BucketURL string `json:"bucketUrl" yaml:"bucketUrl"`
	Namespace string `json:"namespace" yaml:"namespace"`
}

// SearchConfig defines radius bounds and selection focus behaviour
type SearchConfig struct {
	DefaultRadius int `json:"defaultRadius" yaml:"defaultRadius"`
	MaxRadius     int `json:"maxRadius" yaml:"maxRadius"`

	// Minimum zoom level the map is brought to when a list entry is selected
	MinZoom int `json:"minZoom" yaml:"minZoom"`
}

// GeolocationConfig is forwarded to the browser on every position request
type GeolocationConfig struct {
	HighAccuracy bool          `json:"highAccuracy" yaml:"highAccuracy"`
	Timeout      time.Duration `json:"timeout" yaml:"timeout"`

	// Extra time allowed for the reply to travel back over the socket
	Grace time.Duration `json:"grace" yaml:"grace"`
}

// WebsocketConfig configures the live session endpoint
type WebsocketConfig struct {
	ReadBufferSize  int      `json:"readBufferSize" yaml:"readBufferSize"`
	WriteBufferSize int      `json:"writeBufferSize" yaml:"writeBufferSize"`
	AllowedOrigins  []string `json:"allowedOrigins" yaml:"allowedOrigins"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: POSTGRES_SSLMODE -> postgres.sslMode (not postgres.sslmode)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if cfg.Preferences.Driver == PreferenceDriverPostgres && cfg.Postgres == nil {
		return nil, errors.New("postgres config is required when preferences.driver is postgres")
	}

	return cfg, nil
}

// applyDefaults fills every optional section so callers never nil-check.
func (cfg *Config) applyDefaults() {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Overpass == nil {
		cfg.Overpass = &OverpassConfig{}
	}
	if cfg.Overpass.Endpoint == "" {
		cfg.Overpass.Endpoint = "https://overpass-api.de/api/interpreter"
	}
	if cfg.Overpass.Timeout <= 0 {
		cfg.Overpass.Timeout = 30 * time.Second
	}
	if cfg.Overpass.ServerTimeout <= 0 {
		cfg.Overpass.ServerTimeout = 25 * time.Second
	}
	if cfg.Overpass.MaxParallel <= 0 {
		cfg.Overpass.MaxParallel = 2
	}

	if cfg.Fallback == nil {
		cfg.Fallback = &FallbackConfig{}
	}
	if cfg.Fallback.Key == "" {
		cfg.Fallback.Key = "cafes.json"
	}

	if cfg.Preferences == nil {
		cfg.Preferences = &PreferencesConfig{}
	}
	if cfg.Preferences.Driver == "" {
		cfg.Preferences.Driver = PreferenceDriverBlob
	}
	if cfg.Preferences.BucketURL == "" {
		cfg.Preferences.BucketURL = "mem://"
	}
	if cfg.Preferences.Namespace == "" {
		cfg.Preferences.Namespace = "cafe-finder-prefs"
	}

	if cfg.Search == nil {
		cfg.Search = &SearchConfig{}
	}
	if cfg.Search.DefaultRadius <= 0 {
		cfg.Search.DefaultRadius = 1000
	}
	if cfg.Search.MaxRadius <= 0 {
		cfg.Search.MaxRadius = 10000
	}
	if cfg.Search.MinZoom <= 0 {
		cfg.Search.MinZoom = 16
	}

	if cfg.Geolocation == nil {
		cfg.Geolocation = &GeolocationConfig{HighAccuracy: true}
	}
	if cfg.Geolocation.Timeout <= 0 {
		cfg.Geolocation.Timeout = 10 * time.Second
	}
	if cfg.Geolocation.Grace <= 0 {
		cfg.Geolocation.Grace = 2 * time.Second
	}

	if cfg.Websocket == nil {
		cfg.Websocket = &WebsocketConfig{}
	}
	if cfg.Websocket.ReadBufferSize <= 0 {
		cfg.Websocket.ReadBufferSize = 1024
	}
	if cfg.Websocket.WriteBufferSize <= 0 {
		cfg.Websocket.WriteBufferSize = 4096
	}
}

// Defaults returns a config with every default applied, for tools and tests
// that do not read config.yaml.
func Defaults() *Config {
	cfg := new(Config)
	cfg.applyDefaults()

	return cfg
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
