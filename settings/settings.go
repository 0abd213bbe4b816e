package settings

import (
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Config is used to represent the current state of a CLI instance.
type Config struct {
	Host       string       `yaml:"host"`
	Endpoint   string       `yaml:"endpoint"`
	Token      string       `yaml:"token"`
	Debug      bool         `yaml:"-"`
	FileUsed   string       `yaml:"-"`
	HTTPClient *http.Client `yaml:"-"`
}

// Load will read the config from the user's disk and then evaluate possible
// configuration from the environment.
func (cfg *Config) Load() error {
	if err := cfg.LoadFromDisk(); err != nil {
		return err
	}

	cfg.LoadFromEnv("ghrepo")

	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}

	return nil
}

// LoadFromDisk is used to read config from the user's disk and deserialize the YAML into our runtime config.
func (cfg *Config) LoadFromDisk() error {
	path := filepath.Join(SettingsPath(), configFilename())

	if err := ensureSettingsFileExists(path); err != nil {
		return err
	}

	cfg.FileUsed = path

	content, err := os.ReadFile(path) // #nosec
	if err != nil {
		return err
	}

	err = yaml.Unmarshal(content, &cfg)
	return err
}

// WriteToDisk will write the runtime config instance to disk by serializing the YAML
func (cfg *Config) WriteToDisk() error {
	enc, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	err = os.WriteFile(cfg.FileUsed, enc, 0600)
	return err
}

// LoadFromEnv will read from environment variables of the given prefix for
// host, endpoint, and token specifically. The conventional GITHUB_TOKEN
// variable is honored as a fallback when no prefixed token is set.
func (cfg *Config) LoadFromEnv(prefix string) {
	if host := ReadFromEnv(prefix, "host"); host != "" {
		cfg.Host = host
	}

	if endpoint := ReadFromEnv(prefix, "endpoint"); endpoint != "" {
		cfg.Endpoint = endpoint
	}

	if token := ReadFromEnv(prefix, "token"); token != "" {
		cfg.Token = token
	} else if token := os.Getenv("GITHUB_TOKEN"); token != "" && cfg.Token == "" {
		cfg.Token = token
	}
}

// ReadFromEnv takes a prefix and field to search the environment for after capitalizing and joining them with an underscore.
func ReadFromEnv(prefix, field string) string {
	name := strings.Join([]string{prefix, field}, "_")
	return os.Getenv(strings.ToUpper(name))
}

// ServerURL returns the fully resolved API base URL from host and endpoint.
func (cfg *Config) ServerURL() (*url.URL, error) {
	var URL *url.URL

	URL, err := url.Parse(cfg.Host)
	if err != nil {
		return nil, err
	}

	URL, err = URL.Parse(cfg.Endpoint)
	if err != nil {
		return nil, err
	}
	return URL, nil
}

// DefaultHost is the root of GitHub's REST v3 API.
const DefaultHost = "https://api.github.com"

// configFilename returns the name of the cli config file
func configFilename() string {
	return "cli.yml"
}

// SettingsPath returns the path of the CLI settings directory
func SettingsPath() string {
	home, _ := os.UserHomeDir()
	return path.Join(home, ".ghrepo")
}

// ensureSettingsFileExists does just that.
func ensureSettingsFileExists(path string) error {
	// TODO - handle invalid YAML config files.

	_, err := os.Stat(path)

	if err == nil {
		return nil
	}

	if !os.IsNotExist(err) {
		// Filesystem error
		return err
	}

	dir := filepath.Dir(path)

	// Create folder
	if err = os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	_, err = os.Create(path)
	if err != nil {
		return err
	}

	err = os.Chmod(path, 0600)

	return err
}
