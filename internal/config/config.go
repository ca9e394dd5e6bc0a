// internal/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

type Config struct {
    Redact struct {
        // UsernameToken is the literal string scrubbed from file content.
        // Its replacement is configuration, not a constant: the shipped
        // default maps the placeholder to itself.
        UsernameToken       string `json:"username_token"`
        UsernameReplacement string `json:"username_replacement"`
    } `json:"redact"`

    // Exclude lists extra path substrings that disqualify a file, on top
    // of the built-in vendor/build exclusions.
    Exclude []string `json:"exclude"`

    LogLevel string `json:"log_level"` // debug, info, warn, error
}

// BuiltinExclusions are path substrings that always disqualify a file
// from sanitization, regardless of configuration.
var BuiltinExclusions = []string{
    "vendor/",
    "node_modules/",
    ".git/",
    ".history/",
    "dist/",
}

func Default() *Config {
    var c Config
    c.Redact.UsernameToken = "USER"
    c.Redact.UsernameReplacement = "USER"
    c.LogLevel = "info"
    return &c
}

func getConfigPath() string {
    env := os.Getenv("SCRUB_ENV")
    if env == "" {
        return ".scrub.json"
    }
    return fmt.Sprintf(".scrub.%s.json", env)
}

// Load reads the config file at path, falling back to defaults when path is
// empty and no config file exists in the working directory.
func Load(path string) (*Config, error) {
    optional := false
    if path == "" {
        path = getConfigPath()
        optional = true
    }

    file, err := os.Open(path)
    if err != nil {
        if optional && os.IsNotExist(err) {
            return Default(), nil
        }
        return nil, err
    }
    defer file.Close()

    config := Default()
    if err := json.NewDecoder(file).Decode(config); err != nil {
        return nil, err
    }

    if config.LogLevel == "" {
        config.LogLevel = "info"
    }

    return config, nil
}

// Exclusions returns the built-in exclusion substrings plus any configured
// extras.
func (c *Config) Exclusions() []string {
    out := make([]string, 0, len(BuiltinExclusions)+len(c.Exclude))
    out = append(out, BuiltinExclusions...)
    out = append(out, c.Exclude...)
    return out
}
