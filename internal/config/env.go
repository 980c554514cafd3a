package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/cli/go-gh/v2/pkg/auth"
	"github.com/joho/godotenv"
)

// Env holds the environment variables the tool reads
type Env struct {
	// Token is the GitHub token from GITHUB_TOKEN.
	Token string `env:"GITHUB_TOKEN"`
	// LogLevel is the log level from GH_UNRESOLVED_LOG_LEVEL.
	LogLevel string `env:"GH_UNRESOLVED_LOG_LEVEL"`
	// ConfigPath is the YAML config path from GH_UNRESOLVED_CONFIG.
	ConfigPath string `env:"GH_UNRESOLVED_CONFIG"`
}

// LoadEnv parses the process environment. When envFile is set its
// variables are used for keys the process environment does not define.
func LoadEnv(envFile string) (Env, error) {
	vars := environ()

	if envFile != "" {
		fileVars, err := godotenv.Read(envFile)
		if err != nil {
			return Env{}, fmt.Errorf("failed to read env file %s: %w", envFile, err)
		}
		for k, v := range fileVars {
			if _, ok := vars[k]; !ok {
				vars[k] = v
			}
		}
	}

	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Environment: vars}); err != nil {
		return Env{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	e.Token = strings.TrimSpace(e.Token)
	return e, nil
}

// Overrides returns the settings the environment sets explicitly
func (e Env) Overrides() Overrides {
	var o Overrides
	if e.LogLevel != "" {
		level := e.LogLevel
		o.LogLevel = &level
	}
	return o
}

func environ() map[string]string {
	out := make(map[string]string)
	for _, kv := range os.Environ() {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		out[parts[0]] = parts[1]
	}
	return out
}

// Credential is an optional GitHub token and where it came from
type Credential struct {
	Token  string
	Source string
}

// Present reports whether a token was found
func (c Credential) Present() bool {
	return c.Token != ""
}

// ghTokenForHost is replaced in tests
var ghTokenForHost = auth.TokenForHost

// ResolveToken picks the token once, before any request is made:
// the flag wins over GITHUB_TOKEN, and the gh CLI credentials are only
// consulted when useGHAuth is set.
func ResolveToken(flagToken string, e Env, useGHAuth bool, host string) Credential {
	if token := strings.TrimSpace(flagToken); token != "" {
		return Credential{Token: token, Source: "--github-token"}
	}
	if e.Token != "" {
		return Credential{Token: e.Token, Source: "GITHUB_TOKEN"}
	}
	if useGHAuth {
		if token, source := ghTokenForHost(host); token != "" {
			return Credential{Token: token, Source: source}
		}
	}
	return Credential{}
}
