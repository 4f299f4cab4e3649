package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source describes where a secret may come from.
type Source struct {
	// Name is used in error messages to give more context about the secret.
	Name string
	// Value is an inline secret value provided via configuration or flags.
	Value string
	// File points to a file containing the secret. It takes precedence over Value.
	File string
	// Env names an environment variable consulted when neither File nor Value is set.
	Env string
}

// Load resolves the secret from src: File first, then Value, then Env. The
// result is trimmed; an empty result is an error naming every place looked at.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	if file := strings.TrimSpace(src.File); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}

		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return secret, nil
	}

	if secret := strings.TrimSpace(src.Value); secret != "" {
		return secret, nil
	}

	if env := strings.TrimSpace(src.Env); env != "" {
		if secret := strings.TrimSpace(os.Getenv(env)); secret != "" {
			return secret, nil
		}
		return "", fmt.Errorf("%s is not configured (environment variable %s is empty)", name, env)
	}

	return "", fmt.Errorf("%s is not configured", name)
}
