package config

import (
	"os"
	"regexp"
)

// Matches ${VAR} and ${VAR:-fallback}.
var envVarRegex = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func substituteEnvVars(content []byte) []byte {
	return envVarRegex.ReplaceAllFunc(content, func(match []byte) []byte {
		groups := envVarRegex.FindSubmatch(match)
		if value, exists := os.LookupEnv(string(groups[1])); exists {
			return []byte(value)
		}
		if groups[2] != nil {
			return groups[2]
		}
		return match
	})
}
