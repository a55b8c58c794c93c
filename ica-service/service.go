package icaservice

import (
	"fmt"
	"strings"
)

// PrefixEnvVar returns the environment variables a flag is read from.
func PrefixEnvVar(prefix, suffix string) []string {
	return []string{prefix + "_" + suffix}
}

func FormatVersion(version, gitCommit, gitDate, meta string) string {
	v := version
	if gitCommit != "" {
		if len(gitCommit) >= 8 {
			v += "-" + gitCommit[:8]
		} else {
			v += "-" + gitCommit
		}
	}
	if gitDate != "" {
		v += "-" + gitDate
	}
	if meta != "" {
		v += "-" + meta
	}
	return v
}

// ValidateEnvVars warns about variables carrying the prefix that no flag reads.
func ValidateEnvVars(prefix string, flagEnvVars []string, environ []string) []string {
	known := make(map[string]struct{}, len(flagEnvVars))
	for _, name := range flagEnvVars {
		known[name] = struct{}{}
	}
	var unknown []string
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if !strings.HasPrefix(name, prefix+"_") {
			continue
		}
		if _, ok := known[name]; !ok {
			unknown = append(unknown, fmt.Sprintf("%s is set but not used by any flag", name))
		}
	}
	return unknown
}
