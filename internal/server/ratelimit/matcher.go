package ratelimit

import (
	"strings"
)

// MatchEndpoint resolves the endpoint configuration for a request path
// and method. Exact path matches win; configs whose path ends in "/"
// act as prefix rules (so "/documents/" covers "/documents/{id}").
// Returns nil when no rule applies. The health check is always
// unmetered.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}

	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			return config
		}
	}

	return nil
}
