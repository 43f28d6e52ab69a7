package ratelimit

import "strings"

// MatchEndpoint resolves a request to its tier, or nil for the default.
// Precedence: exact path, then "*" suffix patterns ("*/generate" matches
// "/sessions/{id}/generate"), then trailing-slash prefixes ("/sessions/"
// matches everything under it).
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// The health check is never metered.
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}

	match := func(fits func(pattern string) bool) *EndpointConfig {
		for i := range configs {
			if configs[i].Method == method && fits(configs[i].Path) {
				return &configs[i]
			}
		}
		return nil
	}

	if c := match(func(p string) bool { return p == path }); c != nil {
		return c
	}
	if c := match(func(p string) bool {
		return strings.HasPrefix(p, "*") && strings.HasSuffix(path, strings.TrimPrefix(p, "*"))
	}); c != nil {
		return c
	}
	return match(func(p string) bool {
		return strings.HasSuffix(p, "/") && strings.HasPrefix(path, p)
	})
}
