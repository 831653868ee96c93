package ratelimit

import (
	"net/http"
	"strings"
)

// unlimited is returned for probe endpoints so monitoring never trips a limit
var unlimited = EndpointConfig{Limit: 0}

var probes = map[string]bool{"/health": true, "/metrics": true}

// MatchEndpoint finds the configuration governing method and path, or nil
// when the default rate applies. Exact paths win; otherwise the longest
// configured prefix ending in "/" is used, so "/suggestions/" covers
// "/suggestions/{id}/accept".
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if method == http.MethodGet && probes[path] {
		ec := unlimited
		return &ec
	}

	var prefix *EndpointConfig
	for i := range configs {
		ec := &configs[i]
		if ec.Method != method {
			continue
		}
		if ec.Path == path {
			return ec
		}
		if !strings.HasSuffix(ec.Path, "/") || !strings.HasPrefix(path, ec.Path) {
			continue
		}
		if prefix == nil || len(ec.Path) > len(prefix.Path) {
			prefix = ec
		}
	}
	return prefix
}
