package ingestion

import (
	"errors"
	"os"
	"strings"
)

// ServiceKeyEnv is the environment variable consulted when no explicit
// service key is supplied.
const ServiceKeyEnv = "RTMS_SERVICE_KEY"

// ErrNoServiceKey is returned when no API service key can be resolved from
// any source.
var ErrNoServiceKey = errors.New("no service key: pass one explicitly or set " + ServiceKeyEnv)

// ResolveServiceKey resolves the upstream API key once at startup: the
// explicit value wins, then the environment. Components receive the
// resolved key by injection and never read configuration ad hoc.
func ResolveServiceKey(explicit string) (string, error) {
	if key := strings.TrimSpace(explicit); key != "" {
		return key, nil
	}
	if key := strings.TrimSpace(os.Getenv(ServiceKeyEnv)); key != "" {
		return key, nil
	}
	return "", ErrNoServiceKey
}
