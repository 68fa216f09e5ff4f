package cache

import (
	"errors"
	"strings"
)

// ErrUnknownBackend is returned by Open for an unsupported cache URL.
var ErrUnknownBackend = errors.New("unknown cache backend")

// Open selects a backend from a location string:
//   - "" or "none": NullCache
//   - "redis://..." or "rediss://...": RedisCache
//   - anything else: FileCache rooted at that directory
func Open(location string) (Cache, error) {
	switch {
	case location == "" || location == "none":
		return NewNullCache(), nil
	case strings.HasPrefix(location, "redis://"), strings.HasPrefix(location, "rediss://"):
		return NewRedisCache(location)
	case strings.Contains(location, "://"):
		return nil, ErrUnknownBackend
	default:
		return NewFileCache(location)
	}
}
