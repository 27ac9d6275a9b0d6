package cli

import (
	"github.com/roach88/asterixgen/internal/buildcache"
)

// openCache opens the build cache at path, or returns a nil *Cache if path
// is empty, letting callers treat a disabled cache and a cache miss
// identically.
func openCache(path string) (*buildcache.Cache, error) {
	if path == "" {
		return nil, nil
	}
	return buildcache.Open(path)
}

// cachedBuild returns the memoized source for (schemaData, categoryID) from
// cache if present, generating and storing it via generate otherwise. A nil
// cache always calls generate.
func cachedBuild(cache *buildcache.Cache, schemaData []byte, categoryID int, generate func() (string, error)) (source string, cacheHit bool, err error) {
	if cache == nil {
		source, err = generate()
		return source, false, err
	}

	hash := buildcache.HashSchema(schemaData)
	if cached, found, err := cache.Get(hash, categoryID); err != nil {
		return "", false, err
	} else if found {
		return cached, true, nil
	}

	source, err = generate()
	if err != nil {
		return "", false, err
	}
	if _, err := cache.Put(hash, categoryID, source); err != nil {
		return "", false, err
	}
	return source, false, nil
}
