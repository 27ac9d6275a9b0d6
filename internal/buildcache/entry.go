package buildcache

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Get returns the memoized generated source for (schemaSHA256, categoryID),
// and false if no entry exists.
func (c *Cache) Get(schemaSHA256 string, categoryID int) (source string, found bool, err error) {
	row := c.db.QueryRow(`
		SELECT generated_source FROM cache_entries
		WHERE schema_sha256 = ? AND category_id = ?
	`, schemaSHA256, categoryID)

	if err := row.Scan(&source); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("buildcache: get: %w", err)
	}
	return source, true, nil
}

// Put stores generated source under (schemaSHA256, categoryID), replacing
// any prior entry for that exact key, and returns a freshly minted RunID
// identifying this generation run. Since the key is itself a content hash,
// any change to the schema produces a different key and therefore a cache
// miss on the next Get — invalidation falls out of the key shape rather
// than requiring an explicit expiry step.
func (c *Cache) Put(schemaSHA256 string, categoryID int, source string) (runID string, err error) {
	runID = uuid.NewString()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	_, err = c.db.Exec(`
		INSERT INTO cache_entries (schema_sha256, category_id, generated_source, run_id, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(schema_sha256, category_id) DO UPDATE SET
			generated_source = excluded.generated_source,
			run_id           = excluded.run_id,
			created_at       = excluded.created_at
	`, schemaSHA256, categoryID, source, runID, createdAt)
	if err != nil {
		return "", fmt.Errorf("buildcache: put: %w", err)
	}

	return runID, nil
}
