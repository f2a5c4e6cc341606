package cache

import "fmt"

const (
	PropertiesPrefix = "properties:"
	FavoritesPrefix  = "favorites:"

	// PropertiesPattern evicts every cached catalog view.
	PropertiesPattern = PropertiesPrefix + "*"
	// AllFavoritesPattern evicts every user's materialized favorites list.
	AllFavoritesPattern = FavoritesPrefix + "*"
)

// Canonical is implemented by compiled filters that serialize deterministically.
type Canonical interface {
	CanonicalJSON() ([]byte, error)
}

// PropertiesKey is the cache key of a catalog query: the prefix plus the filter's canonical JSON.
func PropertiesKey(spec Canonical) (string, error) {
	raw, err := spec.CanonicalJSON()
	if err != nil {
		return "", fmt.Errorf("failed to encode filter for cache key: %w", err)
	}
	return PropertiesPrefix + string(raw), nil
}

// FavoritesKey is the cache key of one user's materialized favorites list.
func FavoritesKey(userID string) string {
	return FavoritesPrefix + userID
}
