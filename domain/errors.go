package domain

// CatalogError wraps failures from the remote catalog collaborator.
type CatalogError struct {
	Op  string
	Err string
}

func (e *CatalogError) Error() string {
	return e.Op + ": " + e.Err
}

// CacheError wraps failures from the local key-value store. Callers treat
// it as a cache miss, never as a fatal condition.
type CacheError struct {
	Op  string
	Err string
}

func (e *CacheError) Error() string {
	return e.Op + ": " + e.Err
}
