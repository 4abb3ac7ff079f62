package api

import "sync"

// --- Subject Type Taxonomy ---

// ListSubjectTypes fetches the subject-type taxonomy (person,
// sole-trader, company, association, state body, delegate) with the
// order indexes the default list sort groups by.
func (c *Client) ListSubjectTypes() ([]SubjectType, error) {
	data, err := c.get("/api/subject-types")
	if err != nil {
		return nil, err
	}
	return decodeList[SubjectType](data)
}

// SubjectTypeCache is a read-through cache over the subject-type
// taxonomy. It is filled on first use and invalidated by Refresh (the
// tiles refresh it on mount); there is no TTL.
type SubjectTypeCache struct {
	client *Client

	mu     sync.Mutex
	loaded bool
	byCode map[string]SubjectType
}

// NewSubjectTypeCache builds an empty cache over the client.
func NewSubjectTypeCache(client *Client) *SubjectTypeCache {
	return &SubjectTypeCache{client: client, byCode: map[string]SubjectType{}}
}

// Lookup resolves a subject-type code, loading the taxonomy on first
// use. The second return is false for unknown codes or when the
// taxonomy cannot be fetched.
func (sc *SubjectTypeCache) Lookup(code string) (SubjectType, bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if !sc.loaded {
		if err := sc.fillLocked(); err != nil {
			return SubjectType{}, false
		}
	}
	st, ok := sc.byCode[code]
	return st, ok
}

// All returns every cached entry, loading on first use.
func (sc *SubjectTypeCache) All() []SubjectType {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if !sc.loaded {
		if err := sc.fillLocked(); err != nil {
			return nil
		}
	}
	out := make([]SubjectType, 0, len(sc.byCode))
	for _, st := range sc.byCode {
		out = append(out, st)
	}
	return out
}

// Refresh drops the cache so the next lookup refetches.
func (sc *SubjectTypeCache) Refresh() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.loaded = false
	sc.byCode = map[string]SubjectType{}
}

func (sc *SubjectTypeCache) fillLocked() error {
	types, err := sc.client.ListSubjectTypes()
	if err != nil {
		return err
	}
	for _, st := range types {
		sc.byCode[st.Code] = st
	}
	sc.loaded = true
	return nil
}
