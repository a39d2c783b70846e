package entitlement

// FeatureState is the resolved gate for one feature key.
type FeatureState struct {
	Enabled    bool `json:"enabled"`
	Overridden bool `json:"overridden"`
}

// FeatureMap is the effective feature view for one church, covering
// exactly the catalog's key set. It is request-scoped and never cached
// across requests; callers re-resolve so plan or override changes take
// effect immediately.
type FeatureMap map[string]FeatureState

// Has reports whether the key resolves to enabled. A key absent from the
// map (a typo or a retired feature) is disabled, never an error. This
// fail-closed default is independent of the fail-open-to-empty behavior
// of the plan and override reads: a misspelled key must not grant access
// even when every store is healthy.
func (m FeatureMap) Has(key string) bool {
	state, ok := m[key]
	return ok && state.Enabled
}
