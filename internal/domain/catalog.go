package domain

// CatalogState is the lifecycle of the rule catalog.
type CatalogState int

const (
	// CatalogUninitialized is the state before the first Load call.
	CatalogUninitialized CatalogState = iota
	// CatalogInitializing names a Load/reload in progress. Load runs
	// synchronously and the classifier's State never reports this value.
	CatalogInitializing
	// CatalogReady means a compiled catalog snapshot has been published.
	CatalogReady
)

func (s CatalogState) String() string {
	switch s {
	case CatalogUninitialized:
		return "uninitialized"
	case CatalogInitializing:
		return "initializing"
	case CatalogReady:
		return "ready"
	default:
		return "unknown"
	}
}

// BrandRuleCatalog is an ordered, immutable collection of compiled brand
// rules. Catalog order determines tie-breaks: the first rule to match wins.
type BrandRuleCatalog struct {
	Rules []BrandRule
}
