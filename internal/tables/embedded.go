package tables

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data/default.json
var defaultBundleJSON []byte

// DefaultBundle decodes the embedded default Bundle. Callers that want
// the fully-built Tables should use DefaultTables instead; this is
// exposed for diagnostics (e.g. a CLI "verify-tables" subcommand) that
// wants to inspect the raw bundle before validation.
func DefaultBundle() (Bundle, error) {
	var b Bundle
	if err := json.Unmarshal(defaultBundleJSON, &b); err != nil {
		return Bundle{}, fmt.Errorf("tables: decoding embedded default bundle: %w", err)
	}
	return b, nil
}

// DefaultTables builds the embedded default bundle, failing fast if it
// does not satisfy Build's invariants.
func DefaultTables() (*Tables, error) {
	b, err := DefaultBundle()
	if err != nil {
		return nil, err
	}
	return Build(b)
}
