package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonesrussell/brandquery/internal/domain"
	"github.com/jonesrussell/brandquery/internal/logger"
)

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	return logger.NewNop()
}

func writeCatalog(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.csv")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoad_SkipsEmptyTopicRows(t *testing.T) {
	csv := "Topic,Sub topic,Query name,Internal ID,Query\n" +
		"brand,product,launch,1,brand\n" +
		",,,,\n" +
		"brand,recall,recall-alert,2,brand AND recall\n"
	c := New(newTestLogger(t))
	if err := c.Load(writeCatalog(t, csv)); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := c.QueryCount(); got != 2 {
		t.Errorf("QueryCount() = %d, want 2", got)
	}
}

func TestLoad_ExcludesUnparseableRowsButKeepsValidOnes(t *testing.T) {
	// The Query field's value is the DSL fragment `"unterminated` (an
	// opening phrase quote with no closing quote) - CSV-escaped as
	// `"""unterminated"` so the CSV row itself parses cleanly and only
	// the DSL lexer sees the unterminated phrase.
	csv := "Topic,Sub topic,Query name,Internal ID,Query\n" +
		"brand,bad,broken,1,\"\"\"unterminated\"\n" +
		"brand,good,valid,2,brand\n"
	c := New(newTestLogger(t))
	if err := c.Load(writeCatalog(t, csv)); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := c.QueryCount(); got != 1 {
		t.Errorf("QueryCount() = %d, want 1 (broken row excluded)", got)
	}
	if got := c.Classify("brand launch today"); !got.Matched {
		t.Error("Classify() on valid rule should still match after a sibling row failed to parse")
	}
}

func TestLoad_MultilineQuotedField(t *testing.T) {
	csv := "Topic,Sub topic,Query name,Internal ID,Query\n" +
		"brand,product,multiline,1,\"brand\nNEAR launch\"\n"
	c := New(newTestLogger(t))
	if err := c.Load(writeCatalog(t, csv)); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := c.QueryCount(); got != 1 {
		t.Errorf("QueryCount() = %d, want 1", got)
	}
}

func TestState_UninitializedUntilLoad(t *testing.T) {
	c := New(newTestLogger(t))
	if got := c.State(); got != domain.CatalogUninitialized {
		t.Errorf("State() = %v, want uninitialized", got)
	}
	c.Load(writeCatalog(t, "Topic,Sub topic,Query name,Internal ID,Query\nbrand,p,n,1,brand\n"))
	if got := c.State(); got != domain.CatalogReady {
		t.Errorf("State() = %v, want ready", got)
	}
}
