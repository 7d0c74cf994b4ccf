// Package classifier loads the CSV rule catalog, compiles each row's query
// into an AST, and classifies text against the compiled catalog in order,
// returning the first match.
package classifier

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/jonesrussell/brandquery/internal/domain"
	"github.com/jonesrussell/brandquery/internal/logger"
	"github.com/jonesrussell/brandquery/internal/query"
)

// expected CSV header columns, in order.
var wantColumns = []string{"Topic", "Sub topic", "Query name", "Internal ID", "Query"}

// Classifier holds an atomically-swappable catalog snapshot and exposes
// the classify-first-match entry point described by the rule compiler
// component.
type Classifier struct {
	log     logger.Logger
	catalog atomic.Pointer[compiledCatalog]
}

// compiledCatalog is the immutable snapshot published on load/reload.
type compiledCatalog struct {
	rules     []domain.BrandRule
	prefilter *prefilterIndex
}

func buildCompiledCatalog(rules []domain.BrandRule) *compiledCatalog {
	return &compiledCatalog{
		rules:     rules,
		prefilter: buildPrefilterIndex(rules),
	}
}

// New creates a Classifier with an uninitialized catalog.
func New(log logger.Logger) *Classifier {
	return &Classifier{log: log}
}

// State reports the catalog's current lifecycle state.
func (c *Classifier) State() domain.CatalogState {
	if c.catalog.Load() == nil {
		return domain.CatalogUninitialized
	}
	return domain.CatalogReady
}

// QueryCount returns the number of compiled rules in the current catalog,
// or 0 if uninitialized.
func (c *Classifier) QueryCount() int {
	cat := c.catalog.Load()
	if cat == nil {
		return 0
	}
	return len(cat.rules)
}

// Load reads and compiles the CSV catalog at path, then atomically
// publishes it. Load is also used for reload: Ready -> Initializing ->
// Ready from a caller's point of view, since the old snapshot remains
// visible to concurrent Classify calls until the new one is stored.
func (c *Classifier) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open rule catalog: %w", err)
	}
	defer f.Close()

	rules, parseErrors := compileCatalog(f, c.log)
	c.log.Info("rule catalog compiled",
		logger.Int("rules", len(rules)),
		logger.Int("parse_errors", parseErrors),
	)

	c.catalog.Store(buildCompiledCatalog(rules))
	return nil
}

// compileCatalog reads CSV rows from r and compiles every row whose Query
// parses successfully. Rows with an empty first column are skipped
// silently; rows that fail to parse are logged and excluded.
func compileCatalog(r io.Reader, log logger.Logger) (rules []domain.BrandRule, parseErrors int) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = false

	header, err := reader.Read()
	if err != nil {
		log.Error("read catalog header", logger.Error(err))
		return nil, 0
	}
	col := columnIndex(header)

	for rowNum := 1; ; rowNum++ {
		row, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			log.Error("read catalog row", logger.Int("row", rowNum), logger.Error(readErr))
			parseErrors++
			continue
		}

		topic := fieldAt(row, col["Topic"])
		if topic == "" {
			continue
		}

		queryText := fieldAt(row, col["Query"])
		ast, parseErr := query.Parse(queryText)
		if parseErr != nil {
			log.Warn("skipping rule with unparseable query",
				logger.Int("row", rowNum),
				logger.String("query", queryText),
				logger.Error(parseErr),
			)
			parseErrors++
			continue
		}

		literals, safe := query.RequiredLiterals(ast)
		rules = append(rules, domain.BrandRule{
			Topic:             topic,
			SubTopic:          fieldAt(row, col["Sub topic"]),
			QueryName:         fieldAt(row, col["Query name"]),
			InternalID:        fieldAt(row, col["Internal ID"]),
			OriginalQueryText: queryText,
			AST:               ast,
			RequiredLiterals:  literals,
			LiteralsSafe:      safe,
		})
	}
	return rules, parseErrors
}

func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(wantColumns))
	for i, h := range header {
		idx[h] = i
	}
	return idx
}

func fieldAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
