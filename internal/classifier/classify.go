package classifier

import (
	"strings"
	"time"

	"github.com/jonesrussell/brandquery/internal/domain"
	"github.com/jonesrussell/brandquery/internal/logger"
	"github.com/jonesrussell/brandquery/internal/normalize"
	"github.com/jonesrussell/brandquery/internal/query"
	"github.com/jonesrussell/brandquery/internal/telemetry"
)

// Classify evaluates text against the current catalog snapshot in order
// and returns the first match, projected to its classification fields.
// Empty/whitespace text or an uninitialized catalog returns not-matched.
func (c *Classifier) Classify(text string) domain.ClassificationResult {
	return c.ClassifyWithTelemetry(text, nil, "")
}

// ClassifyWithTelemetry is Classify plus Prometheus instrumentation; tel
// may be nil, in which case no metrics are recorded.
func (c *Classifier) ClassifyWithTelemetry(text string, tel *telemetry.Provider, platform string) domain.ClassificationResult {
	start := time.Now()

	if strings.TrimSpace(text) == "" {
		return domain.ClassificationResult{Matched: false}
	}

	cat := c.catalog.Load()
	if cat == nil {
		return domain.ClassificationResult{Matched: false}
	}

	T := normalize.Tokenize(text)
	present := cat.prefilter.presentLiterals(T)

	evaluated, matchedCount, skipped := 0, 0, 0
	var result domain.ClassificationResult
	topic := ""

	for _, rule := range cat.rules {
		if !cat.prefilter.mayMatch(rule, present) {
			skipped++
			continue
		}
		evaluated++
		if c.evaluateRule(rule, T) {
			matchedCount++
			topic = rule.Topic
			result = domain.ClassificationResult{
				Matched: true,
				Classification: &domain.Classification{
					Topic:      rule.Topic,
					SubTopic:   rule.SubTopic,
					QueryName:  rule.QueryName,
					InternalID: rule.InternalID,
				},
			}
			break
		}
	}

	if tel != nil {
		tel.RecordClassify(platform, result.Matched, topic, time.Since(start))
		tel.RecordRuleMatch(time.Since(start), evaluated, matchedCount, skipped)
	}
	if !result.Matched {
		return domain.ClassificationResult{Matched: false}
	}
	return result
}

// evaluateRule runs the AST evaluator over rule against T, recovering
// from any panic in a malformed-but-compiled tree so one bad rule can
// never take down classification of the rest of the catalog.
func (c *Classifier) evaluateRule(rule domain.BrandRule, T []string) (matched bool) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("rule evaluation panicked",
				logger.String("query_name", rule.QueryName),
				logger.Any("recovered", r),
			)
			matched = false
		}
	}()
	return query.Evaluate(rule.AST, T).Matched
}
