package classifier

import "testing"

func newLoadedClassifier(t *testing.T, csv string) *Classifier {
	t.Helper()
	c := New(newTestLogger(t))
	if err := c.Load(writeCatalog(t, csv)); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return c
}

func TestClassify_EmptyTextNotMatched(t *testing.T) {
	c := New(newTestLogger(t))
	if got := c.Classify(""); got.Matched {
		t.Error("Classify(\"\") should not match")
	}
	if got := c.Classify("   "); got.Matched {
		t.Error("Classify whitespace-only should not match")
	}
}

func TestClassify_UninitializedCatalogNotMatched(t *testing.T) {
	c := New(newTestLogger(t))
	if got := c.Classify("brand launch"); got.Matched {
		t.Error("Classify on uninitialized catalog should not match")
	}
}

func TestClassify_FirstMatchOrderWins(t *testing.T) {
	csv := "Topic,Sub topic,Query name,Internal ID,Query\n" +
		"topicA,sub,first,1,brand\n" +
		"topicB,sub,second,2,brand\n"
	c := newLoadedClassifier(t, csv)
	got := c.Classify("our brand launch")
	if !got.Matched || got.Classification == nil {
		t.Fatal("want matched")
	}
	if got.Classification.Topic != "topicA" {
		t.Errorf("Classification.Topic = %q, want topicA (first catalog row)", got.Classification.Topic)
	}
}

func TestClassify_Determinism(t *testing.T) {
	csv := "Topic,Sub topic,Query name,Internal ID,Query\n" +
		"brand,recall,alert,1,brand AND NOT recall\n"
	c := newLoadedClassifier(t, csv)
	first := c.Classify("brand launch today")
	second := c.Classify("brand launch today")
	if first.Matched != second.Matched {
		t.Error("Classify should be deterministic for the same input")
	}
}

func TestClassify_PrefilterSkipsNonMatchingRule(t *testing.T) {
	csv := "Topic,Sub topic,Query name,Internal ID,Query\n" +
		"topicA,sub,needs-zeta,1,zeta\n" +
		"topicB,sub,needs-brand,2,brand\n"
	c := newLoadedClassifier(t, csv)
	got := c.Classify("brand launch today")
	if !got.Matched || got.Classification.Topic != "topicB" {
		t.Errorf("Classify() = %+v, want matched topicB", got)
	}
}

func TestClassify_WildcardRuleAlwaysFullyEvaluated(t *testing.T) {
	csv := "Topic,Sub topic,Query name,Internal ID,Query\n" +
		"topicA,sub,wild,1,stryker*\n"
	c := newLoadedClassifier(t, csv)
	got := c.Classify("StrykerMed announced today")
	if !got.Matched {
		t.Error("want matched via wildcard, which the prefilter cannot skip")
	}
}

func TestClassify_NegationOnlyRuleMatchesVacuously(t *testing.T) {
	csv := "Topic,Sub topic,Query name,Internal ID,Query\n" +
		"topicA,sub,neg-only,1,NOT recall\n"
	c := newLoadedClassifier(t, csv)
	got := c.Classify("brand launch today")
	if !got.Matched {
		t.Error("want matched: negation-only rule with no forbidden hit matches vacuously")
	}
}
