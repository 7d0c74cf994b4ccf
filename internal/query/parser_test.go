package query

import "testing"

func TestParse_BareTermBecomesNormalizedTerm(t *testing.T) {
	ast, err := Parse("café")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ast.Kind != KindTerm || ast.Value != "cafe" {
		t.Errorf("Parse() = %+v, want TERM(cafe)", ast)
	}
}

func TestParse_WildcardSuffix(t *testing.T) {
	ast, err := Parse("Stryker*")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ast.Kind != KindWildcard || ast.Value != "stryker" {
		t.Errorf("Parse() = %+v, want WILDCARD(stryker)", ast)
	}
}

func TestParse_Phrase(t *testing.T) {
	ast, err := Parse(`"orthopedic surgery"`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ast.Kind != KindPhrase || len(ast.Tokens) != 2 || ast.Tokens[0] != "orthopedic" || ast.Tokens[1] != "surgery" {
		t.Errorf("Parse() = %+v, want PHRASE([orthopedic surgery])", ast)
	}
}

func TestParse_PhraseWithSingleQuotes(t *testing.T) {
	ast, err := Parse(`'brand recall'`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ast.Kind != KindPhrase || len(ast.Tokens) != 2 {
		t.Errorf("Parse() = %+v, want a 2-token PHRASE", ast)
	}
}

func TestParse_UnterminatedPhraseIsError(t *testing.T) {
	if _, err := Parse(`"unterminated`); err == nil {
		t.Error("Parse() error = nil, want unterminated phrase error")
	}
}

func TestParse_PhraseThenOperatorNoWhitespace(t *testing.T) {
	ast, err := Parse(`"foo"OR bar`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ast.Kind != KindOr {
		t.Errorf("Parse() = %+v, want OR root", ast)
	}
}

func TestParse_NearDefaultDistance(t *testing.T) {
	ast, err := Parse("alpha NEAR beta")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ast.Kind != KindNear || ast.Distance != 9 {
		t.Errorf("Parse() = %+v, want NEAR with default distance 9", ast)
	}
}

func TestParse_NearExplicitDistance(t *testing.T) {
	ast, err := Parse("alpha NEAR/3 beta")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ast.Kind != KindNear || ast.Distance != 3 {
		t.Errorf("Parse() = %+v, want NEAR with distance 3", ast)
	}
}

func TestParse_NearWordThenSlashDistance(t *testing.T) {
	ast, err := Parse("alpha NEAR /5 beta")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ast.Kind != KindNear || ast.Distance != 5 {
		t.Errorf("Parse() = %+v, want NEAR with distance 5", ast)
	}
}

func TestParse_ImplicitAndBeforeNot(t *testing.T) {
	ast, err := Parse("brand NOT recall")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ast.Kind != KindAnd || ast.Right.Kind != KindNot {
		t.Errorf("Parse() = %+v, want AND(brand, NOT(recall))", ast)
	}
}

func TestParse_ExplicitAndNot(t *testing.T) {
	ast, err := Parse("brand AND NOT recall")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ast.Kind != KindAnd || ast.Right.Kind != KindNot {
		t.Errorf("Parse() = %+v, want AND(brand, NOT(recall))", ast)
	}
}

func TestParse_NegationOnly(t *testing.T) {
	ast, err := Parse("NOT recall")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ast.Kind != KindNot {
		t.Errorf("Parse() = %+v, want NOT(recall)", ast)
	}
}

func TestParse_Precedence_OrLooserThanAnd(t *testing.T) {
	ast, err := Parse("a OR b AND c")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ast.Kind != KindOr {
		t.Fatalf("Parse() root = %+v, want OR", ast)
	}
	if ast.Right.Kind != KindAnd {
		t.Errorf("Parse() right = %+v, want AND(b, c)", ast.Right)
	}
}

func TestParse_Parentheses(t *testing.T) {
	ast, err := Parse("(a OR b) AND c")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ast.Kind != KindAnd || ast.Left.Kind != KindOr {
		t.Errorf("Parse() = %+v, want AND(OR(a,b), c)", ast)
	}
}

func TestParse_MissingRightOperandIsError(t *testing.T) {
	if _, err := Parse("a AND"); err == nil {
		t.Error("Parse() error = nil, want missing operand error")
	}
}

func TestParse_UnmatchedParenIsError(t *testing.T) {
	if _, err := Parse("(a AND b"); err == nil {
		t.Error("Parse() error = nil, want unmatched paren error")
	}
}

func TestParse_LeftoverTokensIsError(t *testing.T) {
	if _, err := Parse("a) b"); err == nil {
		t.Error("Parse() error = nil, want leftover tokens error")
	}
}

func TestParse_EmptyPhraseProducesEmptyLeaf(t *testing.T) {
	ast, err := Parse(`"!!!"`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ast.Kind != KindPhrase || len(ast.Tokens) != 0 {
		t.Errorf("Parse() = %+v, want empty PHRASE", ast)
	}
}

func TestParse_CaseInsensitiveOperators(t *testing.T) {
	ast, err := Parse("a or b")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ast.Kind != KindOr {
		t.Errorf("Parse() = %+v, want OR", ast)
	}
}
