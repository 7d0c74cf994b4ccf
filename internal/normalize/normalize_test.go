package normalize_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/jonesrussell/brandquery/internal/normalize"
)

func TestNormalize_DiacriticFoldingAndCase(t *testing.T) {
	got := normalize.Normalize("I love Café culture")
	want := "i love cafe culture"
	if got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalize_PunctuationFoldsToSpace(t *testing.T) {
	got := normalize.Normalize("Orthopedic-surgery update!!!")
	want := "orthopedic surgery update"
	if got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

func TestTokenize_HashtagAndMentionPreserved(t *testing.T) {
	got := normalize.Tokenize("#stryker trauma @BrandCo team")
	want := []string{"#stryker", "trauma", "@brandco", "team"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenize_BareSigilDiscarded(t *testing.T) {
	got := normalize.Tokenize("look @ this # that")
	want := []string{"look", "this", "that"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenize_TrailingSigilStripped(t *testing.T) {
	got := normalize.Tokenize("brand@@ launch##")
	want := []string{"brand", "launch"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenize_EmptyInput(t *testing.T) {
	if got := normalize.Tokenize("   "); got != nil {
		t.Errorf("Tokenize() = %v, want nil", got)
	}
}

func TestTokenize_Idempotence(t *testing.T) {
	text := "Café-culture,  with #Stryker AND @BrandCo!"
	first := normalize.Tokenize(text)
	second := normalize.Tokenize(strings.Join(first, " "))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Tokenize not idempotent: %v != %v", first, second)
	}
}
