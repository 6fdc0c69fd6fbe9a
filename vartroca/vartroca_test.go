package vartroca

import "testing"

func alwaysAccept() int { return 0 }

func TestSubstituteScenarioS5(t *testing.T) {
	names := []struct {
		Name string
		Kind Kind
	}{
		{"nome", KindVariable},
		{"idade", KindVariable},
	}
	candidates := BuildCandidates(names, "")

	values := map[string]string{"nome": "Alice", "idade": "30"}
	resolve := func(c Candidate, suffix string) string { return values[c.Original] }

	text := "Hi $nome you are $idade!"
	got := Substitute(text, "$", "", 100, 0, candidates, resolve, alwaysAccept)
	want := "Hi Alice you are 30!"
	if got != want {
		t.Fatalf("Substitute = %q, want %q", got, want)
	}
}

func TestSubstituteProbabilityZeroDisables(t *testing.T) {
	names := []struct {
		Name string
		Kind Kind
	}{{"nome", KindVariable}}
	candidates := BuildCandidates(names, "")
	resolve := func(c Candidate, suffix string) string { return "Alice" }

	text := "Hi $nome!"
	got := Substitute(text, "$", "", 0, 0, candidates, resolve, func() int { return 0 })
	if got != text {
		t.Fatalf("Substitute with probability=0 = %q, want unchanged %q", got, text)
	}
}

func TestNormalizeFoldsAccentsAndUnderscore(t *testing.T) {
	if Normalize("MAÇÃ") != "maca" {
		t.Errorf("Normalize(MAÇÃ) = %q", Normalize("MAÇÃ"))
	}
	if Normalize("meu_nome") != Normalize("meu nome") {
		t.Errorf("underscore/space should normalize equally")
	}
}

func TestSpacingSkipsAdjacentMatch(t *testing.T) {
	names := []struct {
		Name string
		Kind Kind
	}{{"x", KindVariable}}
	candidates := BuildCandidates(names, "")
	resolve := func(c Candidate, suffix string) string { return "V" }

	text := "$x$x"
	got := Substitute(text, "$", "", 100, 1, candidates, resolve, alwaysAccept)
	if got != "V$x" {
		t.Fatalf("Substitute with spacing=1 = %q, want %q", got, "V$x")
	}
}
