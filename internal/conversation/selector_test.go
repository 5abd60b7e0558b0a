package conversation

import (
	"strings"
	"testing"
)

func TestKeywordTableOrder(t *testing.T) {
	table := NewKeywordTable(DefaultRules()...)
	tests := []struct {
		text string
		rule string
	}{
		{"сколько стоит курс", "price"},
		{"СКОЛЬКО СТОИТ КУРС", "price"},
		{"Какие у вас курсы?", "courses"},
		{"Какая программа по дизайну", "courses"},
		{"когда начинаются занятия", "schedule"},
		{"как поступить", "admission"},
		{"ваш адрес", "contacts"},
		{"нужна ли PVA краска", "materials"},
		{"What is the price?", "price"},
	}
	for _, tt := range tests {
		ans := table.Answer(ModeAsk, tt.text)
		if ans.Rule != tt.rule || ans.Fallback {
			t.Errorf("Answer(%q) rule = %q, want %q", tt.text, ans.Rule, tt.rule)
		}
	}
}

func TestKeywordTableFirstMatchWins(t *testing.T) {
	table := NewKeywordTable(
		Rule{Name: "first", Keywords: []string{"b"}, Answer: "1"},
		Rule{Name: "second", Keywords: []string{"a"}, Answer: "2"},
	)
	if ans := table.Answer(ModeAsk, "a b"); ans.Text != "1" {
		t.Fatalf("answer = %q, want first rule", ans.Text)
	}
}

func TestKeywordTableFallbackEchoes(t *testing.T) {
	table := NewKeywordTable(DefaultRules()...)
	ans := table.Answer(ModeAsk, "Расскажите про выставку")
	if !ans.Fallback || ans.Rule != "" {
		t.Fatalf("expected fallback, got %+v", ans)
	}
	if !strings.Contains(ans.Text, "«Расскажите про выставку»") || !strings.Contains(ans.Text, "не ИИ") {
		t.Fatalf("fallback must echo verbatim and be marked, got %q", ans.Text)
	}
}

func TestKeywordTableDeterministic(t *testing.T) {
	table := NewKeywordTable(DefaultRules()...)
	first := table.Answer(ModeAsk, "оплата картой")
	for i := 0; i < 10; i++ {
		if got := table.Answer(ModeAsk, "ОПЛАТА картой"); got != first {
			t.Fatalf("answer changed: %+v vs %+v", got, first)
		}
	}
}

func TestRandomPool(t *testing.T) {
	pools := map[Mode][]string{ModeFreeChat: {"a", "b", "c"}}
	p := NewRandomPool(&seqSource{next: []int{1, 2, 0, 0}}, pools)
	var got []string
	for i := 0; i < 3; i++ {
		got = append(got, p.Answer(ModeFreeChat, "x").Text)
	}
	if strings.Join(got, "") != "bca" {
		t.Fatalf("answers = %v", got)
	}

	pools[ModeFreeChat][0] = "mutated"
	if ans := p.Answer(ModeFreeChat, "x"); ans.Text == "mutated" {
		t.Fatal("pool must not alias the caller's slice")
	}
	if ans := NewRandomPool(&seqSource{next: []int{0}}, DefaultPools()).Answer(ModeIdle, "hi"); !ans.Fallback {
		t.Fatalf("mode without pool must fall back, got %+v", ans)
	}
}

func TestPCGSourceSeeded(t *testing.T) {
	a, b := NewPCGSource(42), NewPCGSource(42)
	for i := 0; i < 20; i++ {
		x, y := a.IntN(1000), b.IntN(1000)
		if x != y {
			t.Fatalf("same seed diverged at %d: %d vs %d", i, x, y)
		}
		if x < 0 || x >= 1000 {
			t.Fatalf("out of range: %d", x)
		}
	}
}
