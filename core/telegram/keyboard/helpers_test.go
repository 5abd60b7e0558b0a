package keyboard

import "testing"

func TestInlineButtonsRows(t *testing.T) {
	markup := InlineButtonsRows(
		[]InlineBtn{{Text: "Ask", Unique: "ask"}},
		nil,
		[]InlineBtn{{Text: "About", Unique: "about"}, {Text: "Reset", Unique: "reset"}},
	)
	if got := len(markup.InlineKeyboard); got != 2 {
		t.Fatalf("rows = %d, want 2", got)
	}
	if got := len(markup.InlineKeyboard[1]); got != 2 {
		t.Fatalf("second row = %d buttons, want 2", got)
	}
	first := markup.InlineKeyboard[0][0]
	if first.Text != "Ask" || first.Unique != "ask" {
		t.Fatalf("unexpected first button: %+v", first)
	}
}
