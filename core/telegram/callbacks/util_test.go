package callbacks

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestParseCallbackData(t *testing.T) {
	tests := []struct {
		name        string
		cb          *tele.Callback
		key, payload string
	}{
		{"nil", nil, "", ""},
		{"resolved unique", &tele.Callback{Unique: "ask", Data: "x"}, "ask", "x"},
		{"encoded", &tele.Callback{Data: "\fprograms|page2"}, "programs", "page2"},
		{"encoded without payload", &tele.Callback{Data: "\freset"}, "reset", ""},
		{"plain data", &tele.Callback{Data: "about"}, "about", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, payload := ParseCallbackData(tt.cb)
			if key != tt.key || payload != tt.payload {
				t.Fatalf("got (%q, %q), want (%q, %q)", key, payload, tt.key, tt.payload)
			}
		})
	}
}
