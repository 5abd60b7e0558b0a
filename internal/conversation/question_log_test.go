package conversation

import (
	"fmt"
	"testing"
	"time"
)

func TestQuestionLogFIFO(t *testing.T) {
	log := NewQuestionLog(0)
	if log.Limit() != DefaultHistoryLimit {
		t.Fatalf("limit = %d, want %d", log.Limit(), DefaultHistoryLimit)
	}
	base := time.Unix(0, 0)
	for i := 0; i < 25; i++ {
		log.Append(1, base.Add(time.Duration(i)*time.Second), fmt.Sprintf("q%d", i))
	}
	log.Append(2, base, "other")

	got := log.Entries(1)
	if len(got) != DefaultHistoryLimit {
		t.Fatalf("len = %d, want %d", len(got), DefaultHistoryLimit)
	}
	if got[0].Text != "q5" || got[len(got)-1].Text != "q24" {
		t.Fatalf("oldest entries must be evicted first, got %s..%s", got[0].Text, got[len(got)-1].Text)
	}
	if log.Len() != DefaultHistoryLimit+1 {
		t.Fatalf("total = %d", log.Len())
	}

	got[0].Text = "changed"
	if log.Entries(1)[0].Text != "q5" {
		t.Fatal("Entries must return a copy")
	}
}
