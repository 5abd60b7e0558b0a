package sender

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	tele "gopkg.in/telebot.v4"
)

func TestDispatcherRunsJobs(t *testing.T) {
	d := NewDispatcher(Options{Workers: 2, QueueSize: 8})
	var runs atomic.Int32
	for i := 0; i < 5; i++ {
		if err := d.Enqueue(context.Background(), "send.text", "sendMessage", func() error {
			runs.Add(1)
			return nil
		}); err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
	}
	d.Close()

	if got := runs.Load(); got != 5 {
		t.Fatalf("runs = %d, want 5", got)
	}
	if got := d.SentCount(); got != 5 {
		t.Fatalf("sent = %d, want 5", got)
	}
	if got := d.ErrorCount(); got != 0 {
		t.Fatalf("errors = %d, want 0", got)
	}
}

func TestDispatcherSingleAttemptByDefault(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1})
	var runs atomic.Int32
	dialErr := &net.OpError{Op: "dial", Err: errors.New("refused")}
	_ = d.Enqueue(context.Background(), "send.text", "sendMessage", func() error {
		runs.Add(1)
		return dialErr
	})
	d.Close()

	if got := runs.Load(); got != 1 {
		t.Fatalf("runs = %d, want exactly one attempt", got)
	}
	if got := d.ErrorCount(); got != 1 {
		t.Fatalf("errors = %d, want 1", got)
	}
}

func TestDispatcherRetriesTransientErrors(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, MaxRetries: 2, RetryBackoff: time.Millisecond})
	var runs atomic.Int32
	_ = d.Enqueue(context.Background(), "send.text", "sendMessage", func() error {
		if runs.Add(1) < 3 {
			return &net.OpError{Op: "dial", Err: errors.New("refused")}
		}
		return nil
	})
	d.Close()

	if got := runs.Load(); got != 3 {
		t.Fatalf("runs = %d, want 3", got)
	}
	if got := d.ErrorCount(); got != 0 {
		t.Fatalf("errors = %d, want 0", got)
	}
}

func TestDispatcherEnqueueAfterClose(t *testing.T) {
	d := NewDispatcher(Options{})
	d.Close()
	d.Close()
	err := d.Enqueue(context.Background(), "send.text", "", func() error { return nil })
	if !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("expected ErrQueueClosed, got %v", err)
	}
}

func TestDispatcherQueueFull(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, QueueSize: 1})
	release := make(chan struct{})
	started := make(chan struct{})
	_ = d.Enqueue(context.Background(), "block", "", func() error {
		close(started)
		<-release
		return nil
	})
	<-started
	_ = d.Enqueue(context.Background(), "queued", "", func() error { return nil })
	err := d.Enqueue(context.Background(), "overflow", "", func() error { return nil })
	close(release)
	d.Close()

	if !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{context.DeadlineExceeded, "timeout"},
		{&net.OpError{Op: "dial", Err: errors.New("refused")}, "dial"},
		{&net.DNSError{Err: "no such host", Name: "api.telegram.org"}, "dns"},
		{&tele.Error{Code: 403, Description: "Forbidden: bot was blocked by the user"}, "http_4xx"},
		{&tele.Error{Code: 502}, "http_5xx"},
		{errors.New("mystery"), "unknown"},
	}
	for _, tt := range tests {
		if got := classifyError(tt.err); got != tt.want {
			t.Errorf("classifyError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestSanitizeErrorMessage(t *testing.T) {
	err := errors.New(`Post "https://api.telegram.org/bot123456:AAH-secret_token/sendMessage": EOF`)
	got := sanitizeErrorMessage(err)
	want := `Post "https://api.telegram.org/bot<redacted>/sendMessage": EOF`
	if got != want {
		t.Fatalf("sanitizeErrorMessage = %q, want %q", got, want)
	}
}
