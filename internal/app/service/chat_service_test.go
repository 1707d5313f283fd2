package service

import (
	"context"
	"errors"
	"testing"

	"courseapp/internal/common"
)

func TestChatSendStoresExchange(t *testing.T) {
	initTestConfig(t)
	repo := newMemChatRepo()
	svc := NewChatService(repo, &fakeGenerator{reply: "use goroutines"})

	msg, err := svc.Send(context.Background(), "user-1", SendMessageRequest{Prompt: "how do I run tasks concurrently?"})
	if err != nil {
		t.Fatalf("send error: %v", err)
	}
	if msg.Response != "use goroutines" || msg.UserID != "user-1" {
		t.Fatalf("unexpected message: %+v", msg)
	}

	history, err := svc.History(context.Background(), "user-1", "")
	if err != nil {
		t.Fatalf("history error: %v", err)
	}
	if len(history) != 1 || history[0].Prompt != "how do I run tasks concurrently?" {
		t.Fatalf("unexpected history: %+v", history)
	}
}

func TestChatSendProviderFailureNotStored(t *testing.T) {
	initTestConfig(t)
	repo := newMemChatRepo()
	svc := NewChatService(repo, &fakeGenerator{err: errors.New("provider down")})

	if _, err := svc.Send(context.Background(), "user-1", SendMessageRequest{Prompt: "hi"}); err == nil {
		t.Fatal("expected provider failure to surface")
	}
	history, _ := svc.History(context.Background(), "user-1", "")
	if len(history) != 0 {
		t.Fatalf("failed exchange must not be stored, got %d entries", len(history))
	}
}

func TestChatHistoryScopedToVerifiedIdentity(t *testing.T) {
	initTestConfig(t)
	repo := newMemChatRepo()
	svc := NewChatService(repo, &fakeGenerator{})

	if _, err := svc.Send(context.Background(), "user-1", SendMessageRequest{Prompt: "mine"}); err != nil {
		t.Fatalf("send error: %v", err)
	}
	if _, err := svc.Send(context.Background(), "user-2", SendMessageRequest{Prompt: "theirs"}); err != nil {
		t.Fatalf("send error: %v", err)
	}

	// Asking for someone else's history is rejected, not honored.
	_, err := svc.History(context.Background(), "user-1", "user-2")
	if !errors.Is(err, common.ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
	if status := common.HTTPStatusFromError(err); status != 401 {
		t.Fatalf("forbidden maps to %d, want 401", status)
	}

	// Naming your own id is fine.
	history, err := svc.History(context.Background(), "user-1", "user-1")
	if err != nil {
		t.Fatalf("history error: %v", err)
	}
	if len(history) != 1 || history[0].Prompt != "mine" {
		t.Fatalf("unexpected history: %+v", history)
	}
}

func TestChatHistoryNewestFirst(t *testing.T) {
	initTestConfig(t)
	repo := newMemChatRepo()
	svc := NewChatService(repo, &fakeGenerator{})

	for _, p := range []string{"first", "second", "third"} {
		if _, err := svc.Send(context.Background(), "user-1", SendMessageRequest{Prompt: p}); err != nil {
			t.Fatalf("send error: %v", err)
		}
	}

	history, err := svc.History(context.Background(), "user-1", "")
	if err != nil {
		t.Fatalf("history error: %v", err)
	}
	if len(history) != 3 || history[0].Prompt != "third" || history[2].Prompt != "first" {
		t.Fatalf("history not newest-first: %+v", history)
	}
}
