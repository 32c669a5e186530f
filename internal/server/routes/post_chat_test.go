package routes

import (
	"testing"

	"github.com/inquesta/casefile/internal/db"
)

func TestBuildChatTurnAppendsPromptAfterHistory(t *testing.T) {
	history := []db.Message{
		{Role: "user", Content: "Who was at the warehouse?"},
		{Role: "assistant", Content: "Michael Chen was seen there on Tuesday."},
	}

	chat := buildChatTurn(history, "Analyze the latest statement.")

	if len(chat) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(chat))
	}
	for i, m := range history {
		if chat[i].Role != m.Role || chat[i].Message != m.Content {
			t.Fatalf("history message %d not preserved: %+v", i, chat[i])
		}
	}
	last := chat[len(chat)-1]
	if last.Role != "user" {
		t.Fatalf("expected final message role user, got %q", last.Role)
	}
	if last.Message != "Analyze the latest statement." {
		t.Fatalf("unexpected final message %q", last.Message)
	}
}

func TestBuildChatTurnEmptyHistory(t *testing.T) {
	chat := buildChatTurn(nil, "First question.")

	if len(chat) != 1 {
		t.Fatalf("expected 1 message, got %d", len(chat))
	}
	if chat[0].Role != "user" || chat[0].Message != "First question." {
		t.Fatalf("unexpected message %+v", chat[0])
	}
}
