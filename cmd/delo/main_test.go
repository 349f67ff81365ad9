package main

import (
	"context"
	"errors"
	"testing"

	"deloconnect/internal/api"
	"deloconnect/internal/chat"
)

func TestLoadClientRequiresToken(t *testing.T) {
	t.Setenv("DELO_CONFIG_DIR", t.TempDir())
	t.Setenv("DELO_ACCESS_TOKEN", "")

	_, _, err := loadClient()
	if err == nil {
		t.Fatal("expected an error without a configured token")
	}
	if !errors.Is(err, api.ErrNoToken) {
		t.Errorf("missing token should surface as ErrNoToken so main prints the login hint: %v", err)
	}
}

func TestResolveChatFlagValidation(t *testing.T) {
	r := chat.NewResolver(nil)

	chatEmployee, chatChain = "E1", ""
	defer func() { chatEmployee, chatChain = "", "" }()

	if _, err := resolveChat(context.Background(), r, nil); err == nil {
		t.Fatal("--employee without --chain should be rejected")
	}
}

func TestResolveChatPrefixPassthrough(t *testing.T) {
	chatEmployee, chatChain = "", ""
	r := chat.NewResolver(nil)

	id, err := resolveChat(context.Background(), r, []string{"chat_42"})
	if err != nil {
		t.Fatalf("prefix resolution failed: %v", err)
	}
	if id != "chat_42" {
		t.Fatalf("got %q", id)
	}
}
