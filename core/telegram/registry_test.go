package telegram

import (
	"errors"
	"testing"

	"github.com/m3rciful/artbot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func noop(tele.Context) error { return nil }

func TestRegistryCommands(t *testing.T) {
	reg := NewRegistry()
	tests := []struct {
		name    string
		cmd     commands.Command
		wantErr error
	}{
		{"/start", commands.Command{Handler: noop, Description: "start"}, nil},
		{"/help", commands.Command{Handler: noop, Description: "help"}, nil},
		{"/stats", commands.Command{Handler: noop, Description: "stats", AdminOnly: true}, nil},
		{"noslash", commands.Command{Handler: noop, Description: "x"}, ErrInvalidRegistration},
		{"/empty", commands.Command{Handler: noop}, ErrInvalidRegistration},
		{"/start", commands.Command{Handler: noop, Description: "dup"}, ErrDuplicate},
	}
	for _, tt := range tests {
		if err := reg.RegisterCommand(tt.name, tt.cmd); !errors.Is(err, tt.wantErr) {
			t.Errorf("RegisterCommand(%s) err = %v, want %v", tt.name, err, tt.wantErr)
		}
	}

	cmds := reg.Commands()
	if len(cmds) != 3 || cmds["/start"].Description != "start" {
		t.Fatalf("commands = %+v", cmds)
	}
	delete(cmds, "/start")
	if _, ok := reg.Commands()["/start"]; !ok {
		t.Fatal("Commands must return a copy")
	}

	visible := reg.ListCommands(true)
	if len(visible) != 2 || visible[0].Text != "/help" || visible[1].Text != "/start" {
		t.Fatalf("visible commands = %+v", visible)
	}
	if all := reg.ListCommands(false); len(all) != 3 {
		t.Fatalf("all commands = %+v", all)
	}
}

func TestRegistryCallbacks(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterCallback("ask", noop); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.RegisterCallback("ask", noop); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate err = %v", err)
	}
	if err := reg.RegisterCallback("", noop); !errors.Is(err, ErrInvalidRegistration) {
		t.Fatalf("empty key err = %v", err)
	}
	if _, ok := reg.GetCallback("ask"); !ok {
		t.Fatal("callback not found")
	}
	if _, ok := reg.GetCallback("nope"); ok {
		t.Fatal("unexpected callback for unknown key")
	}
	if keys := reg.ListCallbacks(); len(keys) != 1 || keys[0] != "ask" {
		t.Fatalf("ListCallbacks = %v", keys)
	}
}
