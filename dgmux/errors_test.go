package dgmux_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"squire/dgmux"
)

func TestErrorClasses(t *testing.T) {
	// case: argument errors belong to the user-input class
	func() {
		badArg := &dgmux.BadArgumentError{Param: "date", Message: "can't parse date"}
		if !errors.Is(badArg, dgmux.ErrUserInput) {
			t.Error("bad argument should be a user input error")
		}
		if errors.Is(badArg, dgmux.ErrCheckFailure) {
			t.Error("bad argument should not be a check failure")
		}
		missing := &dgmux.MissingRequiredArgumentError{Param: "name"}
		if !errors.Is(missing, dgmux.ErrUserInput) {
			t.Error("missing argument should be a user input error")
		}
	}()

	// case: check errors belong to the check-failure class
	func() {
		if !errors.Is(dgmux.ErrNoPrivateMessage, dgmux.ErrCheckFailure) {
			t.Error("no-private-message should be a check failure")
		}
		if !errors.Is(dgmux.ErrNoPrivateMessage, dgmux.ErrNoPrivateMessage) {
			t.Error("no-private-message should match itself")
		}
		userPerms := &dgmux.MissingPermissionsError{Missing: []string{"manage_messages"}}
		if !errors.Is(userPerms, dgmux.ErrCheckFailure) {
			t.Error("missing permissions should be a check failure")
		}
		botPerms := &dgmux.BotMissingPermissionsError{Missing: []string{"embed_links"}}
		if !errors.Is(botPerms, dgmux.ErrCheckFailure) {
			t.Error("bot missing permissions should be a check failure")
		}
		if errors.Is(userPerms, dgmux.ErrUserInput) {
			t.Error("missing permissions should not be a user input error")
		}
	}()

	// case: invoke errors unwrap to the original
	func() {
		cause := errors.New("boom")
		invokeErr := &dgmux.CommandInvokeError{Err: cause}
		if !errors.Is(invokeErr, cause) {
			t.Error("invoke error should unwrap to its cause")
		}
	}()
}

func TestIsCommandError(t *testing.T) {
	taxonomy := []error{
		&dgmux.CommandNotFoundError{Name: "nope"},
		&dgmux.BadArgumentError{Message: "bad"},
		&dgmux.MissingRequiredArgumentError{Param: "name"},
		&dgmux.MissingPermissionsError{Missing: []string{"ban_members"}},
		&dgmux.BotMissingPermissionsError{Missing: []string{"send_messages"}},
		&dgmux.CommandOnCooldownError{RetryAfter: time.Second},
		&dgmux.CommandInvokeError{Err: errors.New("boom")},
		dgmux.ErrNoPrivateMessage,
		dgmux.ErrDisabledCommand,
	}
	for _, err := range taxonomy {
		if !dgmux.IsCommandError(err) {
			t.Error("expected taxonomy member", err)
		}
	}

	// wrapped members still count
	if !dgmux.IsCommandError(fmt.Errorf("outer: %w", &dgmux.BadArgumentError{Message: "bad"})) {
		t.Error("wrapped taxonomy member should count")
	}

	// arbitrary errors do not
	if dgmux.IsCommandError(errors.New("boom")) {
		t.Error("plain error should not count")
	}
	if dgmux.IsCommandError(fmt.Errorf("outer: %w", errors.New("boom"))) {
		t.Error("wrapped plain error should not count")
	}
}

func TestErrorMessages(t *testing.T) {
	if got := (&dgmux.CommandNotFoundError{Name: "frob"}).Error(); !strings.Contains(got, `"frob"`) {
		t.Error("not-found message should carry the name", got)
	}
	if got := (&dgmux.BadArgumentError{Param: "date", Message: "can't parse"}).Error(); !strings.Contains(got, "date") {
		t.Error("bad-argument message should carry the parameter", got)
	}
	if got := (&dgmux.MissingPermissionsError{Missing: []string{"kick_members", "ban_members"}}).Error(); !strings.Contains(got, "kick_members, ban_members") {
		t.Error("missing-permissions message should list permissions", got)
	}
	if got := (&dgmux.CommandOnCooldownError{RetryAfter: 1500 * time.Millisecond}).Error(); !strings.Contains(got, "1.50s") {
		t.Error("cooldown message should carry the retry-after", got)
	}
}

func TestPermissionNames(t *testing.T) {
	names := dgmux.PermissionNames(0x2000 | 0x4000) // manage messages | embed links
	if len(names) != 2 || names[0] != "manage_messages" || names[1] != "embed_links" {
		t.Error("unexpected permission names", names)
	}
	if len(dgmux.PermissionNames(0)) != 0 {
		t.Error("zero mask should expand to nothing")
	}
}
