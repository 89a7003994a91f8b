package dom

import "testing"

func mustFragment(t *testing.T, markup string) *Element {
	t.Helper()
	elements, err := ParseFragment(markup)
	if err != nil {
		t.Fatalf("parse fragment: %v", err)
	}
	if len(elements) != 1 {
		t.Fatalf("expected one top-level element, got %d", len(elements))
	}
	return elements[0]
}

func TestUpsertHiddenInput_InsertsOnce(t *testing.T) {
	form := mustFragment(t, `<form id="contact"></form>`)

	if _, err := UpsertHiddenInput(form, "challenge-token", "TOKEN123"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := UpsertHiddenInput(form, "challenge-token", "TOKEN456"); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	inputs := form.FindByAttr("name", "challenge-token")
	if len(inputs) != 1 {
		t.Fatalf("expected exactly one token input, got %d", len(inputs))
	}
	if value, _ := inputs[0].Attr("value"); value != "TOKEN456" {
		t.Fatalf("expected overwritten value, got %q", value)
	}
	if kind, _ := inputs[0].Attr("type"); kind != "hidden" {
		t.Fatalf("expected hidden input, got type %q", kind)
	}
}

func TestUpsertHiddenInput_ReusesVisibleInputByName(t *testing.T) {
	form := mustFragment(t, `<form><input type="text" name="token" value=""/></form>`)

	if _, err := UpsertHiddenInput(form, "token", "abc"); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	inputs := form.FindByAttr("name", "token")
	if len(inputs) != 1 {
		t.Fatalf("expected one input, got %d", len(inputs))
	}
	if kind, _ := inputs[0].Attr("type"); kind != "hidden" {
		t.Fatalf("expected input converted to hidden, got %q", kind)
	}
}

func TestUpsertHiddenInput_RequiresName(t *testing.T) {
	form := mustFragment(t, `<form></form>`)
	if _, err := UpsertHiddenInput(form, "  ", "v"); err == nil {
		t.Fatal("expected error for blank name")
	}
}

func TestSetInlineMessage_ReplacesNotDuplicates(t *testing.T) {
	container := mustFragment(t, `<div class="challenge-container"></div>`)

	if _, err := SetInlineMessage(container, "challenge-error", "first failure"); err != nil {
		t.Fatalf("set message: %v", err)
	}
	if _, err := SetInlineMessage(container, "challenge-error", "second failure"); err != nil {
		t.Fatalf("set message again: %v", err)
	}

	messages := container.FindByClass("challenge-error")
	if len(messages) != 1 {
		t.Fatalf("expected a single message element, got %d", len(messages))
	}
	if got := messages[0].Text(); got != "second failure" {
		t.Fatalf("expected replaced text, got %q", got)
	}
}

func TestClearInlineMessage(t *testing.T) {
	container := mustFragment(t, `<div></div>`)
	if _, err := SetInlineMessage(container, "challenge-error", "boom"); err != nil {
		t.Fatalf("set message: %v", err)
	}

	ClearInlineMessage(container, "challenge-error")
	if len(container.FindByClass("challenge-error")) != 0 {
		t.Fatal("expected message removed")
	}

	// Clearing twice must not fail.
	ClearInlineMessage(container, "challenge-error")
}
