package fields

import "testing"

func TestFirstString_FallbackOrder(t *testing.T) {
	doc := map[string]any{
		"message": "Message queued",
		"data": map[string]any{
			"key": map[string]any{"id": "3EB0ABC"},
		},
	}

	got, ok := FirstString(doc, "messageId", "id", "data.id", "data.messageId", "data.key.id", "message.id")
	if !ok {
		t.Fatalf("expected a hit")
	}
	if got != "3EB0ABC" {
		t.Errorf("expected data.key.id to win, got %q", got)
	}
}

func TestFirstString_SkipsNonScalarCandidates(t *testing.T) {
	doc := map[string]any{
		"id":        map[string]any{"nested": true},
		"messageId": "msg-1",
	}

	got, ok := FirstString(doc, "id", "messageId")
	if !ok || got != "msg-1" {
		t.Errorf("expected msg-1, got %q (ok=%v)", got, ok)
	}
}

func TestLookup_PresenceRules(t *testing.T) {
	doc := map[string]any{
		"empty":  "",
		"zero":   float64(0),
		"off":    false,
		"null":   nil,
		"filled": "x",
	}

	cases := map[string]bool{
		"empty":   false,
		"zero":    true,
		"off":     false,
		"null":    false,
		"filled":  true,
		"missing": false,
	}

	for path, want := range cases {
		if _, ok := Lookup(doc, path); ok != want {
			t.Errorf("Lookup(%q) present=%v, want %v", path, ok, want)
		}
	}
}

func TestStringify_Numbers(t *testing.T) {
	if s, ok := Stringify(float64(1700000000)); !ok || s != "1700000000" {
		t.Errorf("expected integral float to render without exponent, got %q", s)
	}
	if _, ok := Stringify(true); ok {
		t.Errorf("expected booleans to be rejected")
	}
}
