package validate

import "testing"

func TestUsername(t *testing.T) {
	valid := []string{"abc", "user_1", "long-name-is-fine", "a2c"}
	for _, v := range valid {
		if err := Username(v); err != nil {
			t.Fatalf("Username(%q): unexpected error %v", v, err)
		}
	}
	invalid := []string{"", "ab", "UPPER", "has space", "dot.name", "0123456789012345678901234567890"}
	for _, v := range invalid {
		if err := Username(v); err == nil {
			t.Fatalf("Username(%q): expected error", v)
		}
	}
}

func TestPassword(t *testing.T) {
	if err := Password("eight-ok"); err != nil {
		t.Fatalf("valid password: %v", err)
	}
	if err := Password("short"); err == nil {
		t.Fatal("short password should fail")
	}
}

func TestMaxLen(t *testing.T) {
	long := make([]byte, 21)
	for i := range long {
		long[i] = 'x'
	}
	s := string(long)
	if err := MaxLen("field", &s, 20); err == nil {
		t.Fatal("over-limit value should fail")
	}
	if err := MaxLen("field", nil, 20); err != nil {
		t.Fatalf("nil value should pass: %v", err)
	}
}

func TestDraftMessage(t *testing.T) {
	if err := DraftMessage("user-1", "hello", nil); err != nil {
		t.Fatalf("valid draft: %v", err)
	}
	if err := DraftMessage("", "hello", nil); err == nil {
		t.Fatal("missing recipient should fail")
	}
	if err := DraftMessage("user-1", "", nil); err == nil {
		t.Fatal("empty text should fail")
	}
}
