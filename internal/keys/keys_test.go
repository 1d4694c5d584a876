package keys

import "testing"

func TestEntityRef(t *testing.T) {
	tests := []struct {
		entityType string
		id         string
		expected   string
	}{
		{"user", "1", "user#1"},
		{"post", "p1", "post#p1"},
		{"comment", "a#b", "comment#a#b"},
		{"user", "", "user#"},
	}

	for _, tt := range tests {
		result := EntityRef(tt.entityType, tt.id)
		if result != tt.expected {
			t.Errorf("EntityRef(%q, %q) = %q, want %q", tt.entityType, tt.id, result, tt.expected)
		}
	}
}

func TestUniqueConstraint_Deterministic(t *testing.T) {
	first := UniqueConstraint("user", "email", "a@x")
	for i := 0; i < 100; i++ {
		result := UniqueConstraint("user", "email", "a@x")
		if result != first {
			t.Errorf("expected deterministic result %q, got %q on iteration %d", first, result, i)
		}
	}
}

func TestUniqueConstraint_Format(t *testing.T) {
	result := UniqueConstraint("user", "email", "a@x")

	// 128-bit hash = 32 hex characters
	if len(result) != 32 {
		t.Errorf("expected 32-character key, got %d: %q", len(result), result)
	}
	for _, c := range result {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			t.Errorf("invalid hex character %q in %q", c, result)
		}
	}
}

func TestUniqueConstraint_DifferentInputs(t *testing.T) {
	base := UniqueConstraint("user", "email", "a@x")

	variants := []struct {
		name       string
		entityType string
		field      string
		value      string
	}{
		{"different type", "admin", "email", "a@x"},
		{"different field", "user", "login", "a@x"},
		{"different value", "user", "email", "b@x"},
		{"different case", "user", "email", "A@x"},
	}

	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			result := UniqueConstraint(v.entityType, v.field, v.value)
			if result == base {
				t.Errorf("expected different key for %s, got same %q", v.name, result)
			}
		})
	}
}
