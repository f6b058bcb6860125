package security

import (
	"regexp"
	"testing"
)

func TestNewNumericCodeShape(t *testing.T) {
	re := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 200; i++ {
		code, err := NewNumericCode(6)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if !re.MatchString(code) {
			t.Fatalf("unexpected code %q", code)
		}
	}
}

func TestNewNumericCodeRejectsBadLength(t *testing.T) {
	if _, err := NewNumericCode(0); err == nil {
		t.Fatal("expected error for zero length")
	}
	if _, err := NewNumericCode(19); err == nil {
		t.Fatal("expected error for oversized length")
	}
}

func TestCodesEqual(t *testing.T) {
	if !CodesEqual("483920", "483920") {
		t.Fatal("expected equal codes to match")
	}
	if CodesEqual("483920", "000000") || CodesEqual("483920", "48392") {
		t.Fatal("expected different codes not to match")
	}
}
