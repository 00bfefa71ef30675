package tokens

import "testing"

func TestCountEmpty(t *testing.T) {
	c := NewCounter()
	n, err := c.Count("")
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Count(\"\") = %d, want 0", n)
	}
}

func TestCountText(t *testing.T) {
	c := NewCounter()
	n, err := c.Count("The quick brown fox jumps over the lazy dog.")
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n == 0 {
		t.Error("expected nonzero token count")
	}
}

func TestCountMonotonic(t *testing.T) {
	c := NewCounter()
	short, err := c.Count("hello world")
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	long, err := c.Count("hello world hello world hello world hello world")
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if long <= short {
		t.Errorf("longer text counted %d tokens, shorter %d", long, short)
	}
}
