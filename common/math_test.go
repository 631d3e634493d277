package common

import "testing"

func TestSign(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{3.5, 1},
		{-0.01, -1},
		{0, 0},
	}
	for _, c := range cases {
		if got := Sign(c.in); got != c.want {
			t.Fatalf("Sign(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestClampAndLerp(t *testing.T) {
	if got := Clamp(2, -1, 1); got != 1 {
		t.Fatalf("expected 1, got %v", got)
	}
	if got := Clamp(-2, -1, 1); got != -1 {
		t.Fatalf("expected -1, got %v", got)
	}
	if got := Lerp(2, 6, 0.25); got != 3 {
		t.Fatalf("expected 3, got %v", got)
	}
}
