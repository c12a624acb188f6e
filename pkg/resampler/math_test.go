package resampler

import "testing"

func TestClampToByteSaturates(t *testing.T) {
	cases := []struct {
		in   float32
		want byte
	}{
		{-10, 0},
		{0, 0},
		{127.6, 128},
		{255, 255},
		{300, 255},
	}
	for _, c := range cases {
		if got := clampToByte(c.in); got != c.want {
			t.Errorf("clampToByte(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestClampFloat(t *testing.T) {
	if got := clampFloat(-1, 0, 1); got != 0 {
		t.Errorf("clampFloat(-1,0,1) = %v, want 0", got)
	}
	if got := clampFloat(2, 0, 1); got != 1 {
		t.Errorf("clampFloat(2,0,1) = %v, want 1", got)
	}
	if got := clampFloat(0.5, 0, 1); got != 0.5 {
		t.Errorf("clampFloat(0.5,0,1) = %v, want 0.5", got)
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, n := range []int{1, 2, 4, 16, 1024} {
		if !isPowerOfTwo(n) {
			t.Errorf("isPowerOfTwo(%d) = false, want true", n)
		}
	}
	for _, n := range []int{0, -2, 3, 6, 100} {
		if isPowerOfTwo(n) {
			t.Errorf("isPowerOfTwo(%d) = true, want false", n)
		}
	}
}

func TestLog2Int(t *testing.T) {
	cases := map[int]int{1: 0, 2: 1, 4: 2, 16: 4, 1024: 10}
	for n, want := range cases {
		if got := log2Int(n); got != want {
			t.Errorf("log2Int(%d) = %d, want %d", n, got, want)
		}
	}
}
