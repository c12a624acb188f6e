package resampler

import "testing"

// The identity matrix must leave every pixel unchanged (spec §8,
// color-matrix-identity no-op).
func TestApplyColorMatrixIdentityIsNoOp(t *testing.T) {
	b := makeTestBitmap(3, 3, 4, func(x, y, c int) byte {
		return byte((x*40 + y*13 + c*7) % 256)
	})
	want := make([]byte, len(b.Pixels))
	copy(want, b.Pixels)

	m := IdentityColorMatrix()
	if err := ApplyColorMatrix(b, &m); err != nil {
		t.Fatal(err)
	}
	for i := range b.Pixels {
		if b.Pixels[i] != want[i] {
			t.Errorf("byte %d = %d, want %d (identity matrix changed pixel)", i, b.Pixels[i], want[i])
		}
	}
}

func TestApplyColorMatrixRejectsBadChannelCount(t *testing.T) {
	b, err := NewBitmap8(2, 2, 4, true)
	if err != nil {
		t.Fatal(err)
	}
	b.Channels = 2 // corrupt for the test; ApplyColorMatrix must still reject it
	m := IdentityColorMatrix()
	if err := ApplyColorMatrix(b, &m); err == nil {
		t.Fatal("want error for unsupported channel count")
	}
}

func TestApplyColorMatrixInvertProducesComplement(t *testing.T) {
	b, err := NewBitmap8(1, 1, 4, true)
	if err != nil {
		t.Fatal(err)
	}
	b.Set(0, 0, 0, 10)
	b.Set(0, 0, 1, 100)
	b.Set(0, 0, 2, 200)
	b.Set(0, 0, 3, 255)

	m := ColorMatrix{
		{-1, 0, 0, 0, 255},
		{0, -1, 0, 0, 255},
		{0, 0, -1, 0, 255},
		{0, 0, 0, 1, 0},
	}
	if err := ApplyColorMatrix(b, &m); err != nil {
		t.Fatal(err)
	}
	if got := b.At(0, 0, 0); got != 245 {
		t.Errorf("inverted channel 0 = %d, want 245", got)
	}
	if got := b.At(0, 0, 1); got != 155 {
		t.Errorf("inverted channel 1 = %d, want 155", got)
	}
	if got := b.At(0, 0, 3); got != 255 {
		t.Errorf("alpha passthrough = %d, want 255 (unaffected by invert)", got)
	}
}

func TestApplyColorMatrixThreeChannelTreatsMissingAlphaAsOpaque(t *testing.T) {
	b, err := NewBitmap8(1, 1, 3, false)
	if err != nil {
		t.Fatal(err)
	}
	b.Set(0, 0, 0, 10)
	b.Set(0, 0, 1, 20)
	b.Set(0, 0, 2, 30)

	// A matrix whose first row just copies the input alpha channel lets us
	// check that a 3-channel source sees alpha as fully opaque (255)
	// without crashing on the missing channel.
	copyAlphaIntoChannelZero := ColorMatrix{
		{0, 0, 0, 1, 0},
		{0, 1, 0, 0, 0},
		{0, 0, 1, 0, 0},
		{0, 0, 0, 0, 0},
	}
	if err := ApplyColorMatrix(b, &copyAlphaIntoChannelZero); err != nil {
		t.Fatal(err)
	}
	if got := b.At(0, 0, 0); got != 255 {
		t.Errorf("channel 0 fed from implicit alpha=255 = %d, want 255", got)
	}
}

func TestApplyColorMatrixClampsOutOfRangeOutput(t *testing.T) {
	b, err := NewBitmap8(1, 1, 4, true)
	if err != nil {
		t.Fatal(err)
	}
	b.Set(0, 0, 0, 200)
	b.Set(0, 0, 3, 255)

	m := ColorMatrix{
		{3, 0, 0, 0, 0}, // 200*3 = 600, must clamp to 255
		{0, 1, 0, 0, 0},
		{0, 0, 1, 0, 0},
		{0, 0, 0, 1, 0},
	}
	if err := ApplyColorMatrix(b, &m); err != nil {
		t.Fatal(err)
	}
	if got := b.At(0, 0, 0); got != 255 {
		t.Errorf("overflowed channel = %d, want clamped to 255", got)
	}
}
