package panel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckfort/paneldeck/pkg/hid"
	"github.com/deckfort/paneldeck/pkg/variant"
)

// patternBytes returns n bytes of a non-repeating-ish pattern so chunk
// boundaries are visible in assertions.
func patternBytes(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i*7 + 3)
	}
	return data
}

func sendKeyImage(t *testing.T, kind variant.Kind, key uint8, data []byte) *hid.MockDevice {
	t.Helper()
	dev := hid.NewMockDevice()
	p := New(dev, kind)
	require.NoError(t, p.WriteImage(key, data))
	require.NoError(t, p.Flush())
	return dev
}

func TestModernImageChunking(t *testing.T) {
	// 1016 payload bytes fit per 1024-byte report after the 8-byte header.
	data := patternBytes(2500)
	dev := sendKeyImage(t, variant.XL, 5, data)

	writes := dev.Writes()
	require.Len(t, writes, 3)

	var got []byte
	for i, w := range writes {
		require.Len(t, w, 1024)
		assert.Equal(t, byte(0x02), w[0])
		assert.Equal(t, byte(0x07), w[1])
		assert.Equal(t, byte(5), w[2])

		thisLen := int(w[4]) | int(w[5])<<8
		page := int(w[6]) | int(w[7])<<8
		assert.Equal(t, i, page)

		last := w[3]
		if i == len(writes)-1 {
			assert.Equal(t, byte(1), last)
			assert.Equal(t, 2500-2*1016, thisLen)
		} else {
			assert.Equal(t, byte(0), last)
			assert.Equal(t, 1016, thisLen)
		}

		got = append(got, w[8:8+thisLen]...)

		// Padding past the payload is zero.
		assert.True(t, bytes.Equal(w[8+thisLen:], make([]byte, 1024-8-thisLen)))
	}

	assert.Equal(t, data, got)
}

func TestModernSingleReport(t *testing.T) {
	data := patternBytes(300)
	dev := sendKeyImage(t, variant.OriginalV2, 14, data)

	writes := dev.Writes()
	require.Len(t, writes, 1)
	w := writes[0]
	assert.Equal(t, []byte{0x02, 0x07, 14, 1, byte(300 & 0xff), byte(300 >> 8), 0, 0}, w[:8])
	assert.Equal(t, data, w[8:8+300])
}

func TestLegacySmallChunking(t *testing.T) {
	// Mini: 1024-byte reports, 16-byte header, zero-based page, one-based key.
	data := patternBytes(2100)
	dev := sendKeyImage(t, variant.Mini, 3, data)

	writes := dev.Writes()
	require.Len(t, writes, 3)

	for i, w := range writes {
		require.Len(t, w, 1024)
		assert.Equal(t, byte(0x02), w[0])
		assert.Equal(t, byte(0x01), w[1])
		assert.Equal(t, byte(i), w[2], "page counter is zero-based")
		assert.Equal(t, byte(4), w[5], "key is one-based on the wire")

		if i == len(writes)-1 {
			assert.Equal(t, byte(1), w[4])
		} else {
			assert.Equal(t, byte(0), w[4])
		}
	}
}

func TestOriginalExactlyTwoChunks(t *testing.T) {
	// The first-generation firmware wants the image split in half across two
	// 8191-byte reports regardless of how much would fit.
	data := patternBytes(5000)
	dev := sendKeyImage(t, variant.Original, 0, data)

	writes := dev.Writes()
	require.Len(t, writes, 2)

	for i, w := range writes {
		require.Len(t, w, 8191)
		assert.Equal(t, byte(0x02), w[0])
		assert.Equal(t, byte(0x01), w[1])
		assert.Equal(t, byte(i+1), w[2], "page counter is one-based")
		// Key 0 lands on wire key 5: mirrored to column 4, then one-based.
		assert.Equal(t, byte(5), w[5])
	}

	assert.Equal(t, byte(0), writes[0][4])
	assert.Equal(t, byte(1), writes[1][4])

	got := append([]byte(nil), writes[0][16:16+2500]...)
	got = append(got, writes[1][16:16+2500]...)
	assert.Equal(t, data, got)
}

func TestFlipKeyIndex(t *testing.T) {
	// 5-column grid: each row mirrors in place.
	cases := []struct{ in, out uint8 }{
		{0, 4}, {1, 3}, {2, 2}, {3, 1}, {4, 0},
		{5, 9}, {7, 7}, {9, 5},
		{10, 14}, {14, 10},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.out, flipKeyIndex(variant.Original, tc.in))
		// The mirror is its own inverse.
		assert.Equal(t, tc.in, flipKeyIndex(variant.Original, tc.out))
	}
}

func TestWriteImageInvalidKeyNoIO(t *testing.T) {
	dev := hid.NewMockDevice()
	p := New(dev, variant.XL)

	err := p.WriteImage(32, patternBytes(10))
	assert.ErrorIs(t, err, ErrInvalidKeyIndex)
	assert.NoError(t, p.Flush())
	assert.Empty(t, dev.Writes())
}

func TestWriteImageNoScreen(t *testing.T) {
	dev := hid.NewMockDevice()
	p := New(dev, variant.Pedal)

	err := p.WriteImage(0, patternBytes(10))
	assert.ErrorIs(t, err, ErrNoScreen)
	assert.Empty(t, dev.Writes())
}

func TestWriteImageEmptyPayload(t *testing.T) {
	dev := hid.NewMockDevice()
	p := New(dev, variant.XL)

	require.NoError(t, p.WriteImage(0, nil))
	require.NoError(t, p.Flush())
	assert.Empty(t, dev.Writes())
}

func TestWriteLCDRegion(t *testing.T) {
	dev := hid.NewMockDevice()
	p := New(dev, variant.Plus)

	data := patternBytes(500)
	require.NoError(t, p.WriteLCD(10, 20, &ImageRect{W: 100, H: 50, Data: data}))

	writes := dev.Writes()
	require.Len(t, writes, 1)
	w := writes[0]
	require.Len(t, w, 1024)

	want := []byte{
		0x02, 0x0c,
		10, 0, // x
		20, 0, // y
		100, 0, // w
		50, 0, // h
		1,    // last
		0, 0, // page
		byte(500 & 0xff), byte(500 >> 8),
		0,
	}
	assert.Equal(t, want, w[:16])
	assert.Equal(t, data, w[16:16+500])
}

func TestWriteLCDUnsupported(t *testing.T) {
	dev := hid.NewMockDevice()
	p := New(dev, variant.XL)

	err := p.WriteLCD(0, 0, &ImageRect{W: 10, H: 10, Data: patternBytes(10)})
	assert.ErrorIs(t, err, ErrUnsupportedOperation)
	assert.Empty(t, dev.Writes())

	err = New(hid.NewMockDevice(), variant.Mini).WriteLCDFill(patternBytes(10))
	assert.ErrorIs(t, err, ErrUnsupportedOperation)
}

func TestWriteLCDFillNeo(t *testing.T) {
	dev := hid.NewMockDevice()
	p := New(dev, variant.Neo)

	data := patternBytes(1500)
	require.NoError(t, p.WriteLCDFill(data))

	writes := dev.Writes()
	require.Len(t, writes, 2)

	first, second := writes[0], writes[1]
	assert.Equal(t, []byte{0x02, 0x0b, 0, 0, byte(1016 & 0xff), byte(1016 >> 8), 0, 0}, first[:8])

	rest := 1500 - 1016
	assert.Equal(t, []byte{0x02, 0x0b, 0, 1, byte(rest), byte(rest >> 8), 1, 0}, second[:8])

	got := append([]byte(nil), first[8:8+1016]...)
	got = append(got, second[8:8+rest]...)
	assert.Equal(t, data, got)
}

func TestWriteLCDFillPlusCoversStrip(t *testing.T) {
	dev := hid.NewMockDevice()
	p := New(dev, variant.Plus)

	require.NoError(t, p.WriteLCDFill(patternBytes(100)))

	writes := dev.Writes()
	require.Len(t, writes, 1)
	w := writes[0]

	// A fill on this model is a region write spanning the whole strip.
	assert.Equal(t, byte(0x0c), w[1])
	assert.Equal(t, uint16(800), uint16(w[6])|uint16(w[7])<<8)
	assert.Equal(t, uint16(100), uint16(w[8])|uint16(w[9])<<8)
}
