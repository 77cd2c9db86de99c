package variant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckfort/paneldeck/pkg/variant"
)

func TestLookupKnownProducts(t *testing.T) {
	cases := []struct {
		pid  uint16
		kind variant.Kind
	}{
		{0x0060, variant.Original},
		{0x006d, variant.OriginalV2},
		{0x0063, variant.Mini},
		{0x0090, variant.MiniMk2},
		{0x00b8, variant.MiniMk2Module},
		{0x0080, variant.MK2},
		{0x00a5, variant.MK2Scissor},
		{0x006c, variant.XL},
		{0x008f, variant.XLV2},
		{0x0084, variant.Plus},
		{0x0086, variant.Pedal},
		{0x009a, variant.Neo},
	}

	for _, tc := range cases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			kind, ok := variant.Lookup(variant.VendorID, tc.pid)
			require.True(t, ok)
			assert.Equal(t, tc.kind, kind)
			assert.Equal(t, tc.pid, kind.ProductID())
		})
	}

	assert.Len(t, cases, len(variant.Kinds()))
}

func TestLookupRejectsUnknown(t *testing.T) {
	_, ok := variant.Lookup(variant.VendorID, 0xffff)
	assert.False(t, ok)

	_, ok = variant.Lookup(variant.VendorID, 0x0000)
	assert.False(t, ok)

	// Right product id, wrong vendor.
	_, ok = variant.Lookup(0x1234, 0x0060)
	assert.False(t, ok)
}

func TestNoProductIDAliasing(t *testing.T) {
	seen := make(map[uint16]variant.Kind)
	for _, k := range variant.Kinds() {
		prev, dup := seen[k.ProductID()]
		require.Falsef(t, dup, "%s and %s share product id %04x", prev, k, k.ProductID())
		seen[k.ProductID()] = k
	}
}

func TestGeometry(t *testing.T) {
	cases := []struct {
		kind                 variant.Kind
		keys, rows, cols     uint8
		encoders, touch      uint8
		visual               bool
	}{
		{variant.Original, 15, 3, 5, 0, 0, true},
		{variant.OriginalV2, 15, 3, 5, 0, 0, true},
		{variant.Mini, 6, 2, 3, 0, 0, true},
		{variant.MK2, 15, 3, 5, 0, 0, true},
		{variant.XL, 32, 4, 8, 0, 0, true},
		{variant.Plus, 8, 2, 4, 4, 0, true},
		{variant.Pedal, 3, 1, 3, 0, 0, false},
		{variant.Neo, 8, 2, 4, 0, 2, true},
	}

	for _, tc := range cases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			assert.Equal(t, tc.keys, tc.kind.KeyCount())
			assert.Equal(t, tc.rows, tc.kind.RowCount())
			assert.Equal(t, tc.cols, tc.kind.ColumnCount())
			assert.Equal(t, tc.keys, tc.kind.RowCount()*tc.kind.ColumnCount())
			assert.Equal(t, tc.encoders, tc.kind.EncoderCount())
			assert.Equal(t, tc.touch, tc.kind.TouchpointCount())
			assert.Equal(t, tc.visual, tc.kind.IsVisual())
		})
	}
}

func TestImageReportGeometry(t *testing.T) {
	assert.Equal(t, 8191, variant.Original.ImageReportLength())
	assert.Equal(t, 16, variant.Original.ImageReportHeaderLength())
	assert.True(t, variant.Original.LegacyImageReports())
	assert.True(t, variant.Original.LegacyControls())

	assert.Equal(t, 1024, variant.Mini.ImageReportLength())
	assert.Equal(t, 16, variant.Mini.ImageReportHeaderLength())
	assert.True(t, variant.Mini.LegacyImageReports())

	for _, k := range []variant.Kind{variant.OriginalV2, variant.MK2, variant.XL, variant.Plus, variant.Neo} {
		assert.Equal(t, 1024, k.ImageReportLength(), k.String())
		assert.Equal(t, 8, k.ImageReportHeaderLength(), k.String())
		assert.False(t, k.LegacyImageReports(), k.String())
		assert.False(t, k.LegacyControls(), k.String())
	}
}

func TestKeyImageFormats(t *testing.T) {
	orig := variant.Original.KeyImageFormat()
	assert.Equal(t, variant.ModeBMP, orig.Mode)
	assert.Equal(t, 72, orig.Width)
	assert.True(t, orig.MirrorX)
	assert.True(t, orig.MirrorY)

	mini := variant.Mini.KeyImageFormat()
	assert.Equal(t, variant.ModeBMP, mini.Mode)
	assert.Equal(t, 90, mini.Rotation)
	assert.False(t, mini.MirrorX)

	plus := variant.Plus.KeyImageFormat()
	assert.Equal(t, variant.ModeJPEG, plus.Mode)
	assert.Equal(t, 120, plus.Width)
	assert.False(t, plus.MirrorX)

	pedal := variant.Pedal.KeyImageFormat()
	assert.Equal(t, variant.ModeNone, pedal.Mode)
}

func TestLCDStripSize(t *testing.T) {
	w, h, ok := variant.Plus.LCDStripSize()
	require.True(t, ok)
	assert.Equal(t, 800, w)
	assert.Equal(t, 100, h)

	w, h, ok = variant.Neo.LCDStripSize()
	require.True(t, ok)
	assert.Equal(t, 248, w)
	assert.Equal(t, 58, h)

	_, _, ok = variant.XL.LCDStripSize()
	assert.False(t, ok)
}

func TestFeatureTextLayouts(t *testing.T) {
	assert.Equal(t, variant.FeatureText{ID: 0x03, Length: 17, Skip: 5}, variant.Original.SerialText())
	assert.Equal(t, variant.FeatureText{ID: 0x04, Length: 17, Skip: 5}, variant.Original.FirmwareText())

	assert.Equal(t, variant.FeatureText{ID: 0x06, Length: 32, Skip: 2}, variant.XL.SerialText())
	assert.Equal(t, variant.FeatureText{ID: 0x05, Length: 32, Skip: 6}, variant.XL.FirmwareText())

	// The Mini Mk2 module reports firmware through a vendor page.
	assert.Equal(t, variant.FeatureText{ID: 0xA1, Length: 17, Skip: 5}, variant.MiniMk2Module.FirmwareText())
}
