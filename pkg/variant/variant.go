// Package variant is the descriptor table for the supported panel hardware.
// Every per-model fact the protocol needs — key grid, encoder and touch-point
// counts, image formats, report geometry, feature-report layouts — lives in
// this table. Supporting a new model means adding one table row; the encoder
// and decoder never branch on anything but what the table says.
package variant

// VendorID is the USB vendor id shared by all supported panels.
const VendorID uint16 = 0x0fd9

// Kind identifies one supported hardware model.
type Kind int

const (
	Original Kind = iota
	OriginalV2
	Mini
	MiniMk2
	MiniMk2Module
	MK2
	MK2Scissor
	XL
	XLV2
	Plus
	Pedal
	Neo
)

// ImageMode is the pixel encoding a panel expects for uploaded images.
type ImageMode int

const (
	ModeNone ImageMode = iota
	ModeBMP
	ModeJPEG
)

// ImageFormat describes how an image must be encoded before upload. Width and
// height are in pixels; Rotation is degrees clockwise applied before
// mirroring.
type ImageFormat struct {
	Mode             ImageMode
	Width, Height    int
	Rotation         int
	MirrorX, MirrorY bool
}

// FeatureText locates a nul-terminated text field inside a feature report:
// report id, total report length and the number of prefix bytes to skip
// (counted from the report id byte).
type FeatureText struct {
	ID     byte
	Length int
	Skip   int
}

type descriptor struct {
	productID   uint16
	keys        uint8
	rows, cols  uint8
	encoders    uint8
	touchpoints uint8
	visual      bool

	keyFormat ImageFormat

	lcdWidth, lcdHeight int
	lcdFormat           ImageFormat

	// Key image report geometry. reportLen is the total report size,
	// headerLen the per-chunk header size. Zero for non-visual models.
	reportLen, headerLen int

	// legacyImage selects the 16-byte 1-based-key chunk header family;
	// legacyControls selects the 0x0B/0x05 reset/brightness framing.
	legacyImage    bool
	legacyControls bool

	serial   FeatureText
	firmware FeatureText
}

var descriptors = map[Kind]descriptor{
	Original: {
		productID: 0x0060,
		keys:      15, rows: 3, cols: 5,
		visual:    true,
		keyFormat: ImageFormat{Mode: ModeBMP, Width: 72, Height: 72, MirrorX: true, MirrorY: true},
		reportLen: 8191, headerLen: 16,
		legacyImage: true, legacyControls: true,
		serial:   FeatureText{ID: 0x03, Length: 17, Skip: 5},
		firmware: FeatureText{ID: 0x04, Length: 17, Skip: 5},
	},
	OriginalV2: {
		productID: 0x006d,
		keys:      15, rows: 3, cols: 5,
		visual:    true,
		keyFormat: ImageFormat{Mode: ModeJPEG, Width: 72, Height: 72, MirrorX: true, MirrorY: true},
		reportLen: 1024, headerLen: 8,
		serial:   FeatureText{ID: 0x06, Length: 32, Skip: 2},
		firmware: FeatureText{ID: 0x05, Length: 32, Skip: 6},
	},
	Mini: {
		productID: 0x0063,
		keys:      6, rows: 2, cols: 3,
		visual:    true,
		keyFormat: ImageFormat{Mode: ModeBMP, Width: 80, Height: 80, Rotation: 90},
		reportLen: 1024, headerLen: 16,
		legacyImage: true, legacyControls: true,
		serial:   FeatureText{ID: 0x03, Length: 17, Skip: 5},
		firmware: FeatureText{ID: 0x04, Length: 17, Skip: 5},
	},
	MiniMk2: {
		productID: 0x0090,
		keys:      6, rows: 2, cols: 3,
		visual:    true,
		keyFormat: ImageFormat{Mode: ModeBMP, Width: 80, Height: 80, Rotation: 90},
		reportLen: 1024, headerLen: 16,
		legacyImage: true, legacyControls: true,
		serial:   FeatureText{ID: 0x03, Length: 32, Skip: 5},
		firmware: FeatureText{ID: 0x04, Length: 17, Skip: 5},
	},
	MiniMk2Module: {
		productID: 0x00b8,
		keys:      6, rows: 2, cols: 3,
		visual:    true,
		keyFormat: ImageFormat{Mode: ModeBMP, Width: 80, Height: 80, Rotation: 90},
		reportLen: 1024, headerLen: 16,
		legacyImage: true, legacyControls: true,
		serial:   FeatureText{ID: 0x03, Length: 32, Skip: 5},
		firmware: FeatureText{ID: 0xA1, Length: 17, Skip: 5},
	},
	MK2: {
		productID: 0x0080,
		keys:      15, rows: 3, cols: 5,
		visual:    true,
		keyFormat: ImageFormat{Mode: ModeJPEG, Width: 72, Height: 72, MirrorX: true, MirrorY: true},
		reportLen: 1024, headerLen: 8,
		serial:   FeatureText{ID: 0x06, Length: 32, Skip: 2},
		firmware: FeatureText{ID: 0x05, Length: 32, Skip: 6},
	},
	MK2Scissor: {
		productID: 0x00a5,
		keys:      15, rows: 3, cols: 5,
		visual:    true,
		keyFormat: ImageFormat{Mode: ModeJPEG, Width: 72, Height: 72, MirrorX: true, MirrorY: true},
		reportLen: 1024, headerLen: 8,
		serial:   FeatureText{ID: 0x06, Length: 32, Skip: 2},
		firmware: FeatureText{ID: 0x05, Length: 32, Skip: 6},
	},
	XL: {
		productID: 0x006c,
		keys:      32, rows: 4, cols: 8,
		visual:    true,
		keyFormat: ImageFormat{Mode: ModeJPEG, Width: 96, Height: 96, MirrorX: true, MirrorY: true},
		reportLen: 1024, headerLen: 8,
		serial:   FeatureText{ID: 0x06, Length: 32, Skip: 2},
		firmware: FeatureText{ID: 0x05, Length: 32, Skip: 6},
	},
	XLV2: {
		productID: 0x008f,
		keys:      32, rows: 4, cols: 8,
		visual:    true,
		keyFormat: ImageFormat{Mode: ModeJPEG, Width: 96, Height: 96, MirrorX: true, MirrorY: true},
		reportLen: 1024, headerLen: 8,
		serial:   FeatureText{ID: 0x06, Length: 32, Skip: 2},
		firmware: FeatureText{ID: 0x05, Length: 32, Skip: 6},
	},
	Plus: {
		productID: 0x0084,
		keys:      8, rows: 2, cols: 4,
		encoders:  4,
		visual:    true,
		keyFormat: ImageFormat{Mode: ModeJPEG, Width: 120, Height: 120},
		lcdWidth:  800, lcdHeight: 100,
		lcdFormat: ImageFormat{Mode: ModeJPEG, Width: 800, Height: 100},
		reportLen: 1024, headerLen: 8,
		serial:   FeatureText{ID: 0x06, Length: 32, Skip: 2},
		firmware: FeatureText{ID: 0x05, Length: 32, Skip: 6},
	},
	Pedal: {
		productID: 0x0086,
		keys:      3, rows: 1, cols: 3,
		serial:    FeatureText{ID: 0x06, Length: 32, Skip: 2},
		firmware:  FeatureText{ID: 0x05, Length: 32, Skip: 6},
	},
	Neo: {
		productID:   0x009a,
		keys:        8, rows: 2, cols: 4,
		touchpoints: 2,
		visual:      true,
		keyFormat:   ImageFormat{Mode: ModeJPEG, Width: 96, Height: 96, MirrorX: true, MirrorY: true},
		lcdWidth:    248, lcdHeight: 58,
		lcdFormat:   ImageFormat{Mode: ModeJPEG, Width: 248, Height: 58},
		reportLen:   1024, headerLen: 8,
		serial:   FeatureText{ID: 0x06, Length: 32, Skip: 2},
		firmware: FeatureText{ID: 0x05, Length: 32, Skip: 6},
	},
}

// Lookup resolves a (vendor id, product id) pair to a Kind. Unknown pairs are
// rejected, never defaulted.
func Lookup(vendorID, productID uint16) (Kind, bool) {
	if vendorID != VendorID {
		return 0, false
	}
	for k, d := range descriptors {
		if d.productID == productID {
			return k, true
		}
	}
	return 0, false
}

// Kinds returns every supported Kind.
func Kinds() []Kind {
	out := make([]Kind, 0, len(descriptors))
	for k := range descriptors {
		out = append(out, k)
	}
	return out
}

func (k Kind) desc() descriptor { return descriptors[k] }

// VendorID returns the USB vendor id of this model.
func (k Kind) VendorID() uint16 { return VendorID }

// ProductID returns the USB product id of this model.
func (k Kind) ProductID() uint16 { return k.desc().productID }

// KeyCount returns the number of physical keys.
func (k Kind) KeyCount() uint8 { return k.desc().keys }

// RowCount returns the number of key rows.
func (k Kind) RowCount() uint8 { return k.desc().rows }

// ColumnCount returns the number of key columns.
func (k Kind) ColumnCount() uint8 { return k.desc().cols }

// EncoderCount returns the number of rotary encoders.
func (k Kind) EncoderCount() uint8 { return k.desc().encoders }

// TouchpointCount returns the number of capacitive touch points. Touch points
// are reported after the physical keys in the raw button vector.
func (k Kind) TouchpointCount() uint8 { return k.desc().touchpoints }

// IsVisual reports whether the model can display key images at all.
func (k Kind) IsVisual() bool { return k.desc().visual }

// KeyImageFormat returns the encoding key images must use.
func (k Kind) KeyImageFormat() ImageFormat { return k.desc().keyFormat }

// LCDStripSize returns the LCD strip dimensions, if the model has one.
func (k Kind) LCDStripSize() (w, h int, ok bool) {
	d := k.desc()
	return d.lcdWidth, d.lcdHeight, d.lcdWidth > 0
}

// LCDImageFormat returns the encoding LCD images must use.
func (k Kind) LCDImageFormat() ImageFormat { return k.desc().lcdFormat }

// ImageReportLength returns the total length of one key image report.
func (k Kind) ImageReportLength() int { return k.desc().reportLen }

// ImageReportHeaderLength returns the chunk header length within a key image
// report.
func (k Kind) ImageReportHeaderLength() int { return k.desc().headerLen }

// LegacyImageReports reports whether the model uses the 16-byte, 1-based-key
// chunk header family.
func (k Kind) LegacyImageReports() bool { return k.desc().legacyImage }

// LegacyControls reports whether the model uses the first-generation reset
// and brightness feature framing.
func (k Kind) LegacyControls() bool { return k.desc().legacyControls }

// SerialText locates the serial number inside its feature report.
func (k Kind) SerialText() FeatureText { return k.desc().serial }

// FirmwareText locates the firmware version inside its feature report.
func (k Kind) FirmwareText() FeatureText { return k.desc().firmware }

func (k Kind) String() string {
	switch k {
	case Original:
		return "original"
	case OriginalV2:
		return "original-v2"
	case Mini:
		return "mini"
	case MiniMk2:
		return "mini-mk2"
	case MiniMk2Module:
		return "mini-mk2-module"
	case MK2:
		return "mk2"
	case MK2Scissor:
		return "mk2-scissor"
	case XL:
		return "xl"
	case XLV2:
		return "xl-v2"
	case Plus:
		return "plus"
	case Pedal:
		return "pedal"
	case Neo:
		return "neo"
	}
	return "unknown"
}
