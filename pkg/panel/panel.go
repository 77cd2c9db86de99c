// Package panel implements the host-side wire protocol for the supported
// button-panel hardware: chunked image uploads, input report decoding and the
// state tracking that turns level-triggered reports into edge events.
//
// The package never touches USB itself; it drives a pre-opened hid.Device and
// surfaces transport failures unchanged. It also never logs — error returns
// carry everything the caller needs.
package panel

import (
	"fmt"
	"strings"
	"time"

	"github.com/deckfort/paneldeck/pkg/hid"
	"github.com/deckfort/paneldeck/pkg/variant"
)

// Panel is one connected button-panel device.
type Panel struct {
	kind variant.Kind
	dev  hid.Device

	// Pending key images, appended by WriteImage and drained by Flush.
	cacheGuard guard
	cache      []pendingImage
}

type pendingImage struct {
	key  uint8
	data []byte
}

// New wraps an already-opened transport handle. The caller is responsible
// for having opened the right device for the Kind.
func New(dev hid.Device, kind variant.Kind) *Panel {
	return &Panel{kind: kind, dev: dev}
}

// Connect opens the device for the given Kind through the manager and wraps
// it. An empty serial connects to the first matching device.
func Connect(m hid.Manager, kind variant.Kind, serial string) (*Panel, error) {
	dev, err := m.Open(kind.VendorID(), kind.ProductID(), serial)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", kind, err)
	}
	return New(dev, kind), nil
}

// Kind returns the connected model.
func (p *Panel) Kind() variant.Kind { return p.kind }

// Close releases the transport handle.
func (p *Panel) Close() error { return p.dev.Close() }

// SerialNumber fetches the device serial from its feature report. Some
// firmware revisions pad the string with the control byte 0x01; it is
// stripped.
func (p *Panel) SerialNumber() (string, error) {
	ft := p.kind.SerialText()
	buf, err := p.dev.GetFeature(ft.ID, ft.Length)
	if err != nil {
		return "", fmt.Errorf("read serial: %w", err)
	}
	s, err := extractText(buf[ft.Skip:])
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(s, "\x01", ""), nil
}

// FirmwareVersion fetches the firmware version string.
func (p *Panel) FirmwareVersion() (string, error) {
	ft := p.kind.FirmwareText()
	buf, err := p.dev.GetFeature(ft.ID, ft.Length)
	if err != nil {
		return "", fmt.Errorf("read firmware version: %w", err)
	}
	return extractText(buf[ft.Skip:])
}

// Reset reboots the device, clearing all key images.
func (p *Panel) Reset() error {
	var buf []byte
	if p.kind.LegacyControls() {
		buf = make([]byte, 17)
		buf[0], buf[1] = 0x0B, 0x63
	} else {
		buf = make([]byte, 32)
		buf[0], buf[1] = 0x03, 0x02
	}
	return p.dev.SendFeature(buf)
}

// SetBrightness sets the backlight brightness. Values above 100 are clamped.
func (p *Panel) SetBrightness(percent uint8) error {
	if percent > 100 {
		percent = 100
	}

	var buf []byte
	if p.kind.LegacyControls() {
		buf = make([]byte, 17)
		copy(buf, []byte{0x05, 0x55, 0xAA, 0xD1, 0x01, percent})
	} else {
		buf = make([]byte, 32)
		copy(buf, []byte{0x03, 0x08, percent})
	}
	return p.dev.SendFeature(buf)
}

// SetTouchpointColor sets the LED color behind one touch point. The point is
// addressed after the physical keys on the wire.
func (p *Panel) SetTouchpointColor(point uint8, r, g, b byte) error {
	if point >= p.kind.TouchpointCount() {
		return ErrInvalidTouchPointIndex
	}
	return p.dev.SendFeature([]byte{0x03, 0x06, point + p.kind.KeyCount(), r, g, b})
}

// ReadInput reads and decodes one input report. The timeout bounds only the
// transport read; an expired timeout yields an empty snapshot, not an error.
func (p *Panel) ReadInput(timeout time.Duration) (Input, error) {
	data, err := p.dev.ReadReport(inputReadLength(p.kind), timeout)
	if err != nil {
		return Input{}, fmt.Errorf("read input report: %w", err)
	}
	return decodeInput(p.kind, data)
}

// WriteImage queues an already-encoded key image. Nothing reaches the device
// until Flush; queueing the same key again does not replace the earlier
// entry — both are sent, and the device keeps the last one.
func (p *Panel) WriteImage(key uint8, data []byte) error {
	if key >= p.kind.KeyCount() {
		return ErrInvalidKeyIndex
	}
	if !p.kind.IsVisual() {
		return ErrNoScreen
	}

	entry := pendingImage{key: key, data: append([]byte(nil), data...)}
	return p.cacheGuard.do(func() {
		p.cache = append(p.cache, entry)
	})
}

// Flush sends every queued key image in insertion order, then clears the
// queue. A transport failure part-way through returns with the queue intact,
// so a retried Flush resends entries that may already have reached the
// device; callers needing exactly-once must track success per key themselves.
func (p *Panel) Flush() error {
	var entries []pendingImage
	if err := p.cacheGuard.do(func() {
		entries = append([]pendingImage(nil), p.cache...)
	}); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	for _, e := range entries {
		if err := p.sendImage(e.key, e.data); err != nil {
			return err
		}
	}

	return p.cacheGuard.do(func() {
		p.cache = nil
	})
}

// WriteLCD writes an encoded image to a region of the LCD strip. The write
// goes out immediately; only models with an addressable strip support it.
func (p *Panel) WriteLCD(x, y uint16, rect *ImageRect) error {
	if p.kind != variant.Plus {
		return ErrUnsupportedOperation
	}

	params := writeParams{reportLen: 1024, payloadLen: 1024 - 16}
	return p.writeImageReports(rect.Data, params, lcdRegionHeader(x, y, rect.W, rect.H))
}

// WriteLCDFill covers the whole LCD strip with one encoded image. The write
// goes out immediately.
func (p *Panel) WriteLCDFill(data []byte) error {
	switch p.kind {
	case variant.Neo:
		params := writeParams{reportLen: 1024, payloadLen: 1024 - 8}
		return p.writeImageReports(data, params, lcdFillHeader())

	case variant.Plus:
		w, h, _ := p.kind.LCDStripSize()
		params := writeParams{reportLen: 1024, payloadLen: 1024 - 16}
		return p.writeImageReports(data, params, lcdRegionHeader(0, 0, uint16(w), uint16(h)))

	default:
		return ErrUnsupportedOperation
	}
}

// Reader returns a state reader that turns this panel's input reports into
// discrete transition events.
func (p *Panel) Reader() *StateReader {
	return newStateReader(p)
}
