package panel

import (
	"fmt"

	"github.com/deckfort/paneldeck/pkg/variant"
)

// ImageRect is an already-encoded image destined for a region of the LCD
// strip. Data must be encoded in the variant's LCD pixel format at exactly
// W×H pixels.
type ImageRect struct {
	W, H uint16
	Data []byte
}

// writeParams bounds one chunked transfer: the total report size and how much
// image payload fits after the header.
type writeParams struct {
	reportLen  int
	payloadLen int
}

// keyWriteParams derives the chunking bounds for a key image upload. The
// first-generation panel is special-cased: its firmware expects the image in
// exactly two chunks, so the capacity is half the payload rather than the
// report size minus the header.
func keyWriteParams(kind variant.Kind, imageLen int) writeParams {
	p := writeParams{
		reportLen:  kind.ImageReportLength(),
		payloadLen: kind.ImageReportLength() - kind.ImageReportHeaderLength(),
	}
	if kind == variant.Original {
		p.payloadLen = imageLen / 2
	}
	return p
}

// flipKeyIndex mirrors a key index horizontally within its row. The
// first-generation panel addresses keys right-to-left.
func flipKeyIndex(kind variant.Kind, key uint8) uint8 {
	cols := kind.ColumnCount()
	col := key % cols
	return key - col + (cols - 1 - col)
}

func lastFlag(last bool) byte {
	if last {
		return 1
	}
	return 0
}

// keyImageHeader returns the per-chunk header builder for a key upload. The
// three families differ in header length, key base (0 or 1) and whether the
// page counter starts at 1; all of it is firmware contract, bit for bit.
func keyImageHeader(kind variant.Kind, key uint8) func(page, thisLen int, last bool) []byte {
	switch {
	case kind == variant.Original:
		return func(page, _ int, last bool) []byte {
			return []byte{0x02, 0x01, byte(page + 1), 0, lastFlag(last), key + 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
		}
	case kind.LegacyImageReports():
		return func(page, _ int, last bool) []byte {
			return []byte{0x02, 0x01, byte(page), 0, lastFlag(last), key + 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
		}
	default:
		return func(page, thisLen int, last bool) []byte {
			return []byte{
				0x02, 0x07, key, lastFlag(last),
				byte(thisLen), byte(thisLen >> 8),
				byte(page), byte(page >> 8),
			}
		}
	}
}

// lcdRegionHeader builds the chunk header for an LCD strip region write.
func lcdRegionHeader(x, y, w, h uint16) func(page, thisLen int, last bool) []byte {
	return func(page, thisLen int, last bool) []byte {
		return []byte{
			0x02, 0x0c,
			byte(x), byte(x >> 8),
			byte(y), byte(y >> 8),
			byte(w), byte(w >> 8),
			byte(h), byte(h >> 8),
			lastFlag(last),
			byte(page), byte(page >> 8),
			byte(thisLen), byte(thisLen >> 8),
			0,
		}
	}
}

// lcdFillHeader builds the chunk header for a whole-screen fill.
func lcdFillHeader() func(page, thisLen int, last bool) []byte {
	return func(page, thisLen int, last bool) []byte {
		return []byte{
			0x02, 0x0b, 0, lastFlag(last),
			byte(thisLen), byte(thisLen >> 8),
			byte(page), byte(page >> 8),
		}
	}
}

// writeImageReports splits image data into fixed-length reports and writes
// them in page order. Each report is header, payload slice, zero padding up
// to the report length. A zero-length payload writes nothing. On a transport
// failure mid-transfer the device keeps whatever chunks already arrived;
// nothing is retried here.
func (p *Panel) writeImageReports(data []byte, params writeParams, header func(page, thisLen int, last bool) []byte) error {
	page := 0
	remaining := len(data)

	for remaining > 0 {
		thisLen := min(remaining, params.payloadLen)
		sent := page * params.payloadLen

		buf := header(page, thisLen, thisLen == remaining)
		buf = append(buf, data[sent:sent+thisLen]...)
		buf = append(buf, make([]byte, params.reportLen-len(buf))...)

		if err := p.dev.WriteReport(buf); err != nil {
			return fmt.Errorf("write image report %d: %w", page, err)
		}

		remaining -= thisLen
		page++
	}

	return nil
}

// sendImage chunks one key image to the device. The key index is validated,
// and mirrored for the first-generation panel, before any report goes out.
func (p *Panel) sendImage(key uint8, data []byte) error {
	if key >= p.kind.KeyCount() {
		return ErrInvalidKeyIndex
	}
	if !p.kind.IsVisual() {
		return ErrNoScreen
	}

	if p.kind == variant.Original {
		key = flipKeyIndex(p.kind, key)
	}

	return p.writeImageReports(data, keyWriteParams(p.kind, len(data)), keyImageHeader(p.kind, key))
}
