package panel

import (
	"bytes"
	"encoding/binary"
	"unicode/utf8"

	"github.com/deckfort/paneldeck/pkg/variant"
)

// InputType tags an Input snapshot.
type InputType int

const (
	// InputNone means the read returned nothing new.
	InputNone InputType = iota

	// InputButtonStateChange carries the full pressed vector for keys and
	// touch points.
	InputButtonStateChange

	// InputEncoderStateChange carries the pressed vector for encoders.
	InputEncoderStateChange

	// InputEncoderTwist carries signed per-encoder rotation deltas.
	InputEncoderTwist

	// InputTouchScreenPress is a short tap on the LCD strip.
	InputTouchScreenPress

	// InputTouchScreenLongPress is a long press on the LCD strip.
	InputTouchScreenLongPress

	// InputTouchScreenSwipe is a swipe across the LCD strip.
	InputTouchScreenSwipe
)

// Input is one decoded input report, before edge detection. Which fields are
// meaningful depends on Type.
type Input struct {
	Type InputType

	// Buttons holds key states followed by touch-point states.
	Buttons []bool

	// Encoders holds encoder pressed states.
	Encoders []bool

	// Twists holds signed rotation deltas, zero meaning no movement.
	Twists []int8

	// X, Y is the touch position, or the swipe start.
	X, Y uint16

	// EndX, EndY is the swipe end.
	EndX, EndY uint16
}

// IsEmpty reports whether the snapshot carries no data.
func (in Input) IsEmpty() bool { return in.Type == InputNone }

// inputReadLength is how many bytes one input report occupies for the model.
func inputReadLength(kind variant.Kind) int {
	switch {
	case kind == variant.Plus:
		n := 5 + int(kind.EncoderCount())
		if n < 14 {
			n = 14
		}
		return n
	case kind.LegacyImageReports():
		return 1 + int(kind.KeyCount())
	default:
		return 4 + int(kind.KeyCount()) + int(kind.TouchpointCount())
	}
}

// decodeInput interprets one raw input report for the model. Report shapes
// outside the model's discriminators are refused, never guessed at.
func decodeInput(kind variant.Kind, data []byte) (Input, error) {
	if len(data) == 0 || data[0] == 0 {
		return Input{}, nil
	}

	if kind == variant.Plus {
		switch data[1] {
		case 0x0:
			return Input{Type: InputButtonStateChange, Buttons: readButtonStates(kind, data)}, nil
		case 0x2:
			return decodeTouchInput(data)
		case 0x3:
			return decodeEncoderInput(kind, data)
		default:
			return Input{}, ErrBadData
		}
	}

	return Input{Type: InputButtonStateChange, Buttons: readButtonStates(kind, data)}, nil
}

// readButtonStates unpacks the pressed vector. Any non-zero byte counts as
// pressed. Legacy models report keys starting at byte 1; everything else at
// byte 4, with touch points appended after the keys. The first-generation
// panel reports keys mirrored within each row, so it is read back through the
// same mirror used when uploading images.
func readButtonStates(kind variant.Kind, data []byte) []bool {
	keys := int(kind.KeyCount())

	switch {
	case kind == variant.Original:
		states := make([]bool, keys)
		for i := range states {
			states[i] = data[int(flipKeyIndex(kind, uint8(i)))+1] != 0
		}
		return states
	case kind.LegacyImageReports():
		states := make([]bool, keys)
		for i := range states {
			states[i] = data[i+1] != 0
		}
		return states
	default:
		states := make([]bool, keys+int(kind.TouchpointCount()))
		for i := range states {
			states[i] = data[i+4] != 0
		}
		return states
	}
}

// decodeTouchInput unpacks an LCD strip gesture. Coordinates are packed
// little-endian; byte 4 distinguishes short press, long press and swipe.
func decodeTouchInput(data []byte) (Input, error) {
	x := binary.LittleEndian.Uint16(data[6:8])
	y := binary.LittleEndian.Uint16(data[8:10])

	switch data[4] {
	case 0x1:
		return Input{Type: InputTouchScreenPress, X: x, Y: y}, nil
	case 0x2:
		return Input{Type: InputTouchScreenLongPress, X: x, Y: y}, nil
	case 0x3:
		return Input{
			Type: InputTouchScreenSwipe,
			X:    x,
			Y:    y,
			EndX: binary.LittleEndian.Uint16(data[10:12]),
			EndY: binary.LittleEndian.Uint16(data[12:14]),
		}, nil
	default:
		return Input{}, ErrBadData
	}
}

// decodeEncoderInput unpacks an encoder report: byte 4 selects pressed states
// or signed twist deltas, one byte per encoder starting at byte 5.
func decodeEncoderInput(kind variant.Kind, data []byte) (Input, error) {
	count := int(kind.EncoderCount())

	switch data[4] {
	case 0x0:
		pressed := make([]bool, count)
		for i := range pressed {
			pressed[i] = data[5+i] != 0
		}
		return Input{Type: InputEncoderStateChange, Encoders: pressed}, nil
	case 0x1:
		twists := make([]int8, count)
		for i := range twists {
			twists[i] = int8(data[5+i])
		}
		return Input{Type: InputEncoderTwist, Twists: twists}, nil
	default:
		return Input{}, ErrBadData
	}
}

// extractText decodes a nul-terminated byte run from a feature report field.
func extractText(b []byte) (string, error) {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	if !utf8.Valid(b) {
		return "", ErrTextDecode
	}
	return string(b), nil
}
