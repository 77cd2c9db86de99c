package panel

import (
	"context"
	"time"
)

// UpdateType tags one state transition event.
type UpdateType int

const (
	// ButtonDown and ButtonUp are physical key transitions.
	ButtonDown UpdateType = iota
	ButtonUp

	// EncoderDown and EncoderUp are encoder press transitions.
	EncoderDown
	EncoderUp

	// EncoderTwist is one rotation step report; Delta is signed.
	EncoderTwist

	// TouchPointDown and TouchPointUp are touch-point transitions, indexed
	// from zero independently of the keys.
	TouchPointDown
	TouchPointUp

	// TouchScreenPress, TouchScreenLongPress and TouchScreenSwipe are LCD
	// strip gestures, passed through as-is.
	TouchScreenPress
	TouchScreenLongPress
	TouchScreenSwipe
)

// Update is one discrete transition derived from consecutive input snapshots.
type Update struct {
	Type UpdateType

	// Index is the key, encoder or touch-point index, depending on Type.
	Index uint8

	// Delta is the signed rotation for EncoderTwist.
	Delta int8

	// X, Y is the touch position, or the swipe start.
	X, Y uint16

	// EndX, EndY is the swipe end.
	EndX, EndY uint16
}

// StateReader keeps the last observed button and encoder vectors and turns
// each new snapshot into zero or more Updates. Reads may happen on a
// different goroutine than image writes, so the vectors sit behind their own
// guard.
type StateReader struct {
	panel *Panel

	stateGuard guard
	buttons    []bool
	encoders   []bool
}

func newStateReader(p *Panel) *StateReader {
	return &StateReader{
		panel:    p,
		buttons:  make([]bool, int(p.kind.KeyCount())+int(p.kind.TouchpointCount())),
		encoders: make([]bool, p.kind.EncoderCount()),
	}
}

// Read fetches one input report and returns the transitions since the last
// read, in ascending index order per category. An expired timeout returns an
// empty slice.
func (r *StateReader) Read(timeout time.Duration) ([]Update, error) {
	in, err := r.panel.ReadInput(timeout)
	if err != nil {
		return nil, err
	}

	var updates []Update
	if err := r.stateGuard.do(func() {
		updates = r.apply(in)
	}); err != nil {
		return nil, err
	}
	return updates, nil
}

// apply diffs one snapshot against the stored vectors. Button and encoder
// snapshots replace the stored vector even when nothing changed; twist and
// touch snapshots are already edges and stay stateless.
func (r *StateReader) apply(in Input) []Update {
	var updates []Update

	switch in.Type {
	case InputButtonStateChange:
		keyCount := r.panel.kind.KeyCount()
		for i := 0; i < len(in.Buttons) && i < len(r.buttons); i++ {
			theirs, mine := in.Buttons[i], r.buttons[i]
			if theirs == mine {
				continue
			}
			switch {
			case uint8(i) < keyCount && theirs:
				updates = append(updates, Update{Type: ButtonDown, Index: uint8(i)})
			case uint8(i) < keyCount:
				updates = append(updates, Update{Type: ButtonUp, Index: uint8(i)})
			case theirs:
				updates = append(updates, Update{Type: TouchPointDown, Index: uint8(i) - keyCount})
			default:
				updates = append(updates, Update{Type: TouchPointUp, Index: uint8(i) - keyCount})
			}
		}
		r.buttons = in.Buttons

	case InputEncoderStateChange:
		for i := 0; i < len(in.Encoders) && i < len(r.encoders); i++ {
			theirs, mine := in.Encoders[i], r.encoders[i]
			if theirs == mine {
				continue
			}
			if theirs {
				updates = append(updates, Update{Type: EncoderDown, Index: uint8(i)})
			} else {
				updates = append(updates, Update{Type: EncoderUp, Index: uint8(i)})
			}
		}
		r.encoders = in.Encoders

	case InputEncoderTwist:
		for i, delta := range in.Twists {
			if delta != 0 {
				updates = append(updates, Update{Type: EncoderTwist, Index: uint8(i), Delta: delta})
			}
		}

	case InputTouchScreenPress:
		updates = append(updates, Update{Type: TouchScreenPress, X: in.X, Y: in.Y})

	case InputTouchScreenLongPress:
		updates = append(updates, Update{Type: TouchScreenLongPress, X: in.X, Y: in.Y})

	case InputTouchScreenSwipe:
		updates = append(updates, Update{
			Type: TouchScreenSwipe,
			X:    in.X, Y: in.Y,
			EndX: in.EndX, EndY: in.EndY,
		})
	}

	return updates
}

// listenPollInterval bounds each transport read inside Listen so the loop can
// notice a cancelled context.
const listenPollInterval = 100 * time.Millisecond

// Listen polls the device on its own goroutine and delivers Updates on the
// returned channel until the context is cancelled or the transport fails.
// The channel is closed on exit. This is only a concurrency adapter; every
// protocol rule lives in Read.
func (r *StateReader) Listen(ctx context.Context) <-chan Update {
	out := make(chan Update)

	go func() {
		defer close(out)
		for {
			if ctx.Err() != nil {
				return
			}

			updates, err := r.Read(listenPollInterval)
			if err != nil {
				return
			}

			for _, u := range updates {
				select {
				case out <- u:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
