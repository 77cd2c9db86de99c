package panel

import "errors"

// Protocol error taxonomy. Transport failures are wrapped, never replaced, so
// callers can still unwrap the backend error.
var (
	// ErrBadData means the device sent a report shape the active variant
	// does not define. The decoder never guesses.
	ErrBadData = errors.New("panel: unexpected report from device")

	// ErrInvalidKeyIndex means a key index at or past KeyCount. Checked
	// before any I/O.
	ErrInvalidKeyIndex = errors.New("panel: key index out of range")

	// ErrInvalidTouchPointIndex means a touch point index at or past
	// TouchpointCount. Checked before any I/O.
	ErrInvalidTouchPointIndex = errors.New("panel: touch point index out of range")

	// ErrNoScreen means the device has no visual surface to draw on.
	ErrNoScreen = errors.New("panel: device has no screen")

	// ErrUnsupportedOperation means the active variant lacks the requested
	// capability, e.g. an LCD region write on a keys-only model.
	ErrUnsupportedOperation = errors.New("panel: operation not supported by this device")

	// ErrUnrecognizedPID means the product id has no descriptor table row.
	ErrUnrecognizedPID = errors.New("panel: unrecognized product id")

	// ErrPoisoned means a previous holder of the image cache or the state
	// vectors panicked mid-update; the guarded data may be inconsistent
	// and is refused rather than served.
	ErrPoisoned = errors.New("panel: state poisoned by earlier panic")

	// ErrTextDecode means a feature-report text field was not valid UTF-8.
	ErrTextDecode = errors.New("panel: feature report text is not valid utf-8")
)
