// Package hid is the transport boundary between the panel protocol and the
// underlying USB HID stack. The protocol core only ever talks to the Device
// interface; backends live in this package so callers can pick one (or bring
// their own, e.g. for tests).
package hid

import "time"

// Device represents an opened HID device capable of report I/O.
//
// All methods exchange complete reports. For output and feature reports the
// report id is the first byte of the buffer.
type Device interface {
	// WriteReport sends one output report.
	WriteReport(data []byte) error

	// ReadReport reads one input report into a zero-filled buffer of the
	// given length. If the timeout expires before the device produces a
	// report, the buffer is returned still zeroed with a nil error; a
	// closed or failed device returns an error instead. A zero timeout
	// blocks until a report arrives.
	ReadReport(length int, timeout time.Duration) ([]byte, error)

	// GetFeature fetches a feature report of the given total length,
	// including the report id byte.
	GetFeature(reportID byte, length int) ([]byte, error)

	// SendFeature sends a feature report. data[0] is the report id.
	SendFeature(data []byte) error

	Close() error
}

// Info describes an enumerated HID device.
type Info struct {
	Path         string
	VendorID     uint16
	ProductID    uint16
	Serial       string
	Product      string
	Manufacturer string
}

// Manager opens HID devices.
type Manager interface {
	// Open opens a device by vendor/product id. An empty serial opens the
	// first match; otherwise the serial must match exactly.
	Open(vendorID, productID uint16, serial string) (Device, error)
}

// NewManager returns the default hidapi-backed manager.
func NewManager() (Manager, error) {
	return newHidapiManager()
}
