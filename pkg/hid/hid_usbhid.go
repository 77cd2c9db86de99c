package hid

import (
	"fmt"
	"time"

	usbhid "rafaelmartins.com/p/usbhid"
)

// usbhidManager is a pure-Go backend that talks to the OS HID stack directly,
// for builds that cannot link the hidapi shared library. Its input reads are
// control-channel polls and cannot be time-bounded.
type usbhidManager struct{}

// NewPortableManager returns the usbhid-backed manager.
func NewPortableManager() Manager {
	return &usbhidManager{}
}

func (m *usbhidManager) Open(vendorID, productID uint16, serial string) (Device, error) {
	d, err := usbhid.Get(func(dev *usbhid.Device) bool {
		if dev.VendorId() != vendorID || dev.ProductId() != productID {
			return false
		}
		return serial == "" || dev.SerialNumber() == serial
	}, true, false)
	if err != nil {
		return nil, fmt.Errorf("open %04x:%04x: %w", vendorID, productID, err)
	}
	return &usbhidDevice{d: d}, nil
}

type usbhidDevice struct {
	d *usbhid.Device
}

func (d *usbhidDevice) WriteReport(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return d.d.SetOutputReport(data[0], data[1:])
}

func (d *usbhidDevice) ReadReport(length int, _ time.Duration) ([]byte, error) {
	id, payload, err := d.d.GetInputReport()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, length)
	buf[0] = id
	copy(buf[1:], payload)
	return buf, nil
}

func (d *usbhidDevice) GetFeature(reportID byte, length int) ([]byte, error) {
	payload, err := d.d.GetFeatureReport(reportID)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, length)
	buf[0] = reportID
	copy(buf[1:], payload)
	return buf, nil
}

func (d *usbhidDevice) SendFeature(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return d.d.SetFeatureReport(data[0], data[1:])
}

func (d *usbhidDevice) Close() error {
	return d.d.Close()
}
