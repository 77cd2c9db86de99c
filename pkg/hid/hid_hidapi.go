package hid

import (
	"fmt"
	"time"

	hidapi "github.com/sstallion/go-hid"
)

// hidapiManager is the default backend. hidapi is the only stack in use here
// that supports both feature reports and time-bounded input reads on every
// platform.
type hidapiManager struct{}

func newHidapiManager() (Manager, error) {
	if err := hidapi.Init(); err != nil {
		return nil, fmt.Errorf("hidapi init: %w", err)
	}
	return &hidapiManager{}, nil
}

func (m *hidapiManager) Open(vendorID, productID uint16, serial string) (Device, error) {
	var (
		d   *hidapi.Device
		err error
	)
	if serial == "" {
		d, err = hidapi.OpenFirst(vendorID, productID)
	} else {
		d, err = hidapi.Open(vendorID, productID, serial)
	}
	if err != nil {
		return nil, fmt.Errorf("open %04x:%04x: %w", vendorID, productID, err)
	}
	return &hidapiDevice{d: d}, nil
}

type hidapiDevice struct {
	d *hidapi.Device
}

func (d *hidapiDevice) WriteReport(data []byte) error {
	_, err := d.d.Write(data)
	return err
}

func (d *hidapiDevice) ReadReport(length int, timeout time.Duration) ([]byte, error) {
	buf := make([]byte, length)
	if timeout <= 0 {
		if _, err := d.d.Read(buf); err != nil {
			return nil, err
		}
		return buf, nil
	}
	// hid_read_timeout reads zero bytes on expiry; the still-zeroed buffer
	// is exactly what the input decoder treats as "nothing new".
	if _, err := d.d.ReadWithTimeout(buf, timeout); err != nil {
		return nil, err
	}
	return buf, nil
}

func (d *hidapiDevice) GetFeature(reportID byte, length int) ([]byte, error) {
	buf := make([]byte, length)
	buf[0] = reportID
	if _, err := d.d.GetFeatureReport(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (d *hidapiDevice) SendFeature(data []byte) error {
	_, err := d.d.SendFeatureReport(data)
	return err
}

func (d *hidapiDevice) Close() error {
	return d.d.Close()
}
