// Package panelusb enumerates candidate panel hardware over raw USB. It
// exists for tooling like the CLI list command; the protocol core never
// enumerates — it works against a pre-opened transport handle.
package panelusb

import (
	"fmt"

	"github.com/karalabe/usb"

	"github.com/deckfort/paneldeck/pkg/variant"
)

// Entry is one connected device carrying the panel vendor id.
type Entry struct {
	Kind      variant.Kind
	Known     bool
	ProductID uint16
	Serial    string
	Product   string
}

// List enumerates devices with the panel vendor id. Devices whose product id
// has no descriptor row are included with Known == false so tooling can show
// them rather than hide them.
func List() ([]Entry, error) {
	infos, err := usb.Enumerate(variant.VendorID, 0)
	if err != nil {
		return nil, fmt.Errorf("usb enumerate: %w", err)
	}

	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		e := Entry{
			ProductID: info.ProductID,
			Serial:    info.Serial,
			Product:   info.Product,
		}
		e.Kind, e.Known = variant.Lookup(variant.VendorID, info.ProductID)
		entries = append(entries, e)
	}
	return entries, nil
}
