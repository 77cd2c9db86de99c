// panelctl is a small control utility for USB HID button panels: list
// attached panels, query identity, set brightness, reset, and watch input
// events.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/deckfort/paneldeck/internal/panelusb"
	"github.com/deckfort/paneldeck/pkg/hid"
	"github.com/deckfort/paneldeck/pkg/panel"
)

type Globals struct {
	Serial   string `help:"Serial number of the panel to open (default: first recognized)." short:"s"`
	LogLevel string `help:"Log level." default:"info" enum:"debug,info,warn,error"`
}

var cli struct {
	Globals

	List       ListCmd       `cmd:"" help:"List attached panels."`
	Info       InfoCmd       `cmd:"" help:"Show model, serial number and firmware version."`
	Brightness BrightnessCmd `cmd:"" help:"Set panel brightness."`
	Reset      ResetCmd      `cmd:"" help:"Reset the panel."`
	Watch      WatchCmd      `cmd:"" help:"Print input events until interrupted."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("panelctl"),
		kong.Description("Control USB HID button panels."),
		kong.UsageOnError(),
	)
	setupLogger(cli.LogLevel)
	ctx.FatalIfErrorf(ctx.Run(&cli.Globals))
}

func setupLogger(level string) {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}

// openPanel enumerates over raw USB to identify the model, then opens the
// device through the default HID backend.
func openPanel(g *Globals) (*panel.Panel, error) {
	entries, err := panelusb.List()
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		if !e.Known {
			slog.Debug("skipping unrecognized device", "pid", fmt.Sprintf("%04x", e.ProductID))
			continue
		}
		if g.Serial != "" && e.Serial != g.Serial {
			continue
		}

		mgr, err := hid.NewManager()
		if err != nil {
			return nil, err
		}
		return panel.Connect(mgr, e.Kind, g.Serial)
	}

	return nil, fmt.Errorf("no matching panel found")
}

type ListCmd struct{}

func (c *ListCmd) Run(_ *Globals) error {
	entries, err := panelusb.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no panels found")
		return nil
	}
	for _, e := range entries {
		name := "unrecognized"
		if e.Known {
			name = e.Kind.String()
		}
		fmt.Printf("%-16s pid=%04x serial=%s product=%q\n", name, e.ProductID, e.Serial, e.Product)
	}
	return nil
}

type InfoCmd struct{}

func (c *InfoCmd) Run(g *Globals) error {
	p, err := openPanel(g)
	if err != nil {
		return err
	}
	defer p.Close()

	serial, err := p.SerialNumber()
	if err != nil {
		return err
	}
	firmware, err := p.FirmwareVersion()
	if err != nil {
		return err
	}

	fmt.Printf("model:    %s\n", p.Kind())
	fmt.Printf("keys:     %d (%dx%d)\n", p.Kind().KeyCount(), p.Kind().RowCount(), p.Kind().ColumnCount())
	fmt.Printf("serial:   %s\n", serial)
	fmt.Printf("firmware: %s\n", firmware)
	return nil
}

type BrightnessCmd struct {
	Percent uint8 `arg:"" help:"Brightness percentage, 0-100."`
}

func (c *BrightnessCmd) Run(g *Globals) error {
	p, err := openPanel(g)
	if err != nil {
		return err
	}
	defer p.Close()
	return p.SetBrightness(c.Percent)
}

type ResetCmd struct{}

func (c *ResetCmd) Run(g *Globals) error {
	p, err := openPanel(g)
	if err != nil {
		return err
	}
	defer p.Close()
	return p.Reset()
}

type WatchCmd struct{}

func (c *WatchCmd) Run(g *Globals) error {
	p, err := openPanel(g)
	if err != nil {
		return err
	}
	defer p.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("watching for input", "model", p.Kind().String())
	for u := range p.Reader().Listen(ctx) {
		fmt.Println(describeUpdate(u))
	}
	return nil
}

func describeUpdate(u panel.Update) string {
	switch u.Type {
	case panel.ButtonDown:
		return fmt.Sprintf("button %d down", u.Index)
	case panel.ButtonUp:
		return fmt.Sprintf("button %d up", u.Index)
	case panel.EncoderDown:
		return fmt.Sprintf("encoder %d down", u.Index)
	case panel.EncoderUp:
		return fmt.Sprintf("encoder %d up", u.Index)
	case panel.EncoderTwist:
		return fmt.Sprintf("encoder %d twist %+d", u.Index, u.Delta)
	case panel.TouchPointDown:
		return fmt.Sprintf("touch point %d down", u.Index)
	case panel.TouchPointUp:
		return fmt.Sprintf("touch point %d up", u.Index)
	case panel.TouchScreenPress:
		return fmt.Sprintf("touch press at (%d,%d)", u.X, u.Y)
	case panel.TouchScreenLongPress:
		return fmt.Sprintf("touch long press at (%d,%d)", u.X, u.Y)
	case panel.TouchScreenSwipe:
		return fmt.Sprintf("touch swipe (%d,%d) -> (%d,%d)", u.X, u.Y, u.EndX, u.EndY)
	}
	return "unknown event"
}
