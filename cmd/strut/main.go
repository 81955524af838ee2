package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/vito/strut/pkg/strut"
	"github.com/vito/strut/pkg/termbar"
	"github.com/vito/strut/pkg/text"
	"github.com/vito/strut/pkg/widgets"
)

// Config holds the bar configuration gathered from flags.
type Config struct {
	Bottom  bool
	Width   int
	OffsetX int
	OffsetY int
	Debug   bool

	ClockFormat string
	Battery     string
	Wireless    string
	Disks       []string
	Sensors     []string
	Volume      bool
	WindowTitle bool
	Pager       string
}

func main() {
	var cfg Config

	rootCmd := &cobra.Command{
		Use:   "strut",
		Short: "A terminal status bar",
		Long: `Strut pins a strip of live system information — clock, battery,
CPU load, disk usage, wireless signal, sensors, volume, the active
window title, and a workspace pager — to the top or bottom of the
terminal, updating each piece on its own schedule.`,
		Example: `  # Clock, CPU, and root disk usage on the top row
  strut

  # Bottom bar with battery and wifi
  strut --bottom --battery BAT0 --wifi wlan0

  # Second bar offset for another monitor
  strut --offset-x 1920 --width 1920`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg)
		},
	}

	rootCmd.Flags().BoolVar(&cfg.Bottom, "bottom", false, "Pin the bar to the bottom row")
	rootCmd.Flags().IntVar(&cfg.Width, "width", 0, "Cap the bar width in cells (0 = full width)")
	rootCmd.Flags().IntVar(&cfg.OffsetX, "offset-x", 0, "Shift the bar right by N cells")
	rootCmd.Flags().IntVar(&cfg.OffsetY, "offset-y", 0, "Shift the bar off its edge by N rows")
	rootCmd.Flags().BoolVarP(&cfg.Debug, "debug", "d", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&cfg.ClockFormat, "clock-format", widgets.DefaultClockFormat, "Clock layout (Go time format)")
	rootCmd.Flags().StringVar(&cfg.Battery, "battery", "", "Show a battery, e.g. BAT0")
	rootCmd.Flags().StringVar(&cfg.Wireless, "wifi", "", "Show wireless link quality for an interface, e.g. wlan0")
	rootCmd.Flags().StringSliceVar(&cfg.Disks, "disk", []string{"/"}, "Show disk usage for a mount point (repeatable)")
	rootCmd.Flags().StringSliceVar(&cfg.Sensors, "sensor", nil, "Show a temperature sensor by hwmon label (repeatable)")
	rootCmd.Flags().BoolVar(&cfg.Volume, "volume", false, "Show the ALSA master volume")
	rootCmd.Flags().BoolVar(&cfg.WindowTitle, "title", false, "Show the active window title (requires xtitle)")
	rootCmd.Flags().StringVar(&cfg.Pager, "pager", "", "Show LeftWM workspace tags for an output, e.g. eDP-1")

	if err := fang.Execute(context.Background(), rootCmd,
		fang.WithVersion("v0.1.0"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config) error {
	// The loop itself has no shutdown path; cancellation comes from the
	// outside so the terminal can be restored on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	position := strut.Top
	if cfg.Bottom {
		position = strut.Bottom
	}

	bar := strut.New(position).
		WithWidth(cfg.Width).
		WithOffset(cfg.OffsetX, cfg.OffsetY).
		WithSurface(termbar.Open).
		WithLogger(logger)

	attr := text.Attributes{Foreground: "#eeeeee", Padding: text.Pad(1)}
	icon := attr.WithForeground("#00ee00")

	if cfg.Pager != "" {
		bar.AddWidget(widgets.NewPager(cfg.Pager, widgets.PagerAttributes{
			Focused: attr.WithForeground("#55ff55").WithBackground("#222222"),
			Visible: attr.WithForeground("2"),
			Busy:    attr.WithForeground("#119911"),
			Empty:   attr.WithForeground("#bbbbbb"),
		}))
	}
	if cfg.WindowTitle {
		bar.AddWidget(widgets.NewActiveWindowTitle(attr))
	}

	bar.AddWidget(widgets.NewCPU(icon, func(load float64) string {
		return fmt.Sprintf("cpu %.0f%%", load)
	}))
	for _, path := range cfg.Disks {
		bar.AddWidget(widgets.NewDiskUsage(attr, path, func(info widgets.DiskInfo) string {
			return fmt.Sprintf("%s %.0f%%", path, info.UsedPercent())
		}))
	}
	if cfg.Wireless != "" {
		bar.AddWidget(widgets.NewWireless(cfg.Wireless, text.DefaultThreshold(attr)))
	}
	if len(cfg.Sensors) > 0 {
		bar.AddWidget(widgets.NewSensors(attr, cfg.Sensors...))
	}
	if cfg.Volume {
		bar.AddWidget(widgets.NewVolume(attr))
	}
	if cfg.Battery != "" {
		bar.AddWidget(widgets.NewBattery(attr, attr.WithForeground("1"), cfg.Battery, nil))
	}
	bar.AddWidget(widgets.NewClock(attr, cfg.ClockFormat))

	if err := bar.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
