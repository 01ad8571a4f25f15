// Command marquee scrolls a message across a chain of MAX7219 LED matrix
// modules, or across the terminal when no hardware is attached.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/conn/v3/spi/spitest"
	"periph.io/x/host/v3"

	"periph.io/x/devices/v3/max7219"
	"periph.io/x/devices/v3/max7219/font"
)

func main() {
	// ---- Flags (config.yaml can override) ----
	var (
		message    = flag.String("message", "HELLO WORLD  ", "message to scroll")
		spiBus     = flag.String("spi", "", "SPI bus name (empty for default)")
		modules    = flag.Int("modules", 4, "number of cascaded modules")
		intensity  = flag.Int("intensity", 3, "LED intensity, 0 (dim) to 15 (bright)")
		interval   = flag.Duration("interval", 50*time.Millisecond, "delay between scroll steps")
		step       = flag.Int("step", 1, "columns per scroll step")
		loop       = flag.Bool("loop", false, "wrap the message instead of running it off")
		repeats    = flag.Int("repeats", 0, "scroll passes before exiting, 0 for forever")
		rotate     = flag.Int("rotate", 0, "clockwise quarter turns per module (0-3)")
		serpentine = flag.Int("serpentine", 0, "run length for zigzag cabling, 0 for straight")
		sim        = flag.Bool("sim", false, "render to the terminal instead of hardware")
		configPath = flag.String("config", "", "path to an optional config.yaml")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	// ---- Load config.yaml (optional) ----
	var cfg *Config
	if *configPath != "" {
		c, err := loadConfig(*configPath)
		if err != nil {
			log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
		} else {
			cfg = c
		}
	}

	// ---- Effective params (config overrides flags where set) ----
	eMessage := *message
	eSPI := *spiBus
	eModules := *modules
	eIntensity := *intensity
	eInterval := *interval
	eStep := *step
	eLoop := *loop
	eRepeats := *repeats
	eRotate := *rotate
	eSerpentine := *serpentine
	eSim := *sim

	if cfg != nil {
		if cfg.Message != "" {
			eMessage = cfg.Message
		}
		if cfg.SPI != "" {
			eSPI = cfg.SPI
		}
		if cfg.Modules > 0 {
			eModules = cfg.Modules
		}
		if cfg.Intensity > 0 {
			eIntensity = cfg.Intensity
		}
		if cfg.IntervalMs > 0 {
			eInterval = time.Duration(cfg.IntervalMs) * time.Millisecond
		}
		if cfg.Step != 0 {
			eStep = cfg.Step
		}
		if cfg.Loop {
			eLoop = true
		}
		if cfg.Repeats > 0 {
			eRepeats = cfg.Repeats
		}
		if cfg.Rotate > 0 {
			eRotate = cfg.Rotate
		}
		if cfg.Serpentine > 0 {
			eSerpentine = cfg.Serpentine
		}
		if cfg.Sim {
			eSim = true
		}
	}

	// ---- Open the transport: hardware SPI, or a discard port for sim ----
	var port spi.Port
	if !eSim {
		if _, err := host.Init(); err != nil {
			log.Warn().Err(err).Msg("periph init failed; falling back to sim")
			eSim = true
		}
	}
	if !eSim {
		p, err := spireg.Open(eSPI)
		if err != nil {
			log.Warn().Err(err).Str("spi", eSPI).Msg("SPI open failed; falling back to sim")
			eSim = true
		} else {
			defer p.Close()
			port = p
		}
	}
	if eSim {
		port = spitest.NewRecordRaw(io.Discard)
	}

	// ---- Build the device ----
	opts := &max7219.Opts{
		Count:       eModules,
		Intensity:   eIntensity,
		Orientation: max7219.Orientation{Rotation: max7219.Rotation(eRotate)},
	}
	if eSerpentine > 0 {
		order, err := max7219.Serpentine(eModules, eSerpentine)
		if err != nil {
			log.Fatal().Err(err).Msg("bad serpentine run length")
		}
		opts.ChainOrder = order
	}
	dev, err := max7219.NewSPI(port, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("display init failed")
	}
	defer dev.Halt()

	// ---- Arm the scroller ----
	fallback := font.Blank(5)
	sc := max7219.NewScroller(dev, font.Font5x7, &max7219.ScrollOpts{
		Step:     eStep,
		Loop:     eLoop,
		Fallback: &fallback,
	})
	if err := sc.Load(eMessage); err != nil {
		log.Fatal().Err(err).Msg("message render failed")
	}

	log.Info().
		Int("modules", eModules).
		Str("message", eMessage).
		Dur("interval", eInterval).
		Bool("loop", eLoop).
		Bool("sim", eSim).
		Msg("marquee starting")

	if eSim {
		fmt.Print("\033[2J") // clear once; frames repaint in place
	}

	// ---- Scroll loop & graceful shutdown ----
	ticker := time.NewTicker(eInterval)
	defer ticker.Stop()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	passes := 0
	for {
		select {
		case s := <-ch:
			log.Info().Str("signal", s.String()).Msg("shutting down")
			return

		case <-ticker.C:
			if sc.State() == max7219.StateIdle {
				passes++
				if eRepeats > 0 && passes >= eRepeats {
					log.Info().Int("passes", passes).Msg("marquee finished")
					return
				}
				if err := sc.Load(eMessage); err != nil {
					log.Fatal().Err(err).Msg("message render failed")
				}
			}
			if err := sc.RenderFrame(); err != nil {
				log.Fatal().Err(err).Msg("frame transmit failed")
			}
			if eSim {
				printFrame(dev, eModules)
			}
			// A finished pass leaves the scroller idle; the top of the
			// next cycle reloads or exits.
			if err := sc.Tick(); err != nil {
				log.Fatal().Err(err).Msg("scroll tick failed")
			}
		}
	}
}

// printFrame repaints the logical pixel state in the terminal, two
// characters per LED.
func printFrame(d *max7219.Dev, modules int) {
	var b strings.Builder
	b.WriteString("\033[H")
	for row := 0; row < 8; row++ {
		for m := 0; m < modules; m++ {
			for col := 0; col < 8; col++ {
				on, err := d.Pixel(m, row, col)
				if err != nil {
					return
				}
				if on {
					b.WriteString("##")
				} else {
					b.WriteString("  ")
				}
			}
		}
		b.WriteByte('\n')
	}
	fmt.Print(b.String())
}
