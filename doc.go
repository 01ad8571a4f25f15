// Package max7219 controls a chain of MAX7219-driven 8×8 LED dot-matrix
// modules via SPI.
//
// The MAX7219 is an 8-digit LED display driver; on matrix modules each
// "digit" register holds one row of 8 pixels. Modules are daisy-chained
// through their DOUT pins, so any number of them share one SPI bus and
// behave as a single wide display. This driver implements the
// display.Drawer interface from periph.io.
//
// # Display Characteristics
//
// - 1-bit pixels, 8 rows by 8*count columns
// - 16 LED drive levels (0-15), set chain-wide or per module
// - Display-test mode lighting every LED at full drive
// - Per-module rotation and mirroring correction for the cheap multi-module
// boards that arrive mounted every which way
// - Arbitrary chain order, including serpentine cabling
//
// # Chain Addressing
//
// Every SPI transaction carries exactly one 16-bit (register, value) group
// per module. Groups shift through the chain as they are clocked in, so the
// first group ends up in the module furthest from the controller and the
// last group in the module wired to it. Writing a single module means
// padding every other position with no-op groups; this driver builds those
// frames internally and callers only see logical module indexes.
//
// # Hardware Connection
//
// Connect the first module to your system via SPI and chain the rest:
//
//	Module Pin → System Pin
//	GND        → GND
//	VCC        → 5V (logic tolerates 3.3V MOSI on most boards)
//	CLK        → SPI Clock (SCLK)
//	DIN        → SPI Data (MOSI)
//	CS         → SPI Chip Select (CE0)
//	DOUT       → DIN of the next module in the chain
//
// # Basic Usage
//
// Example of creating the device and scrolling a message:
//
//	package main
//
//	import (
//		"time"
//
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/devices/v3/max7219"
//		"periph.io/x/devices/v3/max7219/font"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		// Initialize periph.io
//		host.Init()
//
//		// Open SPI bus
//		spiBus, _ := spireg.Open("")
//
//		// Create a 4-module chain
//		dev, _ := max7219.NewSPI(spiBus, &max7219.Opts{
//			Count:     4,
//			Intensity: 3,
//		})
//		defer dev.Halt()
//
//		// Scroll a message across the chain
//		s := max7219.NewScroller(dev, font.Font5x7, &max7219.ScrollOpts{Loop: true})
//		s.Load("HELLO WORLD ")
//		for range time.Tick(50 * time.Millisecond) {
//			s.RenderFrame()
//			s.Tick()
//		}
//	}
//
// # Pixel Addressing
//
// SetPixel and Pixel address the display as (matrix, row, col): matrix is
// the logical module index with 0 leftmost, row 0 is the top and col 0 the
// left column of that module. Chain-wide helpers (DrawLine, DrawSprite,
// Draw) use (x, y) with x across the whole chain. All drawing lands in an
// in-memory frame buffer; Flush transmits it with one transaction per row
// register, eight per full frame, so all modules update a row at a time.
//
// # Orientation and Layout
//
// Multi-module boards are frequently assembled with individual matrices
// rotated, and longer installations cable modules in whatever order is
// convenient. Both are corrected in configuration, not in calling code:
//
//	// Four modules, each mounted rotated 90° clockwise.
//	dev, _ := max7219.NewSPI(spiBus, &max7219.Opts{
//		Count:       4,
//		Orientation: max7219.Orientation{Rotation: max7219.Rotation90},
//	})
//
//	// Eight modules cabled in two runs of four, zigzag.
//	order, _ := max7219.Serpentine(8, 4)
//	dev, _ = max7219.NewSPI(spiBus, &max7219.Opts{
//		Count:      8,
//		ChainOrder: order,
//	})
//
// The orientation transform is applied when pixels are written, so reads
// through Pixel always round-trip and rendering code never sees the
// physical layout.
//
// # Fonts
//
// Text rendering goes through the font subpackage. font.Font5x7 is a
// built-in 5×7 ASCII face in the column format the hardware wants;
// font.FromTinyfont adapts any tinygo.org/x/tinyfont face. Runes a face
// cannot resolve fail the render unless a fallback glyph is configured.
//
// # Scrolling Text
//
// Scroller is a tick-driven state machine (Idle, Scrolling, Paused) with no
// internal clock: each Tick advances the window one step and RenderFrame
// flushes the visible columns. Timing, pause control and cancellation stay
// in the caller's loop, which keeps the driver free of goroutines.
//
// # Datasheet
//
// For register descriptions and timing information, see:
// https://datasheets.maximintegrated.com/en/ds/MAX7219-MAX7221.pdf
//
// # Compatibility with periph.io
//
// This driver implements the display.Drawer interface from periph.io:
// https://pkg.go.dev/periph.io/x/conn/v3/display
//
// It can be used with any periph.io tool or library expecting a
// display.Drawer.
package max7219
