package max7219

import (
	"errors"

	"periph.io/x/devices/v3/max7219/font"
)

// Scroll errors.
var (
	// ErrIdle reports a scroll operation with no message loaded.
	ErrIdle = errors.New("max7219: scroller is idle")
	// ErrPaused reports a Tick on a paused scroller.
	ErrPaused = errors.New("max7219: scroller is paused")
)

// ScrollState enumerates the scroller lifecycle.
type ScrollState uint8

const (
	// StateIdle means no message is active; Load arms the scroller.
	StateIdle ScrollState = iota
	// StateScrolling means Tick advances the window across the stream.
	StateScrolling
	// StatePaused holds the position until Resume.
	StatePaused
)

// String returns the state name.
func (s ScrollState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScrolling:
		return "scrolling"
	case StatePaused:
		return "paused"
	}
	return "unknown"
}

// ScrollOpts configures a Scroller.
type ScrollOpts struct {
	// Step is the number of columns the window advances per Tick
	// (default 1). A negative step scrolls the other way; pair it with
	// Loop, since a non-looping scroll stops when the offset leaves the
	// stream at either end.
	Step int

	// Loop wraps the window around the end of the stream instead of
	// stopping. The wrap seam carries no implicit separator; append spaces
	// to the message to taste.
	Loop bool

	// Fallback substitutes for runes the face cannot resolve. Leaving it
	// nil makes Load fail on unknown runes.
	Fallback *font.Glyph
}

// Scroller animates a rendered message across the chain.
//
// It is a plain state machine: Tick moves the window, RenderFrame transmits
// the visible frame, and the caller owns the clock. No goroutines, timers
// or sleeps are involved, so an animation loop can be driven by any ticker
// and cancelled between ticks.
type Scroller struct {
	d    *Dev
	face font.Face
	step int
	loop bool
	fb   *font.Glyph

	state  ScrollState
	stream []byte
	offset int
}

// NewScroller creates a scroller for d using face for glyph lookups.
// opts can be nil for a single-column forward step without looping.
func NewScroller(d *Dev, face font.Face, opts *ScrollOpts) *Scroller {
	if opts == nil {
		opts = &ScrollOpts{}
	}
	step := opts.Step
	if step == 0 {
		step = 1
	}
	return &Scroller{
		d:    d,
		face: face,
		step: step,
		loop: opts.Loop,
		fb:   opts.Fallback,
	}
}

// Load renders text into a column stream and arms the scroller at offset 0
// in StateScrolling. Streams narrower than the display are padded with
// blank columns, so an empty message is valid and renders all-blank frames.
// A failed render leaves the scroller unchanged.
func (s *Scroller) Load(text string) error {
	cols, err := font.Render(s.face, text, s.fb)
	if err != nil {
		return err
	}
	if w := s.d.rect.Dx(); len(cols) < w {
		cols = append(cols, make([]byte, w-len(cols))...)
	}
	s.stream = cols
	s.offset = 0
	s.state = StateScrolling
	return nil
}

// Tick advances the scroll position by the configured step. With looping
// enabled the offset wraps modulo the stream length; without it the
// scroller clamps at the end of the stream and goes Idle, after which Tick
// returns ErrIdle. Tick only moves the window; call RenderFrame to
// transmit the visible frame.
func (s *Scroller) Tick() error {
	switch s.state {
	case StateIdle:
		return ErrIdle
	case StatePaused:
		return ErrPaused
	}

	s.offset += s.step
	if s.loop {
		n := len(s.stream)
		s.offset = ((s.offset % n) + n) % n
		return nil
	}
	if s.offset < 0 {
		s.offset = 0
		s.state = StateIdle
	} else if s.offset >= len(s.stream) {
		s.offset = len(s.stream)
		s.state = StateIdle
	}
	return nil
}

// Pause holds the current position: Tick fails with ErrPaused until
// Resume. Pausing an idle scroller fails with ErrIdle.
func (s *Scroller) Pause() error {
	if s.state == StateIdle {
		return ErrIdle
	}
	s.state = StatePaused
	return nil
}

// Resume continues a paused scroll without moving the offset. Resuming an
// idle scroller fails with ErrIdle.
func (s *Scroller) Resume() error {
	if s.state == StateIdle {
		return ErrIdle
	}
	s.state = StateScrolling
	return nil
}

// RenderFrame writes the window at the current offset into the frame
// buffer and flushes it. It is valid while Scrolling or Paused; once the
// scroller has gone Idle the last flushed frame stays on the display.
func (s *Scroller) RenderFrame() error {
	if s.state == StateIdle {
		return ErrIdle
	}
	if s.d.halted {
		return ErrHalted
	}
	w := s.d.rect.Dx()
	for i := 0; i < w; i++ {
		b := s.column(s.offset + i)
		for r := 0; r < 8; r++ {
			s.d.plot(i, r, b&(1<<uint(r)) != 0)
		}
	}
	return s.d.Flush()
}

// column reads the stream with the wrap and padding policy applied: a
// looping stream repeats, a finite one is blank past its end.
func (s *Scroller) column(i int) byte {
	if s.loop {
		return s.stream[i%len(s.stream)]
	}
	if i < len(s.stream) {
		return s.stream[i]
	}
	return 0
}

// State returns the current lifecycle state.
func (s *Scroller) State() ScrollState {
	return s.state
}

// Offset returns the current scroll offset in columns. Once a non-looping
// scroll has finished, the offset equals the stream length.
func (s *Scroller) Offset() int {
	return s.offset
}
