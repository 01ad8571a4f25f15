package max7219

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"periph.io/x/devices/v3/max7219/font"
)

// Errors returned by the driver.
var (
	// ErrOutOfRange reports pixel coordinates outside the configured chain.
	ErrOutOfRange = errors.New("max7219: coordinates out of range")
	// ErrHalted reports an operation on a device after Halt.
	ErrHalted = errors.New("max7219: halted")
)

// Opts is the configuration for a MAX7219 chain.
type Opts struct {
	// Count is the number of cascaded modules (≥1).
	Count int

	// Orientation is the mounting correction applied to every module.
	Orientation Orientation

	// Orientations overrides Orientation per module. When set, its length
	// must equal Count. Index 0 is the leftmost logical module.
	Orientations []Orientation

	// ChainOrder maps the logical module index to its chain position:
	// position 0 latches the first group clocked out and sits furthest
	// from the controller. Defaults to the identity mapping, which suits
	// chains cabled from the far end toward the controller. Must be a
	// permutation of 0..Count-1; see Serpentine for zigzag cabling.
	ChainOrder []int

	// Intensity is the initial LED drive level, clamped to 0 (dimmest)
	// through 15 (brightest).
	Intensity int
}

// Dev is the device handle for a chain of MAX7219 8×8 matrix modules.
type Dev struct {
	// Communication
	c conn.Conn // SPI connection

	// Display geometry
	rect image.Rectangle // 8*count wide, 8 tall

	// Pixel state
	grids  [][8]byte     // one row grid per logical module; bit 7 of a row byte is the leftmost column
	orient []Orientation // per-module mounting correction
	order  []int         // logical module index → chain position

	// State
	halted bool
}

// New creates a MAX7219 chain device from an established connection.
//
// Most callers want NewSPI; New exists for test doubles and transports that
// are not plain SPI ports.
//
// opts can be nil for a single module at a moderate default intensity.
func New(c conn.Conn, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{Count: 1, Intensity: 3}
	}

	if opts.Count < 1 {
		return nil, errors.New("max7219: chain must have at least one module")
	}

	orient := make([]Orientation, opts.Count)
	for m := range orient {
		orient[m] = opts.Orientation
	}
	if opts.Orientations != nil {
		if len(opts.Orientations) != opts.Count {
			return nil, fmt.Errorf("max7219: %d per-module orientations for %d modules", len(opts.Orientations), opts.Count)
		}
		copy(orient, opts.Orientations)
	}
	for m, o := range orient {
		if o.Rotation > Rotation270 {
			return nil, fmt.Errorf("max7219: invalid rotation %d on module %d", o.Rotation, m)
		}
	}

	order := make([]int, opts.Count)
	for m := range order {
		order[m] = m
	}
	if opts.ChainOrder != nil {
		if len(opts.ChainOrder) != opts.Count {
			return nil, fmt.Errorf("max7219: chain order of %d entries for %d modules", len(opts.ChainOrder), opts.Count)
		}
		seen := make([]bool, opts.Count)
		for m, p := range opts.ChainOrder {
			if p < 0 || p >= opts.Count || seen[p] {
				return nil, fmt.Errorf("max7219: chain order %v is not a permutation", opts.ChainOrder)
			}
			seen[p] = true
			order[m] = p
		}
	}

	d := &Dev{
		c:      c,
		rect:   image.Rect(0, 0, 8*opts.Count, 8),
		grids:  make([][8]byte, opts.Count),
		orient: orient,
		order:  order,
	}

	if err := d.init(opts.Intensity); err != nil {
		return nil, err
	}

	return d, nil
}

// NewSPI creates a MAX7219 chain device connected via SPI.
//
// The SPI port is configured for 10MHz, Mode0 (CPOL=0, CPHA=0), 8-bit
// transfers; 10MHz is the maximum serial clock the MAX7219 accepts.
//
// opts can be nil for a single module at a moderate default intensity.
func NewSPI(p spi.Port, opts *Opts) (*Dev, error) {
	c, err := p.Connect(10*1000000, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}
	return New(c, opts)
}

// init wakes the chain and programs the control registers. Every step is
// one broadcast transaction, so each register is written once per module in
// chain order.
func (d *Dev) init(intensity int) error {
	if intensity < 0 {
		intensity = 0
	}
	if intensity > 15 {
		intensity = 15
	}

	count := len(d.grids)
	setup := []struct{ reg, val byte }{
		{regShutdown, 1},    // leave shutdown mode
		{regDisplayTest, 0}, // leave display-test mode
		{regDecodeMode, 0},  // raw bit-per-LED rows, no BCD decoding
		{regScanLimit, 7},   // drive all 8 rows
		{regIntensity, byte(intensity)},
	}
	for _, s := range setup {
		if err := d.c.Tx(broadcastFrame(count, s.reg, s.val), nil); err != nil {
			return err
		}
	}

	// The row registers hold junk at power-up; blank them before the chain
	// shows anything.
	for r := 0; r < 8; r++ {
		if err := d.c.Tx(rowFrame(r, make([]byte, count)), nil); err != nil {
			return err
		}
	}
	return nil
}

// check validates logical pixel coordinates.
func (d *Dev) check(matrix, row, col int) error {
	if matrix < 0 || matrix >= len(d.grids) || row < 0 || row > 7 || col < 0 || col > 7 {
		return fmt.Errorf("%w: matrix %d row %d col %d", ErrOutOfRange, matrix, row, col)
	}
	return nil
}

// plot writes one chain-wide pixel at column x, row y, silently dropping
// coordinates outside the display. Graphics helpers clip rather than error.
func (d *Dev) plot(x, y int, on bool) {
	if x < 0 || y < 0 || y > 7 || x >= 8*len(d.grids) {
		return
	}
	m := x / 8
	pr, pc := d.orient[m].transform(y, x%8)
	if on {
		d.grids[m][pr] |= 0x80 >> uint(pc)
	} else {
		d.grids[m][pr] &^= 0x80 >> uint(pc)
	}
}

// SetPixel sets one pixel in the frame buffer. matrix is the logical module
// index, row 0 the top row, col 0 the leftmost column of that module. The
// configured orientation is applied before the buffer is touched; nothing
// reaches the hardware until Flush.
func (d *Dev) SetPixel(matrix, row, col int, on bool) error {
	if err := d.check(matrix, row, col); err != nil {
		return err
	}
	d.plot(matrix*8+col, row, on)
	return nil
}

// Pixel reads one pixel back from the frame buffer, using the same
// orientation mapping as SetPixel.
func (d *Dev) Pixel(matrix, row, col int) (bool, error) {
	if err := d.check(matrix, row, col); err != nil {
		return false, err
	}
	pr, pc := d.orient[matrix].transform(row, col)
	return d.grids[matrix][pr]&(0x80>>uint(pc)) != 0, nil
}

// InvertPixel flips one pixel in the frame buffer.
func (d *Dev) InvertPixel(matrix, row, col int) error {
	if err := d.check(matrix, row, col); err != nil {
		return err
	}
	pr, pc := d.orient[matrix].transform(row, col)
	d.grids[matrix][pr] ^= 0x80 >> uint(pc)
	return nil
}

// Clear blanks the frame buffer. Nothing reaches the hardware until Flush.
func (d *Dev) Clear() {
	for m := range d.grids {
		d.grids[m] = [8]byte{}
	}
}

// Invert flips every pixel in the frame buffer.
func (d *Dev) Invert() {
	for m := range d.grids {
		for r := range d.grids[m] {
			d.grids[m][r] ^= 0xFF
		}
	}
}

// DrawLine draws a straight line between two chain-wide coordinates,
// endpoints included. Points outside the display are clipped.
func (d *Dev) DrawLine(x0, y0, x1, y1 int, on bool) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		d.plot(x0, y0, on)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// DrawSprite writes a column-bitmap sprite with its left edge at chain
// column x. Each byte is one column, bit 0 the top row; all 8 rows of every
// covered column are replaced. Columns outside the display are clipped.
func (d *Dev) DrawSprite(x int, columns []byte) {
	for i, b := range columns {
		for r := 0; r < 8; r++ {
			d.plot(x+i, r, b&(1<<uint(r)) != 0)
		}
	}
}

// StaticText clears the buffer, renders text against f starting at the left
// edge and flushes. Columns past the right edge are dropped, so a long
// message is truncated rather than wrapped.
func (d *Dev) StaticText(f font.Face, text string) error {
	if d.halted {
		return ErrHalted
	}
	cols, err := font.Render(f, text, nil)
	if err != nil {
		return err
	}
	d.Clear()
	d.DrawSprite(0, cols)
	return d.Flush()
}

// Flush transmits the frame buffer: one transaction per row register, each
// carrying one (register, value) group for every module, so the chain
// updates a full row at a time and stays visually synchronized.
func (d *Dev) Flush() error {
	if d.halted {
		return ErrHalted
	}
	vals := make([]byte, len(d.grids))
	for r := 0; r < 8; r++ {
		for m := range d.grids {
			vals[d.order[m]] = d.grids[m][r]
		}
		if err := d.c.Tx(rowFrame(r, vals), nil); err != nil {
			return err
		}
	}
	return nil
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the image bounds of the display: 8*count wide, 8 tall.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw draws an image onto the display and flushes it. The dst rectangle is
// in chain-wide coordinates; src pixels are converted through the 1-bit
// color model, with a fast path for image1bit.VerticalLSB sources.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return ErrHalted
	}

	if c := dst.Intersect(d.rect); c != dst {
		sp = sp.Add(c.Min.Sub(dst.Min))
		dst = c
	}
	if dst.Empty() {
		return nil
	}

	if img, ok := src.(*image1bit.VerticalLSB); ok {
		for y := dst.Min.Y; y < dst.Max.Y; y++ {
			for x := dst.Min.X; x < dst.Max.X; x++ {
				sx, sy := sp.X+x-dst.Min.X, sp.Y+y-dst.Min.Y
				if !(image.Pt(sx, sy).In(img.Rect)) {
					continue
				}
				d.plot(x, y, img.BitAt(sx, sy) == image1bit.On)
			}
		}
		return d.Flush()
	}

	for y := dst.Min.Y; y < dst.Max.Y; y++ {
		for x := dst.Min.X; x < dst.Max.X; x++ {
			sx, sy := sp.X+x-dst.Min.X, sp.Y+y-dst.Min.Y
			if !(image.Pt(sx, sy).In(src.Bounds())) {
				continue
			}
			bit := image1bit.BitModel.Convert(src.At(sx, sy)).(image1bit.Bit)
			d.plot(x, y, bit == image1bit.On)
		}
	}
	return d.Flush()
}

// Write sends a raw frame: one byte per display column in chain-position
// order, bit 0 the top row. It bypasses the orientation mapping and does
// not touch the frame buffer, making it the fastest path for prepared
// animation data. The data must be exactly 8 bytes per module.
func (d *Dev) Write(columns []byte) (int, error) {
	if d.halted {
		return 0, ErrHalted
	}
	if len(columns) != 8*len(d.grids) {
		return 0, errors.New("max7219: invalid buffer size")
	}
	vals := make([]byte, len(d.grids))
	for r := 0; r < 8; r++ {
		for p := range vals {
			var b byte
			for c := 0; c < 8; c++ {
				if columns[p*8+c]&(1<<uint(r)) != 0 {
					b |= 0x80 >> uint(c)
				}
			}
			vals[p] = b
		}
		if err := d.c.Tx(rowFrame(r, vals), nil); err != nil {
			return 0, err
		}
	}
	return len(columns), nil
}

// SetIntensity sets the LED drive level on every module, clamped to 0
// (dimmest) through 15 (brightest).
func (d *Dev) SetIntensity(level int) error {
	if d.halted {
		return ErrHalted
	}
	if level < 0 {
		level = 0
	}
	if level > 15 {
		level = 15
	}
	return d.c.Tx(broadcastFrame(len(d.grids), regIntensity, byte(level)), nil)
}

// SetModuleIntensity sets the LED drive level on a single module, leaving
// the rest of the chain untouched. Mixed-batch modules often need different
// drive levels to look uniform. matrix is the logical module index, the
// same space the x coordinate addresses; level is clamped like SetIntensity.
func (d *Dev) SetModuleIntensity(matrix, level int) error {
	if d.halted {
		return ErrHalted
	}
	if matrix < 0 || matrix >= len(d.grids) {
		return fmt.Errorf("%w: matrix %d", ErrOutOfRange, matrix)
	}
	if level < 0 {
		level = 0
	}
	if level > 15 {
		level = 15
	}
	return d.c.Tx(chainFrame(len(d.grids), d.order[matrix], regIntensity, byte(level)), nil)
}

// SetTestMode switches display-test mode on every module. Test mode lights
// every LED at full drive regardless of the row registers; switching it off
// restores the previously latched frame.
func (d *Dev) SetTestMode(on bool) error {
	if d.halted {
		return ErrHalted
	}
	var v byte
	if on {
		v = 1
	}
	return d.c.Tx(broadcastFrame(len(d.grids), regDisplayTest, v), nil)
}

// Halt puts every module into shutdown mode, blanking the display. After
// calling Halt, operations fail until a new device is created.
func (d *Dev) Halt() error {
	d.halted = true
	return d.c.Tx(broadcastFrame(len(d.grids), regShutdown, 0), nil)
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("max7219.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var _ display.Drawer = &Dev{}
var _ conn.Resource = &Dev{}
