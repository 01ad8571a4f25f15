package max7219

import "fmt"

// Rotation is the number of clockwise quarter turns applied to a module's
// image before it is written to the hardware.
type Rotation uint8

const (
	Rotation0   Rotation = iota // module mounted upright
	Rotation90                  // rotated 90° clockwise
	Rotation180                 // rotated 180°
	Rotation270                 // rotated 90° counter-clockwise
)

// Orientation describes how one module is mounted. The rotation is applied
// first, then the flips, so a module can be corrected for any of the 16
// mounting variants the generic matrix boards come in.
type Orientation struct {
	Rotation       Rotation
	FlipHorizontal bool // mirror left-right
	FlipVertical   bool // mirror top-bottom
}

// transform maps a logical (row, col) on an upright module to the physical
// (row, col) driven on the hardware. It is a bijection on the 8×8 grid, so
// reads go through the same mapping as writes.
func (o Orientation) transform(row, col int) (int, int) {
	switch o.Rotation {
	case Rotation90:
		row, col = col, 7-row
	case Rotation180:
		row, col = 7-row, 7-col
	case Rotation270:
		row, col = 7-col, row
	}
	if o.FlipHorizontal {
		col = 7 - col
	}
	if o.FlipVertical {
		row = 7 - row
	}
	return row, col
}

// Serpentine returns a ChainOrder for a chain cabled back and forth in runs
// of run modules: the logical order walks every run in the same direction
// while the cable reverses on every other run. Modules on reversed runs are
// usually mounted upside down, so pair this with per-module Rotation180.
func Serpentine(count, run int) ([]int, error) {
	if run < 1 || count < 1 || count%run != 0 {
		return nil, fmt.Errorf("max7219: chain of %d modules cannot be cabled in runs of %d", count, run)
	}
	order := make([]int, count)
	for m := range order {
		if (m/run)%2 == 0 {
			order[m] = m
		} else {
			order[m] = (m/run)*run + (run - 1 - m%run)
		}
	}
	return order, nil
}
