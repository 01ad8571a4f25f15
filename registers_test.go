package max7219

import (
	"bytes"
	"testing"
)

func TestRegisterValues(t *testing.T) {
	tests := []struct {
		name string
		got  byte
		want byte
	}{
		{"no-op", regNoOp, 0x00},
		{"digit 0", regDigit0, 0x01},
		{"digit 7", regDigit7, 0x08},
		{"decode mode", regDecodeMode, 0x09},
		{"intensity", regIntensity, 0x0A},
		{"scan limit", regScanLimit, 0x0B},
		{"shutdown", regShutdown, 0x0C},
		{"display test", regDisplayTest, 0x0F},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("register = 0x%02X, want 0x%02X", tt.got, tt.want)
			}
		})
	}

	// The eight row registers are contiguous so rowFrame can index them.
	for r := 0; r < 8; r++ {
		if got, want := regDigit0+byte(r), byte(0x01+r); got != want {
			t.Errorf("row %d register = 0x%02X, want 0x%02X", r, got, want)
		}
	}
}

func TestChainFrame(t *testing.T) {
	tests := []struct {
		name  string
		count int
		pos   int
		want  []byte
	}{
		{"single module", 1, 0, []byte{0x0A, 0x07}},
		{"first of four", 4, 0, []byte{0x0A, 0x07, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},
		{"last of four", 4, 3, []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x0A, 0x07}},
		{"middle of three", 3, 1, []byte{0x00, 0x00, 0x0A, 0x07, 0x00, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := chainFrame(tt.count, tt.pos, regIntensity, 0x07)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("chainFrame() = %#v, want %#v", got, tt.want)
			}
			if len(got) != 2*tt.count {
				t.Errorf("chainFrame() length = %d, want one group per module (%d bytes)", len(got), 2*tt.count)
			}
		})
	}
}

func TestBroadcastFrame(t *testing.T) {
	tests := []struct {
		name  string
		count int
		reg   byte
		data  byte
		want  []byte
	}{
		{"single module", 1, 0x0C, 0x01, []byte{0x0C, 0x01}},
		{"three modules", 3, 0x0B, 0x07, []byte{0x0B, 0x07, 0x0B, 0x07, 0x0B, 0x07}},
		{"intensity pair", 2, 0x0A, 0x0F, []byte{0x0A, 0x0F, 0x0A, 0x0F}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := broadcastFrame(tt.count, tt.reg, tt.data)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("broadcastFrame() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestRowFrame(t *testing.T) {
	tests := []struct {
		name string
		row  int
		vals []byte
		want []byte
	}{
		{"row 0 single", 0, []byte{0xAA}, []byte{0x01, 0xAA}},
		{"row 7 single", 7, []byte{0x55}, []byte{0x08, 0x55}},
		{"row 2 three modules", 2, []byte{0x80, 0x00, 0x01}, []byte{0x03, 0x80, 0x03, 0x00, 0x03, 0x01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rowFrame(tt.row, tt.vals)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("rowFrame() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestFrameBuildersAllocate(t *testing.T) {
	// Builders must hand out fresh slices: a caller scribbling over one
	// transaction cannot corrupt the next.
	a := broadcastFrame(2, regShutdown, 1)
	b := broadcastFrame(2, regShutdown, 1)
	a[0] = 0xFF
	if b[0] != regShutdown {
		t.Error("broadcastFrame() reused a previous buffer")
	}

	vals := []byte{0x12, 0x34}
	f := rowFrame(0, vals)
	f[1] = 0xFF
	if vals[0] != 0x12 {
		t.Error("rowFrame() aliased the caller's values")
	}
}
