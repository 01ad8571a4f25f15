package max7219

// MAX7219 register addresses.
//
// Each 16-bit group shifted into the chain is a (register, value) pair. The
// no-op register exists for daisy-chain addressing: a group written to it
// has no effect, so a transaction can target a single module by padding
// every other chain position with no-op groups.
const (
	regNoOp   byte = 0x00
	regDigit0 byte = 0x01 // row 0; registers 0x01-0x08 hold the 8 display rows
	regDigit1 byte = 0x02
	regDigit2 byte = 0x03
	regDigit3 byte = 0x04
	regDigit4 byte = 0x05
	regDigit5 byte = 0x06
	regDigit6 byte = 0x07
	regDigit7 byte = 0x08

	regDecodeMode  byte = 0x09
	regIntensity   byte = 0x0A
	regScanLimit   byte = 0x0B
	regShutdown    byte = 0x0C
	regDisplayTest byte = 0x0F
)

// Chain positions are numbered in shift order: position 0 latches the first
// group clocked out, which ends up in the module furthest from the
// controller after the whole frame has passed through the chain. The module
// wired directly to the controller is position count-1 and latches the last
// group.

// chainFrame builds one transaction that writes a register on the module at
// the given chain position, padding every other position with no-op groups.
func chainFrame(count, pos int, reg, data byte) []byte {
	f := make([]byte, 0, 2*count)
	for p := 0; p < count; p++ {
		if p == pos {
			f = append(f, reg, data)
		} else {
			f = append(f, regNoOp, 0x00)
		}
	}
	return f
}

// broadcastFrame builds one transaction that writes the same register and
// value on every module in the chain.
func broadcastFrame(count int, reg, data byte) []byte {
	f := make([]byte, 0, 2*count)
	for p := 0; p < count; p++ {
		f = append(f, reg, data)
	}
	return f
}

// rowFrame builds one transaction that writes one row register across the
// whole chain: vals[p] is the row byte latched by chain position p.
func rowFrame(row int, vals []byte) []byte {
	reg := regDigit0 + byte(row)
	f := make([]byte, 0, 2*len(vals))
	for _, v := range vals {
		f = append(f, reg, v)
	}
	return f
}
