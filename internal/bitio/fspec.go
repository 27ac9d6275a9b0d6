package bitio

import "io"

// maxFspecOctets bounds the number of octets ReadFspec will follow an FX
// chain through before giving up. SPEC_FULL.md §4.1.3 suggests 16.
const maxFspecOctets = 16

// Fspec is the variable-length presence bitmap prefixing an ASTERIX record
// or Compound item. Octet k covers 1-indexed entries 7k+1..7k+7; bit 0 of
// each octet is the FX (extension) bit, present in the wire encoding but
// never stored directly here.
type Fspec struct {
	// octets[i] holds bits 7..1 for octet i; bit 0 is always 0 and is
	// computed at write time.
	octets []byte
}

// NewFspec returns an empty Fspec with no bits set.
func NewFspec() *Fspec {
	return &Fspec{}
}

// Set marks the entry at (octet, bit) present. bit is 1..=7, counted from
// the MSB of that octet.
func (f *Fspec) Set(octet, bit int) {
	f.ensureOctet(octet)
	f.octets[octet] |= 1 << uint(8-bit)
}

// IsSet reports whether the entry at (octet, bit) is present.
func (f *Fspec) IsSet(octet, bit int) bool {
	if octet < 0 || octet >= len(f.octets) {
		return false
	}
	return f.octets[octet]&(1<<uint(8-bit)) != 0
}

func (f *Fspec) ensureOctet(octet int) {
	for len(f.octets) <= octet {
		f.octets = append(f.octets, 0)
	}
}

// WriteTo emits the minimal number of octets covering the highest set bit,
// with FX=1 on every octet but the last. Trailing all-zero octets are never
// emitted; an entirely empty Fspec still emits one zero octet, since every
// ASTERIX record carries at least one FSPEC octet on the wire.
func (f *Fspec) WriteTo(w io.Writer) error {
	n := len(f.octets)
	for n > 0 && f.octets[n-1] == 0 {
		n--
	}
	if n == 0 {
		n = 1
	}

	for i := 0; i < n; i++ {
		var b byte
		if i < len(f.octets) {
			b = f.octets[i]
		}
		if i < n-1 {
			b |= 1 // FX=1: another octet follows
		}
		if _, err := w.Write([]byte{b}); err != nil {
			return ioError(err)
		}
	}

	return nil
}

// ReadFspec reads octets from r until one with FX=0 is encountered,
// returning an *InvalidDataError if the chain exceeds maxFspecOctets.
func ReadFspec(r io.Reader) (*Fspec, error) {
	var octets []byte
	var buf [1]byte

	for i := 0; i < maxFspecOctets; i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, ioError(err)
		}
		octets = append(octets, buf[0]&0xFE)
		if buf[0]&1 == 0 {
			return &Fspec{octets: octets}, nil
		}
	}

	return nil, invalidDataf("fspec chain exceeds %d octets", maxFspecOctets)
}

// ReadFspecBits reads an Fspec bit-by-bit through an already-open BitReader,
// for use mid-record where a fresh byte-aligned io.Reader is not available
// (a Compound structure's own presence bitmap, decoded after its enclosing
// Item's FSPEC bit has already been consumed).
func ReadFspecBits(r *BitReader) (*Fspec, error) {
	f := NewFspec()

	for octet := 0; octet < maxFspecOctets; octet++ {
		for bit := 1; bit <= 7; bit++ {
			v, err := r.ReadBits(1)
			if err != nil {
				return nil, err
			}
			if v != 0 {
				f.Set(octet, bit)
			}
		}

		fx, err := r.ReadBits(1)
		if err != nil {
			return nil, err
		}
		if fx == 0 {
			return f, nil
		}
	}

	return nil, invalidDataf("fspec chain exceeds %d octets", maxFspecOctets)
}

// WriteBits writes the Fspec through an already-open BitWriter, the
// bit-granular counterpart to WriteTo used mid-record.
func (f *Fspec) WriteBits(w *BitWriter) error {
	n := len(f.octets)
	for n > 0 && f.octets[n-1] == 0 {
		n--
	}
	if n == 0 {
		n = 1
	}

	for octet := 0; octet < n; octet++ {
		for bit := 1; bit <= 7; bit++ {
			v := uint64(0)
			if f.IsSet(octet, bit) {
				v = 1
			}
			if err := w.WriteBits(v, 1); err != nil {
				return err
			}
		}

		fx := uint64(1)
		if octet == n-1 {
			fx = 0
		}
		if err := w.WriteBits(fx, 1); err != nil {
			return err
		}
	}

	return nil
}
