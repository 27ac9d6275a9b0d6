package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItem_FspecPosition(t *testing.T) {
	cases := []struct {
		frn        int
		octet, bit int
	}{
		{1, 0, 1},
		{7, 0, 7},
		{8, 1, 1},
		{14, 1, 7},
		{15, 2, 1},
	}

	for _, tc := range cases {
		item := &Item{FRN: tc.frn}
		octet, bit := item.FspecPosition()
		assert.Equal(t, tc.octet, octet, "FRN %d octet", tc.frn)
		assert.Equal(t, tc.bit, bit, "FRN %d bit", tc.frn)
	}
}

func TestField_Bits(t *testing.T) {
	f := NewField("sac", 8)
	assert.Equal(t, 8, f.Bits())
	assert.Equal(t, "sac", f.Name)
}

func TestSpare_Bits(t *testing.T) {
	s := NewSpare(3)
	assert.Equal(t, 3, s.Bits())
}

func TestEnum_Bits(t *testing.T) {
	e := NewEnum("typ", 3, []EnumValue{{Name: "PSR", Numeric: 1}, {Name: "SSR", Numeric: 2}})
	assert.Equal(t, 3, e.Bits())
	assert.Len(t, e.Values, 2)
}

func TestEPB_BitsIncludesPresenceBit(t *testing.T) {
	inner := NewField("x", 7)
	epb := EPB{Inner: inner}
	assert.Equal(t, 8, epb.Bits())
}

func TestEPB_WrapsEnum(t *testing.T) {
	inner := NewEnum("typ", 3, []EnumValue{{Name: "PSR", Numeric: 1}})
	epb := EPB{Inner: inner}
	assert.Equal(t, 4, epb.Bits())
}
