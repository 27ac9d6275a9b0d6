package rawschema

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// Category is the raw, unvalidated form of a <category> document, as
// materialized directly from XML attributes and element order.
type Category struct {
	XMLName xml.Name `xml:"category"`
	ID      string   `xml:"id,attr"`
	Items   []Item   `xml:"item"`
}

// Item is the raw form of an <item> element. Exactly one of the structure
// fields is populated; internal/compiler is responsible for enforcing that.
type Item struct {
	ID  string `xml:"id,attr"`
	FRN string `xml:"frn,attr"`

	Fixed      *Fixed      `xml:"fixed"`
	Extended   *Extended   `xml:"extended"`
	Repetitive *Repetitive `xml:"repetitive"`
	Explicit   *Explicit   `xml:"explicit"`
	Compound   *Compound   `xml:"compound"`
}

// Fixed is the raw form of a <fixed> structure.
type Fixed struct {
	Bytes    string    `xml:"bytes,attr"`
	Elements []Element `xml:",any"`
}

// Part is the raw form of a <part> child of <extended>.
type Part struct {
	Index    string    `xml:"index,attr"`
	Elements []Element `xml:",any"`
}

// Extended is the raw form of an <extended> structure.
type Extended struct {
	PartBytes string `xml:"part_bytes,attr"`
	Parts     []Part `xml:"part"`
}

// Repetitive is the raw form of a <repetitive> structure.
type Repetitive struct {
	Bytes       string    `xml:"bytes,attr"`
	CounterBits string    `xml:"counter_bits,attr"`
	Elements    []Element `xml:",any"`
}

// Explicit is the raw form of an <explicit> structure.
type Explicit struct {
	Bytes    string    `xml:"bytes,attr"`
	Elements []Element `xml:",any"`
}

// Subfield is the raw form of a <subfield> child of <compound>.
type Subfield struct {
	Index string `xml:"index,attr"`

	Fixed      *Fixed      `xml:"fixed"`
	Extended   *Extended   `xml:"extended"`
	Repetitive *Repetitive `xml:"repetitive"`
	Explicit   *Explicit   `xml:"explicit"`
}

// Compound is the raw form of a <compound> structure.
type Compound struct {
	Subfields []Subfield `xml:"subfield"`
}

// Element is the raw, undiscriminated form of a <field>, <spare>, <enum>,
// or <epb> child. XMLName.Local records which one it was; internal/compiler
// switches on it.
type Element struct {
	XMLName xml.Name

	Name string `xml:"name,attr"`
	Bits string `xml:"bits,attr"`

	// EnumValues is populated only when XMLName.Local == "enum".
	EnumValues []EnumValue `xml:"value"`

	// Inner is populated only when XMLName.Local == "epb": its single
	// <field> or <enum> child.
	Inner []Element `xml:",any"`
}

// EnumValue is the raw form of a <value name=".." numeric=".."/> child of
// an <enum>.
type EnumValue struct {
	Name    string `xml:"name,attr"`
	Numeric string `xml:"numeric,attr"`
}

// Load reads and unmarshals the schema document at path.
func Load(path string) (*Category, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("rawschema: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse unmarshals a schema document from r.
func Parse(r io.Reader) (*Category, error) {
	var cat Category
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&cat); err != nil {
		return nil, fmt.Errorf("rawschema: decode: %w", err)
	}
	return &cat, nil
}
