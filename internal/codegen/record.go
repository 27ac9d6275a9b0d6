package codegen

import (
	"fmt"
	"strings"

	"github.com/roach88/asterixgen/internal/ir"
)

// emitRecord walks a Category's Items (emitting each Item's own structure
// into ctx as a side effect) and assembles the Category's aggregate Record
// type plus its top-level Decode/Encode pair, per SPEC_FULL.md §4.3.2 and
// §4.3.5-4.3.6.
func emitRecord(ctx *genCtx, cat *ir.Category) (string, error) {
	typeName := CategoryTypeName(cat.IDText)

	var fieldDecls []string
	var decodeAssign []string
	var encodeSet []string
	var encodeWrite []string

	for _, item := range cat.Items {
		itemType := ItemTypeName(item.ID)
		if err := emitStructureBody(ctx, itemType, item.Structure); err != nil {
			return "", err
		}

		octet, bit := item.FspecPosition()

		fieldDecls = append(fieldDecls, fmt.Sprintf("\t%s *%s", itemType, itemType))
		decodeAssign = append(decodeAssign, fmt.Sprintf(
			"\tif fspec.IsSet(%d, %d) {\n\t\tval, err := Decode%s(br)\n\t\tif err != nil {\n\t\t\treturn nil, err\n\t\t}\n\t\tv.%s = val\n\t}\n",
			octet, bit, itemType, itemType))
		encodeSet = append(encodeSet, fmt.Sprintf("\tif v.%s != nil {\n\t\tfspec.Set(%d, %d)\n\t}\n", itemType, octet, bit))
		encodeWrite = append(encodeWrite, fmt.Sprintf(
			"\tif v.%s != nil {\n\t\tif err := v.%s.Encode(bw); err != nil {\n\t\t\treturn err\n\t\t}\n\t}\n", itemType, itemType))
	}

	var out strings.Builder
	fmt.Fprintf(&out, "// %s is the aggregate record for ASTERIX Category %s.\n", typeName, cat.IDText)
	fmt.Fprintf(&out, "type %s struct {\n%s\n}\n\n", typeName, strings.Join(fieldDecls, "\n"))

	fmt.Fprintf(&out,
		"// Decode%s reads FSPEC followed by every present Item, in frn order.\n"+
			"func Decode%s(r io.Reader) (*%s, error) {\n"+
			"\tbr := bitio.NewBitReader(r)\n"+
			"\tfspec, err := bitio.ReadFspecBits(br)\n\tif err != nil {\n\t\treturn nil, err\n\t}\n"+
			"\tv := &%s{}\n%s\treturn v, nil\n}\n\n",
		typeName, typeName, typeName, typeName, strings.Join(decodeAssign, ""))

	fmt.Fprintf(&out,
		"// Encode writes FSPEC followed by every present Item, in frn order, and\n"+
			"// flushes the outermost byte boundary exactly once.\n"+
			"func (v *%s) Encode(w io.Writer) error {\n"+
			"\tbw := bitio.NewBitWriter(w)\n"+
			"\tfspec := bitio.NewFspec()\n%s"+
			"\tif err := fspec.WriteBits(bw); err != nil {\n\t\treturn err\n\t}\n%s"+
			"\treturn bw.Flush()\n}\n\n",
		typeName, strings.Join(encodeSet, ""), strings.Join(encodeWrite, ""))

	return out.String(), nil
}
