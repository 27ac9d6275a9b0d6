package codegen

import (
	"fmt"
	"strings"

	"github.com/roach88/asterixgen/internal/ir"
)

// emitStructureBody emits the full type declaration plus Decode/Encode pair
// for typeName, dispatching on the IR structure kind. It is used both for
// an Item's own top-level structure and, recursively, for a Compound's
// Subfields.
func emitStructureBody(ctx *genCtx, typeName string, s ir.Structure) error {
	switch st := s.(type) {
	case *ir.Fixed:
		fields, decodeLines, encodeLines := emitElements(ctx, typeName, st.Elements)
		writeAggregate(ctx, typeName, fields, decodeLines, encodeLines)
		return nil
	case *ir.Explicit:
		return emitExplicit(ctx, typeName, st)
	case *ir.Repetitive:
		emitRepetitive(ctx, typeName, st)
		return nil
	case *ir.Extended:
		emitExtended(ctx, typeName, st)
		return nil
	case *ir.Compound:
		emitCompound(ctx, typeName, st)
		return nil
	default:
		return fmt.Errorf("codegen: unhandled structure kind %T for %s", s, typeName)
	}
}

// writeAggregate emits a plain struct plus its Decode/Encode pair from
// pre-compiled field/decode/encode lines. Used directly by Fixed and, with
// their own wrapping, by Extended's Parts and Repetitive's element type.
func writeAggregate(ctx *genCtx, typeName string, fieldDecls, decodeLines, encodeLines []string) {
	fmt.Fprintf(&ctx.aux, "type %s struct {\n%s\n}\n\n", typeName, strings.Join(fieldDecls, "\n"))

	fmt.Fprintf(&ctx.aux, "func Decode%s(r *bitio.BitReader) (*%s, error) {\n\tv := &%s{}\n%s\treturn v, nil\n}\n\n",
		typeName, typeName, typeName, strings.Join(decodeLines, ""))

	fmt.Fprintf(&ctx.aux, "func (v *%s) Encode(w *bitio.BitWriter) error {\n%s\treturn nil\n}\n\n",
		typeName, strings.Join(encodeLines, ""))
}

func emitExplicit(ctx *genCtx, typeName string, ex *ir.Explicit) error {
	fields, decodeLines, encodeLines := emitElements(ctx, typeName, ex.Elements)
	declaredBits := ex.Bytes * 8
	lengthByte := ex.Bytes + 1

	fmt.Fprintf(&ctx.aux, "type %s struct {\n%s\n}\n\n", typeName, strings.Join(fields, "\n"))

	fmt.Fprintf(&ctx.aux,
		"func Decode%s(r *bitio.BitReader) (*%s, error) {\n"+
			"\tlengthRaw, err := r.ReadBits(8)\n\tif err != nil {\n\t\treturn nil, err\n\t}\n"+
			"\tv := &%s{}\n%s"+
			"\tsurplus := int(lengthRaw)*8 - 8 - %d\n"+
			"\tif surplus < 0 {\n\t\treturn nil, &bitio.InvalidDataError{Detail: %q}\n\t}\n"+
			"\tfor surplus > 0 {\n\t\tchunk := surplus\n\t\tif chunk > 32 {\n\t\t\tchunk = 32\n\t\t}\n"+
			"\t\tif _, err := r.ReadBits(chunk); err != nil {\n\t\t\treturn nil, err\n\t\t}\n\t\tsurplus -= chunk\n\t}\n"+
			"\treturn v, nil\n}\n\n",
		typeName, typeName, typeName, strings.Join(decodeLines, ""), declaredBits,
		fmt.Sprintf("%s: explicit length byte under-specifies required payload", typeName))

	fmt.Fprintf(&ctx.aux,
		"func (v *%s) Encode(w *bitio.BitWriter) error {\n"+
			"\tif err := w.WriteBits(%d, 8); err != nil {\n\t\treturn err\n\t}\n%s"+
			"\treturn nil\n}\n\n",
		typeName, lengthByte, strings.Join(encodeLines, ""))

	return nil
}

func emitRepetitive(ctx *genCtx, typeName string, rep *ir.Repetitive) {
	elemType := typeName + "Elem"
	fields, decodeLines, encodeLines := emitElements(ctx, typeName, rep.Elements)
	writeAggregate(ctx, elemType, fields, decodeLines, encodeLines)

	fmt.Fprintf(&ctx.aux,
		"type %s struct {\n\tValues []%s\n}\n\n"+
			"func Decode%s(r *bitio.BitReader) (*%s, error) {\n"+
			"\tcount, err := r.ReadBits(%d)\n\tif err != nil {\n\t\treturn nil, err\n\t}\n"+
			"\tv := &%s{Values: make([]%s, 0, count)}\n"+
			"\tfor i := uint64(0); i < count; i++ {\n"+
			"\t\telem, err := Decode%s(r)\n\t\tif err != nil {\n\t\t\treturn nil, err\n\t\t}\n"+
			"\t\tv.Values = append(v.Values, *elem)\n\t}\n"+
			"\treturn v, nil\n}\n\n"+
			"func (v *%s) Encode(w *bitio.BitWriter) error {\n"+
			"\tif err := w.WriteBits(uint64(len(v.Values)), %d); err != nil {\n\t\treturn err\n\t}\n"+
			"\tfor i := range v.Values {\n\t\tif err := v.Values[i].Encode(w); err != nil {\n\t\t\treturn err\n\t\t}\n\t}\n"+
			"\treturn nil\n}\n\n",
		typeName, elemType,
		typeName, typeName, rep.CounterBits, typeName, elemType, elemType,
		typeName, rep.CounterBits)
}

func partFieldName(index int) string { return fmt.Sprintf("Part%d", index) }

func emitExtended(ctx *genCtx, typeName string, ext *ir.Extended) {
	var fieldDecls []string
	for i, part := range ext.Parts {
		partType := PartTypeName(typeName, part.Index)
		fields, decodeLines, encodeLines := emitElements(ctx, partType, part.Elements)
		writeAggregate(ctx, partType, fields, decodeLines, encodeLines)

		if i == 0 {
			fieldDecls = append(fieldDecls, fmt.Sprintf("\t%s %s", partFieldName(part.Index), partType))
		} else {
			fieldDecls = append(fieldDecls, fmt.Sprintf("\t%s *%s", partFieldName(part.Index), partType))
		}
	}

	var decode strings.Builder
	fmt.Fprintf(&decode, "\tpart0, err := Decode%s(r)\n\tif err != nil {\n\t\treturn nil, err\n\t}\n\tv.%s = *part0\n",
		PartTypeName(typeName, ext.Parts[0].Index), partFieldName(ext.Parts[0].Index))
	decode.WriteString("\tfx, err := r.ReadBits(1)\n\tif err != nil {\n\t\treturn nil, err\n\t}\n")
	decode.WriteString("\tif fx == 0 {\n\t\treturn v, nil\n\t}\n")

	var encode strings.Builder
	fmt.Fprintf(&encode, "\tif err := v.%s.Encode(w); err != nil {\n\t\treturn err\n\t}\n", partFieldName(ext.Parts[0].Index))

	for i := 1; i < len(ext.Parts); i++ {
		part := ext.Parts[i]
		partType := PartTypeName(typeName, part.Index)
		field := partFieldName(part.Index)

		fmt.Fprintf(&decode, "\tpart%d, err := Decode%s(r)\n\tif err != nil {\n\t\treturn nil, err\n\t}\n\tv.%s = part%d\n", part.Index, partType, field, part.Index)
		decode.WriteString("\tfx, err = r.ReadBits(1)\n\tif err != nil {\n\t\treturn nil, err\n\t}\n")
		decode.WriteString("\tif fx == 0 {\n\t\treturn v, nil\n\t}\n")

		fmt.Fprintf(&encode, "\tif v.%s == nil {\n\t\treturn w.WriteBits(0, 1)\n\t}\n", field)
		encode.WriteString("\tif err := w.WriteBits(1, 1); err != nil {\n\t\treturn err\n\t}\n")
		fmt.Fprintf(&encode, "\tif err := v.%s.Encode(w); err != nil {\n\t\treturn err\n\t}\n", field)
	}

	fmt.Fprintf(&decode, "\treturn nil, &bitio.InvalidDataError{Detail: %q}\n",
		fmt.Sprintf("%s: fx chain continues past declared parts", typeName))
	encode.WriteString("\treturn w.WriteBits(0, 1)\n")

	fmt.Fprintf(&ctx.aux, "type %s struct {\n%s\n}\n\n", typeName, strings.Join(fieldDecls, "\n"))
	fmt.Fprintf(&ctx.aux, "func Decode%s(r *bitio.BitReader) (*%s, error) {\n\tv := &%s{}\n%s\n}\n\n", typeName, typeName, typeName, decode.String())
	fmt.Fprintf(&ctx.aux, "func (v *%s) Encode(w *bitio.BitWriter) error {\n%s}\n\n", typeName, encode.String())
}

func subFieldName(index int) string { return fmt.Sprintf("Sub%d", index) }

func fspecPositionForOrdinal(ordinal int) (octet, bit int) {
	return (ordinal - 1) / 7, ((ordinal - 1) % 7) + 1
}

func emitCompound(ctx *genCtx, typeName string, c *ir.Compound) {
	var fieldDecls []string
	var decodeAssign []string
	var encodeSet []string
	var encodeWrite []string

	for _, sub := range c.Subfields {
		subType := SubTypeName(typeName, sub.Index)
		emitStructureBody(ctx, subType, sub.Structure)

		field := subFieldName(sub.Index)
		octet, bit := fspecPositionForOrdinal(sub.Index)

		fieldDecls = append(fieldDecls, fmt.Sprintf("\t%s *%s", field, subType))
		decodeAssign = append(decodeAssign, fmt.Sprintf(
			"\tif fspec.IsSet(%d, %d) {\n\t\tsub, err := Decode%s(r)\n\t\tif err != nil {\n\t\t\treturn nil, err\n\t\t}\n\t\tv.%s = sub\n\t}\n",
			octet, bit, subType, field))
		encodeSet = append(encodeSet, fmt.Sprintf("\tif v.%s != nil {\n\t\tfspec.Set(%d, %d)\n\t}\n", field, octet, bit))
		encodeWrite = append(encodeWrite, fmt.Sprintf(
			"\tif v.%s != nil {\n\t\tif err := v.%s.Encode(w); err != nil {\n\t\t\treturn err\n\t\t}\n\t}\n", field, field))
	}

	fmt.Fprintf(&ctx.aux, "type %s struct {\n%s\n}\n\n", typeName, strings.Join(fieldDecls, "\n"))

	fmt.Fprintf(&ctx.aux,
		"func Decode%s(r *bitio.BitReader) (*%s, error) {\n"+
			"\tfspec, err := bitio.ReadFspecBits(r)\n\tif err != nil {\n\t\treturn nil, err\n\t}\n"+
			"\tv := &%s{}\n%s\treturn v, nil\n}\n\n",
		typeName, typeName, typeName, strings.Join(decodeAssign, ""))

	fmt.Fprintf(&ctx.aux,
		"func (v *%s) Encode(w *bitio.BitWriter) error {\n"+
			"\tfspec := bitio.NewFspec()\n%s"+
			"\tif err := fspec.WriteBits(w); err != nil {\n\t\treturn err\n\t}\n%s"+
			"\treturn nil\n}\n\n",
		typeName, strings.Join(encodeSet, ""), strings.Join(encodeWrite, ""))
}
