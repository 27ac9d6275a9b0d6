package codegen

import (
	"fmt"
	"unicode"

	"github.com/roach88/asterixgen/internal/ir"
)

// nativeTypeForBits selects the smallest unsigned Go integer type holding a
// field of the given bit width, per SPEC_FULL.md §4.3.7.
func nativeTypeForBits(bits int) string {
	switch {
	case bits <= 8:
		return "uint8"
	case bits <= 16:
		return "uint16"
	case bits <= 32:
		return "uint32"
	default:
		return "uint64"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func innerElementName(inner ir.EPBInner) string {
	switch v := inner.(type) {
	case ir.Field:
		return v.Name
	case ir.Enum:
		return v.Name
	default:
		return ""
	}
}

// emitElements compiles a flat element sequence (a Fixed body, an Extended
// Part body, a Repetitive repetition body, or an Explicit body) into struct
// field declarations plus the decode/encode statement lines that populate
// them, assuming the enclosing function's receiver/local variable is named
// v and its BitReader/BitWriter parameter is named r/w respectively. Any
// Enum encountered (bare or EPB-wrapped) has its defined type emitted into
// ctx as a side effect, named <ownerType><FieldName(enum.Name)>.
func emitElements(ctx *genCtx, ownerType string, elements []ir.Element) (fieldDecls, decodeLines, encodeLines []string) {
	for _, el := range elements {
		switch e := el.(type) {
		case ir.Field:
			goName := FieldName(e.Name)
			native := nativeTypeForBits(e.Bits())
			localVar := lowerFirst(goName) + "Raw"

			fieldDecls = append(fieldDecls, fmt.Sprintf("\t%s %s", goName, native))
			decodeLines = append(decodeLines, fmt.Sprintf(
				"\t%s, err := r.ReadBits(%d)\n\tif err != nil {\n\t\treturn nil, err\n\t}\n\tv.%s = %s(%s)\n",
				localVar, e.Bits(), goName, native, localVar))
			encodeLines = append(encodeLines, fmt.Sprintf(
				"\tif err := w.WriteBits(uint64(v.%s), %d); err != nil {\n\t\treturn err\n\t}\n",
				goName, e.Bits()))

		case ir.Spare:
			decodeLines = append(decodeLines, fmt.Sprintf(
				"\tif _, err := r.ReadBits(%d); err != nil {\n\t\treturn nil, err\n\t}\n", e.Bits()))
			encodeLines = append(encodeLines, fmt.Sprintf(
				"\tif err := w.WriteBits(0, %d); err != nil {\n\t\treturn err\n\t}\n", e.Bits()))

		case ir.Enum:
			enumType := EnumTypeName(ownerType, e.Name)
			emitEnumDecl(ctx, enumType, e)

			goName := FieldName(e.Name)
			localVar := lowerFirst(goName) + "Raw"

			fieldDecls = append(fieldDecls, fmt.Sprintf("\t%s %s", goName, enumType))
			decodeLines = append(decodeLines, fmt.Sprintf(
				"\t%s, err := r.ReadBits(%d)\n\tif err != nil {\n\t\treturn nil, err\n\t}\n\tv.%s = decode%s(uint8(%s))\n",
				localVar, e.Bits(), goName, enumType, localVar))
			encodeLines = append(encodeLines, fmt.Sprintf(
				"\tif err := w.WriteBits(uint64(v.%s.Raw), %d); err != nil {\n\t\treturn err\n\t}\n",
				goName, e.Bits()))

		case ir.EPB:
			goName := FieldName(innerElementName(e.Inner))
			lower := lowerFirst(goName)
			presenceVar := lower + "Presence"
			rawVar := lower + "Raw"
			innerBits := e.Inner.Bits()

			switch inner := e.Inner.(type) {
			case ir.Field:
				native := nativeTypeForBits(innerBits)
				fieldDecls = append(fieldDecls, fmt.Sprintf("\t%s *%s", goName, native))
				decodeLines = append(decodeLines, fmt.Sprintf(
					"\t%s, err := r.ReadBits(1)\n\tif err != nil {\n\t\treturn nil, err\n\t}\n"+
						"\t%s, err := r.ReadBits(%d)\n\tif err != nil {\n\t\treturn nil, err\n\t}\n"+
						"\tif %s != 0 {\n\t\t%sVal := %s(%s)\n\t\tv.%s = &%sVal\n\t}\n",
					presenceVar, rawVar, innerBits, presenceVar, lower, native, rawVar, goName, lower))
				encodeLines = append(encodeLines, fmt.Sprintf(
					"\tif v.%s != nil {\n"+
						"\t\tif err := w.WriteBits(1, 1); err != nil {\n\t\t\treturn err\n\t\t}\n"+
						"\t\tif err := w.WriteBits(uint64(*v.%s), %d); err != nil {\n\t\t\treturn err\n\t\t}\n"+
						"\t} else {\n"+
						"\t\tif err := w.WriteBits(0, 1); err != nil {\n\t\t\treturn err\n\t\t}\n"+
						"\t\tif err := w.WriteBits(0, %d); err != nil {\n\t\t\treturn err\n\t\t}\n"+
						"\t}\n",
					goName, goName, innerBits, innerBits))

			case ir.Enum:
				enumType := EnumTypeName(ownerType, inner.Name)
				emitEnumDecl(ctx, enumType, inner)

				fieldDecls = append(fieldDecls, fmt.Sprintf("\t%s *%s", goName, enumType))
				decodeLines = append(decodeLines, fmt.Sprintf(
					"\t%s, err := r.ReadBits(1)\n\tif err != nil {\n\t\treturn nil, err\n\t}\n"+
						"\t%s, err := r.ReadBits(%d)\n\tif err != nil {\n\t\treturn nil, err\n\t}\n"+
						"\tif %s != 0 {\n\t\t%sVal := decode%s(uint8(%s))\n\t\tv.%s = &%sVal\n\t}\n",
					presenceVar, rawVar, innerBits, presenceVar, lower, enumType, rawVar, goName, lower))
				encodeLines = append(encodeLines, fmt.Sprintf(
					"\tif v.%s != nil {\n"+
						"\t\tif err := w.WriteBits(1, 1); err != nil {\n\t\t\treturn err\n\t\t}\n"+
						"\t\tif err := w.WriteBits(uint64(v.%s.Raw), %d); err != nil {\n\t\t\treturn err\n\t\t}\n"+
						"\t} else {\n"+
						"\t\tif err := w.WriteBits(0, 1); err != nil {\n\t\t\treturn err\n\t\t}\n"+
						"\t\tif err := w.WriteBits(0, %d); err != nil {\n\t\t\treturn err\n\t\t}\n"+
						"\t}\n",
					goName, goName, innerBits, innerBits))
			}
		}
	}
	return fieldDecls, decodeLines, encodeLines
}

// emitEnumDecl writes the defined type, variant constants, and decode
// helper for one Enum, keyed by its fully-qualified generated name so a
// re-encountered enum (there should never be one, names are per-owner) is
// not emitted twice.
func emitEnumDecl(ctx *genCtx, enumType string, e ir.Enum) {
	if ctx.emittedEnums[enumType] {
		return
	}
	ctx.emittedEnums[enumType] = true

	fmt.Fprintf(&ctx.aux, "type %sVariant uint8\n\nconst (\n\t%sUnknown %sVariant = iota\n", enumType, enumType, enumType)
	for _, val := range e.Values {
		fmt.Fprintf(&ctx.aux, "\t%s\n", EnumVariantName(enumType, val.Name))
	}
	ctx.aux.WriteString(")\n\n")

	fmt.Fprintf(&ctx.aux,
		"// %s is the decoded form of an enumerated field: Raw always carries\n"+
			"// the wire discriminant, and Variant names it when declared, or equals\n"+
			"// %sUnknown when Raw does not match a declared value.\n"+
			"type %s struct {\n\tVariant %sVariant\n\tRaw     uint8\n}\n\n",
		enumType, enumType, enumType, enumType)

	fmt.Fprintf(&ctx.aux, "func decode%s(raw uint8) %s {\n\tswitch raw {\n", enumType, enumType)
	for _, val := range e.Values {
		fmt.Fprintf(&ctx.aux, "\tcase %d:\n\t\treturn %s{Variant: %s, Raw: raw}\n",
			val.Numeric, enumType, EnumVariantName(enumType, val.Name))
	}
	fmt.Fprintf(&ctx.aux, "\tdefault:\n\t\treturn %s{Variant: %sUnknown, Raw: raw}\n\t}\n}\n\n", enumType, enumType)
}
