// Package compiler maps a raw XML schema tree (internal/rawschema) into the
// validated intermediate representation (internal/ir), enforcing every
// invariant in SPEC_FULL.md §3. It is the sole authority on schema
// validity: internal/codegen assumes a well-formed IR and performs no
// further checks.
package compiler

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/roach88/asterixgen/internal/ir"
	"github.com/roach88/asterixgen/internal/rawschema"
)

// Load reads and compiles the schema document at path into a validated
// Category IR.
func Load(path string) (*ir.Category, error) {
	raw, err := rawschema.Load(path)
	if err != nil {
		return nil, err
	}
	return CompileCategory(raw)
}

// CompileCategory compiles a raw schema tree into a validated Category IR.
func CompileCategory(raw *rawschema.Category) (*ir.Category, error) {
	if raw == nil {
		return nil, schemaErrorf("category", "missing <category> root element")
	}

	numericID, err := strconv.Atoi(raw.ID)
	if err != nil || numericID < 0 || numericID > 255 {
		return nil, schemaErrorf("category", "id %q is not a valid 8-bit unsigned decimal", raw.ID)
	}

	cat := &ir.Category{ID: numericID, IDText: raw.ID}

	seenFRN := make(map[int]string)
	for _, rawItem := range raw.Items {
		item, err := compileItem(rawItem, fmt.Sprintf("Category %s", raw.ID))
		if err != nil {
			return nil, err
		}
		if prior, ok := seenFRN[item.FRN]; ok {
			return nil, schemaErrorf(fmt.Sprintf("Category %s", raw.ID),
				"FRN %d used by both item %s and item %s", item.FRN, prior, item.ID)
		}
		seenFRN[item.FRN] = item.ID
		cat.Items = append(cat.Items, item)
	}

	sort.Slice(cat.Items, func(i, j int) bool { return cat.Items[i].FRN < cat.Items[j].FRN })

	return cat, nil
}

func compileItem(raw rawschema.Item, categoryPath string) (*ir.Item, error) {
	path := fmt.Sprintf("%s Item %s", categoryPath, raw.ID)
	if raw.ID == "" {
		return nil, schemaErrorf(path, "item id must not be empty")
	}

	frn, err := parseIntAttr(raw.FRN, path, "frn")
	if err != nil {
		return nil, err
	}
	if frn < 1 {
		return nil, schemaErrorf(path, "frn must be >= 1, got %d", frn)
	}

	structures := 0
	var structure ir.Structure

	if raw.Fixed != nil {
		structures++
		s, err := compileFixed(raw.Fixed, path)
		if err != nil {
			return nil, err
		}
		structure = s
	}
	if raw.Extended != nil {
		structures++
		s, err := compileExtended(raw.Extended, path)
		if err != nil {
			return nil, err
		}
		structure = s
	}
	if raw.Repetitive != nil {
		structures++
		s, err := compileRepetitive(raw.Repetitive, path)
		if err != nil {
			return nil, err
		}
		structure = s
	}
	if raw.Explicit != nil {
		structures++
		s, err := compileExplicit(raw.Explicit, path)
		if err != nil {
			return nil, err
		}
		structure = s
	}
	if raw.Compound != nil {
		structures++
		s, err := compileCompound(raw.Compound, path)
		if err != nil {
			return nil, err
		}
		structure = s
	}

	if structures != 1 {
		return nil, schemaErrorf(path, "expected exactly one structure, found %d", structures)
	}

	return &ir.Item{ID: raw.ID, FRN: frn, Structure: structure}, nil
}

func compileFixed(raw *rawschema.Fixed, itemPath string) (*ir.Fixed, error) {
	path := itemPath + " Fixed"
	bytes, err := parseIntAttr(raw.Bytes, path, "bytes")
	if err != nil {
		return nil, err
	}
	if bytes < 1 {
		return nil, schemaErrorf(path, "bytes must be >= 1, got %d", bytes)
	}

	elements, err := compileElements(raw.Elements, path)
	if err != nil {
		return nil, err
	}

	want := bytes * 8
	if got := sumBits(elements); got != want {
		return nil, schemaErrorf(path, "expected %d bits, got %d", want, got)
	}

	return &ir.Fixed{Bytes: bytes, Elements: elements}, nil
}

func compileExtended(raw *rawschema.Extended, itemPath string) (*ir.Extended, error) {
	path := itemPath + " Extended"
	partBytes, err := parseIntAttr(raw.PartBytes, path, "part_bytes")
	if err != nil {
		return nil, err
	}
	if partBytes < 1 {
		return nil, schemaErrorf(path, "part_bytes must be >= 1, got %d", partBytes)
	}
	if len(raw.Parts) == 0 {
		return nil, schemaErrorf(path, "at least one part must exist")
	}

	seenIndex := make(map[int]bool)
	parts := make([]ir.Part, len(raw.Parts))
	for i, rawPart := range raw.Parts {
		partPath := fmt.Sprintf("%s Part %s", path, rawPart.Index)
		idx, err := parseIntAttr(rawPart.Index, partPath, "index")
		if err != nil {
			return nil, err
		}
		if seenIndex[idx] {
			return nil, schemaErrorf(partPath, "duplicate part index %d", idx)
		}
		seenIndex[idx] = true

		elements, err := compileElements(rawPart.Elements, partPath)
		if err != nil {
			return nil, err
		}
		want := partBytes*8 - 1
		if got := sumBits(elements); got != want {
			return nil, schemaErrorf(partPath, "expected %d bits, got %d", want, got)
		}

		parts[i] = ir.Part{Index: idx, Elements: elements}
	}

	sort.Slice(parts, func(i, j int) bool { return parts[i].Index < parts[j].Index })
	for i, p := range parts {
		if p.Index != i {
			return nil, schemaErrorf(path, "part indices must form a dense 0..K range, missing index %d", i)
		}
	}

	return &ir.Extended{PartBytes: partBytes, Parts: parts}, nil
}

func compileRepetitive(raw *rawschema.Repetitive, itemPath string) (*ir.Repetitive, error) {
	path := itemPath + " Repetitive"
	bytesVal, err := parseIntAttr(raw.Bytes, path, "bytes")
	if err != nil {
		return nil, err
	}
	if bytesVal < 1 {
		return nil, schemaErrorf(path, "bytes must be >= 1, got %d", bytesVal)
	}

	counterBits, err := parseIntAttr(raw.CounterBits, path, "counter_bits")
	if err != nil {
		return nil, err
	}
	if counterBits != 8 && counterBits != 16 {
		return nil, schemaErrorf(path, "counter_bits must be 8 or 16, got %d", counterBits)
	}

	elements, err := compileElements(raw.Elements, path)
	if err != nil {
		return nil, err
	}

	want := bytesVal * 8
	if got := sumBits(elements); got != want {
		return nil, schemaErrorf(path, "expected %d bits, got %d", want, got)
	}

	return &ir.Repetitive{Bytes: bytesVal, CounterBits: counterBits, Elements: elements}, nil
}

func compileExplicit(raw *rawschema.Explicit, itemPath string) (*ir.Explicit, error) {
	path := itemPath + " Explicit"
	bytesVal, err := parseIntAttr(raw.Bytes, path, "bytes")
	if err != nil {
		return nil, err
	}
	if bytesVal < 1 {
		return nil, schemaErrorf(path, "bytes must be >= 1, got %d", bytesVal)
	}

	elements, err := compileElements(raw.Elements, path)
	if err != nil {
		return nil, err
	}

	want := bytesVal * 8
	if got := sumBits(elements); got != want {
		return nil, schemaErrorf(path, "expected %d bits, got %d", want, got)
	}

	return &ir.Explicit{Bytes: bytesVal, Elements: elements}, nil
}

func compileCompound(raw *rawschema.Compound, itemPath string) (*ir.Compound, error) {
	path := itemPath + " Compound"
	if len(raw.Subfields) == 0 {
		return nil, schemaErrorf(path, "compound must declare at least one subfield")
	}

	subfields := make([]ir.Subfield, len(raw.Subfields))
	seenIndex := make(map[int]bool)
	for i, rawSub := range raw.Subfields {
		subPath := fmt.Sprintf("%s Sub %s", path, rawSub.Index)
		idx, err := parseIntAttr(rawSub.Index, subPath, "index")
		if err != nil {
			return nil, err
		}
		if seenIndex[idx] {
			return nil, schemaErrorf(subPath, "duplicate subfield index %d", idx)
		}
		seenIndex[idx] = true

		structures := 0
		var structure ir.Structure
		if rawSub.Fixed != nil {
			structures++
			s, err := compileFixed(rawSub.Fixed, subPath)
			if err != nil {
				return nil, err
			}
			structure = s
		}
		if rawSub.Extended != nil {
			structures++
			s, err := compileExtended(rawSub.Extended, subPath)
			if err != nil {
				return nil, err
			}
			structure = s
		}
		if rawSub.Repetitive != nil {
			structures++
			s, err := compileRepetitive(rawSub.Repetitive, subPath)
			if err != nil {
				return nil, err
			}
			structure = s
		}
		if rawSub.Explicit != nil {
			structures++
			s, err := compileExplicit(rawSub.Explicit, subPath)
			if err != nil {
				return nil, err
			}
			structure = s
		}
		if structures != 1 {
			return nil, schemaErrorf(subPath, "subfield must be exactly one of fixed/extended/repetitive/explicit, found %d", structures)
		}

		subfields[i] = ir.Subfield{Index: idx, Structure: structure}
	}

	// A single FSPEC byte holds 7 subfields; more chain across additional
	// FSPEC bytes on the wire, which the codec runtime handles generically,
	// so the IR itself imposes no fixed cap here.

	return &ir.Compound{Subfields: subfields}, nil
}

func compileElements(raws []rawschema.Element, structPath string) ([]ir.Element, error) {
	elements := make([]ir.Element, 0, len(raws))
	seenNames := make(map[string]bool)

	for _, raw := range raws {
		elem, name, err := compileElement(raw, structPath)
		if err != nil {
			return nil, err
		}
		if name != "" {
			if seenNames[name] {
				return nil, schemaErrorf(structPath, "duplicate field/enum name %q", name)
			}
			seenNames[name] = true
		}
		elements = append(elements, elem)
	}

	return elements, nil
}

func compileElement(raw rawschema.Element, structPath string) (ir.Element, string, error) {
	switch raw.XMLName.Local {
	case "field":
		bits, err := parseIntAttr(raw.Bits, structPath, "field "+raw.Name+" bits")
		if err != nil {
			return nil, "", err
		}
		if bits < 1 || bits > 64 {
			return nil, "", schemaErrorf(structPath, "field %q bits must be 1..=64, got %d", raw.Name, bits)
		}
		if raw.Name == "" {
			return nil, "", schemaErrorf(structPath, "field must have a name")
		}
		return ir.NewField(raw.Name, bits), raw.Name, nil

	case "spare":
		bits, err := parseIntAttr(raw.Bits, structPath, "spare bits")
		if err != nil {
			return nil, "", err
		}
		if bits < 1 {
			return nil, "", schemaErrorf(structPath, "spare bits must be >= 1, got %d", bits)
		}
		return ir.NewSpare(bits), "", nil

	case "enum":
		return compileEnum(raw, structPath)

	case "epb":
		return compileEPB(raw, structPath)

	default:
		return nil, "", schemaErrorf(structPath, "unknown element %q", raw.XMLName.Local)
	}
}

func compileEnum(raw rawschema.Element, structPath string) (ir.Element, string, error) {
	if raw.Name == "" {
		return nil, "", schemaErrorf(structPath, "enum must have a name")
	}
	bits, err := parseIntAttr(raw.Bits, structPath, "enum "+raw.Name+" bits")
	if err != nil {
		return nil, "", err
	}
	if bits < 1 || bits > 8 {
		return nil, "", schemaErrorf(structPath, "enum %q bits must be 1..=8, got %d", raw.Name, bits)
	}

	seenNumeric := make(map[int]bool)
	values := make([]ir.EnumValue, len(raw.EnumValues))
	max := (1 << uint(bits))
	for i, v := range raw.EnumValues {
		numeric, err := parseIntAttr(v.Numeric, structPath, "enum "+raw.Name+" value "+v.Name+" numeric")
		if err != nil {
			return nil, "", err
		}
		if numeric < 0 || numeric >= max {
			return nil, "", schemaErrorf(structPath, "enum %q value %q=%d does not fit in %d bits", raw.Name, v.Name, numeric, bits)
		}
		if seenNumeric[numeric] {
			return nil, "", schemaErrorf(structPath, "enum %q has duplicate numeric value %d", raw.Name, numeric)
		}
		seenNumeric[numeric] = true
		values[i] = ir.EnumValue{Name: v.Name, Numeric: numeric}
	}

	return ir.NewEnum(raw.Name, bits, values), raw.Name, nil
}

func compileEPB(raw rawschema.Element, structPath string) (ir.Element, string, error) {
	if len(raw.Inner) != 1 {
		return nil, "", schemaErrorf(structPath, "epb must wrap exactly one field or enum, found %d", len(raw.Inner))
	}

	inner, name, err := compileElement(raw.Inner[0], structPath)
	if err != nil {
		return nil, "", err
	}

	epbInner, ok := inner.(ir.EPBInner)
	if !ok {
		return nil, "", schemaErrorf(structPath, "epb inner element must be a field or enum")
	}

	return ir.EPB{Inner: epbInner}, name, nil
}

func sumBits(elements []ir.Element) int {
	total := 0
	for _, e := range elements {
		total += e.Bits()
	}
	return total
}

func parseIntAttr(val, path, label string) (int, error) {
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, schemaErrorf(path, "%s: expected an integer, got %q", label, val)
	}
	return n, nil
}
