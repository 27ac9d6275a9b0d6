package codegen

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// CategoryTypeName maps a Category id (e.g. "48" or "048") to its Record
// type name, per SPEC_FULL.md §4.3.1: zero-padded to at least 3 digits.
func CategoryTypeName(idText string) string {
	padded := idText
	for len(padded) < 3 {
		padded = "0" + padded
	}
	return fmt.Sprintf("Cat%sRecord", padded)
}

// ItemTypeName maps an Item id to its Go type name: the id is used
// verbatim with any non-identifier characters stripped.
func ItemTypeName(itemID string) string {
	return "Item" + stripNonIdent(itemID)
}

// PartTypeName maps an Extended Part index to its nested type name.
func PartTypeName(itemType string, index int) string {
	return fmt.Sprintf("%sPart%d", itemType, index)
}

// SubTypeName maps a Compound subfield's 1-based index to its nested type
// name.
func SubTypeName(itemType string, index int) string {
	return fmt.Sprintf("%sSub%d", itemType, index)
}

// FieldName maps a schema Field or Enum name to an exported Go struct
// field name in upper-camel case, using golang.org/x/text/cases to
// normalize multi-word tokens split on '_', '-', and space.
func FieldName(schemaName string) string {
	return toCamel(schemaName, true)
}

// EnumTypeName synthesizes the defined type name for an Enum nested within
// an Item: <ItemType><EnumFieldName>.
func EnumTypeName(itemType, enumName string) string {
	return itemType + FieldName(enumName)
}

// EnumVariantName synthesizes an exported constant name for one declared
// Enum value: <EnumType><ValueName>, with a leading digit prefixed by "V".
func EnumVariantName(enumType, valueName string) string {
	name := toCamel(valueName, true)
	if name == "" || unicode.IsDigit(rune(name[0])) {
		name = "V" + name
	}
	return enumType + name
}

// toCamel splits s on '_', '-', and space, title-cases each word, and joins
// them. When upperFirst is false the first word's leading rune is
// lower-cased, producing lower-camel case.
func toCamel(s string, upperFirst bool) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	for i, w := range words {
		titled := titleCaser.String(strings.ToLower(w))
		if i == 0 && !upperFirst && titled != "" {
			r := []rune(titled)
			r[0] = unicode.ToLower(r[0])
			titled = string(r)
		}
		b.WriteString(titled)
	}
	return b.String()
}

func stripNonIdent(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
