package question

// TextSegment is one piece of a question template: literal text or a
// fill-in field reference.
type TextSegment struct {
	Literal string
	// Field names the fill-in value when Literal is empty.
	Field string
}

// Template is the renderable text of a question with its fill-in fields.
type Template struct {
	Text []TextSegment
}

// FieldEnumVariant is one choice of an enumerated field.
type FieldEnumVariant struct {
	Identifier  string
	DisplayName string
}

// Field describes a fill-in value: free text when Variants is empty,
// otherwise an enumeration.
type Field struct {
	Variants []FieldEnumVariant
}

func literal(s string) TextSegment { return TextSegment{Literal: s} }
func field(name string) TextSegment {
	return TextSegment{Field: name}
}
