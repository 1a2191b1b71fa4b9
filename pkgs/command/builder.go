package command

import "fmt"

// VariantBuilder provides a fluent API for assembling one Variant,
// validating each token as it is appended rather than after the fact.
type VariantBuilder struct {
	tokens []Token
	err    error
}

// NewVariantBuilder starts an empty variant.
func NewVariantBuilder() *VariantBuilder {
	return &VariantBuilder{}
}

// Argument appends an Argument token.
func (b *VariantBuilder) Argument(name, parser string, optional bool) *VariantBuilder {
	if b.err != nil {
		return b
	}
	if parser == "" {
		b.err = fmt.Errorf("argument %q: parser must not be empty", name)
		return b
	}
	b.tokens = append(b.tokens, Token{Kind: KindArgument, Name: name, Parser: parser, IsOptional: optional})
	return b
}

// Enum appends an Enum token. values must have at least two members,
// matching the invariant that LiteralConsolidator only ever synthesises
// enums from two or more merged literals.
func (b *VariantBuilder) Enum(values []string, optional bool) *VariantBuilder {
	if b.err != nil {
		return b
	}
	if len(values) < 2 {
		b.err = fmt.Errorf("enum token requires at least two values, got %d", len(values))
		return b
	}
	b.tokens = append(b.tokens, Token{Kind: KindEnum, Values: values, IsOptional: optional})
	return b
}

// Literal appends a Literal token.
func (b *VariantBuilder) Literal(value string, optional bool) *VariantBuilder {
	if b.err != nil {
		return b
	}
	b.tokens = append(b.tokens, Token{Kind: KindLiteral, Value: value, IsOptional: optional})
	return b
}

// Done finalizes the variant.
func (b *VariantBuilder) Done() (Variant, error) {
	if b.err != nil {
		return nil, b.err
	}
	out := make(Variant, len(b.tokens))
	copy(out, b.tokens)
	return out, nil
}
