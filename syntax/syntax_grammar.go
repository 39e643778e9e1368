// Copyright (c) 2026 The vivard Authors
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package syntax

// Each rule checks its first token before opening a node and reports
// whether it started. A rule that started always consumed at least one
// token.

var (
	typeFirst = []TokenKind{
		T_STAR,
		T_INT, T_FLOAT, T_STRING, T_BOOL, T_DATE,
		T_IDENT, T_TYPE_NAME, T_QUALIFIED_NAME, T_KW_AUTO,
		T_OPEN_SQUARE, T_KW_MAP,
	}

	// Tokens that end a type body even when its closing brace is missing.
	entriesStop = []TokenKind{
		T_EOF, T_CLOSE_CURL, T_MORE,
		T_KW_PACKAGE, T_KW_TYPE, T_KW_ENUM, T_KW_META,
		T_TYPE_MODIFIER,
	}

	annotationValueKinds = []TokenKind{
		T_IDENT, T_TYPE_NAME, T_STRING_VALUE, T_NUMBER_VALUE, T_BOOL_VALUE,
		T_PLACEHOLDER, T_ATTR_MODIFIER, T_TYPE_MODIFIER,
	}

	annParamNameKinds = []TokenKind{
		T_IDENT, T_TYPE_NAME, T_KW_TYPE, T_ATTR_MODIFIER, T_TYPE_MODIFIER,
		T_PLACEHOLDER,
	}
)

func parseFile(p *parser) {
	defer p.enter("file")()
	p.try(T_PLACEHOLDER)
	p.comments()
	p.try(T_PLACEHOLDER)
	p.packageDeclaration()
	for range p.loop {
		if p.peek() == T_EOF {
			break
		}
		if !p.declaration() {
			p.junk()
		}
	}
}

func parseLoneType(p *parser) {
	p.typeOnly = true
	if !p.typeRef() && !p.try(T_PLACEHOLDER) {
		p.failExpected("type")
	}
	for range p.loop {
		if p.peek() == T_EOF {
			break
		}
		p.junk()
	}
}

func (p *parser) comments() bool {
	if !p.at(T_COMMENT_LINE) {
		return false
	}
	defer p.enter("comments")()
	p.open(N_COMMENTS)
	for range p.loop {
		p.comment()
	}
	return p.close(N_COMMENTS)
}

func (p *parser) comment() bool {
	if !p.at(T_COMMENT_LINE) {
		return false
	}
	p.open(N_COMMENT)
	p.consume()
	return p.close(N_COMMENT)
}

func (p *parser) packageDeclaration() bool {
	if !p.at(T_KW_PACKAGE) {
		return false
	}
	defer p.enter("package")()
	p.open(N_PACKAGE_DECLARATION)
	p.consume()
	if p.expect(T_IDENT, T_QUALIFIED_NAME) {
		p.expect(T_STATEMENT_END, T_SEPARATOR)
	}
	return p.close(N_PACKAGE_DECLARATION)
}

func (p *parser) declaration() bool {
	var body func() bool
	switch p.peek() {
	case T_PLACEHOLDER:
		body = func() bool { return p.try(T_PLACEHOLDER) }
	case T_COMMENT_LINE:
		body = p.comment
	case T_KW_META:
		body = p.metaDeclaration
	default:
		if !p.atTypeDeclaration() {
			return false
		}
		body = p.typeDeclaration
	}
	defer p.enter("declaration")()
	p.open(N_DECLARATION)
	body()
	return p.close(N_DECLARATION)
}

func (p *parser) atTypeDeclaration() bool {
	return p.at(T_KW_TYPE, T_KW_ENUM, T_QUALIFIED_NAME) || p.atTypeModifier()
}

func (p *parser) atTypeModifier() bool {
	return p.at(T_IDENT, T_TYPE_MODIFIER, T_HOOK_TAG) || p.atAnnotation()
}

func (p *parser) atAnnotation() bool {
	switch p.peek() {
	case T_ANNOTATION_TAG:
		return true
	case T_PLACEHOLDER:
		return p.peek2() == T_ANNOTATION_TAG
	}
	return false
}

// typeDeclaration also covers enums: both may carry modifiers, so the node
// kind is only known once the keyword after them has been seen.
func (p *parser) typeDeclaration() bool {
	if !p.atTypeDeclaration() {
		return false
	}
	defer p.enter("type_declaration")()
	p.open(N_TYPE_DECLARATION)
	p.typeModifiers()
	if p.at(T_KW_ENUM) {
		p.enumBody()
		return p.close(N_ENUM_DECLARATION)
	}
	p.typeBody()
	return p.close(N_TYPE_DECLARATION)
}

func (p *parser) typeBody() {
	if p.try(T_KW_TYPE) {
		if !p.expect(T_IDENT, T_QUALIFIED_NAME) {
			return
		}
	} else if !p.expect(T_KW_TYPE, T_QUALIFIED_NAME) {
		return
	}
	p.extends()
	p.try(T_PLACEHOLDER)
	if !p.expect(T_OPEN_CURL) {
		return
	}
	p.try(T_PLACEHOLDER)
	p.entries()
	p.try(T_MORE)
	p.expect(T_CLOSE_CURL)
}

func (p *parser) typeModifiers() bool {
	if !p.atTypeModifier() {
		return false
	}
	defer p.enter("type_modifiers")()
	p.open(N_TYPE_MODIFIERS)
	for range p.loop {
		p.typeModifier()
	}
	return p.close(N_TYPE_MODIFIERS)
}

func (p *parser) typeModifier() bool {
	if !p.atTypeModifier() {
		return false
	}
	p.open(N_TYPE_MODIFIER)
	p.first(
		p.annotation,
		p.hookTag,
		func() bool { return p.try(T_IDENT, T_TYPE_MODIFIER) },
	)
	return p.close(N_TYPE_MODIFIER)
}

func (p *parser) extends() bool {
	switch {
	case p.at(T_KW_EXTENDS):
	case p.peek() == T_PLACEHOLDER && p.peek2() == T_KW_EXTENDS:
	default:
		return false
	}
	p.open(N_EXTENDS)
	p.try(T_PLACEHOLDER)
	p.consume()
	p.try(T_PLACEHOLDER)
	p.expect(T_IDENT, T_QUALIFIED_NAME)
	return p.close(N_EXTENDS)
}

func (p *parser) entries() bool {
	if p.at(entriesStop...) {
		return false
	}
	defer p.enter("entries")()
	p.open(N_ENTRIES)
	for range p.loop {
		if p.at(entriesStop...) {
			break
		}
		if !p.entry() {
			p.junk()
		}
	}
	return p.close(N_ENTRIES)
}

func (p *parser) entry() bool {
	if !p.at(T_IDENT) {
		return false
	}
	defer p.enter("entry")()
	p.open(N_ENTRY)
	if p.peek2() == T_OPEN_PAREN {
		p.method()
	} else {
		p.field()
	}
	if p.try(T_MODIFIER_OPEN) {
		p.attrModifiers()
		if !p.expect(T_MODIFIER_CLOSE) {
			return p.close(N_ENTRY)
		}
	}
	p.expect(T_STATEMENT_END)
	return p.close(N_ENTRY)
}

func (p *parser) field() bool {
	if !p.at(T_IDENT) {
		return false
	}
	p.open(N_FIELD)
	p.consume()
	if p.expect(T_SEPARATOR, T_PLACEHOLDER) {
		if !p.typeRef() && !p.try(T_PLACEHOLDER) {
			p.failExpected("type")
		}
	}
	return p.close(N_FIELD)
}

func (p *parser) method() bool {
	if !p.at(T_IDENT) || p.peek2() != T_OPEN_PAREN {
		return false
	}
	p.open(N_METHOD)
	p.consume()
	p.consume()
	p.params()
	if p.expect(T_CLOSE_PAREN) {
		p.returnType()
	}
	return p.close(N_METHOD)
}

func (p *parser) params() bool {
	if !p.at(T_IDENT) {
		return false
	}
	p.open(N_PARAMS)
	p.param()
	for range p.loop {
		if !p.try(T_COMMA) {
			break
		}
		if !p.param() {
			p.failExpected(T_IDENT.String())
			break
		}
	}
	return p.close(N_PARAMS)
}

func (p *parser) param() bool {
	if !p.at(T_IDENT) {
		return false
	}
	p.open(N_PARAM)
	p.consume()
	if p.expect(T_SEPARATOR) {
		p.try(T_PLACEHOLDER)
		if !p.typeRef() {
			p.failExpected("type")
		}
	}
	return p.close(N_PARAM)
}

func (p *parser) returnType() bool {
	if !p.at(T_SEPARATOR) {
		return false
	}
	p.open(N_RETURN_TYPE)
	p.consume()
	p.try(T_PLACEHOLDER)
	if !p.typeRef() {
		p.failExpected("type")
	}
	return p.close(N_RETURN_TYPE)
}

func (p *parser) typeRef() bool {
	if !p.at(typeFirst...) {
		return false
	}
	defer p.enter("type")()
	p.depth += 1
	defer func() { p.depth -= 1 }()

	p.open(N_TYPE)
	if p.depth > p.opts.maxDepth {
		token := p.tokenAt(p.significant(p.pos))
		p.fail(errNestingTooDeep(p.opts.maxDepth, token.Span()))
		p.consume()
		return p.close(N_TYPE)
	}

	p.try(T_STAR)
	switch p.peek() {
	case T_INT, T_FLOAT, T_STRING, T_BOOL, T_DATE:
		p.simpleType()
	case T_IDENT, T_TYPE_NAME, T_QUALIFIED_NAME, T_KW_AUTO:
		p.consume()
	case T_OPEN_SQUARE:
		p.arrayType()
	case T_KW_MAP:
		p.mapType()
	default:
		p.failExpected("type")
		return p.close(N_TYPE)
	}
	p.try(T_NOT_NULL)
	return p.close(N_TYPE)
}

var simpleTypeKinds = map[TokenKind]NodeKind{
	T_INT:    N_ST_INT,
	T_FLOAT:  N_ST_FLOAT,
	T_STRING: N_ST_STRING,
	T_BOOL:   N_ST_BOOL,
	T_DATE:   N_ST_DATE,
}

func (p *parser) simpleType() bool {
	kind, ok := simpleTypeKinds[p.peek()]
	if !ok {
		return false
	}
	p.open(N_SIMPLE_TYPE)
	p.open(kind)
	p.consume()
	p.close(kind)
	return p.close(N_SIMPLE_TYPE)
}

func (p *parser) arrayType() bool {
	if !p.at(T_OPEN_SQUARE) {
		return false
	}
	p.open(N_ARRAY_TYPE)
	p.consume()
	p.try(T_PLACEHOLDER)
	if p.typeRef() {
		p.expect(T_CLOSE_SQUARE)
	} else {
		p.failExpected("type")
	}
	return p.close(N_ARRAY_TYPE)
}

func (p *parser) mapType() bool {
	if !p.at(T_KW_MAP) {
		return false
	}
	p.open(N_MAP_TYPE)
	p.consume()
	p.mapTypeRest()
	return p.close(N_MAP_TYPE)
}

func (p *parser) mapTypeRest() {
	if !p.expect(T_OPEN_SQUARE) {
		return
	}
	p.try(T_PLACEHOLDER)
	if !p.mapIndexType() {
		p.failExpected(describeKinds([]TokenKind{T_INT, T_STRING}))
		return
	}
	if !p.expect(T_CLOSE_SQUARE) {
		return
	}
	p.try(T_PLACEHOLDER)
	if !p.typeRef() {
		p.failExpected("type")
	}
}

func (p *parser) mapIndexType() bool {
	var kind NodeKind
	switch p.peek() {
	case T_INT:
		kind = N_ST_INT
	case T_STRING:
		kind = N_ST_STRING
	default:
		return false
	}
	p.open(N_MAP_INDEX_TYPE)
	p.open(kind)
	p.consume()
	p.close(kind)
	return p.close(N_MAP_INDEX_TYPE)
}

func (p *parser) attrModifiers() bool {
	if !p.atAttrModifier() {
		return false
	}
	defer p.enter("attr_modifiers")()
	p.open(N_ATTR_MODIFIERS)
	for range p.loop {
		p.attrModifier()
	}
	return p.close(N_ATTR_MODIFIERS)
}

func (p *parser) atAttrModifier() bool {
	return p.at(T_PLACEHOLDER, T_HOOK_TAG, T_ATTR_MODIFIER, T_ANNOTATION_TAG)
}

func (p *parser) attrModifier() bool {
	if !p.atAttrModifier() {
		return false
	}
	p.open(N_ATTR_MODIFIER)
	p.first(
		p.annotation,
		p.hookTag,
		func() bool { return p.try(T_PLACEHOLDER, T_ATTR_MODIFIER) },
	)
	return p.close(N_ATTR_MODIFIER)
}

func (p *parser) hookTag() bool {
	if !p.at(T_HOOK_TAG) {
		return false
	}
	p.open(N_HOOK_TAG)
	p.consume()
	if p.try(T_EQ) {
		p.expect(T_STRING_VALUE)
	}
	return p.close(N_HOOK_TAG)
}

func (p *parser) annotation() bool {
	if !p.atAnnotation() {
		return false
	}
	defer p.enter("annotation")()
	p.open(N_ANNOTATION)
	p.try(T_PLACEHOLDER)
	p.consume()
	if p.try(T_OPEN_PAREN) {
		p.annotationValues()
		p.expect(T_CLOSE_PAREN)
	}
	return p.close(N_ANNOTATION)
}

func (p *parser) annotationValues() bool {
	if !p.atAnnParam() && !p.at(annotationValueKinds...) {
		return false
	}
	p.open(N_ANNOTATION_VALUES)
	for range p.loop {
		if p.annotationValue() {
			p.try(T_COMMA)
		}
	}
	return p.close(N_ANNOTATION_VALUES)
}

func (p *parser) annotationValue() bool {
	switch {
	case p.atAnnParam():
		p.open(N_ANNOTATION_VALUE)
		p.annParam()
	case p.at(annotationValueKinds...):
		p.open(N_ANNOTATION_VALUE)
		p.consume()
	default:
		return false
	}
	return p.close(N_ANNOTATION_VALUE)
}

// Parameter names may be keywords such as "type", which are not values.
func (p *parser) atAnnParam() bool {
	return p.at(annParamNameKinds...) && p.peek2() == T_EQ
}

func (p *parser) annParam() bool {
	if !p.atAnnParam() {
		return false
	}
	p.open(N_ANN_PARAM)
	p.open(N_ANN_PARAM_NAME)
	p.consume()
	p.close(N_ANN_PARAM_NAME)
	p.consume()
	if p.at(annotationValueKinds...) {
		p.open(N_ANN_PARAM_VALUE)
		p.consume()
		p.close(N_ANN_PARAM_VALUE)
	} else {
		p.failExpected("annotation value")
	}
	return p.close(N_ANN_PARAM)
}

func (p *parser) metaDeclaration() bool {
	if !p.at(T_KW_META) {
		return false
	}
	p.open(N_META_DECLARATION)
	p.consume()
	if p.expect(T_OPEN_PAREN) && p.expect(T_IDENT) && p.expect(T_CLOSE_PAREN) {
		for range p.loop {
			p.try(T_META_LINE)
		}
	}
	return p.close(N_META_DECLARATION)
}

func (p *parser) enumBody() {
	p.consume()
	if !p.expect(T_IDENT) || !p.expect(T_OPEN_CURL) {
		return
	}
	for range p.loop {
		if p.at(entriesStop...) {
			break
		}
		if !p.enumItem() {
			p.junk()
		}
	}
	p.expect(T_CLOSE_CURL)
}

func (p *parser) enumItem() bool {
	if !p.at(T_IDENT) {
		return false
	}
	p.open(N_ENUM_ITEM)
	p.consume()
	if p.try(T_EQ) && !p.expect(T_NUMBER_VALUE, T_STRING_VALUE) {
		return p.close(N_ENUM_ITEM)
	}
	p.expect(T_STATEMENT_END, T_SEPARATOR)
	return p.close(N_ENUM_ITEM)
}
