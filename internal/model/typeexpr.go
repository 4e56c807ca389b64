package model

import "strings"

// Scope resolves source-level names while a type expression is parsed:
// named types against the file's imports and package, type variables
// against the enclosing declaration's type parameters.
type Scope interface {
	ResolveName(name string) *TypeElement
	IsTypeVariable(name string) bool
}

// ParseTypeExpr parses source type text ("Map<String, List<Integer>>",
// "int[]") into a Type, resolving names through scope (which may be nil;
// simple names then resolve against java.lang or become placeholders).
// Returns nil when the text is not a usable type (void, empty, malformed).
func (u *Universe) ParseTypeExpr(expr string, scope Scope) Type {
	p := &typeParser{src: expr, uni: u, scope: scope}
	return p.parseType()
}

type typeParser struct {
	src   string
	pos   int
	uni   *Universe
	scope Scope
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *typeParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *typeParser) parseType() Type {
	p.skipSpace()
	if p.peek() == '?' {
		p.pos++
		p.parseWildcardBound()
		return p.uni.Wildcard()
	}

	name := p.parseQualifiedName()
	if name == "" || name == "void" {
		return nil
	}

	var t Type
	switch {
	case p.uni.PrimitiveByName(name) != nil:
		t = p.uni.PrimitiveByName(name)
	case p.scope != nil && !strings.Contains(name, ".") && p.scope.IsTypeVariable(name):
		t = &TypeVariable{name: name}
	default:
		elem := p.resolve(name)
		args, ok := p.parseTypeArgs()
		if !ok {
			return nil
		}
		if len(args) > 0 {
			// Built without the arity check: the source spelled the
			// arguments out, so the written form wins even for
			// placeholder elements with unknown parameter counts.
			t = &DeclaredType{elem: elem, args: args}
		} else {
			t = elem.AsType()
		}
	}

	// Array dimensions.
	for {
		p.skipSpace()
		if p.peek() != '[' {
			break
		}
		p.pos++
		p.skipSpace()
		if p.peek() != ']' {
			return nil
		}
		p.pos++
		t = &ArrayType{component: t}
	}
	return t
}

// parseWildcardBound consumes an optional "extends X" / "super X" after a
// wildcard. Bounds are not modeled; the bound type is parsed and dropped.
func (p *typeParser) parseWildcardBound() {
	p.skipSpace()
	rest := p.src[p.pos:]
	for _, kw := range []string{"extends", "super"} {
		if strings.HasPrefix(rest, kw) {
			p.pos += len(kw)
			p.parseType()
			return
		}
	}
}

// parseQualifiedName consumes a dotted identifier sequence.
func (p *typeParser) parseQualifiedName() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '.' || c == '$' || c == '_' ||
			(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

// parseTypeArgs consumes an optional <...> argument list. The diamond form
// "<>" yields no arguments. ok is false when an argument list opens but
// cannot be completed.
func (p *typeParser) parseTypeArgs() (args []Type, ok bool) {
	p.skipSpace()
	if p.peek() != '<' {
		return nil, true
	}
	p.pos++
	p.skipSpace()
	if p.peek() == '>' {
		p.pos++
		return nil, true
	}

	for {
		arg := p.parseType()
		if arg == nil {
			return nil, false
		}
		args = append(args, arg)
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case '>':
			p.pos++
			return args, true
		default:
			return nil, false
		}
	}
}

func (p *typeParser) resolve(name string) *TypeElement {
	if p.scope != nil {
		if el := p.scope.ResolveName(name); el != nil {
			return el
		}
	}
	if strings.Contains(name, ".") {
		return p.uni.ExternalType(name)
	}
	if el := p.uni.LookupType("java.lang." + name); el != nil {
		return el
	}
	return p.uni.ExternalType(name)
}
