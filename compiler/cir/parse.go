package cir

import (
	"strconv"

	"tlog.app/go/errors"
)

// ParseType parses canonical type syntax as produced by Type.String.
// %name is parsed as a struct; "struct name", "union name" and
// "enum name" select the aggregate kind explicitly.
func ParseType(s string) (Type, error) {
	b := []byte(s)

	t, i, err := parseType(b, skipSpaces(b, 0))
	if err != nil {
		return nil, errors.Wrap(err, "at pos %d", i)
	}

	i = skipSpaces(b, i)
	if i != len(b) {
		return nil, errors.New("unexpected trailing text at pos %d: %q", i, b[i:])
	}

	return t, nil
}

func parseType(b []byte, st int) (t Type, i int, err error) {
	i = st

	if i == len(b) {
		return nil, i, errors.New("type expected")
	}

	switch b[i] {
	case '*':
		t, i, err = parseType(b, skipSpaces(b, i+1))
		if err != nil {
			return nil, i, errors.Wrap(err, "pointer")
		}

		return Ptr{Elem: t}, i, nil
	case '[':
		return parseArray(b, skipSpaces(b, i+1))
	case '(':
		return parseFunc(b, skipSpaces(b, i+1))
	case '%':
		name, i := ident(b, i+1)
		if name == "" {
			return nil, i, errors.New("aggregate name expected")
		}

		return Struct{Name: name}, i, nil
	}

	word, i := ident(b, i)

	switch word {
	case "":
		return nil, st, errors.New("unexpected char: %q", b[st])
	case "int":
		return I32, i, nil
	case "double":
		return Double{}, i, nil
	case "void":
		return Void{}, i, nil
	case "char":
		return Char{}, i, nil
	case "bool":
		return Bool{}, i, nil
	case "float":
		return F32, i, nil
	case "half":
		return Float{Bits: 16}, i, nil
	case "struct", "union", "enum":
		name, e := ident(b, skipSpaces(b, i))
		if name == "" {
			return nil, e, errors.New("%s name expected", word)
		}

		switch word {
		case "struct":
			return Struct{Name: name}, e, nil
		case "union":
			return Union{Name: name}, e, nil
		default:
			return Enum{Name: name}, e, nil
		}
	}

	if len(word) > 1 && (word[0] == 'i' || word[0] == 'f') {
		bits, err := strconv.Atoi(word[1:])
		if err == nil && bits > 0 {
			if word[0] == 'i' {
				return Int{Bits: bits}, i, nil
			}

			return Float{Bits: bits}, i, nil
		}
	}

	return nil, st, errors.New("unknown type: %q", word)
}

func parseArray(b []byte, st int) (t Type, i int, err error) {
	i = st

	n := i
	for n < len(b) && b[n] >= '0' && b[n] <= '9' {
		n++
	}

	if n == i {
		return nil, i, errors.New("array length expected")
	}

	l, err := strconv.Atoi(string(b[i:n]))
	if err != nil {
		return nil, i, errors.Wrap(err, "array length")
	}

	i = skipSpaces(b, n)

	if i == len(b) || b[i] != 'x' {
		return nil, i, errors.New("'x' expected")
	}

	el, i, err := parseType(b, skipSpaces(b, i+1))
	if err != nil {
		return nil, i, errors.Wrap(err, "array element")
	}

	i = skipSpaces(b, i)

	if i == len(b) || b[i] != ']' {
		return nil, i, errors.New("']' expected")
	}

	return Array{Elem: el, Len: l}, i + 1, nil
}

func parseFunc(b []byte, st int) (t Type, i int, err error) {
	var ps []Type

	i = st

	for i < len(b) && b[i] != ')' {
		if len(ps) != 0 {
			if b[i] != ',' {
				return nil, i, errors.New("',' expected")
			}

			i = skipSpaces(b, i+1)
		}

		var p Type

		p, i, err = parseType(b, i)
		if err != nil {
			return nil, i, errors.Wrap(err, "param %d", len(ps))
		}

		ps = append(ps, p)
		i = skipSpaces(b, i)
	}

	if i == len(b) {
		return nil, i, errors.New("')' expected")
	}

	i = skipSpaces(b, i+1)

	if i+1 >= len(b) || b[i] != '-' || b[i+1] != '>' {
		return nil, i, errors.New("'->' expected")
	}

	ret, i, err := parseType(b, skipSpaces(b, i+2))
	if err != nil {
		return nil, i, errors.Wrap(err, "return type")
	}

	return FuncType{Params: ps, Ret: ret}, i, nil
}

func ident(b []byte, st int) (string, int) {
	i := st

	for i < len(b) {
		c := b[i]

		if c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || i != st && c >= '0' && c <= '9' {
			i++
			continue
		}

		break
	}

	return string(b[st:i]), i
}

func skipSpaces(b []byte, i int) int {
	for i < len(b) && (b[i] == ' ' || b[i] == '\t' || b[i] == '\n') {
		i++
	}

	return i
}
