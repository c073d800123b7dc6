package resp

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Type identifies a RESP protocol type. The constant values are the
// single-byte wire prefixes.
type Type byte

const (
	// TypeInvalid is the zero value, never produced by a successful decode.
	TypeInvalid Type = 0
	// TypeSimpleString is a single-line string ("+OK\r\n").
	TypeSimpleString Type = '+'
	// TypeError is a server-reported error ("-ERR ...\r\n").
	TypeError Type = '-'
	// TypeInteger is a signed 64-bit integer (":42\r\n").
	TypeInteger Type = ':'
	// TypeBulkString is a length-prefixed, binary-safe string ("$3\r\nfoo\r\n").
	TypeBulkString Type = '$'
	// TypeArray is a sequence of values ("*2\r\n...").
	TypeArray Type = '*'
)

// String returns a human-readable name for the type.
func (t Type) String() string {
	switch t {
	case TypeSimpleString:
		return "simple string"
	case TypeError:
		return "error"
	case TypeInteger:
		return "integer"
	case TypeBulkString:
		return "bulk string"
	case TypeArray:
		return "array"
	default:
		return fmt.Sprintf("invalid (0x%02x)", byte(t))
	}
}

// Value is one decoded RESP unit.
//
// Exactly one payload field is meaningful, selected by Type:
//
//   - TypeSimpleString, TypeError: Str
//   - TypeInteger: Int
//   - TypeBulkString: Bulk, or Null for the null bulk string ("$-1")
//   - TypeArray: Elems, or Null for the null array ("*-1")
//
// A null bulk string is distinct from an empty one ("$0\r\n\r\n"), and a
// null array is distinct from an empty one ("*0\r\n"); the Null flag is
// authoritative for that distinction. A Value owns its payload outright:
// the decoder copies bytes out of the input buffer, so values stay valid
// after the caller reuses the buffer.
type Value struct {
	Type  Type
	Str   []byte
	Int   int64
	Bulk  []byte
	Null  bool
	Elems []Value
}

// NewSimpleString returns a simple string value.
func NewSimpleString(s string) Value {
	return Value{Type: TypeSimpleString, Str: []byte(s)}
}

// NewError returns an error value. Server errors are data to the codec,
// not Go errors.
func NewError(s string) Value {
	return Value{Type: TypeError, Str: []byte(s)}
}

// NewInteger returns an integer value.
func NewInteger(n int64) Value {
	return Value{Type: TypeInteger, Int: n}
}

// NewBulkString returns a bulk string value holding a copy of b.
// A nil slice produces the null bulk string.
func NewBulkString(b []byte) Value {
	if b == nil {
		return NewNullBulkString()
	}
	return Value{Type: TypeBulkString, Bulk: append([]byte(nil), b...)}
}

// NewNullBulkString returns the null bulk string ("$-1").
func NewNullBulkString() Value {
	return Value{Type: TypeBulkString, Null: true}
}

// NewArray returns an array value owning the given elements.
func NewArray(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{Type: TypeArray, Elems: elems}
}

// NewNullArray returns the null array ("*-1").
func NewNullArray() Value {
	return Value{Type: TypeArray, Null: true}
}

// IsNull reports whether v is the null bulk string or the null array.
func (v Value) IsNull() bool {
	return v.Null
}

// Equal reports deep semantic equality. Null values never equal empty
// ones of the same type.
func (v Value) Equal(o Value) bool {
	if v.Type != o.Type || v.Null != o.Null {
		return false
	}
	switch v.Type {
	case TypeSimpleString, TypeError:
		return bytes.Equal(v.Str, o.Str)
	case TypeInteger:
		return v.Int == o.Int
	case TypeBulkString:
		return v.Null || bytes.Equal(v.Bulk, o.Bulk)
	case TypeArray:
		if v.Null {
			return true
		}
		if len(v.Elems) != len(o.Elems) {
			return false
		}
		for i := range v.Elems {
			if !v.Elems[i].Equal(o.Elems[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// String returns a compact single-line rendering for logs and test
// failures. The output is not a wire encoding.
func (v Value) String() string {
	switch v.Type {
	case TypeSimpleString:
		return "+" + string(v.Str)
	case TypeError:
		return "-" + string(v.Str)
	case TypeInteger:
		return ":" + strconv.FormatInt(v.Int, 10)
	case TypeBulkString:
		if v.Null {
			return "(nil)"
		}
		return strconv.Quote(string(v.Bulk))
	case TypeArray:
		if v.Null {
			return "(nil)"
		}
		parts := make([]string, len(v.Elems))
		for i, e := range v.Elems {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	default:
		return "(invalid)"
	}
}
