package resp

import (
	"fmt"
	"strconv"
)

// AppendCommand appends a command frame to dst and returns the extended
// slice. A command is encoded as an array of bulk strings: "*<N>\r\n"
// followed by "$<L>\r\n<bytes>\r\n" per argument. Arguments are binary
// safe; they are framed by explicit length, never delimiter-escaped.
// Zero arguments encode as "*0\r\n".
func AppendCommand(dst []byte, args ...[]byte) []byte {
	dst = append(dst, byte(TypeArray))
	dst = strconv.AppendInt(dst, int64(len(args)), 10)
	dst = append(dst, '\r', '\n')
	for _, arg := range args {
		dst = append(dst, byte(TypeBulkString))
		dst = strconv.AppendInt(dst, int64(len(arg)), 10)
		dst = append(dst, '\r', '\n')
		dst = append(dst, arg...)
		dst = append(dst, '\r', '\n')
	}
	return dst
}

// EncodeCommand encodes a command frame into a fresh buffer.
func EncodeCommand(args ...[]byte) []byte {
	return AppendCommand(nil, args...)
}

// EncodeCommandStrings is EncodeCommand for string arguments, as produced
// by splitting a line of user input into tokens.
func EncodeCommandStrings(args ...string) []byte {
	bs := make([][]byte, len(args))
	for i, a := range args {
		bs[i] = []byte(a)
	}
	return EncodeCommand(bs...)
}

// AppendValue appends the wire encoding of v to dst. It is the inverse of
// decoding and fails only when v carries an invalid Type.
func AppendValue(dst []byte, v Value) ([]byte, error) {
	switch v.Type {
	case TypeSimpleString, TypeError:
		dst = append(dst, byte(v.Type))
		dst = append(dst, v.Str...)
		return append(dst, '\r', '\n'), nil
	case TypeInteger:
		dst = append(dst, byte(TypeInteger))
		dst = strconv.AppendInt(dst, v.Int, 10)
		return append(dst, '\r', '\n'), nil
	case TypeBulkString:
		if v.Null {
			return append(dst, "$-1\r\n"...), nil
		}
		dst = append(dst, byte(TypeBulkString))
		dst = strconv.AppendInt(dst, int64(len(v.Bulk)), 10)
		dst = append(dst, '\r', '\n')
		dst = append(dst, v.Bulk...)
		return append(dst, '\r', '\n'), nil
	case TypeArray:
		if v.Null {
			return append(dst, "*-1\r\n"...), nil
		}
		dst = append(dst, byte(TypeArray))
		dst = strconv.AppendInt(dst, int64(len(v.Elems)), 10)
		dst = append(dst, '\r', '\n')
		var err error
		for _, e := range v.Elems {
			if dst, err = AppendValue(dst, e); err != nil {
				return nil, err
			}
		}
		return dst, nil
	default:
		return nil, fmt.Errorf("resp: cannot encode %s value", v.Type)
	}
}
