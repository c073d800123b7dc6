package resp

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrTruncated is returned when the buffer holds fewer bytes than the
	// frame being parsed requires. It is the only recoverable decode
	// error: the caller should read more bytes and retry from the same
	// position. Nothing is consumed when it is returned.
	ErrTruncated = errors.New("resp: truncated frame")

	// ErrMalformedInteger is returned when an integer reply or a length
	// field does not parse as a signed decimal.
	ErrMalformedInteger = errors.New("resp: malformed integer")

	// ErrMalformedFrame is returned when a frame violates the wire
	// grammar in a way that cannot be fixed by more input, such as a
	// length below -1 or a bulk payload not followed by CRLF.
	ErrMalformedFrame = errors.New("resp: malformed frame")

	// ErrUnknownType is returned when the leading byte of a frame is not
	// one of the five recognized type tags. The buffer cannot be decoded
	// past this point.
	ErrUnknownType = errors.New("resp: unknown type tag")

	// ErrNestingTooDeep is returned when array nesting exceeds
	// Limits.MaxDepth. It guards recursive descent against pathological
	// input.
	ErrNestingTooDeep = errors.New("resp: nesting too deep")

	// ErrLimitExceeded is returned when a declared bulk or array length
	// exceeds the configured limit.
	ErrLimitExceeded = errors.New("resp: limit exceeded")
)

// Default protocol limits. MaxBulkLen matches the Redis default for
// proto-max-bulk-len; MaxArrayLen and MaxDepth are far above anything a
// well-behaved peer produces.
const (
	DefaultMaxDepth    = 64
	DefaultMaxBulkLen  = 512 * 1024 * 1024
	DefaultMaxArrayLen = 1024 * 1024
)

// Limits bounds resource use during decoding. The zero value of each
// field means the corresponding default.
type Limits struct {
	// MaxDepth is the maximum array nesting depth.
	MaxDepth int
	// MaxBulkLen is the maximum declared bulk string length in bytes.
	MaxBulkLen int
	// MaxArrayLen is the maximum declared array element count.
	MaxArrayLen int
}

// DefaultLimits returns the default protocol limits.
func DefaultLimits() Limits {
	return Limits{
		MaxDepth:    DefaultMaxDepth,
		MaxBulkLen:  DefaultMaxBulkLen,
		MaxArrayLen: DefaultMaxArrayLen,
	}
}

func (l Limits) withDefaults() Limits {
	if l.MaxDepth == 0 {
		l.MaxDepth = DefaultMaxDepth
	}
	if l.MaxBulkLen == 0 {
		l.MaxBulkLen = DefaultMaxBulkLen
	}
	if l.MaxArrayLen == 0 {
		l.MaxArrayLen = DefaultMaxArrayLen
	}
	return l
}

// Decoder decodes RESP frames from byte buffers under configured limits.
// The zero value uses DefaultLimits. A Decoder holds no state between
// calls and is safe for concurrent use.
type Decoder struct {
	Limits Limits
}

// DecodeOne decodes exactly one top-level frame from the start of buf and
// returns the value together with the number of bytes consumed. Bytes
// past the first frame are left untouched for the next call.
//
// On error nothing is consumed. ErrTruncated means buf ends inside the
// frame; every other error is terminal for this buffer.
func (d *Decoder) DecodeOne(buf []byte) (Value, int, error) {
	v, n, err := decodeValue(buf, d.Limits.withDefaults(), 0)
	if err != nil {
		return Value{}, 0, err
	}
	return v, n, nil
}

// DecodeAll decodes every complete top-level frame in buf and returns the
// values in order together with the unconsumed remainder. A trailing
// truncated frame is a normal outcome, not an error: the remainder starts
// at its first byte so the caller can append more input and try again.
// Terminal errors are returned together with the values decoded before
// the failure and the remainder at the failing frame.
func (d *Decoder) DecodeAll(buf []byte) ([]Value, []byte, error) {
	var values []Value
	rest := buf
	for len(rest) > 0 {
		v, n, err := d.DecodeOne(rest)
		if errors.Is(err, ErrTruncated) {
			break
		}
		if err != nil {
			return values, rest, err
		}
		values = append(values, v)
		rest = rest[n:]
	}
	return values, rest, nil
}

// DecodeOne decodes one top-level frame using DefaultLimits.
func DecodeOne(buf []byte) (Value, int, error) {
	var d Decoder
	return d.DecodeOne(buf)
}

// DecodeAll decodes all complete frames in buf using DefaultLimits.
func DecodeAll(buf []byte) ([]Value, []byte, error) {
	var d Decoder
	return d.DecodeAll(buf)
}

var crlf = []byte("\r\n")

// decodeValue is the recursive descent core. It returns the decoded value
// and the number of bytes it consumed from buf. The first byte selects
// the branch; depth counts enclosing arrays.
func decodeValue(buf []byte, lim Limits, depth int) (Value, int, error) {
	if len(buf) == 0 {
		return Value{}, 0, fmt.Errorf("%w: empty buffer", ErrTruncated)
	}

	switch Type(buf[0]) {
	case TypeSimpleString, TypeError:
		line, n, err := readLine(buf[1:])
		if err != nil {
			return Value{}, 0, err
		}
		return Value{
			Type: Type(buf[0]),
			Str:  append([]byte(nil), line...),
		}, 1 + n, nil

	case TypeInteger:
		line, n, err := readLine(buf[1:])
		if err != nil {
			return Value{}, 0, err
		}
		i, err := parseInt(line)
		if err != nil {
			return Value{}, 0, err
		}
		return Value{Type: TypeInteger, Int: i}, 1 + n, nil

	case TypeBulkString:
		return decodeBulkString(buf, lim)

	case TypeArray:
		return decodeArray(buf, lim, depth)

	default:
		return Value{}, 0, fmt.Errorf("%w: 0x%02x", ErrUnknownType, buf[0])
	}
}

func decodeBulkString(buf []byte, lim Limits) (Value, int, error) {
	line, n, err := readLine(buf[1:])
	if err != nil {
		return Value{}, 0, err
	}
	consumed := 1 + n

	length, err := parseLength(line)
	if err != nil {
		return Value{}, 0, fmt.Errorf("bulk string: %w", err)
	}
	if length == -1 {
		return NewNullBulkString(), consumed, nil
	}
	if length > lim.MaxBulkLen {
		return Value{}, 0, fmt.Errorf("%w: bulk length %d exceeds %d", ErrLimitExceeded, length, lim.MaxBulkLen)
	}

	rest := buf[consumed:]
	if len(rest) < length+len(crlf) {
		return Value{}, 0, fmt.Errorf("%w: bulk payload needs %d bytes, have %d", ErrTruncated, length+len(crlf), len(rest))
	}
	if !bytes.Equal(rest[length:length+len(crlf)], crlf) {
		return Value{}, 0, fmt.Errorf("%w: bulk payload not terminated by CRLF", ErrMalformedFrame)
	}
	return Value{
		Type: TypeBulkString,
		Bulk: append([]byte(nil), rest[:length]...),
	}, consumed + length + len(crlf), nil
}

func decodeArray(buf []byte, lim Limits, depth int) (Value, int, error) {
	if depth >= lim.MaxDepth {
		return Value{}, 0, fmt.Errorf("%w: depth exceeds %d", ErrNestingTooDeep, lim.MaxDepth)
	}

	line, n, err := readLine(buf[1:])
	if err != nil {
		return Value{}, 0, err
	}
	consumed := 1 + n

	count, err := parseLength(line)
	if err != nil {
		return Value{}, 0, fmt.Errorf("array: %w", err)
	}
	if count == -1 {
		return NewNullArray(), consumed, nil
	}
	if count > lim.MaxArrayLen {
		return Value{}, 0, fmt.Errorf("%w: array length %d exceeds %d", ErrLimitExceeded, count, lim.MaxArrayLen)
	}

	elems := make([]Value, 0, count)
	for i := 0; i < count; i++ {
		elem, n, err := decodeValue(buf[consumed:], lim, depth+1)
		if err != nil {
			return Value{}, 0, err
		}
		elems = append(elems, elem)
		consumed += n
	}
	return Value{Type: TypeArray, Elems: elems}, consumed, nil
}

// readLine returns the bytes up to the next CRLF and the count consumed
// including the terminator. A buffer with no CRLF is a truncated frame.
func readLine(buf []byte) ([]byte, int, error) {
	i := bytes.Index(buf, crlf)
	if i < 0 {
		return nil, 0, fmt.Errorf("%w: missing CRLF", ErrTruncated)
	}
	return buf[:i], i + len(crlf), nil
}

func parseInt(line []byte) (int64, error) {
	i, err := strconv.ParseInt(string(line), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedInteger, line)
	}
	return i, nil
}

// parseLength parses a bulk or array length field. -1 is the null
// marker and the lowest legal value.
func parseLength(line []byte) (int, error) {
	i, err := parseInt(line)
	if err != nil {
		return 0, err
	}
	if i < -1 {
		return 0, fmt.Errorf("%w: length %d", ErrMalformedFrame, i)
	}
	return int(i), nil
}
