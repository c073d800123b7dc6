package resp

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestDecodeOne_SimpleTypes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Value
		wantN   int
		wantErr error
	}{
		{
			name:  "simple string",
			input: "+PONG\r\n",
			want:  NewSimpleString("PONG"),
			wantN: 7,
		},
		{
			name:  "empty simple string",
			input: "+\r\n",
			want:  NewSimpleString(""),
			wantN: 3,
		},
		{
			name:  "server error",
			input: "-ERR unknown command\r\n",
			want:  NewError("ERR unknown command"),
			wantN: 22,
		},
		{
			name:  "integer",
			input: ":1000\r\n",
			want:  NewInteger(1000),
			wantN: 7,
		},
		{
			name:  "negative integer",
			input: ":-5\r\n",
			want:  NewInteger(-5),
			wantN: 5,
		},
		{
			name:  "zero integer",
			input: ":0\r\n",
			want:  NewInteger(0),
			wantN: 4,
		},
		{
			name:    "non-numeric integer",
			input:   ":abc\r\n",
			wantErr: ErrMalformedInteger,
		},
		{
			name:    "empty integer",
			input:   ":\r\n",
			wantErr: ErrMalformedInteger,
		},
		{
			name:    "unknown tag",
			input:   "?xyz\r\n",
			wantErr: ErrUnknownType,
		},
		{
			name:    "empty buffer",
			input:   "",
			wantErr: ErrTruncated,
		},
		{
			name:    "missing terminator",
			input:   "+PON",
			wantErr: ErrTruncated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n, err := DecodeOne([]byte(tt.input))

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				if n != 0 {
					t.Errorf("consumed %d bytes on error, want 0", n)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("value = %v, want %v", got, tt.want)
			}
			if n != tt.wantN {
				t.Errorf("consumed = %d, want %d", n, tt.wantN)
			}
		})
	}
}

func TestDecodeOne_BulkString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Value
		wantN   int
		wantErr error
	}{
		{
			name:  "simple bulk",
			input: "$5\r\nhello\r\n",
			want:  NewBulkString([]byte("hello")),
			wantN: 11,
		},
		{
			name:  "empty bulk",
			input: "$0\r\n\r\n",
			want:  NewBulkString([]byte{}),
			wantN: 6,
		},
		{
			name:  "null bulk",
			input: "$-1\r\n",
			want:  NewNullBulkString(),
			wantN: 5,
		},
		{
			name:  "binary safe payload",
			input: "$6\r\na\r\nb\x00c\r\n",
			want:  NewBulkString([]byte("a\r\nb\x00c")),
			wantN: 12,
		},
		{
			name:    "truncated payload",
			input:   "$5\r\nhel",
			wantErr: ErrTruncated,
		},
		{
			name:    "truncated terminator",
			input:   "$5\r\nhello\r",
			wantErr: ErrTruncated,
		},
		{
			name:    "missing terminator",
			input:   "$3\r\nfooXY\r\n",
			wantErr: ErrMalformedFrame,
		},
		{
			name:    "negative length below null",
			input:   "$-2\r\n",
			wantErr: ErrMalformedFrame,
		},
		{
			name:    "non-numeric length",
			input:   "$five\r\nhello\r\n",
			wantErr: ErrMalformedInteger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n, err := DecodeOne([]byte(tt.input))

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("value = %v, want %v", got, tt.want)
			}
			if n != tt.wantN {
				t.Errorf("consumed = %d, want %d", n, tt.wantN)
			}
		})
	}
}

func TestDecodeOne_NullAndEmptyAreDistinct(t *testing.T) {
	null, _, err := DecodeOne([]byte("$-1\r\n"))
	if err != nil {
		t.Fatalf("decode null bulk: %v", err)
	}
	empty, _, err := DecodeOne([]byte("$0\r\n\r\n"))
	if err != nil {
		t.Fatalf("decode empty bulk: %v", err)
	}

	if !null.IsNull() {
		t.Error("null bulk string not flagged as null")
	}
	if empty.IsNull() {
		t.Error("empty bulk string flagged as null")
	}
	if null.Equal(empty) || empty.Equal(null) {
		t.Error("null bulk string compares equal to empty bulk string")
	}
}

func TestDecodeOne_Array(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Value
		wantN   int
		wantErr error
	}{
		{
			name:  "empty array",
			input: "*0\r\n",
			want:  NewArray(),
			wantN: 4,
		},
		{
			name:  "null array",
			input: "*-1\r\n",
			want:  NewNullArray(),
			wantN: 5,
		},
		{
			name:  "flat array",
			input: "*2\r\n$3\r\nfoo\r\n$3\r\nbar\r\n",
			want:  NewArray(NewBulkString([]byte("foo")), NewBulkString([]byte("bar"))),
			wantN: 22,
		},
		{
			name:  "nested array",
			input: "*2\r\n:1\r\n*1\r\n+ok\r\n",
			want:  NewArray(NewInteger(1), NewArray(NewSimpleString("ok"))),
			wantN: 18,
		},
		{
			name:  "mixed types with null element",
			input: "*3\r\n+OK\r\n$-1\r\n:-1\r\n",
			want:  NewArray(NewSimpleString("OK"), NewNullBulkString(), NewInteger(-1)),
			wantN: 19,
		},
		{
			name:    "truncated element",
			input:   "*2\r\n:1\r\n",
			wantErr: ErrTruncated,
		},
		{
			name:    "truncated header",
			input:   "*2",
			wantErr: ErrTruncated,
		},
		{
			name:    "negative length below null",
			input:   "*-3\r\n",
			wantErr: ErrMalformedFrame,
		},
		{
			name:    "non-numeric length",
			input:   "*x\r\n",
			wantErr: ErrMalformedInteger,
		},
		{
			name:    "bad element tag",
			input:   "*1\r\n?no\r\n",
			wantErr: ErrUnknownType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n, err := DecodeOne([]byte(tt.input))

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("value = %v, want %v", got, tt.want)
			}
			if n != tt.wantN {
				t.Errorf("consumed = %d, want %d", n, tt.wantN)
			}
		})
	}
}

func TestDecodeOne_RemainderPassthrough(t *testing.T) {
	buf := []byte("+PONG\r\n+PONG\r\n")

	v, n, err := DecodeOne(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Equal(NewSimpleString("PONG")) {
		t.Errorf("value = %v, want +PONG", v)
	}
	if rest := string(buf[n:]); rest != "+PONG\r\n" {
		t.Errorf("remainder = %q, want %q", rest, "+PONG\r\n")
	}
}

func TestDecodeOne_Limits(t *testing.T) {
	tests := []struct {
		name    string
		limits  Limits
		input   string
		wantErr error
	}{
		{
			name:    "nesting too deep",
			limits:  Limits{MaxDepth: 2},
			input:   "*1\r\n*1\r\n*1\r\n:1\r\n",
			wantErr: ErrNestingTooDeep,
		},
		{
			name:   "nesting at limit",
			limits: Limits{MaxDepth: 2},
			input:  "*1\r\n*1\r\n:1\r\n",
		},
		{
			name:    "bulk length over limit",
			limits:  Limits{MaxBulkLen: 4},
			input:   "$5\r\nhello\r\n",
			wantErr: ErrLimitExceeded,
		},
		{
			name:    "array length over limit",
			limits:  Limits{MaxArrayLen: 2},
			input:   "*3\r\n:1\r\n:2\r\n:3\r\n",
			wantErr: ErrLimitExceeded,
		},
		{
			name:   "huge declared bulk rejected without allocation",
			limits: Limits{},
			input:  "$99999999999999\r\n",
			// over MaxBulkLen long before any payload exists
			wantErr: ErrLimitExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decoder{Limits: tt.limits}
			_, _, err := d.DecodeOne([]byte(tt.input))

			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecodeOne_DeepNestingWithinDefaultLimit(t *testing.T) {
	depth := DefaultMaxDepth
	input := strings.Repeat("*1\r\n", depth-1) + ":7\r\n"

	v, n, err := DecodeOne([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != len(input) {
		t.Errorf("consumed = %d, want %d", n, len(input))
	}
	for i := 0; i < depth-1; i++ {
		if v.Type != TypeArray || len(v.Elems) != 1 {
			t.Fatalf("level %d: not a single-element array: %v", i, v.Type)
		}
		v = v.Elems[0]
	}
	if !v.Equal(NewInteger(7)) {
		t.Errorf("innermost value = %v, want :7", v)
	}
}

func TestDecodeAll(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     []Value
		wantRest string
		wantErr  error
	}{
		{
			name:  "multiple complete frames",
			input: "+OK\r\n:1\r\n$3\r\nfoo\r\n",
			want: []Value{
				NewSimpleString("OK"),
				NewInteger(1),
				NewBulkString([]byte("foo")),
			},
		},
		{
			name:     "trailing truncated frame kept as remainder",
			input:    "+OK\r\n$5\r\nhel",
			want:     []Value{NewSimpleString("OK")},
			wantRest: "$5\r\nhel",
		},
		{
			name:  "empty buffer",
			input: "",
		},
		{
			name:     "hard error surfaces with prior values",
			input:    "+OK\r\n?bad\r\n",
			want:     []Value{NewSimpleString("OK")},
			wantRest: "?bad\r\n",
			wantErr:  ErrUnknownType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, rest, err := DecodeAll([]byte(tt.input))

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(values) != len(tt.want) {
				t.Fatalf("decoded %d values, want %d", len(values), len(tt.want))
			}
			for i := range values {
				if !values[i].Equal(tt.want[i]) {
					t.Errorf("value[%d] = %v, want %v", i, values[i], tt.want[i])
				}
			}
			if string(rest) != tt.wantRest {
				t.Errorf("remainder = %q, want %q", rest, tt.wantRest)
			}
		})
	}
}

// TestDecodeOne_Incremental feeds a frame one byte at a time, the way a
// transport loop does under short reads: every prefix must report
// ErrTruncated and the full buffer must decode.
func TestDecodeOne_Incremental(t *testing.T) {
	full := []byte("*2\r\n$6\r\nfoobar\r\n*1\r\n:42\r\n")
	want := NewArray(
		NewBulkString([]byte("foobar")),
		NewArray(NewInteger(42)),
	)

	for i := 0; i < len(full); i++ {
		if _, n, err := DecodeOne(full[:i]); !errors.Is(err, ErrTruncated) {
			t.Fatalf("prefix of %d bytes: err = %v, want ErrTruncated", i, err)
		} else if n != 0 {
			t.Fatalf("prefix of %d bytes: consumed %d", i, n)
		}
	}

	v, n, err := DecodeOne(full)
	if err != nil {
		t.Fatalf("full frame: %v", err)
	}
	if n != len(full) {
		t.Errorf("consumed = %d, want %d", n, len(full))
	}
	if !v.Equal(want) {
		t.Errorf("value = %v, want %v", v, want)
	}
}

func TestDecodeOne_CopiesPayload(t *testing.T) {
	buf := []byte("$3\r\nabc\r\n")
	v, _, err := DecodeOne(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	copy(buf, bytes.Repeat([]byte{'x'}, len(buf)))

	if string(v.Bulk) != "abc" {
		t.Errorf("payload changed after buffer reuse: %q", v.Bulk)
	}
}
