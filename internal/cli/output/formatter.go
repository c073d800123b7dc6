package output

import (
	"io"
	"strconv"
	"strings"

	"github.com/frezcirno/Rudis/internal/resp"
)

// Sprint renders v in redis-cli style. The result always ends with a
// newline.
func Sprint(v resp.Value) string {
	var sb strings.Builder
	render(&sb, v, "")
	return sb.String()
}

// Fprint writes the redis-cli style rendering of v to w.
func Fprint(w io.Writer, v resp.Value) error {
	_, err := io.WriteString(w, Sprint(v))
	return err
}

// render writes v starting at the current cursor position and terminates
// the last line. indent is the column prefix for continuation lines of a
// nested array.
func render(sb *strings.Builder, v resp.Value, indent string) {
	if v.Type != resp.TypeArray {
		sb.WriteString(scalar(v))
		sb.WriteByte('\n')
		return
	}

	switch {
	case v.Null:
		sb.WriteString("(nil)\n")
	case len(v.Elems) == 0:
		sb.WriteString("(empty array)\n")
	default:
		for i, e := range v.Elems {
			label := strconv.Itoa(i+1) + ") "
			if i > 0 {
				sb.WriteString(indent)
			}
			sb.WriteString(label)
			render(sb, e, indent+strings.Repeat(" ", len(label)))
		}
	}
}

func scalar(v resp.Value) string {
	switch v.Type {
	case resp.TypeSimpleString:
		return string(v.Str)
	case resp.TypeError:
		return "(error) " + string(v.Str)
	case resp.TypeInteger:
		return "(integer) " + strconv.FormatInt(v.Int, 10)
	case resp.TypeBulkString:
		if v.Null {
			return "(nil)"
		}
		return strconv.Quote(string(v.Bulk))
	default:
		return "(invalid)"
	}
}
