package command

import (
	"fmt"
	"io"

	"github.com/frezcirno/Rudis/internal/cli/connection"
	"github.com/frezcirno/Rudis/internal/cli/output"
)

// runOnce sends a single command and renders the reply. Server error
// replies are data and render as "(error) ..."; only transport and
// protocol failures become errors (and a non-zero exit).
func runOnce(w io.Writer, client *connection.Client, args []string) error {
	v, err := client.DoStrings(args...)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	return output.Fprint(w, v)
}
