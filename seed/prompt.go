package seed

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm asks a y/N question on out and reads the answer from in. Anything
// other than "y" or "yes" (case-insensitive), including EOF, is a no.
func Confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s (y/N): ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
