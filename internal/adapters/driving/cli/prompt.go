package cli

import (
	"bufio"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// prompt prints label and reads one line from the command's input.
func prompt(cmd *cobra.Command, reader *bufio.Reader, label string) string {
	cmd.Print(label)
	return readLine(reader)
}

// promptSecret reads a line without echo when stdin is a terminal.
func promptSecret(cmd *cobra.Command, reader *bufio.Reader, label string) string {
	cmd.Print(label)
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		cmd.Println()
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	return readLine(reader)
}

// splitList parses a comma or space separated flag value.
func splitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(fields) == 0 {
		return nil
	}
	return fields
}
