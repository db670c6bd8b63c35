package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PromptYesNo asks a yes/no question on writer and reads the answer from
// reader, re-asking until it gets one. End of input counts as no.
func PromptYesNo(prompt string, reader io.Reader, writer io.Writer) bool {
	scanner := bufio.NewScanner(reader)

	for {
		_, _ = fmt.Fprintf(writer, "%s (y/n): ", prompt)
		if !scanner.Scan() {
			return false
		}

		input := strings.TrimSpace(strings.ToLower(scanner.Text()))

		switch input {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		// Invalid input, loop continues
	}
}
