package util

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Input and Output are where prompts read answers and write questions.
var (
	Input  io.Reader = os.Stdin
	Output io.Writer = os.Stdout
)

func readLine() (string, bool) {
	reader := bufio.NewReader(Input)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return "", false
	}
	return strings.TrimSpace(response), true
}

// PromptString asks for a value, falling back to def on an empty answer or
// closed input.
func PromptString(prompt string, def string) string {
	fmt.Fprintf(Output, "%s (%s): ", prompt, def)

	response, ok := readLine()
	if !ok || response == "" {
		return def
	}

	return response
}

func PromptYN(prompt string, def bool) bool {
	if def {
		fmt.Fprintf(Output, "%s (Y/n): ", prompt)
	} else {
		fmt.Fprintf(Output, "%s (y/N): ", prompt)
	}

	response, ok := readLine()
	if !ok || response == "" {
		return def
	}

	return strings.ToLower(response) == "y"
}
