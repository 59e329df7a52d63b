// Package prompt reads interactive input from the terminal.
package prompt

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

// Input prompts for a line of input
func Input(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// Password prompts for password input (hidden)
func Password(prompt string) (string, error) {
	fmt.Print(prompt)

	// Try to read password securely
	if term.IsTerminal(int(syscall.Stdin)) {
		password, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println() // New line after password input
		if err != nil {
			return "", err
		}
		return string(password), nil
	}

	// Fallback to regular input if not a terminal
	return Input("")
}
