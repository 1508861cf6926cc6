// Command rtbot-secret stores a credential in the OS keychain under its environment variable name.
//
//	rtbot-secret X_CONSUMER_SECRET
//
// The value is read from the terminal without echo, or from stdin when it is not a terminal.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"golang.org/x/term"

	"github.com/anatolykoptev/go-rtbot/internal/config"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "rtbot-secret:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: rtbot-secret <NAME>; NAME is one of %s", strings.Join(config.SecretNames(), ", "))
	}
	name := strings.ToUpper(strings.TrimSpace(args[0]))
	if !slices.Contains(config.SecretNames(), name) {
		return fmt.Errorf("%s is not a keychain-backed setting", name)
	}

	value, err := readValue(name)
	if err != nil {
		return err
	}
	if value == "" {
		return errors.New("empty value, nothing stored")
	}
	if err := config.StoreSecret(name, value); err != nil {
		return fmt.Errorf("store %s: %w", name, err)
	}
	fmt.Fprintf(os.Stderr, "stored %s in keychain service %q\n", name, config.KeyringService)
	return nil
}

func readValue(name string) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprintf(os.Stderr, "%s: ", name)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", name, err)
		}
		return strings.TrimSpace(string(b)), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read %s from stdin: %w", name, err)
	}
	return strings.TrimSpace(line), nil
}
