package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// readLine reads one line without its line terminator. A final line without
// a newline is returned normally; io.EOF is only returned when nothing was read.
func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ask prints a question and returns the reply verbatim.
func (c *Console) ask(question string) (string, error) {
	c.printf("\n %s:\n > ", question)
	return c.readLine()
}

// choose prints numbered options and reads until the reply names one of them,
// either by its index or by its exact text.
func (c *Console) choose(question string, options []string) (string, error) {
	for {
		c.printf("\n %s:\n", question)
		for i, option := range options {
			c.printf("  [%d] %s\n", i, option)
		}
		c.printf(" > ")

		reply, err := c.readLine()
		if err != nil {
			return "", err
		}

		if choice, ok := matchOption(strings.TrimSpace(reply), options); ok {
			return choice, nil
		}
		c.printf("Value \"%s\" is invalid\n", reply)
	}
}

// confirm asks a yes/no question that defaults to no.
func (c *Console) confirm(question string) (bool, error) {
	c.printf("\n %s (y/N):\n > ", question)
	reply, err := c.readLine()
	if err != nil {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(reply)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func matchOption(reply string, options []string) (string, bool) {
	if reply == "" {
		return "", false
	}
	for _, option := range options {
		if option == reply {
			return option, true
		}
	}
	if i, err := strconv.Atoi(reply); err == nil && i >= 0 && i < len(options) {
		return options[i], true
	}
	return "", false
}

func (c *Console) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

func (c *Console) println(line string) {
	_, _ = fmt.Fprintln(c.out, line)
}
