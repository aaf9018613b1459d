package process

import (
	"fmt"

	"github.com/google/shlex"
)

// SplitCommand splits a command line with shell-like quoting rules.
// No expansion is performed; the words are passed to exec as is.
func SplitCommand(line string) ([]string, error) {
	words, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("failed to split %q: %w", line, err)
	}
	return words, nil
}

// SplitAll splits every entry of lines and concatenates the words, so that
// both ["g++ -xc++"] and ["g++", "-xc++"] describe the same command.
func SplitAll(lines []string) ([]string, error) {
	var words []string
	for _, line := range lines {
		w, err := SplitCommand(line)
		if err != nil {
			return nil, err
		}
		words = append(words, w...)
	}
	return words, nil
}
