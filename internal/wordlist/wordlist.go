// Package wordlist provides the embedded practice vocabulary.
package wordlist

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"strings"
)

//go:embed words/en.txt
var wordsFS embed.FS

const defaultListName = "words/en.txt"

var defaultWords = mustLoadDefault()

// Default returns a copy of the embedded English word list.
func Default() []string {
	return append([]string(nil), defaultWords...)
}

func mustLoadDefault() []string {
	f, err := wordsFS.Open(defaultListName)
	if err != nil {
		panic(fmt.Sprintf("wordlist: open embedded list: %v", err))
	}
	defer func() {
		_ = f.Close()
	}()
	words, err := ParseWords(f)
	if err != nil {
		panic(fmt.Sprintf("wordlist: parse embedded list: %v", err))
	}
	return words
}

// ParseWords reads one word per line, skipping blank lines and # comments.
func ParseWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}
