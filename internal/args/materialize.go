package args

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mgrunder/goparallel/internal/engine"
)

// expand resolves a single placeholder token against an input and job id.
func expand(placeholder, input string, id int) string {
	switch placeholder {
	case "{}":
		return input
	case "{.}":
		ext := filepath.Ext(input)
		return strings.TrimSuffix(input, ext)
	case "{/}":
		return filepath.Base(input)
	case "{//}":
		return filepath.Dir(input)
	case "{/.}":
		base := filepath.Base(input)
		return strings.TrimSuffix(base, filepath.Ext(base))
	case "{#}":
		return strconv.Itoa(id + 1)
	default:
		return placeholder
	}
}

// render concatenates tokens into a single string with placeholders
// expanded against input and id.
func render(tokens []Token, input string, id int) string {
	var b strings.Builder
	for _, t := range tokens {
		switch t.Kind {
		case Literal:
			b.WriteString(t.Text)
		case Placeholder:
			b.WriteString(expand(t.Text, input, id))
		}
	}
	return b.String()
}

// Materializer builds an engine.Materializer from a tokenized command
// template: when useShell is true the rendered command is handed to
// "sh -c" (matching the "sh -c '...' _ {}" idiom used throughout this
// project's tests), otherwise the template is split on whitespace and each
// resulting word is rendered independently into an argv entry.
func Materializer(tokens []Token, useShell bool) engine.Materializer {
	if useShell {
		return func(input string, id int) (string, []string) {
			command := render(tokens, input, id)
			return "sh", []string{"sh", "-c", command, "_", input}
		}
	}

	wordTokens := splitWords(tokens)
	return func(input string, id int) (string, []string) {
		argv := make([]string, 0, len(wordTokens))
		for _, word := range wordTokens {
			argv = append(argv, render(word, input, id))
		}
		var name string
		if len(argv) > 0 {
			name = argv[0]
		}
		return name, argv
	}
}

// splitWords groups tokens into words, splitting Literal tokens on
// whitespace while keeping Placeholder tokens intact within whichever word
// they fall into. No quoting or escaping is recognized.
func splitWords(tokens []Token) [][]Token {
	var words [][]Token
	var current []Token

	flush := func() {
		if len(current) > 0 {
			words = append(words, current)
			current = nil
		}
	}

	for _, t := range tokens {
		if t.Kind == Placeholder {
			current = append(current, t)
			continue
		}
		parts := strings.Fields(t.Text)
		if len(parts) == 0 {
			if strings.TrimSpace(t.Text) == "" && t.Text != "" {
				flush()
			}
			continue
		}
		startsWithSpace := len(t.Text) > 0 && isSpace(rune(t.Text[0]))
		if startsWithSpace {
			flush()
		}
		for i, p := range parts {
			if i > 0 {
				flush()
			}
			current = append(current, Token{Kind: Literal, Text: p})
		}
		endsWithSpace := len(t.Text) > 0 && isSpace(rune(t.Text[len(t.Text)-1]))
		if endsWithSpace {
			flush()
		}
	}
	flush()

	return words
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}
