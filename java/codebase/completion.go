package codebase

import (
	"slices"
	"strings"
	"unicode"
)

type CompletionKind int

const (
	CompletionKindModule CompletionKind = iota
	CompletionKindKeyword
)

type CompletionItem struct {
	Label      string
	Kind       CompletionKind
	Detail     string
	InsertText string
}

var directiveKeywords = []string{"requires", "exports", "opens", "uses", "provides"}

// CompletionsAtPoint suggests module names after requires, after to and
// after a comma in a to list, and directive keywords at the start of a
// directive. line is 1-based and column is the 0-based rune offset of the
// cursor.
func (c *Codebase) CompletionsAtPoint(path string, line, column int) []CompletionItem {
	f := c.GetFile(path)
	if f == nil {
		return nil
	}
	before, ok := textBefore(f.Content, line, column)
	if !ok {
		return nil
	}

	partial := trailingName(before)
	words := statementWords(strings.TrimSuffix(before, partial))

	var items []CompletionItem
	switch {
	case wantsModuleName(words):
		for _, m := range c.Modules() {
			name := m.ModuleName()
			if name == f.ModuleName() || !strings.HasPrefix(name, partial) {
				continue
			}
			if slices.ContainsFunc(items, func(it CompletionItem) bool { return it.Label == name }) {
				continue
			}
			items = append(items, CompletionItem{
				Label:      name,
				Kind:       CompletionKindModule,
				Detail:     m.Path,
				InsertText: name,
			})
		}
	case len(words) == 0 && insideModuleBody(before):
		for _, kw := range directiveKeywords {
			if strings.HasPrefix(kw, partial) {
				items = append(items, CompletionItem{
					Label:      kw,
					Kind:       CompletionKindKeyword,
					InsertText: kw + " ",
				})
			}
		}
	}
	return items
}

// textBefore returns the source text from the start of content up to the
// cursor.
func textBefore(content []byte, line, column int) (string, bool) {
	lines := strings.Split(string(content), "\n")
	if line <= 0 || line > len(lines) || column < 0 {
		return "", false
	}
	current := []rune(lines[line-1])
	if column > len(current) {
		column = len(current)
	}
	prefix := strings.Join(lines[:line-1], "\n")
	if line > 1 {
		prefix += "\n"
	}
	return prefix + string(current[:column]), true
}

func isNameRune(r rune) bool {
	return r == '.' || r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// trailingName returns the partially typed name at the end of s.
func trailingName(s string) string {
	i := strings.LastIndexFunc(s, func(r rune) bool { return !isNameRune(r) })
	return s[i+1:]
}

// statementWords splits the current directive, from the last ';' or '{',
// into words, keeping commas as separate words.
func statementWords(s string) []string {
	start := strings.LastIndexAny(s, ";{")
	stmt := s[start+1:]
	stmt = strings.ReplaceAll(stmt, ",", " , ")
	return strings.Fields(stmt)
}

func wantsModuleName(words []string) bool {
	if len(words) == 0 {
		return false
	}
	switch words[0] {
	case "requires":
		for _, w := range words[1:] {
			if w != "static" && w != "transitive" {
				return false
			}
		}
		return true
	case "exports", "opens":
		if len(words) < 3 || words[2] != "to" {
			return false
		}
		last := words[len(words)-1]
		return last == "to" || last == ","
	}
	return false
}

func insideModuleBody(s string) bool {
	return strings.Contains(s, "{") && !strings.Contains(s[strings.LastIndex(s, "{"):], "}")
}
