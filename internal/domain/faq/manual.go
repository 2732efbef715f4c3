package faq

import (
	"regexp"
	"strings"
)

var (
	questionLinePattern = regexp.MustCompile(`(?i)^(?:Q:|Pergunta:|P:|\d+[.)])\s*(.+\?)$`)
	answerLinePattern   = regexp.MustCompile(`(?i)^(?:R:|Resposta:|A:)\s*(.+)$`)
)

// ParseManual scans text line by line for marked questions and answers. Only the
// question marker line must end in "?"; unmarked lines after an open question are
// appended to its answer.
func ParseManual(text string) []Item {
	var (
		items    []Item
		question string
		answer   []string
	)
	flush := func() {
		a := strings.TrimSpace(strings.Join(answer, " "))
		if question != "" && a != "" {
			items = append(items, Item{Question: question, Answer: a})
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := questionLinePattern.FindStringSubmatch(line); m != nil {
			flush()
			question = strings.TrimSpace(m[1])
			answer = nil
			continue
		}
		if m := answerLinePattern.FindStringSubmatch(line); m != nil {
			answer = []string{strings.TrimSpace(m[1])}
			continue
		}
		if question != "" {
			answer = append(answer, line)
		}
	}
	flush()
	return items
}
