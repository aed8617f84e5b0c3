package util

import (
	"regexp"
	"strings"
)

var codeBlockRe = regexp.MustCompile("(?s)```(?:json)?(.*?)```")

// ExtractJsonFromText pulls the JSON document out of an LLM reply, which may
// wrap it in markdown fences or surround it with prose.
func ExtractJsonFromText(text string) string {
	if matches := codeBlockRe.FindStringSubmatch(text); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	start := earliestIndex(strings.Index(text, "{"), strings.Index(text, "["))
	if start == -1 {
		return text
	}

	end := latestIndex(strings.LastIndex(text, "}"), strings.LastIndex(text, "]"))
	if end > start {
		return text[start : end+1]
	}
	return text
}

func earliestIndex(a, b int) int {
	if a == -1 {
		return b
	}
	if b == -1 {
		return a
	}
	if a < b {
		return a
	}
	return b
}

func latestIndex(a, b int) int {
	if a > b {
		return a
	}
	return b
}
