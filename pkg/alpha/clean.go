package alpha

import (
	"regexp"
	"strings"
)

var (
	paragraphBreak = regexp.MustCompile(`\n{2,}`)

	altUnescaper = strings.NewReplacer(`\n`, "\n", `\'s`, "'s")
)

// Blocks splits the alt text of a pod into the text blocks handed to the
// table formatter. Escaped newlines are restored, paragraphs are split on
// blank lines and lines that only hold a parenthesised annotation, such as
// "(in kilograms)", are dropped.
func Blocks(raw string) []string {
	var blocks []string

	for _, paragraph := range paragraphBreak.Split(altUnescaper.Replace(raw), -1) {
		paragraph = strings.Trim(dropAnnotations(paragraph), "\n")
		if paragraph != "" {
			blocks = append(blocks, paragraph)
		}
	}

	return blocks
}

func dropAnnotations(paragraph string) string {
	lines := strings.Split(paragraph, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if isAnnotation(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func isAnnotation(line string) bool {
	return len(line) > 2 && strings.HasPrefix(line, "(") && strings.HasSuffix(line, ")")
}
