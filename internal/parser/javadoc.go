package parser

import "strings"

// CleanJavadoc strips the comment delimiters and leading "*" gutters from a
// javadoc block, preserving line structure, and trims surrounding
// whitespace. A comment that is empty after cleaning yields "".
func CleanJavadoc(text string) string {
	text = strings.TrimPrefix(text, "/**")
	text = strings.TrimSuffix(text, "*/")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "*") {
			line = strings.TrimPrefix(line, "*")
			line = strings.TrimPrefix(line, " ")
		}
		lines[i] = line
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
