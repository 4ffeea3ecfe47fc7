package generator

import "strings"

// proseEscaper makes arbitrary text safe to embed as Markdown prose.
// strings.Replacer applies the table in a single left-to-right pass, so the
// entities and backslashes it inserts are never escaped a second time.
var proseEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&#34;",
	"'", "&#39;",
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"{", `\{`,
	"}", `\}`,
	"_", `\_`,
	"-", `\-`,
	"*", `\*`,
	"+", `\+`,
	`\`, `\\`,
	"~", `\~`,
	"@", `\@`,
	"#", `\#`,
	".", `\.`,
	"(", `\(`,
	")", `\)`,
	"!", `\!`,
	"|", `\|`,
)

// lineCollapser turns multi-line labels into one physical line.
var lineCollapser = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// Escape returns s with every Markdown-significant character neutralised.
func Escape(s string) string {
	return proseEscaper.Replace(s)
}
