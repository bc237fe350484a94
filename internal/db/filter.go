package db

import (
	"fmt"
	"strings"
)

// TagFilter builds an FT.SEARCH TAG pre-filter clause with escaping.
func TagFilter(field, value string) string {
	return fmt.Sprintf("@%s:{%s}", field, tagEscaper.Replace(value))
}

// NumericFilter builds an FT.SEARCH numeric range pre-filter clause.
// Use "-inf"/"+inf" for open bounds.
func NumericFilter(field, minBound, maxBound string) string {
	return fmt.Sprintf("@%s:[%s %s]", field, minBound, maxBound)
}

// tagEscaper escapes TAG syntax characters for FT.SEARCH dialect 2.
var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	" ", "\\ ",
)
