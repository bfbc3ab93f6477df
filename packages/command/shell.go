package command

import "strings"

// shellSpecial holds every character that makes a token unsafe to pass to
// a POSIX shell unquoted.
const shellSpecial = " \t\n\r" + // whitespace
	`"'\` + // quoting and escape
	"|&;()<>" + // operators and redirection
	"$`" + // expansion and command substitution
	"*?[]" + // globbing
	"{}" + // brace expansion
	"!#" + // history and comments
	"~" // tilde expansion

var urlPrefixes = []string{"http://", "https://", "ftp://"}

// NeedsQuoting reports whether arg must be quoted for the shell. URLs are
// passed through as written.
func NeedsQuoting(arg string) bool {
	for _, prefix := range urlPrefixes {
		if strings.HasPrefix(arg, prefix) {
			return false
		}
	}
	return arg == "" || strings.ContainsAny(arg, shellSpecial)
}

// Quote wraps arg in single quotes. Embedded single quotes are written as
// '"'"' so the result stays a single shell word.
func Quote(arg string) string {
	return "'" + escapeSingleQuotes(arg) + "'"
}

func escapeSingleQuotes(s string) string {
	return strings.ReplaceAll(s, "'", `'"'"'`)
}

// FormatArg quotes arg when needed. Arguments that already begin with a
// quote character are left alone.
func FormatArg(arg string) string {
	if strings.HasPrefix(arg, `"`) || strings.HasPrefix(arg, "'") {
		return arg
	}
	if NeedsQuoting(arg) {
		return Quote(arg)
	}
	return arg
}

// Format quotes each token as needed and joins them with single spaces.
func Format(tokens []string) string {
	formatted := make([]string, len(tokens))
	for i, t := range tokens {
		formatted[i] = FormatArg(t)
	}
	return strings.Join(formatted, " ")
}
