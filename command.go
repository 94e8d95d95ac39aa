package germinal

import (
	"strings"
)

// StartupCommand returns the argv of the terminal's child process: args
// when given, otherwise the startup command setting split on spaces, and
// finally $SHELL or /bin/sh.
func StartupCommand(args []string, setting string, getenv func(string) string) []string {
	if len(args) > 0 {
		return append([]string(nil), args...)
	}

	var argv []string
	for _, word := range strings.Split(setting, " ") {
		if word != "" {
			argv = append(argv, word)
		}
	}
	if len(argv) > 0 {
		return argv
	}

	if shell := getenv("SHELL"); shell != "" {
		return []string{shell}
	}
	return []string{"/bin/sh"}
}

// ChildEnv returns environ with TERM set to term (left alone when term is
// empty) and COLORTERM advertising truecolor.
func ChildEnv(environ []string, term string) []string {
	env := make([]string, 0, len(environ)+2)
	for _, kv := range environ {
		if strings.HasPrefix(kv, "COLORTERM=") || (term != "" && strings.HasPrefix(kv, "TERM=")) {
			continue
		}
		env = append(env, kv)
	}
	if term != "" {
		env = append(env, "TERM="+term)
	}
	return append(env, "COLORTERM=truecolor")
}
