package parse

import (
	"strings"

	"github.com/google/shlex"
)

// Split splits an invocation line into arguments using shell quoting rules
func Split(s string) ([]string, error) {
	args, err := shlex.Split(s)
	if err != nil {
		return nil, err
	}

	return args, nil
}

// Assignment splits a "name:value" argument. The name is everything before the
// first colon; values may contain further colons.
func Assignment(arg string) (name, value string, ok bool) {
	name, value, ok = strings.Cut(arg, ":")
	if !ok || strings.TrimSpace(name) == "" {
		return "", "", false
	}

	return strings.TrimSpace(name), value, true
}
