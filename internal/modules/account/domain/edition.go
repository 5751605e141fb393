package domain

import (
	"strconv"
	"strings"
)

// Edition is the account's product edition code as reported by the helper.
type Edition int

// EditionUnknown is returned whenever sign-in did not produce an edition.
const EditionUnknown Edition = -1

// ParseEdition reads a success payload. Anything non-numeric is edition 0.
func ParseEdition(payload string) Edition {
	code, err := strconv.Atoi(strings.TrimSpace(payload))
	if err != nil {
		return 0
	}
	return Edition(code)
}

func (e Edition) Known() bool {
	return e != EditionUnknown
}

func (e Edition) String() string {
	if !e.Known() {
		return "unknown"
	}
	return strconv.Itoa(int(e))
}

// SplitPlugins turns a comma-joined plugin payload into names. An empty
// payload is an empty list.
func SplitPlugins(payload string) []string {
	if payload == "" {
		return []string{}
	}
	return strings.Split(payload, ",")
}
