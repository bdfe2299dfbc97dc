/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package groom

import (
	"strings"

	"github.com/google/uuid"
)

const CodeLength = 4

// CodeFunc produces a short shareable game code.
type CodeFunc func() string

// GenerateCode truncates a random UUID to CodeLength upper-case characters.
// Codes are not checked for uniqueness; a process hosts one session per browser.
func GenerateCode() string {
	return strings.ToUpper(uuid.NewString()[:CodeLength])
}

// NormalizeCode trims and upper-cases a code typed by a player.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func validCode(code string) bool {
	if len(code) != CodeLength {
		return false
	}

	for _, r := range code {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}

	return true
}
