package utils

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// GravatarURL derives the avatar URL stored on a User from their email.
// Size is in pixels; rating is capped at pg, default icon is mystery-man.
func GravatarURL(email string, size int) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=%d&r=pg&d=mm", sum, size)
}
