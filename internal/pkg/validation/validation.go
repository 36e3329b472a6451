package validation

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Expo tokens look like ExponentPushToken[xxxxxxxx] (ExpoPushToken[...] on newer SDKs).
var expoTokenRe = regexp.MustCompile(`^Expo(nent)?PushToken\[[A-Za-z0-9_\-]+\]$`)

var platforms = map[string]bool{"ios": true, "android": true, "web": true}

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// IsValidPushToken reports whether token is an Expo push token.
func IsValidPushToken(token string) bool {
	return expoTokenRe.MatchString(token)
}

// NormalizePlatform lowercases p and reports whether it is a supported platform.
// An empty platform is accepted and stays empty.
func NormalizePlatform(p string) (string, bool) {
	p = strings.ToLower(strings.TrimSpace(p))
	if p == "" {
		return "", true
	}
	return p, platforms[p]
}
