package redis

const (
	// KeyUsage is the hash of link ID -> visit count
	KeyUsage = "linkhub:usage"
	// KeyPrefixTheme is the prefix for per-visitor theme preferences
	KeyPrefixTheme = "linkhub:pref:theme:"
	// KeySnapshot holds the last directory that loaded successfully
	KeySnapshot = "linkhub:directory:snapshot"
)

// ThemeKey returns the Redis key for a visitor's theme preference
func ThemeKey(visitorID string) string {
	return KeyPrefixTheme + visitorID
}
