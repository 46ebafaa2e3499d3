package features

// SuspiciousKeywords are matched case-insensitively as substrings of the
// whole normalized URL. The list is fixed at build time; it is not tied
// to model metadata versioning.
var SuspiciousKeywords = []string{
	"login", "verify", "update", "account", "secure", "banking",
	"confirm", "signin", "password", "wallet", "crypto", "admin", "service",
}

// SuspiciousTLDs are public suffixes (with leading dot) that are heavily
// abused by throwaway phishing registrations.
var SuspiciousTLDs = []string{
	".tk", ".ml", ".ga", ".cf", ".gq", ".xyz", ".top", ".club", ".work", ".buzz",
}

var suspiciousTLDSet = func() map[string]struct{} {
	s := make(map[string]struct{}, len(SuspiciousTLDs))
	for _, tld := range SuspiciousTLDs {
		s[tld] = struct{}{}
	}
	return s
}()
