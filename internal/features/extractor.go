package features

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/publicsuffix"

	"github.com/user/phishblock-service/internal/entity"
)

// ErrUnparsable signals that a URL was too malformed to extract features
// from. Callers never observe a partial vector.
var ErrUnparsable = errors.New("could not parse URL")

// ipv4Pattern deliberately accepts any 1-3 digit groups without checking
// the 0-255 range, so "999.999.999.999" counts as an IP. The model was
// trained with this behavior; keep it.
var ipv4Pattern = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)

// Normalize prepends "http://" when the raw string carries no explicit
// scheme. Normalizing an already-normalized URL is a no-op.
func Normalize(rawURL string) string {
	if strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://") {
		return rawURL
	}
	return "http://" + rawURL
}

// Extract computes the canonical feature vector for a URL. The result is
// aligned with entity.FeatureNames and must stay byte-for-byte consistent
// with the extension's client-side extractor: any divergence silently
// breaks detection.
func Extract(rawURL string) (entity.FeatureVector, error) {
	original := rawURL
	normalized := Normalize(rawURL)

	u, err := url.Parse(normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsable, err)
	}

	sub, dom, suffix := splitHost(u.Hostname())
	fullDomain := joinDomainParts(sub, dom, suffix)
	path := u.EscapedPath()
	lowered := strings.ToLower(normalized)

	domainLength := utf8.RuneCountInString(fullDomain)
	pathLength := utf8.RuneCountInString(path)

	keywordHits := 0
	for _, kw := range SuspiciousKeywords {
		if strings.Contains(lowered, kw) {
			keywordHits++
		}
	}

	suspiciousTLD := 0.0
	if suffix != "" {
		if _, ok := suspiciousTLDSet["."+suffix]; ok {
			suspiciousTLD = 1
		}
	}

	isIP := 0.0
	if ipv4Pattern.MatchString(fullDomain) {
		isIP = 1
	}

	isHTTPS := 0.0
	if strings.HasPrefix(strings.ToLower(original), "https://") {
		isHTTPS = 1
	}

	subdomainDepth := 0.0
	if sub != "" {
		subdomainDepth = float64(strings.Count(sub, ".") + 1)
	}

	digits, specials := 0, 0
	for _, r := range fullDomain {
		switch {
		case unicode.IsDigit(r):
			digits++
		case !unicode.IsLetter(r) && r != '.':
			specials++
		}
	}
	digitRatio := 0.0
	if domainLength > 0 {
		digitRatio = float64(digits) / float64(domainLength)
	}

	return entity.FeatureVector{
		float64(domainLength),                        // domain_length
		float64(strings.Count(fullDomain, ".")),      // qty_dot_domain
		float64(strings.Count(fullDomain, "-")),      // qty_hyphen_domain
		Entropy(fullDomain),                          // domain_entropy
		isIP,                                         // is_ip
		float64(pathLength),                          // path_length
		float64(strings.Count(path, "/")),            // qty_slash_path
		float64(strings.Count(path, "-")),            // qty_hyphen_path
		float64(keywordHits),                         // sus_keywords_count
		float64(strings.Count(path, "//")),           // qty_double_slash
		suspiciousTLD,                                // has_suspicious_tld
		isHTTPS,                                      // is_https
		subdomainDepth,                               // subdomain_depth
		digitRatio,                                   // digit_ratio
		float64(specials),                            // special_char_count
		float64(domainLength) / float64(pathLength+1), // domain_path_ratio
	}, nil
}

// RegistrableDomain returns the lower-cased "domain.suffix" portion of a
// URL, ignoring subdomains. It returns "" when no domain can be parsed
// out; callers treat that as "not trusted".
func RegistrableDomain(rawURL string) string {
	u, err := url.Parse(Normalize(rawURL))
	if err != nil {
		return ""
	}
	_, dom, suffix := splitHost(u.Hostname())
	if dom == "" {
		return ""
	}
	return dom + "." + suffix
}

// splitHost breaks a host into subdomain labels, domain, and public
// suffix, all lower-cased. IP addresses are kept whole in the domain
// slot. Hosts under an unlisted TLD get an empty suffix, with the last
// label standing in as the domain.
func splitHost(host string) (sub, domain, suffix string) {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if host == "" {
		return "", "", ""
	}
	if net.ParseIP(host) != nil {
		return "", host, ""
	}

	ps, icann := publicsuffix.PublicSuffix(host)
	if !icann && !strings.Contains(ps, ".") {
		// No rule matched; the wildcard fallback just echoes the last
		// label, which is not a real registry suffix.
		ps = ""
	}

	rest := host
	if ps != "" {
		if ps == host {
			return "", "", host
		}
		rest = strings.TrimSuffix(host, "."+ps)
		suffix = ps
	}
	if i := strings.LastIndex(rest, "."); i >= 0 {
		return rest[:i], rest[i+1:], suffix
	}
	return "", rest, suffix
}

func joinDomainParts(parts ...string) string {
	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ".")
}
