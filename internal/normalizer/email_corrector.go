package normalizer

import (
	"strings"

	"github.com/agext/levenshtein"
	"go.uber.org/zap"
)

var popularExtensions = []string{
	"com", "fr", "net", "org", "eu", "be", "ch", "de", "uk", "it", "es", "ca", "co.uk", "com.fr",
}

var popularDomains = []string{
	"gmail.com", "googlemail.com",
	"hotmail.com", "hotmail.fr", "outlook.com", "outlook.fr", "live.com", "live.fr", "msn.com",
	"yahoo.com", "yahoo.fr", "ymail.com",
	"orange.fr", "wanadoo.fr",
	"free.fr",
	"sfr.fr", "neuf.fr",
	"icloud.com", "me.com", "mac.com",
	"protonmail.com", "proton.me",
	"laposte.net", "aol.com",
}

const (
	maxExtensionDistance = 1
	maxDomainDistance    = 2
	// Domains longer than this are presumed custom rather than misspelled.
	maxTypoDomainLength = 20
)

// EmailCorrection is the result of EmailCorrector.Correct.
type EmailCorrection struct {
	Email          string
	Corrected      bool
	OriginalDomain string
}

// EmailCorrector fixes common typos in the domain part of an address.
type EmailCorrector struct{}

// NewEmailCorrector returns an EmailCorrector.
func NewEmailCorrector() *EmailCorrector { return &EmailCorrector{} }

// Correct applies punctuation repair, extension correction and whole-domain
// correction in that order. Passes compose. OriginalDomain is set only when
// something changed.
func (c *EmailCorrector) Correct(email string) EmailCorrection {
	original := email
	email, corrected := fixPunctuation(email)

	at := strings.LastIndex(email, "@")
	if at < 0 {
		return EmailCorrection{Email: email}
	}
	local, dom := email[:at], email[at+1:]

	if dot := strings.LastIndex(dom, "."); dot >= 0 {
		if ext, ok := suggestExtension(dom[dot+1:]); ok {
			dom = dom[:dot] + "." + ext
			email = local + "@" + dom
			corrected = true
		}
	}

	if suggested, ok := suggestDomain(dom); ok {
		email = local + "@" + suggested
		corrected = true
	}

	if !corrected {
		return EmailCorrection{Email: email}
	}
	zap.L().Debug("normalizer.EmailCorrector: corrected", zap.String("from", original), zap.String("to", email))
	return EmailCorrection{Email: email, Corrected: true, OriginalDomain: domainOf(original)}
}

// fixPunctuation replaces stray , ; and : in the domain part with dots.
func fixPunctuation(email string) (string, bool) {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email, false
	}
	dom := email[at+1:]
	fixed := strings.NewReplacer(",", ".", ";", ".", ":", ".").Replace(dom)
	if fixed == dom {
		return email, false
	}
	return email[:at+1] + fixed, true
}

func suggestExtension(ext string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(ext))
	if contains(popularExtensions, lower) {
		return "", false
	}
	return closest(lower, popularExtensions, maxExtensionDistance)
}

func suggestDomain(dom string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(dom))
	if contains(popularDomains, lower) {
		return "", false
	}
	best, ok := closest(lower, popularDomains, maxDomainDistance)
	if !ok || !likelyTypo(lower, levenshtein.Distance(lower, best, nil)) {
		return "", false
	}
	return best, true
}

// likelyTypo separates misspelled providers from legitimate custom domains.
func likelyTypo(dom string, distance int) bool {
	if distance == 1 {
		return true
	}
	if strings.Contains(dom, "-") || len(dom) > maxTypoDomainLength {
		return false
	}
	return distance <= maxDomainDistance
}

// closest returns the first candidate with the strictly lowest distance to s,
// provided that distance is at most maxDist.
func closest(s string, candidates []string, maxDist int) (string, bool) {
	best, bestDist := "", maxDist+1
	for _, c := range candidates {
		if d := levenshtein.Distance(s, c, nil); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, best != ""
}

// domainOf returns the text between the first and second "@", or "".
func domainOf(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
