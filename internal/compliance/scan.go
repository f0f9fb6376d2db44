package compliance

import (
	"fmt"
	"regexp"
	"strconv"
)

const excessiveExperienceYears = 20

var (
	scanSentenceRe = regexp.MustCompile(`[.!?]+`)
	experienceRe   = regexp.MustCompile(`(?i)(\d{2,})\s*years?\s*(of\s*)?experience`)
	certifiedByRe  = regexp.MustCompile(`(?i)must\s+be\s+certified\s+by`)
	brandOnlyRe    = regexp.MustCompile(`(?i)only.*brand|brand.*only`)
	minimumFortyRe = regexp.MustCompile(`(?i)minimum.*40.*years`)
)

// Scan is the lightweight restrictive-language pass used live during
// chat. It annotates sentences with human-readable flags rather than
// producing formal compliance checks, so a flagged reply can still be
// sent to the user.
func Scan(text string) []string {
	var flags []string
	seen := make(map[string]bool)
	add := func(flag string) {
		if !seen[flag] {
			seen[flag] = true
			flags = append(flags, flag)
		}
	}

	for _, sentence := range scanSentenceRe.Split(text, -1) {
		if m := experienceRe.FindStringSubmatch(sentence); m != nil {
			if years, err := strconv.Atoi(m[1]); err == nil && years > excessiveExperienceYears {
				add(fmt.Sprintf("Excessive experience requirement: %d years", years))
			}
		}
		if certifiedByRe.MatchString(sentence) {
			add("Specific certification requirement")
		}
		if brandOnlyRe.MatchString(sentence) {
			add("Brand restriction")
		}
		if minimumFortyRe.MatchString(sentence) {
			add("Unreasonable minimum experience requirement")
		}
	}

	return flags
}
