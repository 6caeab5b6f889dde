package match

import (
	"strings"

	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model"
)

// minTokenLength excludes short tokens ("Al", initials) from fuzzy matching;
// they produce too many false positives.
const minTokenLength = 3

// Person connects an insight's contact name to a known person. Matching is
// exact (case-insensitive) first, then token-fuzzy. There is no phone-number
// fallback: person records carry no phone numbers, so a nameless insight
// cannot be matched and is dropped from the merge.
func Person(insight *model.Insight, persons []*model.Person) *model.Person {
	if insight.ContactName == "" {
		return nil
	}

	for _, p := range persons {
		if strings.EqualFold(p.Name, insight.ContactName) {
			return p
		}
	}

	contactTokens := tokenize(insight.ContactName)
	for _, p := range persons {
		if tokensMatch(tokenize(p.Name), contactTokens) {
			return p
		}
	}

	return nil
}

// tokenize splits a name on space, hyphen and period, lowercasing tokens.
func tokenize(name string) []string {
	tokens := strings.FieldsFunc(name, func(r rune) bool {
		return r == ' ' || r == '-' || r == '.'
	})
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}
	return tokens
}

// tokensMatch reports a fuzzy hit: any token pair where both tokens are long
// enough and one equals or prefixes the other.
func tokensMatch(personTokens, contactTokens []string) bool {
	for _, pt := range personTokens {
		if len(pt) < minTokenLength {
			continue
		}
		for _, ct := range contactTokens {
			if len(ct) < minTokenLength {
				continue
			}
			if pt == ct || strings.HasPrefix(pt, ct) || strings.HasPrefix(ct, pt) {
				return true
			}
		}
	}
	return false
}
