package services

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UnknownLocality is the key assigned to text that names no known locality.
const UnknownLocality = "unknown"

// DefaultVocabulary is the ordered list of known localities. Extraction
// returns the first entry that matches, so order is significant.
var DefaultVocabulary = []string{
	"andheri", "bandra", "bhandup", "byculla", "chembur", "colaba", "dadar", "dharavi",
	"fort", "ghatkopar", "girgaon", "goregaon", "govandi", "grant road", "jogeshwari",
	"juhu", "khar", "kurla", "lalbaug", "lokhandwala", "mahalakshmi", "mahim",
	"malabar hill", "malad", "marine drive", "masjid", "matunga", "mulund",
	"nariman point", "parel", "powai", "prabhadevi", "santacruz", "sion", "tardeo",
	"vidyavihar", "vikhroli", "vile parle", "wadala", "worli",
	"thane", "kalyan", "vasai", "virar", "dombivli", "badlapur",
}

var titleCaser = cases.Title(language.English)

// Normalize lower-cases text, turns punctuation into spaces and collapses
// whitespace. It never fails.
func Normalize(text string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)
	return strings.Join(strings.Fields(mapped), " ")
}

// DisplayName title-cases a canonical key for presentation.
func DisplayName(key string) string {
	return titleCaser.String(key)
}

// Resolver maps noisy locality text onto a fixed vocabulary.
type Resolver struct {
	vocabulary []string
	patterns   []*regexp.Regexp
}

// NewResolver compiles whole-word matchers for each vocabulary entry,
// keeping the given order. Empty and duplicate entries are skipped.
func NewResolver(vocabulary []string) *Resolver {
	r := &Resolver{}
	seen := make(map[string]struct{}, len(vocabulary))
	for _, v := range vocabulary {
		key := Normalize(v)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		r.vocabulary = append(r.vocabulary, key)
		r.patterns = append(r.patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(key)+`\b`))
	}
	return r
}

// Vocabulary returns a copy of the known localities in match order.
func (r *Resolver) Vocabulary() []string {
	return append([]string(nil), r.vocabulary...)
}

// ExtractCanonical returns the first vocabulary entry that appears in raw as
// a whole word, or UnknownLocality.
func (r *Resolver) ExtractCanonical(raw string) string {
	text := Normalize(raw)
	for i, p := range r.patterns {
		if p.MatchString(text) {
			return r.vocabulary[i]
		}
	}
	return UnknownLocality
}

// ExtractAll returns every vocabulary entry found in raw, ordered by where it
// first appears in the text.
func (r *Resolver) ExtractAll(raw string) []string {
	text := Normalize(raw)
	type hit struct {
		key string
		pos int
	}
	var hits []hit
	for i, p := range r.patterns {
		if loc := p.FindStringIndex(text); loc != nil {
			hits = append(hits, hit{key: r.vocabulary[i], pos: loc[0]})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.key)
	}
	return out
}

// Resolve finds the key for query among keys. An exact match wins; otherwise
// any key that contains the query or is contained in it is a candidate, and
// the candidate with the highest weight is chosen. Equal weights fall back to
// the order of keys. A nil weight treats all candidates equally.
func Resolve(query string, keys []string, weight func(key string) int) (string, bool) {
	q := Normalize(query)
	if q == "" {
		return "", false
	}

	for _, k := range keys {
		if k == q {
			return k, true
		}
	}

	best, bestWeight, found := "", 0, false
	for _, k := range keys {
		if !strings.Contains(k, q) && !strings.Contains(q, k) {
			continue
		}
		w := 0
		if weight != nil {
			w = weight(k)
		}
		if !found || w > bestWeight {
			best, bestWeight, found = k, w, true
		}
	}
	return best, found
}

// Suggest returns up to n keys closest to query by edit distance.
func Suggest(query string, keys []string, n int) []string {
	if n <= 0 || len(keys) == 0 {
		return nil
	}
	q := Normalize(query)

	type scored struct {
		key  string
		dist int
	}
	all := make([]scored, 0, len(keys))
	for _, k := range keys {
		all = append(all, scored{key: k, dist: levenshtein.ComputeDistance(q, k)})
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].dist != all[j].dist {
			return all[i].dist < all[j].dist
		}
		return all[i].key < all[j].key
	})

	if len(all) > n {
		all = all[:n]
	}
	out := make([]string, len(all))
	for i, s := range all {
		out[i] = s.key
	}
	return out
}
