package chat

import (
	"regexp"
	"strconv"
	"strings"

	"proptech-analytics/services"
)

var (
	amountRegexp  = regexp.MustCompile(`(?i)₹?\s*(\d+(?:\.\d+)?)\s*(crores?|cr|lakhs?|lacs?|l|thousand|k)\b`)
	percentRegexp = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
	yearsRegexp   = regexp.MustCompile(`(?i)(\d+)\s*(?:years?|yrs?|y)\b`)
)

// Entities are the values pulled out of one chat message.
type Entities struct {
	Localities  []string
	AmountsLakh []float64
	Percentages []float64
	Years       []int
	words       map[string]struct{}
	text        string
}

// Extract parses message. Localities are canonical keys in the order they
// appear; amounts are converted to lakh.
func Extract(resolver *services.Resolver, message string) Entities {
	e := Entities{
		Localities: resolver.ExtractAll(message),
		words:      make(map[string]struct{}),
		text:       services.Normalize(message),
	}
	for _, w := range strings.Fields(e.text) {
		e.words[w] = struct{}{}
	}

	for _, m := range amountRegexp.FindAllStringSubmatch(message, -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		switch unit := strings.ToLower(m[2]); {
		case strings.HasPrefix(unit, "cr"):
			v *= 100
		case unit == "k" || unit == "thousand":
			v /= 100
		}
		e.AmountsLakh = append(e.AmountsLakh, v)
	}
	for _, m := range percentRegexp.FindAllStringSubmatch(message, -1) {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			e.Percentages = append(e.Percentages, v)
		}
	}
	for _, m := range yearsRegexp.FindAllStringSubmatch(message, -1) {
		if v, err := strconv.Atoi(m[1]); err == nil {
			e.Years = append(e.Years, v)
		}
	}
	return e
}

// HasWord reports whether any of words occurs as a whole word.
func (e Entities) HasWord(words ...string) bool {
	for _, w := range words {
		if _, ok := e.words[w]; ok {
			return true
		}
	}
	return false
}

// HasPhrase reports whether any of phrases occurs in the normalised text.
func (e Entities) HasPhrase(phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(e.text, p) {
			return true
		}
	}
	return false
}

// HasData reports whether any locality, amount, percentage or tenure was found.
func (e Entities) HasData() bool {
	return len(e.Localities) > 0 || len(e.AmountsLakh) > 0 || len(e.Percentages) > 0 || len(e.Years) > 0
}

// Empty reports whether the message had no words at all.
func (e Entities) Empty() bool {
	return len(e.words) == 0
}
