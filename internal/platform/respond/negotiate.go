package respond

import (
	"strconv"
	"strings"
)

// mediaRange is one entry of an Accept header.
type mediaRange struct {
	typ     string
	subtype string
	q       float64
}

// parseAccept splits an Accept header into media ranges. Entries without a slash are
// dropped; a missing or malformed q defaults to 1 and out-of-range values are clamped.
func parseAccept(header string) []mediaRange {
	var ranges []mediaRange
	for part := range strings.SplitSeq(header, ",") {
		params := strings.Split(part, ";")
		mt := strings.ToLower(strings.TrimSpace(params[0]))
		typ, subtype, ok := strings.Cut(mt, "/")
		if !ok || typ == "" || subtype == "" {
			continue
		}
		r := mediaRange{typ: typ, subtype: subtype, q: 1}
		for _, p := range params[1:] {
			key, value, _ := strings.Cut(strings.TrimSpace(p), "=")
			if strings.TrimSpace(key) != "q" {
				continue
			}
			q, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil {
				continue
			}
			r.q = min(max(q, 0), 1)
		}
		ranges = append(ranges, r)
	}
	return ranges
}

// specificity ranks how precisely r names the representation with the given structured
// syntax suffix ("json" or "cbor"). -1 means no match.
func (r mediaRange) specificity(suffix string) int {
	switch {
	case r.typ == "*" && r.subtype == "*":
		return 0
	case r.typ != "application":
		return -1
	case r.subtype == "*":
		return 1
	case r.subtype == "*+"+suffix:
		return 2
	case r.subtype == suffix:
		return 3
	case r.subtype == "problem+"+suffix:
		return 4
	}
	return -1
}

// preference returns the quality assigned to a format by its most specific matching range.
func preference(ranges []mediaRange, suffix string) (q float64, rank int) {
	rank = -1
	for _, r := range ranges {
		s := r.specificity(suffix)
		if s < 0 {
			continue
		}
		if s > rank || (s == rank && r.q > q) {
			rank, q = s, r.q
		}
	}
	return q, rank
}

// prefersCBOR reports whether the client ranks CBOR strictly above JSON. Ranking is by
// q-value first and specificity second; JSON wins every tie and every unmatched header.
func prefersCBOR(accept string) bool {
	ranges := parseAccept(accept)
	cborQ, cborRank := preference(ranges, "cbor")
	if cborRank < 0 || cborQ == 0 {
		return false
	}
	jsonQ, jsonRank := preference(ranges, "json")
	if jsonRank < 0 {
		return true
	}
	if cborQ != jsonQ {
		return cborQ > jsonQ
	}
	return cborRank > jsonRank
}
