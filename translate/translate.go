/*
Package translate derives a display-filter expression from a loosely
worded request, such as

	get me all ngap packets with dst port 38412

becoming

	ngap && sctp.dstport == 38412

It is a bounded keyword scanner, not a language model: it recognizes
protocol names from a fixed vocabulary, directional port phrases
("src port 5060", "destination port 38412"), and directional address
phrases ("src ip 10.0.0.1"), and joins whatever it found with &&.

Anything it does not recognize contributes nothing.  A request with no
recognizable phrases yields the empty expression, which the
filter engine defines as matching every packet.  Translation therefore
never fails; it can only produce a looser filter than the request may
have intended.  Two known limitations follow from that:

  - A port phrase with no transport-capable protocol word earlier in the
    request is dropped entirely.  Guessing tcp (or anything else) would
    fabricate a constraint the user never stated.
  - Negative phrasing ("not", "except", "without") is not understood and
    the clause it governs will appear un-negated or not at all.
*/
package translate

import (
	"fmt"
	"strconv"
	"strings"
)

// Request turns free-form request text into filter source.  The result
// is always valid input for filters.Compile; when nothing in the text is
// recognized it is the empty string, the identity filter.
func Request(text string) string {
	words := tokenizeRequest(text)

	var clauses []string
	seen := map[string]bool{}
	transport := ""

	// pass 1: protocol vocabulary; remember the transport that would
	// carry the most recently named protocol for the port phrases below
	for _, w := range words {
		carrier, ok := vocabulary[w]
		if !ok {
			continue
		}
		if !seen[w] {
			seen[w] = true
			clauses = append(clauses, w)
		}
		if carrier != "" {
			transport = carrier
		}
	}

	// pass 2: directional port phrases
	for i := 0; i+2 < len(words); i++ {
		dir := direction(words[i])
		if dir == "" || words[i+1] != "port" || !isNumber(words[i+2]) {
			continue
		}
		if transport == "" {
			// no transport to hang the port on; drop the clause
			continue
		}
		clauses = append(clauses, fmt.Sprintf("%s.%sport == %s", transport, dir, words[i+2]))
	}

	// pass 3: directional address phrases
	for i := 0; i+2 < len(words); i++ {
		dir := direction(words[i])
		if dir == "" || words[i+1] != "ip" || !isDottedQuad(words[i+2]) {
			continue
		}
		clauses = append(clauses, fmt.Sprintf("ip.%s == %s", dir, words[i+2]))
	}

	return strings.Join(clauses, " && ")
}

// tokenizeRequest lower-cases and splits the request into words, shedding
// the punctuation that rides along in prose.  Interior dots survive so
// dotted-quad addresses stay whole.
func tokenizeRequest(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, `"'()[]{}`)
		f = strings.TrimRight(f, ".,;:!?")
		if f != "" {
			words = append(words, f)
		}
	}
	return words
}

func direction(w string) string {
	switch w {
	case "src", "source":
		return "src"
	case "dst", "destination":
		return "dst"
	}
	return ""
}

func isNumber(w string) bool {
	if w == "" {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < '0' || w[i] > '9' {
			return false
		}
	}
	return true
}

func isDottedQuad(w string) bool {
	parts := strings.Split(w, ".")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if !isNumber(p) {
			return false
		}
		if n, err := strconv.Atoi(p); err != nil || n > 255 {
			return false
		}
		if len(p) > 1 && p[0] == '0' {
			return false
		}
	}
	return true
}
