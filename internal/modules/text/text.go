// Package text holds text analysis, manipulation, hashing and encoding tools.
// Indices count Unicode code points. Case-insensitive operations compare
// full case folds.
package text

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"hash"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/bobmcallan/minimcp-servers/internal/namespace"
)

var (
	wordRE = regexp.MustCompile(`[\p{L}\p{N}_']+`)

	errNotUTF8 = errors.New("decoded data is not valid UTF-8")
)

// Namespace returns the text module.
func Namespace() *namespace.Namespace {
	txt := namespace.Arg("text", "")
	sub := namespace.Arg("substr", "")
	caseSensitive := namespace.Opt("case_sensitive", "Match case-sensitively", false)
	start := namespace.Opt("start", "Slice start, negative counts from the end", nil)
	end := namespace.Opt("end", "Slice end, negative counts from the end", nil)
	data := namespace.Arg("data", "")

	return namespace.New("text").
		Func(namespace.Define("length", "Return the length of the text.", length, txt)).
		Func(namespace.Define("count_substr",
			"Return the number of non-overlapping occurrences of substr. Optional arguments start and end are interpreted as in Python slice notation. Set case_sensitive = True to match case-sensitively.",
			countSubstr, txt, sub, caseSensitive, start, end)).
		Func(namespace.Define("most_common_words",
			"Return the k most common words, and their frequencies in descending order. Counting is case-insensitive by default, input text is case-folded before counting unless case_sensitive = True. Words with length less than min_len are ignored.",
			mostCommonWords, txt, namespace.Arg("k", "Number of words to return"), caseSensitive,
			namespace.Opt("min_len", "Minimum word length", 2))).
		Func(namespace.Define("first_index_of_substr",
			"Return the first index of substr in text. If not found, return -1. Optional arguments start and end are interpreted as in Python slice notation. Set case_sensitive = True to match case-sensitively.",
			firstIndexOfSubstr, txt, sub, caseSensitive, start, end)).
		Func(namespace.Define("last_index_of_substr",
			"Return the last index of substr in text. If not found, return -1. Optional arguments start and end are interpreted as in Python slice notation. Set case_sensitive = True to match case-sensitively.",
			lastIndexOfSubstr, txt, sub, caseSensitive, start, end)).
		Func(namespace.Define("normalize_text", "Return the case-folded text.", fold, txt)).
		Func(namespace.Define("slice_text",
			"Return the slice of text from start to end. Optional arguments start and end are interpreted as in Python slice notation.",
			sliceText, txt, start, end)).
		Builtin(namespace.Define("replace_substr", "Return a copy with all occurrences of substring old replaced by new.",
			strings.ReplaceAll, txt, namespace.Arg("old", ""), namespace.Arg("new", ""))).
		Func(namespace.Define("md5", "Return the MD5 hash of the input data as a string of hexadecimal digits.",
			digest(md5.New), data)).
		Func(namespace.Define("sha1", "Return the SHA-1 hash of the input data as a string of hexadecimal digits.",
			digest(sha1.New), data)).
		Func(namespace.Define("sha256", "Return the SHA-256 hash of the input data as a string of hexadecimal digits.",
			digest(sha256.New), data)).
		Func(namespace.Define("sha512", "Return the SHA-512 hash of the input data as a string of hexadecimal digits.",
			digest(sha512.New), data)).
		Func(namespace.Define("base64_encode", "Return the Base64 encoded string of the input data.",
			base64Encode, data)).
		Func(namespace.Define("base64_decode", "Return the Base64 decoded string of the input data.",
			base64Decode, data)).
		Func(namespace.Define("base64_urlsafe_encode", "Return the Base64 URL-safe encoded string of the input data.",
			base64URLSafeEncode, data)).
		Func(namespace.Define("base64_urlsafe_decode", "Return the Base64 URL-safe decoded string of the input data.",
			base64URLSafeDecode, data)).
		Func(namespace.Define("hex_encode", "Return the Hex encoded string of the input data.",
			hexEncode, data)).
		Func(namespace.Define("hex_decode", "Return the Hex decoded string of the input data.",
			hexDecode, data))
}

func length(text string) int { return utf8.RuneCountInString(text) }

// fold returns the full Unicode case fold of s.
func fold(s string) string { return cases.Fold().String(s) }

func prepare(text, substr string, caseSensitive bool) ([]rune, string) {
	if !caseSensitive {
		text, substr = fold(text), fold(substr)
	}
	return []rune(text), substr
}

// searchBounds resolves start and end for a search over n code points.
// A start past the end is kept so callers can report no match.
func searchBounds(n int, start, end *int) (int, int) {
	s, e := 0, n
	if start != nil {
		s = *start
		if s < 0 {
			s = max(s+n, 0)
		}
	}
	if end != nil {
		e = *end
		if e > n {
			e = n
		} else if e < 0 {
			e = max(e+n, 0)
		}
	}
	return s, e
}

// sliceBounds resolves start and end for slicing n code points.
func sliceBounds(n int, start, end *int) (int, int) {
	s, e := searchBounds(n, start, end)
	s = min(s, n)
	return s, max(e, s)
}

func countSubstr(text, substr string, caseSensitive bool, start, end *int) int {
	runes, substr := prepare(text, substr, caseSensitive)
	s, e := searchBounds(len(runes), start, end)
	if e-s < utf8.RuneCountInString(substr) {
		return 0
	}
	return strings.Count(string(runes[s:e]), substr)
}

func firstIndexOfSubstr(text, substr string, caseSensitive bool, start, end *int) int {
	runes, substr := prepare(text, substr, caseSensitive)
	s, e := searchBounds(len(runes), start, end)
	if e-s < utf8.RuneCountInString(substr) {
		return -1
	}
	seg := string(runes[s:e])
	i := strings.Index(seg, substr)
	if i < 0 {
		return -1
	}
	return s + utf8.RuneCountInString(seg[:i])
}

func lastIndexOfSubstr(text, substr string, caseSensitive bool, start, end *int) int {
	runes, substr := prepare(text, substr, caseSensitive)
	s, e := searchBounds(len(runes), start, end)
	if e-s < utf8.RuneCountInString(substr) {
		return -1
	}
	seg := string(runes[s:e])
	i := strings.LastIndex(seg, substr)
	if i < 0 {
		return -1
	}
	return s + utf8.RuneCountInString(seg[:i])
}

func sliceText(text string, start, end *int) string {
	runes := []rune(text)
	s, e := sliceBounds(len(runes), start, end)
	return string(runes[s:e])
}

// words splits text into word tokens. Apostrophes are kept inside a word
// but never at its edges.
func words(text string) []string {
	var out []string
	for _, tok := range wordRE.FindAllString(text, -1) {
		tok = strings.Trim(tok, "'")
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

func mostCommonWords(text string, k int, caseSensitive bool, minLen int) [][]any {
	if !caseSensitive {
		text = fold(text)
	}
	freq := map[string]int{}
	var order []string
	for _, w := range words(text) {
		if utf8.RuneCountInString(w) < minLen {
			continue
		}
		if _, ok := freq[w]; !ok {
			order = append(order, w)
		}
		freq[w]++
	}

	// Stable sort keeps first-seen order among equal counts.
	slices.SortStableFunc(order, func(a, b string) int { return freq[b] - freq[a] })

	out := [][]any{}
	for _, w := range order[:min(max(k, 0), len(order))] {
		out = append(out, []any{w, freq[w]})
	}
	return out
}

func digest(newHash func() hash.Hash) func(string) string {
	return func(data string) string {
		h := newHash()
		h.Write([]byte(data))
		return hex.EncodeToString(h.Sum(nil))
	}
}

func validText(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", errNotUTF8
	}
	return string(b), nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func base64Encode(data string) string {
	return base64.StdEncoding.EncodeToString([]byte(data))
}

func base64Decode(data string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(stripSpace(data))
	if err != nil {
		return "", err
	}
	return validText(b)
}

func base64URLSafeEncode(data string) string {
	return base64.URLEncoding.EncodeToString([]byte(data))
}

func base64URLSafeDecode(data string) (string, error) {
	b, err := base64.URLEncoding.DecodeString(strings.NewReplacer("+", "-", "/", "_").Replace(stripSpace(data)))
	if err != nil {
		return "", err
	}
	return validText(b)
}

func hexEncode(data string) string { return hex.EncodeToString([]byte(data)) }

func hexDecode(data string) (string, error) {
	b, err := hex.DecodeString(stripSpace(data))
	if err != nil {
		return "", err
	}
	return validText(b)
}
