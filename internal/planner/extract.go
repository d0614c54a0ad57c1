package planner

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
	"unicode"
)

var errTrailingData = errors.New("trailing data after document")

// Extract recovers a syntactically valid JSON object from free-form model output. It strips
// wrappers, parses the largest brace span, and when that fails repairs comments, trailing commas,
// truncation and surplus closers. As a last resort the per-day section alone is wrapped in
// {"days": ...}. It never invents content beyond null placeholders and closers.
func Extract(raw string) (map[string]any, error) {
	text := stripWrappers(raw)
	if text == "" {
		return nil, ErrExtractionFailed
	}

	if sp, ok := largestSpan(text); ok {
		// Cheapest first: as is, then without comments and trailing commas, then closed.
		candidate := text[sp.start:sp.end]
		if doc, err := parseObject(candidate); err == nil {
			return doc, nil
		}
		normalized := normalizeJSON(candidate)
		if doc, err := parseObject(normalized); err == nil {
			return doc, nil
		}
		if !sp.balanced {
			if closed, ok := closeTruncated(normalized); ok {
				if doc, err := parseObject(closed); err == nil {
					return doc, nil
				}
			}
		}
	}
	if doc, ok := trimSurplusClosers(text); ok {
		return doc, nil
	}
	// Last resort: salvage just the per-day mapping.
	if doc, ok := wrapDaysSection(text); ok {
		return doc, nil
	}
	return nil, ErrExtractionFailed
}

var fencePrefixes = []string{"```json", "```JSON", "```javascript", "```js", "```"}

func stripWrappers(s string) string {
	s = strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))
	for _, p := range fencePrefixes {
		if strings.HasPrefix(s, p) {
			s = s[len(p):]
			break
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(strings.Trim(s, "`"))
}

type span struct {
	start, end int
	balanced   bool
}

// largestSpan finds the longest top-level {...} region.
func largestSpan(s string) (span, bool) {
	all := scanSpans(s)
	if len(all) == 0 {
		return span{}, false
	}
	best := all[0]
	for _, sp := range all[1:] {
		if sp.end-sp.start > best.end-best.start {
			best = sp
		}
	}
	return best, true
}

// scanSpans lists top-level {...} regions in order; a region still open at end of input is
// reported unbalanced. Quotes are only tracked inside braces so apostrophes or stray quotes in
// surrounding prose do not derail the scan.
func scanSpans(s string) []span {
	var (
		spans    []span
		depth    int
		start    int
		inString bool
		escaped  bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '[':
			if depth > 0 {
				depth++
			}
		case '}', ']':
			if depth > 0 {
				depth--
				if depth == 0 {
					spans = append(spans, span{start: start, end: i + 1, balanced: true})
				}
			}
		}
	}
	if depth > 0 {
		spans = append(spans, span{start: start, end: len(s), balanced: false})
	}
	return spans
}

func parseObject(s string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errTrailingData
	}
	if doc == nil {
		return nil, ErrExtractionFailed
	}
	return doc, nil
}

// normalizeJSON removes // and /* */ comments and trailing commas outside strings.
func normalizeJSON(s string) string {
	return stripTrailingCommas(stripComments(s))
}

func stripComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			b.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		if c == '/' && i+1 < len(s) {
			switch s[i+1] {
			case '/':
				for i < len(s) && s[i] != '\n' {
					i++
				}
				if i < len(s) {
					b.WriteByte('\n')
				}
				continue
			case '*':
				end := strings.Index(s[i+2:], "*/")
				if end < 0 {
					return b.String()
				}
				i += end + 3
				continue
			}
		}
		if c == '"' {
			inString = true
		}
		b.WriteByte(c)
	}
	return b.String()
}

func stripTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			b.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		if c == ',' {
			j := i + 1
			for j < len(s) && isSpace(s[j]) {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue
			}
		}
		if c == '"' {
			inString = true
		}
		b.WriteByte(c)
	}
	return b.String()
}

// object parse states
const (
	objExpectKey = iota
	objAfterKey
	objAfterColon
	objAfterValue
)

// array parse states
const (
	arrExpectValue = iota
	arrAfterValue
)

type frame struct {
	kind  byte
	state int
}

// closeTruncated completes a document that was cut off: it closes an open string, replaces a
// half-written literal with null, fills a dangling key or colon with null, drops a dangling comma
// and then closes open containers innermost first. It reports false when the input closes more
// containers than it opens.
func closeTruncated(s string) (string, bool) {
	var (
		stack    []frame
		inString bool
		escaped  bool
		isKey    bool
		litStart = -1
	)
	valueDone := func() {
		if len(stack) == 0 {
			return
		}
		top := &stack[len(stack)-1]
		if top.kind == '{' {
			top.state = objAfterValue
		} else {
			top.state = arrAfterValue
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
				if isKey {
					stack[len(stack)-1].state = objAfterKey
				} else {
					valueDone()
				}
			}
			continue
		}
		// inside a bare number or true/false/null
		if litStart >= 0 {
			if isLiteralByte(c) {
				continue
			}
			litStart = -1
			valueDone()
		}
		switch {
		case c == '"':
			// a string opened where a key is expected is a key
			inString = true
			isKey = len(stack) > 0 && stack[len(stack)-1].kind == '{' && stack[len(stack)-1].state == objExpectKey
		case c == '{':
			stack = append(stack, frame{kind: '{', state: objExpectKey})
		case c == '[':
			stack = append(stack, frame{kind: '[', state: arrExpectValue})
		case c == '}' || c == ']':
			if len(stack) == 0 {
				return "", false
			}
			stack = stack[:len(stack)-1]
			valueDone()
		case c == ':':
			if len(stack) > 0 {
				stack[len(stack)-1].state = objAfterColon
			}
		case c == ',':
			// after a comma the container wants another key or value
			if len(stack) > 0 {
				top := &stack[len(stack)-1]
				if top.kind == '{' {
					top.state = objExpectKey
				} else {
					top.state = arrExpectValue
				}
			}
		case isLiteralByte(c):
			litStart = i
		}
	}
	if len(stack) == 0 && !inString && litStart < 0 {
		return s, true // nothing was cut off
	}

	out := []byte(s)
	switch {
	case inString:
		// A lone trailing backslash would escape the closing quote.
		if escaped {
			out = out[:len(out)-1]
		}
		out = trimPartialUnicode(out)
		out = append(out, '"')
		if isKey {
			stack[len(stack)-1].state = objAfterKey
		} else {
			valueDone()
		}
	case litStart >= 0:
		if len(stack) > 0 && stack[len(stack)-1].kind == '{' && stack[len(stack)-1].state != objAfterColon {
			// a bare word where a key belongs is noise
			out = out[:litStart]
			break
		}
		// "12" survives, "12." and "tru" do not.
		if !json.Valid(out[litStart:]) {
			out = append(out[:litStart], "null"...)
		}
		valueDone()
	}

	// Close innermost first. Each closed container is a finished value for its parent.
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		out = trimRightSpace(out)
		if top.kind == '{' {
			switch top.state {
			case objAfterKey:
				out = append(out, ":null"...)
			case objAfterColon:
				out = append(out, "null"...)
			case objExpectKey:
				// "{" or a trailing ",": nothing to fill
				out = trimDanglingComma(out)
			}
			out = append(out, '}')
		} else {
			if top.state == arrExpectValue {
				out = trimDanglingComma(out)
			}
			out = append(out, ']')
		}
		stack = stack[:len(stack)-1]
		valueDone()
	}
	return string(out), true
}

func isLiteralByte(c byte) bool {
	return c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}

func trimRightSpace(b []byte) []byte {
	for len(b) > 0 && isSpace(b[len(b)-1]) {
		b = b[:len(b)-1]
	}
	return b
}

func trimDanglingComma(b []byte) []byte {
	b = trimRightSpace(b)
	if len(b) > 0 && b[len(b)-1] == ',' {
		b = trimRightSpace(b[:len(b)-1])
	}
	return b
}

// trimPartialUnicode drops an incomplete \uXXXX escape at the end of an open string.
func trimPartialUnicode(b []byte) []byte {
	for n := 0; n <= 3 && n < len(b); n++ {
		i := len(b) - n - 2
		if i < 0 {
			break
		}
		if b[i] != '\\' || b[i+1] != 'u' || !isHex(b[i+2:]) {
			continue
		}
		slashes := 0
		for j := i; j >= 0 && b[j] == '\\'; j-- {
			slashes++
		}
		if slashes%2 == 1 {
			return b[:i]
		}
	}
	return b
}

func isHex(b []byte) bool {
	for _, c := range b {
		if !unicode.Is(unicode.ASCII_Hex_Digit, rune(c)) {
			return false
		}
	}
	return true
}

// trimSurplusClosers handles documents with more closers than openers by dropping trailing
// closers one at a time until the remainder parses.
func trimSurplusClosers(text string) (map[string]any, bool) {
	first := strings.IndexByte(text, '{')
	last := strings.LastIndexAny(text, "}]")
	if first < 0 || last < first {
		return nil, false
	}
	candidate := normalizeJSON(text[first : last+1])
	opens, closes := countBrackets(candidate)
	if closes <= opens {
		return nil, false
	}
	for {
		candidate = strings.TrimRightFunc(candidate, unicode.IsSpace)
		if candidate == "" {
			return nil, false
		}
		tail := candidate[len(candidate)-1]
		if tail != '}' && tail != ']' {
			return nil, false
		}
		candidate = candidate[:len(candidate)-1]
		if doc, err := parseObject(candidate); err == nil {
			return doc, true
		}
	}
}

func countBrackets(s string) (opens, closes int) {
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			opens++
		case '}', ']':
			closes++
		}
	}
	return opens, closes
}

// wrapDaysSection looks for the per-day mapping alone, either a "days" object or a run of "day1"...
// keys, and wraps it as {"days": ...}.
func wrapDaysSection(text string) (map[string]any, bool) {
	if idx := strings.Index(text, `"days"`); idx >= 0 {
		rest := strings.TrimLeftFunc(text[idx+len(`"days"`):], unicode.IsSpace)
		if strings.HasPrefix(rest, ":") {
			rest = strings.TrimLeftFunc(rest[1:], unicode.IsSpace)
			if days, ok := recoverObject(rest); ok {
				return map[string]any{"days": days}, true
			}
		}
	}
	for _, marker := range []string{`"day1"`, `"Day1"`, `"day 1"`, `"Day 1"`} {
		idx := strings.Index(text, marker)
		if idx < 0 {
			continue
		}
		days, ok := recoverObject("{" + text[idx:])
		if !ok {
			continue
		}
		if _, found := days[strings.Trim(marker, `"`)]; found {
			return map[string]any{"days": days}, true
		}
	}
	return nil, false
}

func recoverObject(s string) (map[string]any, bool) {
	if !strings.HasPrefix(s, "{") {
		return nil, false
	}
	all := scanSpans(s)
	if len(all) == 0 || all[0].start != 0 {
		return nil, false
	}
	sp := all[0]
	candidate := normalizeJSON(s[:sp.end])
	if doc, err := parseObject(candidate); err == nil {
		return doc, true
	}
	if sp.balanced {
		return nil, false
	}
	closed, ok := closeTruncated(candidate)
	if !ok {
		return nil, false
	}
	doc, err := parseObject(closed)
	return doc, err == nil
}
