package service

import "strings"

// ExtractMentions returns every "@token" in text with the "@" stripped, in
// order of appearance. A token runs until the next mention separator and
// is not checked against any email grammar, so "@bob@x.com," yields
// "bob@x.com,". A mention may start mid-word ("hi@bob" yields "bob").
func ExtractMentions(text string) []string {
	mentions := []string{}
	for _, field := range strings.FieldsFunc(text, isMentionSeparator) {
		at := strings.IndexByte(field, '@')
		if at < 0 || at == len(field)-1 {
			continue
		}
		mentions = append(mentions, field[at+1:])
	}
	return mentions
}

// mergeUnique appends the values of each list in order, skipping repeats.
func mergeUnique(lists ...[]string) []string {
	total := 0
	for _, list := range lists {
		total += len(list)
	}
	seen := make(map[string]struct{}, total)
	out := make([]string, 0, total)
	for _, list := range lists {
		for _, v := range list {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// without returns values minus anything in excluded, preserving order.
func without(values, excluded []string) []string {
	if len(excluded) == 0 {
		return values
	}
	drop := make(map[string]struct{}, len(excluded))
	for _, v := range excluded {
		drop[v] = struct{}{}
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := drop[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}

// isMentionSeparator reports the characters that end a mention token: the
// ECMAScript whitespace and line terminator set. It differs from
// unicode.IsSpace in U+0085 (not a separator) and U+FEFF (a separator).
func isMentionSeparator(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		'\u00a0', '\u1680', '\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200a'
}
