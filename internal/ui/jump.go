package ui

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// jumpQuery is the "/" type-to-jump buffer.
type jumpQuery struct {
	active bool
	buf    string
}

func (q *jumpQuery) start() {
	q.active = true
	q.buf = ""
}

func (q *jumpQuery) stop() {
	q.active = false
	q.buf = ""
}

func (q *jumpQuery) push(s string) { q.buf += s }

func (q *jumpQuery) pop() {
	if q.buf == "" {
		return
	}
	r := []rune(q.buf)
	q.buf = string(r[:len(r)-1])
}

// bestMatch picks the row to jump to for query. A case-insensitive prefix
// match wins, searching from the current row onwards and wrapping; otherwise
// the highest scoring fuzzy match is used. Returns -1 when nothing matches.
func bestMatch(labels []string, query string, from int) int {
	if query == "" || len(labels) == 0 {
		return -1
	}
	q := strings.ToLower(query)
	if from < 0 {
		from = 0
	}
	for i := 0; i < len(labels); i++ {
		j := (from + i) % len(labels)
		if strings.HasPrefix(strings.ToLower(labels[j]), q) {
			return j
		}
	}
	matches := fuzzy.Find(query, labels)
	if len(matches) == 0 {
		return -1
	}
	return matches[0].Index
}
