// Package chunking turns normalized Content into indexable chunks, choosing a
// splitting policy per source kind.
package chunking

import (
	"strings"
	"unicode/utf8"
)

var DefaultSeparators = []string{"\n\n", "\n", " ", ""}

// RecursiveSplitter splits on the coarsest separator present, recursing into
// pieces that are still too long, then merges neighbours back up to ChunkSize
// with Overlap characters carried between chunks. Lengths are in runes.
type RecursiveSplitter struct {
	ChunkSize  int
	Overlap    int
	Separators []string
}

func NewRecursiveSplitter(size int, overlap int) RecursiveSplitter {
	return RecursiveSplitter{ChunkSize: size, Overlap: overlap, Separators: DefaultSeparators}
}

func (s RecursiveSplitter) Split(text string) []string {
	seps := s.Separators
	if len(seps) == 0 {
		seps = DefaultSeparators
	}
	return s.split(text, seps)
}

func (s RecursiveSplitter) split(text string, separators []string) []string {
	separator := separators[len(separators)-1]
	var next []string
	for i, sep := range separators {
		if sep == "" {
			separator = ""
			break
		}
		if strings.Contains(text, sep) {
			separator = sep
			next = separators[i+1:]
			break
		}
	}

	var out []string
	var good []string
	for _, piece := range splitKeepNonEmpty(text, separator) {
		if utf8.RuneCountInString(piece) < s.ChunkSize {
			good = append(good, piece)
			continue
		}
		if len(good) > 0 {
			out = append(out, s.merge(good, separator)...)
			good = nil
		}
		if len(next) == 0 {
			out = append(out, piece)
		} else {
			out = append(out, s.split(piece, next)...)
		}
	}
	if len(good) > 0 {
		out = append(out, s.merge(good, separator)...)
	}
	return out
}

func (s RecursiveSplitter) merge(pieces []string, separator string) []string {
	sepLen := utf8.RuneCountInString(separator)
	var docs []string
	var current []string
	total := 0

	joinedLen := func(extra int) int {
		if len(current) > 0 {
			return total + extra + sepLen
		}
		return total + extra
	}

	for _, p := range pieces {
		l := utf8.RuneCountInString(p)
		if joinedLen(l) > s.ChunkSize && len(current) > 0 {
			if doc := strings.TrimSpace(strings.Join(current, separator)); doc != "" {
				docs = append(docs, doc)
			}
			// drop from the front until only the overlap is carried over
			for total > s.Overlap || (total > 0 && joinedLen(l) > s.ChunkSize) {
				drop := utf8.RuneCountInString(current[0])
				if len(current) > 1 {
					drop += sepLen
				}
				total -= drop
				current = current[1:]
			}
		}
		current = append(current, p)
		if len(current) > 1 {
			total += sepLen
		}
		total += l
	}

	if doc := strings.TrimSpace(strings.Join(current, separator)); doc != "" {
		docs = append(docs, doc)
	}
	return docs
}

func splitKeepNonEmpty(text string, separator string) []string {
	var parts []string
	if separator == "" {
		parts = make([]string, 0, utf8.RuneCountInString(text))
		for _, r := range text {
			parts = append(parts, string(r))
		}
		return parts
	}
	for _, p := range strings.Split(text, separator) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
