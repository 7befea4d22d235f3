package models

import (
	"crypto/md5"
	"fmt"
)

// Outcome classifies the result of reconciling a single tracked item.
type Outcome int

const (
	OutcomeExpired Outcome = iota
	OutcomeFetchFailed
	OutcomeNewBaseline
	OutcomeChanged
	OutcomeUnchanged
)

func (o Outcome) String() string {
	switch o {
	case OutcomeExpired:
		return "expired"
	case OutcomeFetchFailed:
		return "fetchFailed"
	case OutcomeNewBaseline:
		return "newBaseline"
	case OutcomeChanged:
		return "changed"
	case OutcomeUnchanged:
		return "unchanged"
	}
	return "unknown"
}

func DigestContent(content string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(content)))
}

// URLKey derives the baseline filename key for a URL.
func URLKey(url string) string {
	return DigestContent(url)[:12]
}
