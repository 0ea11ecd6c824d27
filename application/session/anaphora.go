package session

import (
	"regexp"
)

var (
	singularPronoun = regexp.MustCompile(`(?i)\b(it|that)\b`)
	pluralPronoun   = regexp.MustCompile(`(?i)\b(them|those|these)\b`)
)

// ResolveAnaphora maps pronouns in a follow-up command to the object ids the
// session last touched. A singular pronoun resolves only when exactly one
// object was last created; a plural pronoun prefers multiple created ids,
// falls back to multiple modified ids, and otherwise declines to guess.
// Returns nil when the session is nil or no confident match exists.
func ResolveAnaphora(commandText string, entry *Entry) []string {
	if entry == nil {
		return nil
	}

	if singularPronoun.MatchString(commandText) && len(entry.LastCreatedIDs) == 1 {
		return entry.LastCreatedIDs
	}

	if pluralPronoun.MatchString(commandText) {
		if len(entry.LastCreatedIDs) > 1 {
			return entry.LastCreatedIDs
		}
		if len(entry.LastModifiedIDs) > 1 {
			return entry.LastModifiedIDs
		}
	}
	return nil
}
