// Package query composes the search-engine query for one screening run.
package query

import (
	"fmt"
	"strings"

	"github.com/finsights/argus/internal/core/lexicon"
)

const siteScope = "(site:.gov OR site:.org OR site:.com OR site:.net)"

const negativeFilter = `-("job hiring" OR "career opportunity" OR "we are hiring" OR "press release")`

// Build returns the adverse-news query for the named institution: the name
// exact-quoted, an OR-disjunction of the adverse-term lexicon, a site-scope
// restriction and a negative filter for hiring and press-release boilerplate.
// A positive months value adds a recency qualifier understood by the search
// collaborator. An empty entity name yields the empty string so callers can
// short-circuit instead of issuing a malformed query.
func Build(entity string, months int) string {
	entity = strings.TrimSpace(entity)
	if entity == "" {
		return ""
	}

	terms := strings.Join(lexicon.QueryTerms, " OR ")
	q := fmt.Sprintf(`"%s" + %s %s %s`, entity, terms, siteScope, negativeFilter)

	if months > 0 {
		q += fmt.Sprintf(" after:%s", recencyQualifier(months))
	}
	return q
}

// recencyQualifier is resolved by the search collaborator; it is expressed as
// a months token rather than an absolute date so Build stays deterministic.
func recencyQualifier(months int) string {
	return fmt.Sprintf("%dm", months)
}
