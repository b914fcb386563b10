package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	q := Build("Acme Bank", 0)

	assert.True(t, strings.HasPrefix(q, `"Acme Bank" + `))
	assert.Contains(t, q, "launder OR fraud")
	assert.Contains(t, q, "(site:.gov OR site:.org OR site:.com OR site:.net)")
	assert.Contains(t, q, `-("job hiring"`)
	assert.NotContains(t, q, "after:")
}

func TestBuild_Deterministic(t *testing.T) {
	first := Build("Acme Bank", 6)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Build("Acme Bank", 6))
	}
}

func TestBuild_EmptyEntity(t *testing.T) {
	assert.Equal(t, "", Build("", 6))
	assert.Equal(t, "", Build("   ", 6))
}

func TestBuild_RecencyQualifier(t *testing.T) {
	q := Build("Acme Bank", 12)
	assert.True(t, strings.HasSuffix(q, " after:12m"))
}

func TestBuild_TrimsEntity(t *testing.T) {
	assert.Equal(t, Build("Acme Bank", 0), Build("  Acme Bank  ", 0))
}
