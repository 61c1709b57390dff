package token

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCaseInsensitive(t *testing.T) {
	tests := []struct {
		ident string
		want  TokenType
	}{
		{"select", SELECT},
		{"SELECT", SELECT},
		{"SeLeCt", SELECT},
		{"json_objectagg", JSON_OBJECTAGG},
		{"percent", PERCENT_KW},
		{"naturalid", NATURALID},
		{"employee", IDENT},
		{"e", IDENT},
	}

	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			assert.Equal(t, tt.want, Lookup(tt.ident))
		})
	}
}

func TestKeywordRangeIsComplete(t *testing.T) {
	for tt := keywordBeg + 1; tt < keywordEnd; tt++ {
		name, ok := tokenNames[tt]
		require.True(t, ok, "keyword %d has no name", tt)
		assert.Equal(t, strings.ToUpper(name), name)
		assert.True(t, tt.IsKeyword())
		assert.Equal(t, tt, Lookup(name), "round trip for %s", name)
	}
	assert.Len(t, Keywords(), int(keywordEnd-keywordBeg-1))
}

func TestClassification(t *testing.T) {
	assert.True(t, PLUS.IsOperator())
	assert.False(t, PLUS.IsKeyword())
	assert.True(t, HOST_STRING.IsLiteral())
	assert.True(t, BIG_DECIMAL.IsNumeric())
	assert.False(t, STRING.IsNumeric())
	assert.True(t, NANOSECOND.IsDateTimeField())
	assert.False(t, TIMESTAMP.IsDateTimeField())
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, "end of input", Token{Type: EOF}.String())
	assert.Equal(t, "where", Token{Type: WHERE, Literal: "where"}.String())
	assert.Equal(t, "IDENT(e)", Token{Type: IDENT, Literal: "e"}.String())
	assert.Equal(t, "')'", Token{Type: RPAREN, Literal: ")"}.String())
	assert.Equal(t, "TokenType(-1)", TokenType(-1).String())
}

func TestSpanText(t *testing.T) {
	src := "select e from Employee e"
	s := Span{Start: Position{Line: 1, Column: 15, Offset: 14}, End: Position{Line: 1, Column: 23, Offset: 22}}
	assert.Equal(t, "Employee", s.Text(src))
	assert.True(t, s.Contains(14))
	assert.False(t, s.Contains(22))
	assert.Equal(t, "", Span{Start: Position{Offset: 5}, End: Position{Offset: 99}}.Text(src))
}

func TestLookupConcurrent(t *testing.T) {
	const n = 64
	var wg sync.WaitGroup
	got := make([]TokenType, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			got[idx] = Lookup("Treat")
		}(i)
	}
	wg.Wait()

	for i := range got {
		require.Equal(t, TREAT, got[i])
	}
}
