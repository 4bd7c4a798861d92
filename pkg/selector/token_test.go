package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeCompound(t *testing.T) {
	steps, err := tokenize("div.container#main")
	require.NoError(t, err)
	require.Len(t, steps, 1)

	toks := steps[0].compound.tokens
	require.Len(t, toks, 3)
	assert.Equal(t, tokTag, toks[0].kind)
	assert.Equal(t, "div", toks[0].text)
	assert.Equal(t, tokClass, toks[1].kind)
	assert.Equal(t, "container", toks[1].text)
	assert.Equal(t, tokId, toks[2].kind)
	assert.Equal(t, "main", toks[2].text)
}

func TestTokenizeCombinators(t *testing.T) {
	cases := []struct {
		source string
		want   []Combinator
	}{
		{"div span", []Combinator{Descendant, Descendant}},
		{"div > span", []Combinator{Descendant, Child}},
		{"div + span", []Combinator{Descendant, Adjacent}},
		{"div ~ span", []Combinator{Descendant, Sibling}},
		{"div>span", []Combinator{Descendant, Child}},
	}

	for _, c := range cases {
		steps, err := tokenize(c.source)
		require.NoError(t, err, c.source)
		require.Len(t, steps, len(c.want), c.source)

		for i, comb := range c.want {
			assert.Equal(t, comb, steps[i].combinator, "source=%q step=%d", c.source, i)
		}
	}
}

func TestTokenizePseudoWithArgs(t *testing.T) {
	steps, err := tokenize("li:nth-child(2n+1)")
	require.NoError(t, err)
	require.Len(t, steps, 1)
	require.Len(t, steps[0].compound.tokens, 2)

	pseudo := steps[0].compound.tokens[1]
	assert.Equal(t, tokPseudo, pseudo.kind)
	assert.Equal(t, "nth-child", pseudo.text)
	assert.Equal(t, "2n+1", pseudo.args)
}

func TestTokenizeErrors(t *testing.T) {
	_, err := tokenize("")
	assert.ErrorIs(t, err, ErrUnexpectedToken)

	_, err = tokenize("div >")
	assert.ErrorIs(t, err, ErrUnexpectedToken)

	_, err = tokenize("div:nth-child(2n+1")
	assert.ErrorIs(t, err, ErrUnexpectedToken)
}

func TestTokenizeNonASCIIName(t *testing.T) {
	steps, err := tokenize(".café")
	require.NoError(t, err)
	require.Len(t, steps, 1)
	require.Len(t, steps[0].compound.tokens, 1)
	assert.Equal(t, tokClass, steps[0].compound.tokens[0].kind)
	assert.Equal(t, "café", steps[0].compound.tokens[0].text)
}

func TestTokenizeSkipsUnknownCharacters(t *testing.T) {
	steps, err := tokenize("div,span")
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, Descendant, steps[1].combinator)
	assert.Equal(t, "div", steps[0].compound.tokens[0].text)
	assert.Equal(t, "span", steps[1].compound.tokens[0].text)
}

func TestTokenizeAttributeIsCapturedNotRejected(t *testing.T) {
	// Tokenizing itself never rejects `[attr]` syntax - that's the
	// compiler's job (selector.ErrAttributeNotSupported), so the parser
	// stays usable for diagnostics even on an unsupported selector.
	steps, err := tokenize("a[href]")
	require.NoError(t, err)
	require.Len(t, steps, 1)
	require.Len(t, steps[0].compound.tokens, 2)
	assert.Equal(t, tokAttr, steps[0].compound.tokens[1].kind)
}
