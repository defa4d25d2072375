package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func titles(ps []Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Title
	}
	return out
}

func TestSearchEmptyQueryReturnsAll(t *testing.T) {
	c := Default()
	require.Equal(t, c.Products(), c.Search("   "))
}

func TestSearchSubstringIgnoresCase(t *testing.T) {
	c := Default()
	require.Equal(t, []string{"Mochila de couro"}, titles(c.Search("MOCHILA")))
	require.Equal(t, []string{"Cadeira Rivatti", "Poltrona de madeira", "Mochila de couro"}, titles(c.Search(" de ")))
}

func TestSearchToleratesTypos(t *testing.T) {
	c := Default()
	require.Equal(t, []string{"Cadeira Rivatti"}, titles(c.Search("cadera")))
	require.Equal(t, []string{"Tênis Nike Air"}, titles(c.Search("tenis")))
	require.Equal(t, []string{"Relógio analógico"}, titles(c.Search("relogio")))
}

func TestSearchRanksSubstringBeforeFuzzy(t *testing.T) {
	c, err := Parse([]byte(`
[[product]]
title = "Mesa"

[[product]]
title = "Mesinha"
`))
	require.NoError(t, err)
	require.Equal(t, []string{"Mesa"}, titles(c.Search("mesa")))

	c, err = Parse([]byte(`
[[product]]
title = "Bolsa"

[[product]]
title = "Bola"
`))
	require.NoError(t, err)
	require.Equal(t, []string{"Bola", "Bolsa"}, titles(c.Search("bola")))
}

func TestSearchNoMatch(t *testing.T) {
	require.Empty(t, Default().Search("geladeira"))
}
