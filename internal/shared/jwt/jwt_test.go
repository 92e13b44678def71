package jwt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakeParseRoundTrip(t *testing.T) {
	tok, err := Make(42, "Ansel")
	require.NoError(t, err)

	uid, name, err := Parse(tok)
	require.NoError(t, err)
	require.Equal(t, uint(42), uid)
	require.Equal(t, "Ansel", name)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, _, err := Parse("not-a-token")
	require.Error(t, err)
}

func TestParseRejectsZeroSubject(t *testing.T) {
	tok, err := Make(0, "nobody")
	require.NoError(t, err)
	_, _, err = Parse(tok)
	require.Error(t, err)
}
