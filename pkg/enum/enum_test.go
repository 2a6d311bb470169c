package enum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fruit string

var (
	fruitApple = New(fruit("apple"))
	fruitPear  = New(fruit("pear"))
)

func TestToEnum(t *testing.T) {
	got, err := ToEnum[fruit]("apple")
	require.NoError(t, err)
	require.Equal(t, fruitApple, got)

	got, err = ToEnum[fruit]("pear")
	require.NoError(t, err)
	require.Equal(t, fruitPear, got)

	_, err = ToEnum[fruit]("durian")
	require.Error(t, err)

	type vegetable string
	_, err = ToEnum[vegetable]("carrot")
	require.Error(t, err)
}
