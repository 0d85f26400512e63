package password

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := Hash("secret")
	require.NoError(t, err)
	require.NotEqual(t, "secret", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, Cost, cost)

	require.NoError(t, Compare(hash, "secret"))
	require.Error(t, Compare(hash, "wrong"))
}
