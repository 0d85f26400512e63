package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("lookup: %w", New(ErrNotFound, "User not found"))
	require.True(t, IsNotFound(err))
	require.False(t, IsConflict(err))

	msg, ok := MessageOf(err)
	require.True(t, ok)
	require.Equal(t, "User not found", msg)
}

func TestMessageOfPlainError(t *testing.T) {
	_, ok := MessageOf(errors.New("boom"))
	require.False(t, ok)
	_, ok = MessageOf(ErrConflict)
	require.False(t, ok)
}
