package common

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
)

func TestValidator_CollectsErrors(t *testing.T) {
	v := NewValidator().
		Field("po", "", Required).
		Field("orderDate", "2024-02-30", ISODate).
		Field("limit", 501, IntBetween(1, 500)).
		Field("notes", "ok", MaxLength(10))

	require.True(t, v.HasErrors())
	require.Len(t, v.Errors(), 3)
	assert.Equal(t, "po", v.Errors()[0].Field)
	assert.Equal(t, "orderDate", v.Errors()[1].Field)
	assert.Equal(t, "limit", v.Errors()[2].Field)

	err := v.Err()
	assert.Equal(t, codes.InvalidArgument, CodeOf(err))
	assert.Contains(t, err.Error(), "limit must be between 1 and 500")
}

func TestValidator_NoErrors(t *testing.T) {
	v := NewValidator().
		Field("po", "PO-538-003", Required, MaxLength(64)).
		Field("orderDate", "", ISODate).
		Field("limit", 1, IntBetween(1, 500))
	assert.False(t, v.HasErrors())
	assert.NoError(t, v.Err())
}

func TestMaxLength_CountsRunes(t *testing.T) {
	assert.Nil(t, MaxLength(3)("f", "äöü"))
	assert.NotNil(t, MaxLength(3)("f", "äöüß"))
	assert.NotNil(t, MaxLength(3)("f", 7))
}

func TestIntBetween_RejectsNonInt(t *testing.T) {
	assert.NotNil(t, IntBetween(1, 5)("limit", "3"))
	assert.NotNil(t, IntBetween(1, 5)("limit", 0))
	assert.Nil(t, IntBetween(1, 5)("limit", 5))
}

func TestResolveWithin(t *testing.T) {
	root := t.TempDir()

	got, err := ResolveWithin(root, "2024/po-1.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "2024", "po-1.pdf"), got)

	got, err = ResolveWithin(root, "a/../po-2.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "po-2.txt"), got)

	for _, bad := range []string{"", ".", "..", "../secret.pdf", "a/../../secret.pdf", "/etc/passwd.txt"} {
		_, err := ResolveWithin(root, bad)
		assert.Equal(t, codes.InvalidArgument, CodeOf(err), bad)
	}

	_, err = ResolveWithin("", "po.pdf")
	assert.Error(t, err)
}
