package suite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"perf-benchmarks/benchcase"
)

func TestNew_GroupOrder(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var groups []string
	for c := range r.All() {
		if len(groups) == 0 || groups[len(groups)-1] != c.Group() {
			groups = append(groups, c.Group())
		}
	}
	require.Equal(t, []string{"hash", "hmac", "kdf", "slice", "string"}, groups)

	names := r.Names()
	require.Equal(t, "hash/md5", names[0])
	require.Contains(t, names, "hash/ripemd160")
	require.Contains(t, names, "kdf/argon2id")
	require.Contains(t, names, "kdf/bcrypt")
	require.Contains(t, names, "slice/add-with-capacity")
	require.Contains(t, names, "string/builder-without-capacity")
}

func TestNew_UniqueNames(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	seen := make(map[string]bool)
	for _, name := range r.Names() {
		require.False(t, seen[name], name)
		require.Contains(t, name, "/")
		seen[name] = true
	}
}

func TestBuild_Duplicate(t *testing.T) {
	md5 := func(r *benchcase.Registry) error {
		return r.Register("hash/md5", func() error { return nil })
	}
	_, err := Build(md5, md5)
	require.ErrorIs(t, err, benchcase.ErrDuplicateCase)
	require.True(t, strings.HasPrefix(err.Error(), "registrar 1:"))
}
