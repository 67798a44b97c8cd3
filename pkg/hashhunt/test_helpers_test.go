package hashhunt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mahdiidarabi/hashhunt/pkg/hash160"
	"github.com/stretchr/testify/require"
)

// Compressed HASH160 digests of small keys unless noted otherwise.
const (
	hashKey2               = "06afd46bcdfd22ef94ac122aa11f241244a37ecc"
	hashKey20              = "385defb0ed10fe95817943ed37b4984f8f4255d6"
	hashKey3000            = "d43e772e9cb935f29e6f99fe55c9dc4689d21534"
	hashKey467Uncompressed = "81b8dfa29ee8569a04e37dc091c6b072f32b6707"
)

func mustDigests(t *testing.T, hexDigests ...string) []hash160.Digest {
	t.Helper()
	out := make([]hash160.Digest, 0, len(hexDigests))
	for _, h := range hexDigests {
		d, err := hash160.ParseDigest(h)
		require.NoError(t, err)
		out = append(out, d)
	}
	return out
}

func writeSettings(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "settings.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
