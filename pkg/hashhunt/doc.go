// Package hashhunt searches a window of secp256k1 private keys for one whose
// public key HASH160 equals a known digest.
//
// The window is [2^(b-1), 2^b) for a bit length b. It is split into
// contiguous partitions, one per worker. Each worker derives its first public
// key from a precomputed 32x256 table of multiples of G and then walks the
// partition in batches, paying a single field inversion per batch.
//
// # Quick Start
//
//	import "github.com/mahdiidarabi/hashhunt/pkg/hashhunt"
//
//	client := hashhunt.NewClient().
//	    WithStore(hashhunt.NewFileStore("found.txt"))
//
//	summary, err := client.HuntFile(ctx, "settings.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if summary.Found != nil {
//	    fmt.Printf("Found key: %s\n", summary.Found.PrivateKey.Text(10))
//	}
//
// # Settings file
//
//	20
//	751e76e8199196d454941c45d1b3a323f1433bd6
//
// The first line is the bit length, the second the target digest. Further
// lines may list more digests to look for in the same pass.
//
// # Customization
//
//	config := hashhunt.DefaultSearchConfig()
//	config.NumWorkers = 16
//	config.Remainder = hashhunt.RemainderReject
//	config.Uncompressed = true
//
//	client := hashhunt.NewClient().
//	    WithConfig(config).
//	    WithMetrics(hashhunt.NewMetrics(prometheus.DefaultRegisterer)).
//	    WithProgress(true)
package hashhunt
