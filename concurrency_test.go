package twic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// TestConcurrentReadsAreSafe demonstrates the read-concurrency contract
// documented on Value: many goroutines may navigate one shared decoded
// tree via At concurrently without external synchronization, as long as
// none of them mutate it. Grounded on the teacher's use of
// golang.org/x/sync/errgroup in compiler.go to fan out independent,
// read-only work over a shared compilation context.
func TestConcurrentReadsAreSafe(t *testing.T) {
	t.Parallel()

	root := buildSample()

	g, _ := errgroup.WithContext(context.Background())
	for i := 0; i < 64; i++ {
		g.Go(func() error {
			v, err := root.At(Path{Key("users"), Index(1)})
			if err != nil {
				return err
			}
			if !v.Equal(NewString("bob")) {
				t.Errorf("unexpected value: %v", v)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, 2, root.MustAt(Path{Key("users")}).Len())
}
