package analysis

import (
	"testing"

	"go.uber.org/goleak"
)

// The analysis engine is synchronous; nothing it does may leave a goroutine
// behind.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("testing.(*T).Run"),
	)
}
