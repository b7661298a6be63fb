package password

import (
	"context"
	"runtime"
	"time"

	"github.com/conduit-labs/conduit/resilience"
)

// Pool runs key derivation behind a bulkhead so a burst of logins cannot
// monopolize every CPU. Callers block for a slot up to the configured
// wait, then the derivation itself runs synchronously in the caller's
// goroutine.
type Pool struct {
	hasher   Hasher
	bulkhead *resilience.Bulkhead
}

// NewPool wraps hasher with a concurrency bound. maxConcurrent <= 0
// defaults to the number of CPUs.
func NewPool(hasher Hasher, maxConcurrent int, maxWait time.Duration) *Pool {
	if maxConcurrent <= 0 {
		maxConcurrent = runtime.GOMAXPROCS(0)
	}
	return &Pool{
		hasher: hasher,
		bulkhead: resilience.NewBulkhead(resilience.BulkheadConfig{
			Name:          "password-kdf",
			MaxConcurrent: maxConcurrent,
			MaxWait:       maxWait,
		}),
	}
}

// HashCtx derives a credential, waiting for a derivation slot.
func (p *Pool) HashCtx(ctx context.Context, plaintext string) (Credential, error) {
	return resilience.ExecuteWithResult(p.bulkhead, ctx, func() (Credential, error) {
		return p.hasher.Hash(plaintext)
	})
}

// VerifyCtx verifies a credential, waiting for a derivation slot. The
// returned error reports slot acquisition failure only; a wrong password
// is (false, nil).
func (p *Pool) VerifyCtx(ctx context.Context, plaintext string, cred Credential) (bool, error) {
	return resilience.ExecuteWithResult(p.bulkhead, ctx, func() (bool, error) {
		return p.hasher.Verify(plaintext, cred), nil
	})
}
