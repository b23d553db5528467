package auth_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway"
	"github.com/vishalpatwa-in/ecommerce-platform/pkg/gateway/auth"
)

func TestStaticToken(t *testing.T) {
	token := auth.StaticToken("access", "secret")
	decoded, err := base64.StdEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Equal(t, "access:secret", string(decoded))
}

func TestHMACSigner_Headers(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	signer := &auth.HMACSigner{
		Username: "merchant",
		APIKey:   "topsecret",
		Now:      func() time.Time { return fixed },
	}

	headers := signer.Headers()

	ts := fixed.Format(time.RFC3339)
	mac := hmac.New(sha256.New, []byte("topsecret"))
	mac.Write([]byte("merchant" + ts))
	want := hex.EncodeToString(mac.Sum(nil))

	assert.Equal(t, "topsecret", headers["X-API-Key"])
	assert.Equal(t, "merchant", headers["X-Username"])
	assert.Equal(t, ts, headers["X-Timestamp"])
	assert.Equal(t, want, headers["X-Signature"])
}

func TestHMACSigner_FreshSignaturePerCall(t *testing.T) {
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	signer := &auth.HMACSigner{
		Username: "merchant",
		APIKey:   "topsecret",
		Now: func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		},
	}

	first := signer.Headers()
	second := signer.Headers()
	assert.NotEqual(t, first["X-Signature"], second["X-Signature"])
	assert.NotEqual(t, first["X-Timestamp"], second["X-Timestamp"])
}

func TestTokenSource_CachesUntilExpiry(t *testing.T) {
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	now := issued
	var logins int32

	src := auth.NewTokenSourceAt(func(ctx context.Context) (string, int, error) {
		atomic.AddInt32(&logins, 1)
		return "tok-1", 3600, nil
	}, func() time.Time { return now })

	ctx := context.Background()
	tok, err := src.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)

	// One second before expiry the cached token is reused.
	now = issued.Add(3599 * time.Second)
	tok, err = src.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
	assert.Equal(t, int32(1), atomic.LoadInt32(&logins))
}

func TestTokenSource_RefreshesAfterExpiry(t *testing.T) {
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	now := issued
	var logins int32

	src := auth.NewTokenSourceAt(func(ctx context.Context) (string, int, error) {
		n := atomic.AddInt32(&logins, 1)
		if n == 1 {
			return "tok-1", 3600, nil
		}
		return "tok-2", 3600, nil
	}, func() time.Time { return now })

	ctx := context.Background()
	_, err := src.Token(ctx)
	require.NoError(t, err)

	now = issued.Add(3601 * time.Second)
	tok, err := src.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok)
	assert.Equal(t, int32(2), atomic.LoadInt32(&logins))
}

func TestTokenSource_ConcurrentExpiryRefreshesOnce(t *testing.T) {
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	now := issued
	var mu sync.Mutex
	var logins int32

	src := auth.NewTokenSourceAt(func(ctx context.Context) (string, int, error) {
		atomic.AddInt32(&logins, 1)
		time.Sleep(20 * time.Millisecond) // widen the race window
		return "tok-fresh", 3600, nil
	}, func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	})

	ctx := context.Background()
	_, err := src.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, int32(1), atomic.LoadInt32(&logins))

	mu.Lock()
	now = issued.Add(3601 * time.Second)
	mu.Unlock()

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tok, err := src.Token(ctx)
			assert.NoError(t, err)
			assert.Equal(t, "tok-fresh", tok)
		}()
	}
	wg.Wait()

	// Both concurrent callers share a single re-authentication.
	assert.Equal(t, int32(2), atomic.LoadInt32(&logins))
}

func TestTokenSource_LoginFailure(t *testing.T) {
	src := auth.NewTokenSource(func(ctx context.Context) (string, int, error) {
		return "", 0, errors.New("bad credentials")
	})

	_, err := src.Token(context.Background())
	assert.True(t, errors.Is(err, gateway.ErrAuthenticationFailed))
}

func TestTokenSource_Invalidate(t *testing.T) {
	var logins int32
	src := auth.NewTokenSource(func(ctx context.Context) (string, int, error) {
		atomic.AddInt32(&logins, 1)
		return "tok", 3600, nil
	})

	ctx := context.Background()
	_, err := src.Token(ctx)
	require.NoError(t, err)

	src.Invalidate()
	_, err = src.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&logins))
}
