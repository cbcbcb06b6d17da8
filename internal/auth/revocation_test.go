package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRevokers(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	revokers := map[string]Revoker{
		"memory": NewMemoryRevoker(),
		"redis":  NewRedisRevoker(client),
	}

	for name, r := range revokers {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			revoked, err := r.IsRevoked(ctx, "jti-1")
			if err != nil || revoked {
				t.Fatalf("IsRevoked() before revoke = %v, %v", revoked, err)
			}

			if err := r.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)); err != nil {
				t.Fatalf("Revoke() error = %v", err)
			}
			revoked, err = r.IsRevoked(ctx, "jti-1")
			if err != nil || !revoked {
				t.Errorf("IsRevoked() after revoke = %v, %v", revoked, err)
			}

			// уже истёкший токен не сохраняется
			if err := r.Revoke(ctx, "jti-2", time.Now().Add(-time.Minute)); err != nil {
				t.Fatalf("Revoke() error = %v", err)
			}
			if revoked, _ := r.IsRevoked(ctx, "jti-2"); revoked {
				t.Error("expired token reported as revoked")
			}
		})
	}
}

func TestRedisRevoker_TTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	r := NewRedisRevoker(client)
	if err := r.Revoke(context.Background(), "jti", time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}
	mr.FastForward(2 * time.Minute)

	revoked, err := r.IsRevoked(context.Background(), "jti")
	if err != nil {
		t.Fatalf("IsRevoked() error = %v", err)
	}
	if revoked {
		t.Error("revocation should expire together with the token")
	}
}
