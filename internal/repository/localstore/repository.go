// Package localstore persists the per-visitor JSON blobs that a browser would
// otherwise keep in local storage.
package localstore

import (
	"context"
)

// Keys written by the storefront stores.
const (
	KeyCart   = "balaji-cart"
	KeyUser   = "balaji-user"
	KeyOrders = "balaji-orders"
)

// Repository stores opaque payloads per visitor and key. Get returns
// domain.ErrNotFound when nothing is stored; Delete is idempotent.
type Repository interface {
	Get(ctx context.Context, visitorID, key string) ([]byte, error)
	Put(ctx context.Context, visitorID, key string, payload []byte) error
	Delete(ctx context.Context, visitorID, key string) error
	Ping(ctx context.Context) error
}
