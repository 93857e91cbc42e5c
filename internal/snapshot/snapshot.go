// Package snapshot encodes the per-visitor blobs kept in the local store.
// Every blob is wrapped in a versioned envelope and validated against a JSON
// schema before it is trusted.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"balaji-storefront/internal/domain"
	"github.com/xeipuuv/gojsonschema"
)

// Version is the envelope version written by this build.
const Version = 1

// ErrCorrupt is returned when a stored blob cannot be trusted.
var ErrCorrupt = errors.New("corrupt snapshot")

type envelope[T any] struct {
	Version int `json:"version"`
	Data    T   `json:"data"`
}

func EncodeCart(items []domain.CartItem) ([]byte, error) {
	if items == nil {
		items = []domain.CartItem{}
	}
	return encode(items)
}

func DecodeCart(payload []byte) ([]domain.CartItem, error) {
	items, err := decode[[]domain.CartItem](cartLoader, payload)
	if err != nil {
		return nil, err
	}
	seen := make(map[int]struct{}, len(items))
	for _, it := range items {
		if _, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate cart line %d", ErrCorrupt, it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return items, nil
}

func EncodeUser(u domain.User) ([]byte, error) {
	return encode(u.Clone())
}

func DecodeUser(payload []byte) (domain.User, error) {
	u, err := decode[domain.User](userLoader, payload)
	if err != nil {
		return domain.User{}, err
	}
	defaults := 0
	for _, a := range u.Addresses {
		if a.IsDefault {
			defaults++
		}
	}
	if defaults > 1 {
		return domain.User{}, fmt.Errorf("%w: %d default addresses", ErrCorrupt, defaults)
	}
	return u.Clone(), nil
}

func EncodeOrders(orders []domain.Order) ([]byte, error) {
	if orders == nil {
		orders = []domain.Order{}
	}
	return encode(orders)
}

func DecodeOrders(payload []byte) ([]domain.Order, error) {
	return decode[[]domain.Order](ordersLoader, payload)
}

func encode[T any](data T) ([]byte, error) {
	b, err := json.Marshal(envelope[T]{Version: Version, Data: data})
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return b, nil
}

func decode[T any](schema gojsonschema.JSONLoader, payload []byte) (T, error) {
	var zero T
	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if !result.Valid() {
		var sb strings.Builder
		for i, e := range result.Errors() {
			if i > 0 {
				sb.WriteString("; ")
			}
			sb.WriteString(e.String())
		}
		return zero, fmt.Errorf("%w: %s", ErrCorrupt, sb.String())
	}
	var env envelope[T]
	if err := json.Unmarshal(payload, &env); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return env.Data, nil
}
