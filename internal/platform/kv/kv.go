// Package kv is the local durable key-value storage: one string value per fixed key.
package kv

import "context"

type Store interface {
	// Get reports ok=false for a missing key; that is not an error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
