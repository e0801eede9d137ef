// Package cache holds rendered dashboard/roster views so repeated page
// loads do not re-run the same counting queries. Writes that change a view
// invalidate its key.
package cache

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ViewCache stores JSON-encodable view models under string keys.
type ViewCache interface {
	// Get decodes the cached value into dst. It reports false on a miss.
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

// DashboardKey is the cache key of a coach's dashboard stats.
func DashboardKey(coachUserID primitive.ObjectID) string {
	return fmt.Sprintf("view:dashboard:%s", coachUserID.Hex())
}

// RosterKey is the cache key of a coach's client list.
func RosterKey(coachUserID primitive.ObjectID) string {
	return fmt.Sprintf("view:roster:%s", coachUserID.Hex())
}

// noopCache never stores anything.
type noopCache struct{}

// NewNoop returns a ViewCache that always misses. Used when redis is not configured.
func NewNoop() ViewCache { return noopCache{} }

func (noopCache) Get(context.Context, string, interface{}) (bool, error)          { return false, nil }
func (noopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (noopCache) Invalidate(context.Context, ...string) error                    { return nil }
