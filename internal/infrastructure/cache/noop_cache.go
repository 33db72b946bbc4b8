package cache

import (
	"context"
	"time"
)

// NoopSnapshotCache implementación sin almacenamiento: todo Get es miss y
// todo Set se descarta. Se usa cuando no hay Redis configurado.
type NoopSnapshotCache struct{}

// NewNoopSnapshotCache construye el cache nulo.
func NewNoopSnapshotCache() *NoopSnapshotCache { return &NoopSnapshotCache{} }

func (*NoopSnapshotCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (*NoopSnapshotCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}
