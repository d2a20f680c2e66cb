package depot

import "go.uber.org/zap"

// Config holds global configuration for registries, dispatchers and schedulers
var Config config = config{
	logger:            zap.NewNop(),
	storageKind:       StorageKindVec,
	schedulerCapacity: 256,
}

type config struct {
	logger            *zap.Logger
	storageKind       StorageKind
	schedulerCapacity int
}

// SetLogger configures the logger, nil restores the no-op logger
func (c *config) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.logger = logger
}

func (c *config) Logger() *zap.Logger {
	return c.logger
}

// SetStorageKind configures the storage used for lazily registered components
func (c *config) SetStorageKind(kind StorageKind) {
	c.storageKind = kind
}

// SetSchedulerCapacity configures how many systems new schedulers accept
func (c *config) SetSchedulerCapacity(n int) {
	c.schedulerCapacity = n
}
