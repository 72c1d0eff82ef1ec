package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shashiranjanraj/staybook/config"
	"github.com/shashiranjanraj/staybook/pkg/logger"
)

// Manager holds the configured disks and the name of the default one.
type Manager struct {
	mu          sync.RWMutex
	disks       map[string]Disk
	defaultDisk string
}

// NewManager boots the disks described by the configuration. The local
// disk always exists; s3 and minio are added when their bucket/endpoint is
// set. A remote disk that fails to boot is logged and left out.
func NewManager(ctx context.Context) (*Manager, error) {
	m := &Manager{
		disks:       map[string]Disk{},
		defaultDisk: config.StorageDefault(),
	}
	m.Register("local", NewLocalDisk(config.StorageLocalRoot(), config.StorageURL()))

	if config.StorageS3Bucket() != "" {
		d, err := NewS3Disk(ctx, S3Config{
			Bucket:   config.StorageS3Bucket(),
			Region:   config.StorageS3Region(),
			Key:      config.StorageS3Key(),
			Secret:   config.StorageS3Secret(),
			Endpoint: config.StorageS3Endpoint(),
			BaseURL:  config.StorageS3URL(),
		})
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			m.Register("s3", d)
		}
	}

	if config.StorageMinioEndpoint() != "" {
		d, err := NewMinioDisk(ctx, MinioConfig{
			Endpoint: config.StorageMinioEndpoint(),
			Key:      config.StorageMinioKey(),
			Secret:   config.StorageMinioSecret(),
			Bucket:   config.StorageMinioBucket(),
			UseSSL:   config.StorageMinioSSL(),
			BaseURL:  config.StorageMinioURL(),
		})
		if err != nil {
			logger.Warn("storage: minio disk disabled", "error", err)
		} else {
			m.Register("minio", d)
		}
	}

	if _, err := m.Disk(m.defaultDisk); err != nil {
		return nil, fmt.Errorf("storage: default disk: %w", err)
	}
	return m, nil
}

// NewManagerWith builds a manager around explicit disks.
func NewManagerWith(defaultDisk string, disks map[string]Disk) *Manager {
	m := &Manager{disks: map[string]Disk{}, defaultDisk: defaultDisk}
	for name, d := range disks {
		m.Register(name, d)
	}
	return m
}

// Register adds or replaces a disk.
func (m *Manager) Register(name string, d Disk) {
	m.mu.Lock()
	m.disks[name] = d
	m.mu.Unlock()
}

// Disk returns the named disk.
func (m *Manager) Disk(name string) (Disk, error) {
	m.mu.RLock()
	d, ok := m.disks[name]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: disk %q is not configured", name)
	}
	return d, nil
}

// Default returns the disk named by STORAGE_DISK.
func (m *Manager) Default() Disk {
	d, err := m.Disk(m.defaultDisk)
	if err != nil {
		panic(err)
	}
	return d
}

// DefaultName returns the name of the default disk.
func (m *Manager) DefaultName() string { return m.defaultDisk }

// Names lists the configured disks.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.disks))
	for name := range m.disks {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
