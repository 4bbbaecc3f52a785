// Package tuning derives database and web worker settings from host capacity
// and writes them over the template's disabled placeholders.
package tuning

import (
	"errors"
	"fmt"

	"github.com/imamik/discourse-setup/internal/config"
	"github.com/imamik/discourse-setup/internal/config/document"
	"github.com/imamik/discourse-setup/internal/platform/host"
)

// Scaling limits.
const (
	// mbPerGB is the memory step used to count "gigabytes". Hosts sold as
	// 1GB report a little less than 1024 MiB.
	mbPerGB = 950

	// maxSharedBuffersMB caps the PostgreSQL shared buffer size.
	maxSharedBuffersMB = 4096

	// sharedBuffersPerGB is the shared buffer size per counted gigabyte.
	sharedBuffersPerGB = 256

	// maxWorkers caps the number of web workers.
	maxWorkers = 8

	// smallHostGB is the largest host sized by memory rather than cores.
	smallHostGB = 2
)

// Tuning holds the derived settings. A zero value means "leave the
// template's default in place".
type Tuning struct {
	SharedBuffersMB int `json:"sharedBuffersMB"`
	Workers         int `json:"workers"`
}

// Applied reports which settings were written into the document.
type Applied struct {
	SharedBuffers bool
	Workers       bool
}

// Calculate returns the tuning for res.
func Calculate(res host.Resources) Tuning {
	return Tuning{
		SharedBuffersMB: SharedBuffersMB(res.MemoryMB),
		Workers:         Workers(res.MemoryMB, res.Cores),
	}
}

// gigabytes counts whole mbPerGB steps in memoryMB.
func gigabytes(memoryMB uint64) int {
	return int(memoryMB / mbPerGB)
}

// SharedBuffersMB returns db_shared_buffers for memoryMB: 128 on 1GB hosts,
// 256 on 2GB hosts, 256 per GB above that, capped at 4096.
func SharedBuffersMB(memoryMB uint64) int {
	gb := gigabytes(memoryMB)

	var mb int
	switch gb {
	case 1:
		mb = 128
	case 2:
		mb = 256
	default:
		mb = sharedBuffersPerGB * gb
	}

	return min(mb, maxSharedBuffersMB)
}

// Workers returns UNICORN_WORKERS: two per GB on hosts up to 2GB, otherwise
// two per physical core, capped at 8.
func Workers(memoryMB uint64, cores int) int {
	gb := gigabytes(memoryMB)

	workers := 2 * gb
	if gb > smallHostGB {
		workers = 2 * cores
	}

	return max(min(workers, maxWorkers), 0)
}

// Apply writes t into doc by replacing the disabled placeholder lines
// "#db_shared_buffers:" and "#UNICORN_WORKERS:". A zero value or a missing
// placeholder leaves the document unchanged for that setting and is not
// reported as applied. Only a failure to render a value is an error.
func Apply(doc *document.Document, t Tuning) (Applied, error) {
	var applied Applied

	if t.SharedBuffersMB > 0 {
		rendered := fmt.Sprintf("%q", fmt.Sprintf("%dMB", t.SharedBuffersMB))
		applied.SharedBuffers = doc.SetRaw(config.SectionParams, config.KeySharedBuffers, rendered, document.MatchDisabled) == nil
	}

	if t.Workers > 0 {
		err := doc.Set(config.SectionEnv, config.KeyUnicornWorkers, t.Workers, document.MatchDisabled)
		switch {
		case err == nil:
			applied.Workers = true
		case !errors.Is(err, document.ErrKeyNotFound):
			return applied, fmt.Errorf("failed to write %s: %w", config.KeyUnicornWorkers, err)
		}
	}

	return applied, nil
}
