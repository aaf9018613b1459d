package main

import (
	"fmt"
	"time"

	"github.com/aretw0/exinc/pkg/adapters/file"
	"github.com/aretw0/exinc/pkg/adapters/memory"
	"github.com/aretw0/exinc/pkg/adapters/redis"
	"github.com/aretw0/exinc/pkg/ports"
	"github.com/spf13/cobra"
)

// storeFlags selects where the servers keep expansion records.
type storeFlags struct {
	kind          string
	dir           string
	redisAddr     string
	redisPassword string
	redisDB       int
	ttl           time.Duration
}

func addStoreFlags(cmd *cobra.Command, sf *storeFlags) {
	cmd.Flags().StringVar(&sf.kind, "store", "memory", "Record store: 'memory', 'file' or 'redis'")
	cmd.Flags().StringVar(&sf.dir, "store-dir", "", "Directory of the file store (default .exinc/results)")
	cmd.Flags().StringVar(&sf.redisAddr, "redis-addr", "localhost:6379", "Redis address")
	cmd.Flags().StringVar(&sf.redisPassword, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&sf.redisDB, "redis-db", 0, "Redis database")
	cmd.Flags().DurationVar(&sf.ttl, "ttl", 0, "Redis record expiry (0 keeps records)")
}

// open builds the store and the function releasing it.
func (sf storeFlags) open() (ports.ResultStore, func() error, error) {
	noop := func() error { return nil }
	switch sf.kind {
	case "memory":
		return memory.NewStore(), noop, nil
	case "file":
		return file.New(sf.dir), noop, nil
	case "redis":
		var opts []redis.Option
		if sf.ttl > 0 {
			opts = append(opts, redis.WithTTL(sf.ttl))
		}
		s := redis.New(sf.redisAddr, sf.redisPassword, sf.redisDB, opts...)
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q (supported: memory, file, redis)", sf.kind)
	}
}
