// Package idcache persists asset fingerprint to Immich id mappings
// between sync runs so repeat syncs skip the metadata search.
//
// # Backends
//
// Four backends implement the Cache interface:
//
//   - redis: shared cache on a redis server, the default
//   - badger: embedded on-disk store, no external service
//   - memory: process-local map, gone when the process exits
//   - none: stores nothing, every lookup misses
//
// All entries live under a configurable key prefix so a shared redis
// instance can host other workloads. Entries expire after the
// configured TTL; a TTL of zero keeps them forever.
//
// # Usage
//
//	cache, err := idcache.Open(cfg.Cache)
//	if err != nil {
//	    return err
//	}
//	defer cache.Close()
//
//	id, ok, err := cache.Get(ctx, fingerprint)
package idcache
