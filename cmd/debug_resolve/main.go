package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"lr2immich/core/catalog"
	"lr2immich/core/config"
	"lr2immich/core/idcache"
	"lr2immich/core/immich"
	"lr2immich/core/syncer"

	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_resolve <file name>")
		os.Exit(1)
	}
	needle := strings.ToLower(os.Args[1])

	// Load config
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	// Open catalog
	cat, err := catalog.Open(cfg.Catalog)
	if err != nil {
		log.Fatal(err)
	}
	defer cat.Close()

	// Connect collaborators
	client := immich.NewClient(cfg.Immich)
	cache, err := idcache.Open(cfg.Cache)
	if err != nil {
		fmt.Printf("cache unavailable (%v), using no-op cache\n", err)
		cache = idcache.Noop()
	}
	defer cache.Close()

	ctx := context.Background()

	// Test 1: find the reference in the catalog
	fmt.Println("=== TEST 1: Catalog Lookup ===")
	collections, err := cat.Collections(ctx)
	if err != nil {
		log.Fatal(err)
	}

	var refs []catalog.AssetRef
	for _, col := range collections {
		assets, err := cat.Assets(ctx, col.ID)
		if err != nil {
			log.Fatal(err)
		}
		for _, ref := range assets {
			if strings.Contains(strings.ToLower(ref.FileName), needle) {
				fmt.Printf("FOUND in %s: %s (captured %s)\n", col.Name, ref.FileName, ref.CaptureTime)
				refs = append(refs, ref)
			}
		}
	}
	if len(refs) == 0 {
		fmt.Println("NOT FOUND in any collection")
		os.Exit(1)
	}

	// Test 2: fingerprint and cache state
	fmt.Println("\n=== TEST 2: Fingerprint and Cache ===")
	ref := refs[0]
	fp := syncer.FingerprintOf(ref)
	fmt.Printf("Fingerprint: %s\n", fp)
	if id, ok, err := cache.Get(ctx, fp); err != nil {
		fmt.Printf("cache error: %v\n", err)
	} else if ok {
		fmt.Printf("cache HIT: %s\n", id)
	} else {
		fmt.Println("cache MISS")
	}

	// Test 3: resolve against the server
	fmt.Println("\n=== TEST 3: Resolution ===")
	resolver := syncer.NewResolver(client, cache, cfg.Sync, zap.NewNop())
	res := resolver.Resolve(ctx, ref)
	fmt.Printf("Method:    %s\n", res.Method)
	fmt.Printf("AssetID:   %s\n", res.AssetID)
	fmt.Printf("Ambiguous: %v\n", res.Ambiguous)
	if res.Err != nil {
		fmt.Printf("Error:     %v\n", res.Err)
	}
}
