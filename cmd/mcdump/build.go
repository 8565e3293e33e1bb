package main

import (
	"context"
	"crypto/sha1"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cfoust/mcdump/pkg/bundle"
	"github.com/cfoust/mcdump/pkg/config"
	"github.com/cfoust/mcdump/pkg/dump"
	"github.com/cfoust/mcdump/pkg/jar"
	"github.com/cfoust/mcdump/pkg/mojang"
	"github.com/cfoust/mcdump/pkg/state"
	"github.com/cfoust/mcdump/pkg/store"

	"github.com/go-redis/redis/v9"
	"github.com/repeale/fp-go/option"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// prepareOutputDir refuses to clobber an existing bundle unless asked.
func prepareOutputDir(dir string, force bool) error {
	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	if len(entries) > 0 {
		if !force {
			return fmt.Errorf("output directory %s is not empty, pass --force to overwrite", dir)
		}

		if err := os.RemoveAll(dir); err != nil {
			return err
		}
	}

	return os.MkdirAll(dir, 0755)
}

func buildCommand(versionID string, configs []string, force bool) error {
	settings, err := config.Process(configs)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load mcdump configuration")
	}

	build := settings.Build

	ctx := context.Background()

	var cache store.Store
	if build.Redis != "" {
		cache = store.NewRedisCache(redis.NewClient(&redis.Options{
			Addr: build.Redis,
		}), 24*time.Hour)
	} else {
		err = os.MkdirAll(build.CacheDirectory, 0755)
		if err != nil {
			log.Fatal().Err(err).Msgf("failed to make cache dir: %s", build.CacheDirectory)
		}
		cache = store.FSStore(build.CacheDirectory)
	}

	client := mojang.NewClient(cache, build.ManifestURL, build.DownloadsPerSecond)

	downloads := client.Downloads.Subscribe()
	defer downloads.Done()
	go func() {
		for event := range downloads.Recv() {
			log.Debug().Msgf("downloaded %s (%d bytes)", event.URL, event.Size)
		}
	}()

	manifest, err := client.Manifest(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to fetch version manifest")
	}

	found := manifest.Find(versionID)
	if opt.IsNone(found) {
		log.Fatal().Msgf("version %s not found in manifest", versionID)
	}

	jarData, err := client.ClientJar(ctx, found.Value)
	if err != nil {
		log.Fatal().Err(err).Msgf("failed to fetch client package for %s", versionID)
	}

	pack, err := jar.Load(jarData)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open client package")
	}

	jarHash := fmt.Sprintf("%x", sha1.Sum(jarData))

	var db *gorm.DB
	if build.DBPath != "" {
		db, err = state.InitDB(build.DBPath)
		if err != nil {
			log.Fatal().Err(err).Msgf("failed to open build ledger: %s", build.DBPath)
		}

		last, err := state.LastBuild(db, versionID)
		if err != nil {
			return err
		}
		if last != nil && last.JarHash == jarHash {
			log.Info().Msgf(
				"client package for %s is unchanged since the last build",
				versionID,
			)
		}
	}

	outDir := filepath.Join(build.DataDirectory, versionID)
	if err := prepareOutputDir(outDir, force); err != nil {
		return err
	}

	data := dump.Build(pack)

	out := bundle.NewBundle(outDir, build.Compress)
	if err := out.WriteTextures(pack); err != nil {
		return err
	}
	if err := out.WriteData(data); err != nil {
		return err
	}
	if err := out.WriteIndex(versionID); err != nil {
		return err
	}

	if db != nil {
		err = state.RecordBuild(
			db,
			versionID,
			jarHash,
			len(data.Blocks),
			len(data.Items),
		)
		if err != nil {
			return err
		}
	}

	log.Info().Msgf("wrote bundle for %s to %s", versionID, outDir)
	return nil
}
