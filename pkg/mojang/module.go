package mojang

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"

	"github.com/cfoust/mcdump/pkg/store"
	"github.com/cfoust/mcdump/pkg/utils"

	"github.com/repeale/fp-go/option"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const DEFAULT_MANIFEST_URL = "https://launchermeta.mojang.com/mc/game/version_manifest_v2.json"

type Version struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

type Manifest struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []Version `json:"versions"`
}

// Find looks a version up by its id.
func (m *Manifest) Find(id string) opt.Option[Version] {
	for _, version := range m.Versions {
		if version.ID == id {
			return opt.Some(version)
		}
	}

	return opt.None[Version]()
}

type Download struct {
	SHA1 string `json:"sha1"`
	Size uint   `json:"size"`
	URL  string `json:"url"`
}

type Meta struct {
	Downloads struct {
		Client Download `json:"client"`
	} `json:"downloads"`
}

type DownloadEvent struct {
	URL  string
	Size int
}

// Client fetches version metadata and client packages from Mojang's
// servers, caching packages in a blob store between runs.
type Client struct {
	Downloads *utils.Topic[DownloadEvent]

	cache       store.Store
	manifestURL string
	limiter     *rate.Limiter
}

func NewClient(cache store.Store, manifestURL string, perSecond int) *Client {
	if manifestURL == "" {
		manifestURL = DEFAULT_MANIFEST_URL
	}
	if perSecond <= 0 {
		perSecond = 4
	}

	return &Client{
		Downloads:   utils.NewTopic[DownloadEvent](),
		cache:       cache,
		manifestURL: manifestURL,
		limiter:     rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

func (c *Client) download(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	data, err := store.DownloadBytes(url)
	if err != nil {
		return nil, err
	}

	c.Downloads.Publish(DownloadEvent{
		URL:  url,
		Size: len(data),
	})

	return data, nil
}

// Manifest fetches the version manifest. It is never cached; versions
// are added to it continuously.
func (c *Client) Manifest(ctx context.Context) (*Manifest, error) {
	data, err := c.download(ctx, c.manifestURL)
	if err != nil {
		return nil, fmt.Errorf("could not fetch version manifest: %w", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, err
	}

	return &manifest, nil
}

func (c *Client) meta(ctx context.Context, version Version) (*Meta, error) {
	data, err := c.download(ctx, version.URL)
	if err != nil {
		return nil, fmt.Errorf("could not fetch metadata for %s: %w", version.ID, err)
	}

	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// ClientJar returns the client package for a version, downloading and
// verifying it on a cache miss.
func (c *Client) ClientJar(ctx context.Context, version Version) ([]byte, error) {
	key := fmt.Sprintf("minecraft-%s-client.jar", version.ID)

	cached, err := c.cache.Get(ctx, key)
	if err != nil && err != store.Missing {
		return nil, err
	}
	if err == nil {
		log.Debug().Msgf("using cached client package for %s", version.ID)
		return cached, nil
	}

	meta, err := c.meta(ctx, version)
	if err != nil {
		return nil, err
	}

	client := meta.Downloads.Client
	log.Info().Msgf("downloading client package for %s (%d bytes)", version.ID, client.Size)

	data, err := c.download(ctx, client.URL)
	if err != nil {
		return nil, err
	}

	hash := fmt.Sprintf("%x", sha1.Sum(data))
	if client.SHA1 != "" && hash != client.SHA1 {
		return nil, fmt.Errorf(
			"client package checksum mismatch: expected %s, got %s",
			client.SHA1,
			hash,
		)
	}

	if err := c.cache.Set(ctx, key, data); err != nil {
		return nil, err
	}

	return data, nil
}
