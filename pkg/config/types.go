package config

type BuildSettings struct {
	// Where downloaded client packages are kept between runs
	CacheDirectory string
	// Root of the per-version output bundles
	DataDirectory string
	// Optional sqlite ledger of completed builds
	DBPath string
	// Optional redis address; when set it replaces the filesystem cache
	Redis string

	ManifestURL        string
	Compress           bool
	DownloadsPerSecond int
}

type Config struct {
	Build BuildSettings
}
