package catalog

// Config holds configuration for the Lightroom catalog.
type Config struct {
	// Path is the filesystem path to the .lrcat file.
	Path string `mapstructure:"path" default:""`
}
