// Package config parses the storage configuration file, a git-style INI
// document kept at the root of a filesystem store:
//
//	[core]
//	compression = 6
//	[cache]
//	maxsize = 100663296
package config

import (
	"compress/zlib"
	"fmt"
	"io"

	"github.com/go-git/gcfg"
)

// Config holds the tuning knobs of a filesystem store.
type Config struct {
	Core struct {
		// Compression is the zlib level used when writing loose
		// objects, from 0 (none) to 9 (best), or -1 for the zlib
		// default.
		Compression int
	}
	Cache struct {
		// MaxSize bounds the decoded object cache, in bytes. Zero
		// disables caching.
		MaxSize int64
	}
}

// NewConfig returns a Config with the default values set.
func NewConfig() *Config {
	c := &Config{}
	c.Core.Compression = zlib.DefaultCompression
	c.Cache.MaxSize = 96 * 1024 * 1024

	return c
}

// Validate reports whether the parsed values are usable.
func (c *Config) Validate() error {
	if c.Core.Compression < zlib.DefaultCompression || c.Core.Compression > zlib.BestCompression {
		return fmt.Errorf("invalid compression level %d", c.Core.Compression)
	}

	if c.Cache.MaxSize < 0 {
		return fmt.Errorf("invalid cache size %d", c.Cache.MaxSize)
	}

	return nil
}

// ReadConfig reads a Config from r. Values absent from the document keep
// their defaults.
func ReadConfig(r io.Reader) (*Config, error) {
	c := NewConfig()
	if err := gcfg.FatalOnly(gcfg.ReadInto(c, r)); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}
