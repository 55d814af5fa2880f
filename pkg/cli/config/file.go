package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// File is the optional TOML configuration file. Flags and environment variables take
// precedence over its values.
//
//	[soap]
//	endpoint = "https://example.com/ProductDownload.svc"
//	timeout = "30s"
//
//	[sink]
//	type = "gcs"
//	gcs_bucket = "downloads"
type File struct {
	SOAP SOAPFile `toml:"soap"`
	Sink SinkFile `toml:"sink"`
}

type SOAPFile struct {
	Endpoint      string `toml:"endpoint"`
	Service       string `toml:"service"`
	Namespace     string `toml:"namespace"`
	DataNamespace string `toml:"data_namespace"`
	ActionPrefix  string `toml:"action_prefix"`
	Timeout       string `toml:"timeout"`
}

type SinkFile struct {
	Type           string `toml:"type"`
	Dir            string `toml:"dir"`
	GCSBucket      string `toml:"gcs_bucket"`
	GCSPrefix      string `toml:"gcs_prefix"`
	GCSCredentials string `toml:"gcs_credentials"`
}

// LoadFile reads a TOML configuration file
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}
	return &f, nil
}

// isSetFunc reports whether a flag was given explicitly on the command line or via env
type isSetFunc func(name string) bool

func applyString(dst *string, value, flag string, isSet isSetFunc) {
	if value != "" && !isSet(flag) {
		*dst = value
	}
}
