package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/avoronova/filecove/internal/flagx"
	"github.com/avoronova/filecove/internal/timex"
)

// JsonConfig is the DTO for reading the client JSON configuration file.
type JsonConfig struct {
	ServerAddr     string         `json:"server_addr"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags, if any. Invalid files panic, matching the server side.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.ServerAddr = c.ServerAddr
	config.RequestTimeout = time.Duration(c.RequestTimeout.Duration)
}
