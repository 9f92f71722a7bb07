package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/flagx"
)

// Duration wraps time.Duration so JSON config files may use either string
// values such as "24h" or integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
	default:
		return &json.UnsupportedTypeError{}
	}
	return nil
}

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It is an intermediate DTO used only for reading JSON
// configuration files; after unmarshalling, its fields are copied into the
// runtime Config struct.
type JsonConfig struct {
	EndpointAddrHTTP      string   `json:"endpoint_addr_http"`
	DatabaseDSN           string   `json:"database_dsn"`
	SecretKey             string   `json:"secret_key"`
	TokenValidityDuration Duration `json:"token_validity_duration"`
	SeedAdminName         string   `json:"seed_admin_name"`
	SeedAdminEmail        string   `json:"seed_admin_email"`
	SeedAdminPassword     string   `json:"seed_admin_password"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; if neither is set, no JSON file is loaded. If the file cannot be
// read or contains invalid JSON, the function panics.
func parseJson(config *Config) {

	// try flags
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

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.TokenValidityDuration = time.Duration(c.TokenValidityDuration)
	config.SeedAdminName = c.SeedAdminName
	config.SeedAdminEmail = c.SeedAdminEmail
	config.SeedAdminPassword = c.SeedAdminPassword
}
