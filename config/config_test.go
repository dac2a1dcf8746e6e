package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		SAP:   SAPConfig{APIURL: "https://sap.example.com", Username: "user", Password: "pass"},
		Scale: ScaleConfig{APIURL: "https://scale.example.com/jobs"},
		Sync:  SyncConfig{Secret: "s", CursorMode: "ordinal", CursorBackend: "file", CursorFile: "last-reservation.txt"},
		JWT:   JWTConfig{Secret: "jwt"},
	}
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_RequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing SAP URL", func(c *Config) { c.SAP.APIURL = "" }},
		{"missing SAP credentials", func(c *Config) { c.SAP.Username = "" }},
		{"missing scale URL", func(c *Config) { c.Scale.APIURL = "" }},
		{"missing sync secret", func(c *Config) { c.Sync.Secret = "" }},
		{"missing JWT secret", func(c *Config) { c.JWT.Secret = "" }},
		{"unknown cursor mode", func(c *Config) { c.Sync.CursorMode = "hybrid" }},
		{"unknown cursor backend", func(c *Config) { c.Sync.CursorBackend = "s3" }},
		{"mongo backend without URI", func(c *Config) { c.Sync.CursorBackend = "mongo" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_SecretHashAlone(t *testing.T) {
	cfg := validConfig()
	cfg.Sync.Secret = ""
	cfg.Sync.SecretHash = "$2a$14$notacheckedhashhere"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MongoCursorBackend(t *testing.T) {
	cfg := validConfig()
	cfg.Sync.CursorBackend = "mongo"
	cfg.Mongo = MongoConfig{URI: "mongodb://localhost:27017", DBName: "scalesync"}
	assert.NoError(t, cfg.Validate())
}
