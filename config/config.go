// server/config/config.go
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// --- Các struct con, phản ánh cấu trúc của YAML ---

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type SAPConfig struct {
	APIURL   string `mapstructure:"apiURL"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ScaleConfig struct {
	APIURL string `mapstructure:"apiURL"`
}

type SyncConfig struct {
	// Secret là giá trị plaintext của header x-sync-secret.
	// SecretHash (bcrypt) được ưu tiên nếu cả hai cùng được set.
	Secret     string `mapstructure:"secret"`
	SecretHash string `mapstructure:"secretHash"`
	// CursorMode: "ordinal" hoặc "temporal".
	CursorMode string `mapstructure:"cursorMode"`
	// CursorBackend: "file" hoặc "mongo".
	CursorBackend string `mapstructure:"cursorBackend"`
	CursorFile    string `mapstructure:"cursorFile"`
	// CatalogCacheSize giới hạn số product được cache trong một process.
	CatalogCacheSize int `mapstructure:"catalogCacheSize"`
}

type MongoConfig struct {
	URI    string `mapstructure:"uri"`
	DBName string `mapstructure:"dbName"`
}

type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Expiration string `mapstructure:"expiration"`
}

// --- Struct Config chính, bao gồm tất cả các struct con ---

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	SAP    SAPConfig    `mapstructure:"sap"`
	Scale  ScaleConfig  `mapstructure:"scale"`
	Sync   SyncConfig   `mapstructure:"sync"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	JWT    JWTConfig    `mapstructure:"jwt"`
}

// LoadConfig đọc cấu hình từ file và ghi đè bằng các biến môi trường.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()

	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("sap.apiURL", "SAP_API_URL")
	viper.BindEnv("sap.username", "SAP_API_USERNAME")
	viper.BindEnv("sap.password", "SAP_API_PASSWORD")
	viper.BindEnv("scale.apiURL", "SCALE_API_URL")
	viper.BindEnv("sync.secret", "SYNC_SECRET")
	viper.BindEnv("sync.secretHash", "SYNC_SECRET_HASH")
	viper.BindEnv("sync.cursorMode", "SYNC_CURSOR_MODE")
	viper.BindEnv("sync.cursorBackend", "SYNC_CURSOR_BACKEND")
	viper.BindEnv("sync.cursorFile", "SYNC_CURSOR_FILE")
	viper.BindEnv("sync.catalogCacheSize", "SYNC_CATALOG_CACHE_SIZE")
	viper.BindEnv("mongo.uri", "MONGO_URI")
	viper.BindEnv("mongo.dbName", "MONGO_DBNAME")
	viper.BindEnv("jwt.secret", "JWT_SECRET")
	viper.BindEnv("jwt.expiration", "JWT_EXPIRATION")

	viper.SetDefault("server.port", "3000")
	viper.SetDefault("sync.cursorMode", "ordinal")
	viper.SetDefault("sync.cursorBackend", "file")
	viper.SetDefault("sync.cursorFile", "last-reservation.txt")
	viper.SetDefault("sync.catalogCacheSize", 1024)
	viper.SetDefault("jwt.expiration", "24h")

	// Đọc file config.yaml
	// Nếu file không tồn tại, Viper sẽ chỉ sử dụng các biến môi trường.
	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return
}

// Validate kiểm tra các cấu hình bắt buộc trước khi server khởi động.
func (c Config) Validate() error {
	if c.SAP.APIURL == "" {
		return fmt.Errorf("config: SAP_API_URL is required")
	}
	if c.SAP.Username == "" || c.SAP.Password == "" {
		return fmt.Errorf("config: SAP_API_USERNAME and SAP_API_PASSWORD are required")
	}
	if c.Scale.APIURL == "" {
		return fmt.Errorf("config: SCALE_API_URL is required")
	}
	if c.Sync.Secret == "" && c.Sync.SecretHash == "" {
		return fmt.Errorf("config: SYNC_SECRET or SYNC_SECRET_HASH is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	switch c.Sync.CursorMode {
	case "ordinal", "temporal":
	default:
		return fmt.Errorf("config: unknown sync.cursorMode %q", c.Sync.CursorMode)
	}
	switch c.Sync.CursorBackend {
	case "file":
	case "mongo":
		if c.Mongo.URI == "" || c.Mongo.DBName == "" {
			return fmt.Errorf("config: mongo cursor backend requires MONGO_URI and MONGO_DBNAME")
		}
	default:
		return fmt.Errorf("config: unknown sync.cursorBackend %q", c.Sync.CursorBackend)
	}
	return nil
}
