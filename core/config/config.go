package config

import (
	"reflect"
	"strings"

	"vault-reconciler/core/logger"
	"vault-reconciler/core/server"
	"vault-reconciler/core/storage"
	"vault-reconciler/core/warehouse"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Warehouse holds configuration for the warehouse connection.
	Warehouse warehouse.Config `mapstructure:"warehouse"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Recon holds configuration for reconciliation runs.
	Recon ReconConfig `mapstructure:"recon"`
}

// ReconConfig holds settings that shape a reconciliation run.
type ReconConfig struct {
	// EntitiesFile is the local path of the entity configuration JSON.
	EntitiesFile string `mapstructure:"entities_file" default:"entities.json"`
	// EntitiesObject is a storage object key for the entity configuration.
	// When set it takes precedence over EntitiesFile.
	EntitiesObject string `mapstructure:"entities_object" default:""`
	// SampleSize caps how many missing records are captured per comparison.
	SampleSize int `mapstructure:"sample_size" default:"10"`
	// Parallelism is the number of entities validated concurrently.
	// 1 means strictly sequential.
	Parallelism int `mapstructure:"parallelism" default:"1"`
	// QueryTimeoutSeconds bounds a single validation query.
	QueryTimeoutSeconds int `mapstructure:"query_timeout_seconds" default:"300"`
	// ScheduleMinutes is the interval between scheduled runs in serve mode.
	// 0 disables the scheduler.
	ScheduleMinutes int `mapstructure:"schedule_minutes" default:"0"`
	// CacheTTLMinutes is how long served reports stay fresh.
	CacheTTLMinutes int `mapstructure:"cache_ttl_minutes" default:"10"`
	// UploadReports enables pushing finished reports to object storage.
	UploadReports bool `mapstructure:"upload_reports" default:"false"`
	// ReportPrefix is the object key prefix for uploaded reports.
	ReportPrefix string `mapstructure:"report_prefix" default:"reports"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	// We construct the path to .env
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. WAREHOUSE_PORT -> warehouse.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
