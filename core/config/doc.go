// Package config provides configuration management for docker-up.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from the `default` struct tags of each
// section and every key maps to an environment variable (docker.host ->
// DOCKER_HOST).
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Docker: daemon address, API version and connection timeout
//   - Server: HTTP bind address for the start command
//   - Database: optional history database (MySQL or SQLite)
//   - Storage: optional S3/MinIO credentials for s3:// stack locations
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Docker.Host)
package config
