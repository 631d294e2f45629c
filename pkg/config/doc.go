// Package config loads typed configuration from the environment and
// optional files.
//
// Structs are annotated with `env` tags understood by
// github.com/caarlos0/env/v11. A `.env` file in the working directory is
// read once through github.com/joho/godotenv before the first parse.
// Each configuration type is parsed at most once per process and served
// from a cache afterwards; ResetCache clears it in tests.
//
// LoadFile reads a YAML document with gopkg.in/yaml.v3 and then applies
// the environment on top, so deployments can keep defaults in a file and
// override single values with variables:
//
//	type ServerConfig struct {
//		Addr    string `env:"ADDR" envDefault:":8080" yaml:"addr"`
//		MaxBody int64  `env:"MAX_BODY_BYTES" yaml:"max_body_bytes"`
//	}
//
//	var cfg ServerConfig
//	if err := config.LoadFile("server.yaml", &cfg); err != nil {
//		log.Fatal(err)
//	}
package config
