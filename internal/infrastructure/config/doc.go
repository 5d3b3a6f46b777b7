// Package config handles loading and validating taskdeck configuration.
//
// Configuration is environment-first: every key has a documented default and
// a TASKDECK_* environment override, with an optional YAML file in between
// for deployments that prefer files.
//
// Security Considerations:
//   - Sensitive values (the seed admin password) should be set via
//     environment variables, never committed in a config file.
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.API.Port)
package config
