// Package config provides configuration loading and validation for docserver.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Store in context for subcommands
//	ctx = config.WithContext(ctx, cfg)
//
//	// Retrieve later
//	cfg, err = config.FromContext(ctx)
//
// # Environment Variables
//
// Every key maps to a DOCSERVER_ prefixed variable (server.port becomes
// DOCSERVER_SERVER_PORT). The common settings also have short names:
//   - PORT → server.port (default 3000)
//   - AUTH_USER → auth.user (default admin)
//   - AUTH_PASS → auth.password (default secret)
//   - PUBLIC_DIR → storage.path (default: "public" next to the executable)
//   - LOG_LEVEL → log.level
//   - ENV → env ("prod" or "production" switches to JSON logs)
//
// When both are set the prefixed name wins.
//
// # Validation
//
// Configuration is validated using struct tags:
//   - Port must be 1-65535
//   - Auth user and realm must not be empty
//   - Upload size and timeouts must not be negative
//   - Log level must be debug, info, warn, or error
package config
