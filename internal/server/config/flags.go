package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/dmitrijs2005/todoapi/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-g string   gRPC bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN
//	-s string   token HMAC secret key
//	-t int      token validity, minutes
//	-r int      login attempts per minute per client
//	-b int      login burst size per client (defaults to -r when only -r is given)
//	-l string   log level
//	-o string   OTLP/HTTP traces endpoint
//
// The function first filters args to the flags it recognizes using
// flagx.FilterArgs, so -c/-config and foreign flags do not collide.
func parseFlags(config *Config, args []string) error {
	filtered := flagx.FilterArgs(args, []string{"-a", "-g", "-d", "-s", "-t", "-r", "-b", "-l", "-o"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port to run server")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenTTL := fs.Int("t", int(config.TokenTTL.Minutes()), "token validity (in minutes)")
	fs.IntVar(&config.LoginRateLimit, "r", config.LoginRateLimit, "login attempts per minute per client")
	fs.IntVar(&config.LoginRateBurst, "b", config.LoginRateBurst, "login burst size per client")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&config.OTLPEndpoint, "o", config.OTLPEndpoint, "OTLP/HTTP traces endpoint")

	if err := fs.Parse(filtered); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	var err error
	visited := map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		visited[f.Name] = true
		if f.Name != "t" {
			return
		}
		if *tokenTTL <= 0 {
			err = fmt.Errorf("parse flags: token validity must be positive, got %d", *tokenTTL)
			return
		}
		config.TokenTTL = time.Duration(*tokenTTL) * time.Minute
	})
	if err != nil {
		return err
	}

	if visited["r"] && !visited["b"] {
		config.LoginRateBurst = config.LoginRateLimit
	}
	if visited["b"] && config.LoginRateBurst <= 0 {
		return fmt.Errorf("parse flags: login burst must be positive, got %d", config.LoginRateBurst)
	}
	return nil
}
