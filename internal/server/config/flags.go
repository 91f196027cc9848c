package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/securechat/internal/flagx"
)

var serverFlags = []string{"-a", "-r", "-d", "-n", "-s", "-t", "-m", "-l"}

func commandLineArgs() []string {
	return os.Args[1:]
}

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-r string   database driver ("pgx" or "sqlite")
//	-d string   database DSN
//	-n string   notifier URL (redis://...)
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-m string   metrics bind address
//	-l string   log level
//
// Arguments other than these are ignored, so the same command line can carry
// flags for other components.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, serverFlags)

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDriver, "r", config.DatabaseDriver, "database driver (pgx|sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.NotifierURL, "n", config.NotifierURL, "notifier URL, empty for in-process")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	fs.StringVar(&config.MetricsAddr, "m", config.MetricsAddr, "metrics address, empty to disable")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
		}
	})
	return nil
}
