package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// commandLineArgs returns process arguments without the program name.
func commandLineArgs() []string {
	if len(os.Args) < 2 {
		return nil
	}
	return os.Args[1:]
}

// parseFlags parses configuration flags from args on a private FlagSet so
// that binaries and tests may call it more than once.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-secret-key session signing and token hashing key
//	-base-url public URL used in e-mailed links
//	-session-duration session lifetime (e.g., "24h")
//	-reset-token-ttl password reset link lifetime (e.g., "1h")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-log-level zerolog level name
//	-sandbox-timeout statement timeout for submitted queries
//	-sandbox-max-rows largest result a submitted query may return
//	-export-dir directory receiving CSV exports
//	-export-bucket object storage bucket receiving CSV exports
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("sql-trainer", flag.ContinueOnError)

	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var secretKey string
	var baseURL string
	var sessionDuration time.Duration
	var resetTokenTTL time.Duration
	var requestTimeout time.Duration
	var logLevel string
	var sandboxTimeout time.Duration
	var sandboxMaxRows int
	var exportDir string
	var exportBucket string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&secretKey, "secret-key", "", "Session signing key")
	fs.StringVar(&baseURL, "base-url", "", "Public base URL")
	fs.DurationVar(&sessionDuration, "session-duration", 0, "Session duration (e.g., 24h)")
	fs.DurationVar(&resetTokenTTL, "reset-token-ttl", 0, "Password reset link lifetime (e.g., 1h)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.DurationVar(&sandboxTimeout, "sandbox-timeout", 0, "Statement timeout for submitted queries")
	fs.IntVar(&sandboxMaxRows, "sandbox-max-rows", 0, "Max rows a submitted query may return")
	fs.StringVar(&exportDir, "export-dir", "", "CSV export directory")
	fs.StringVar(&exportBucket, "export-bucket", "", "CSV export bucket")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			SecretKey:       secretKey,
			BaseURL:         baseURL,
			SessionDuration: sessionDuration,
			ResetTokenTTL:   resetTokenTTL,
			LogLevel:        logLevel,
		},
		DB: DB{
			DSN: databaseDSN,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Sandbox: Sandbox{
			StatementTimeout: sandboxTimeout,
			MaxRows:          sandboxMaxRows,
		},
		Export: Export{
			Dir:    exportDir,
			Bucket: exportBucket,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
