package config

import (
	"flag"
	"os"
	"time"

	"github.com/avoronova/filecove/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      session token validity, hours
//	-m int      per-file upload limit, bytes
//	-n int      max files per upload request
//	-k string   storage backend: "disk", "s3" or "nats"
//	-f string   data directory of the disk backend
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-q string   NATS server URL
//	-o string   NATS object store bucket
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - The token validity flag is accepted as an integer in hours and then
//     converted to a time.Duration value.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-d", "-s", "-t", "-m", "-n", "-k", "-f",
		"-u", "-p", "-b", "-g", "-e", "-q", "-o",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Addr, "a", config.Addr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidityDuration := fs.Int("t", int(config.TokenValidityDuration.Hours()), "token_validity_duration (in hours)")

	fs.Int64Var(&config.MaxUploadSize, "m", config.MaxUploadSize, "max upload size per file (bytes)")
	fs.IntVar(&config.MaxFilesPerBatch, "n", config.MaxFilesPerBatch, "max files per upload request")
	fs.StringVar(&config.StorageBackend, "k", config.StorageBackend, "storage backend (disk|s3|nats)")
	fs.StringVar(&config.DataDir, "f", config.DataDir, "data directory for disk backend")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 root region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	fs.StringVar(&config.NATSURL, "q", config.NATSURL, "NATS server URL")
	fs.StringVar(&config.NATSBucket, "o", config.NATSBucket, "NATS object store bucket")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidityDuration) * time.Hour
}
