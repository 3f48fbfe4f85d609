// Package config reads the application configuration from environment
// variables with sensible defaults.
package config

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/gorilla/securecookie"
	log "github.com/sirupsen/logrus"
)

// Datastore backends selectable via the DATASTORE variable.
const (
	DatastoreSQLite = "sqlite"
	DatastoreDynamo = "dynamo"
)

// Config holds all configuration for the application.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string

	// Datastore selects the storage backend, "sqlite" or "dynamo".
	Datastore string

	// SQLiteDSN is the SQLite database path or DSN.
	SQLiteDSN string

	// SessionHashKey and SessionBlockKey authenticate and encrypt the
	// session cookie.
	SessionHashKey  []byte
	SessionBlockKey []byte

	// AWSRegion and DynamoEndpoint configure the dynamo backend. An empty
	// endpoint uses the regional default.
	AWSRegion      string
	DynamoEndpoint string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	datastore := os.Getenv("DATASTORE")
	if datastore == "" {
		datastore = DatastoreSQLite
	}
	switch datastore {
	case DatastoreSQLite, DatastoreDynamo:
	default:
		return nil, fmt.Errorf("invalid DATASTORE %q", datastore)
	}

	dsn := os.Getenv("SQLITE_DSN")
	if dsn == "" {
		dsn = "yatube.db"
	}

	hashKey, err := sessionKey("SESSION_HASH_KEY", 64)
	if err != nil {
		return nil, err
	}
	blockKey, err := sessionKey("SESSION_BLOCK_KEY", 32)
	if err != nil {
		return nil, err
	}

	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-west-2"
	}

	return &Config{
		Addr:            addr,
		Datastore:       datastore,
		SQLiteDSN:       dsn,
		SessionHashKey:  hashKey,
		SessionBlockKey: blockKey,
		AWSRegion:       region,
		DynamoEndpoint:  os.Getenv("DYNAMO_ENDPOINT"),
	}, nil
}

// sessionKey decodes a hex key from the environment. A missing key is
// generated on the spot, which invalidates existing sessions on restart.
func sessionKey(name string, size int) ([]byte, error) {
	v := os.Getenv(name)
	if v == "" {
		log.Warnf("%s not set, generating a volatile key", name)
		return securecookie.GenerateRandomKey(size), nil
	}
	key, err := hex.DecodeString(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return key, nil
}
