package main

import (
	"flag"
	"net/http"

	"github.com/aws/aws-sdk-go/aws"
	awssession "github.com/aws/aws-sdk-go/aws/session"
	log "github.com/sirupsen/logrus"

	"yatube/config"
	"yatube/middleware"
	"yatube/model"
	"yatube/model/awsdynamo"
	"yatube/model/sqlite"
	"yatube/view"
)

var listen = flag.String("http", "", "Listen on (overrides HTTP_ADDR)")

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %s", err)
	}
	addr := cfg.Addr
	if *listen != "" {
		addr = *listen
	}

	m, closeModel, err := openModel(cfg)
	if err != nil {
		log.Fatalf("Could not open datastore: %s", err)
	}
	defer closeModel()

	renderer, err := view.NewHTML()
	if err != nil {
		log.Fatalf("Could not parse templates: %s", err)
	}

	session := &middleware.Session{}
	session.Init(cfg.SessionHashKey, cfg.SessionBlockKey)

	mux := routes(m, renderer, session)
	log.Infof("Listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}

func openModel(cfg *config.Config) (model.Model, func() error, error) {
	switch cfg.Datastore {
	case config.DatastoreDynamo:
		awsCfg := &aws.Config{Region: aws.String(cfg.AWSRegion)}
		if cfg.DynamoEndpoint != "" {
			awsCfg.Endpoint = aws.String(cfg.DynamoEndpoint)
		}
		sess, err := awssession.NewSession(awsCfg)
		if err != nil {
			return nil, nil, err
		}
		return awsdynamo.NewModelFromSession(sess), func() error { return nil }, nil
	default:
		m, err := sqlite.New(cfg.SQLiteDSN)
		if err != nil {
			return nil, nil, err
		}
		return m, m.Close, nil
	}
}
