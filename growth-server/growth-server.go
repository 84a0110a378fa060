package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agrilabs/growthviz/lib/envreader"
	"github.com/agrilabs/growthviz/lib/growthdb"
	"github.com/agrilabs/growthviz/lib/handler"
	log "github.com/agrilabs/growthviz/lib/logger"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

const defaultServerPort = ":8070"

type environment struct {
	config *envConfig
	log    *log.Logger
	store  *growthdb.Store
}

type envConfig struct {
	dbUser     string
	dbPassword string
	dbHost     string
	dbPort     string
	dbName     string
	serverPort string
	logName    string
	debug      bool
}

func getEnvironmentalConfig() (*envConfig, error) {
	// Gather Environment Variables
	configReader := new(envreader.EnvReader)
	config := &envConfig{
		dbUser:     configReader.GetEnv("DB_USER"),
		dbPassword: configReader.GetEnv("DB_PASSWORD"),
		dbHost:     configReader.GetEnv("DB_HOST"),
		dbPort:     configReader.GetEnv("DB_PORT"),
		dbName:     configReader.GetEnv("DB_NAME"),
		serverPort: configReader.GetEnvOpt("SERVER_PORT"),
		logName:    configReader.GetEnvOpt("LOG_NAME"),
		debug:      configReader.GetEnvBoolOpt("DEBUG"),
	}
	if configReader.Errors {
		return nil, errors.Errorf("could not gather config. Failed variables: %v", configReader.MissingKeys)
	}
	if config.serverPort == "" {
		config.serverPort = defaultServerPort
	}
	if config.logName == "" {
		config.logName = "growth-server"
	}
	return config, nil
}

func (c *envConfig) dbConfig() growthdb.Config {
	return growthdb.Config{
		User:     c.dbUser,
		Password: c.dbPassword,
		Host:     c.dbHost,
		Port:     c.dbPort,
		Name:     c.dbName,
	}
}

func newRouter(env *environment) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/growth-data/{lotId:[0-9]+}", handler.Handler{Env: env, H: growthChartHandler})
	r.Handle("/growth-data/{lotId:[0-9]+}/png", handler.Handler{Env: env, H: growthChartPNGHandler})
	r.Handle("/growth-data/{lotId:[0-9]+}/stats", handler.Handler{Env: env, H: growthStatsHandler})
	r.Handle("/", handler.Handler{Env: env, H: rootHandler})
	return r
}

func main() {
	config, err := getEnvironmentalConfig()
	if err != nil {
		log.Fatalf("ERROR OCCURED BEFORE LOGGING: %s", err)
	}
	env := &environment{config: config}

	env.log = log.New(
		log.WithLogName(config.logName),
		log.WithDebug(config.debug),
	)
	env.log.Info("Logger up and running!")
	defer env.log.Close()

	store, err := growthdb.Open(config.dbConfig())
	if err != nil {
		log.Fatalf("could not open growth store: %s", err)
	}
	env.store = store
	defer store.Close()

	// Define inbound Routes
	r := newRouter(env)

	// Define a server with timeouts
	srv := &http.Server{
		Addr:         config.serverPort,
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      r,
	}

	// Run our server in a goroutine so that it doesn't block.
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Printf("ListenAndServe error: %+v", err)
		}
	}()
	env.log.Infof("growth-server listening on %s", config.serverPort)

	// We'll accept graceful shutdowns when quit via SIGINT (Ctrl+C) or SIGTERM
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive our signal.
	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	srv.Shutdown(ctx)
	log.Println("shutting down")
}
