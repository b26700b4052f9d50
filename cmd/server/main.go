package main

import (
	"net/http"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"sabacc-game/internal/database"
	"sabacc-game/internal/game"
	"sabacc-game/internal/server"
)

const defaultTurnTimeout = 60 * time.Second

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.Info("Starting Sabacc server...")

	db := database.New()
	defer db.Close()

	timeout := defaultTurnTimeout
	if raw := os.Getenv("SABACC_TURN_TIMEOUT"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			log.WithError(err).Fatal("invalid SABACC_TURN_TIMEOUT")
		}
		timeout = parsed
	}

	registry := game.NewRegistry(log)
	hub := server.NewHub(registry, &db, timeout, log)
	go hub.Run()

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		server.ServeWs(hub, w, r)
	})

	fs := http.FileServer(http.Dir("web/static"))
	http.Handle("/", fs)

	server.HandleRoutes(&db)

	addr := os.Getenv("SABACC_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.WithField("addr", addr).Info("listening")
	log.Fatal(http.ListenAndServe(addr, nil))
}
