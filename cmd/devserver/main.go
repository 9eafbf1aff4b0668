// Command devserver runs the in-memory FitSupply backend stub. It exists so
// the CLI can be developed and demonstrated without the real backend.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/pandonyx/fitsupply-cli/internal/devserver"
	"github.com/pandonyx/fitsupply-cli/internal/logging"
)

func main() {
	_ = godotenv.Load()

	addr := flag.String("addr", ":8000", "listen address")
	flag.Parse()

	cfg := devserver.DefaultConfig()
	if secret := os.Getenv("FITSUPPLY_JWT_SECRET"); secret != "" {
		cfg.JWTSecret = []byte(secret)
	}

	logger := logging.NewDefault(slog.LevelInfo)
	srv := devserver.New(cfg, logger)

	log.Printf("devserver listening on %s", *addr)
	if err := srv.Router().Run(*addr); err != nil {
		log.Fatalf("%v", err)
	}
}
