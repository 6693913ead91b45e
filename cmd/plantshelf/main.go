package main

import (
	"flag"
	"log"

	"github.com/lemiae/PlantShelf/config"
	"github.com/lemiae/PlantShelf/server"
)

func main() {
	configPath := flag.String("config", "plantshelf.yml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Perenual.APIKey == "" {
		log.Println("no Perenual API key configured; remote catalog lookups will come back empty")
	}

	ctrl, err := server.NewController(cfg)
	if err != nil {
		log.Fatal(err)
	}

	srv := server.New(ctrl)
	log.Println("listening on", cfg.ListenAddr)
	if err := srv.Router().Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
