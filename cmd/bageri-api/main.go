package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/ROCKERZ109/lillasure-website/cmd/bageri-api/app"
	"github.com/ROCKERZ109/lillasure-website/configs"
)

func main() {
	seedFile := flag.String("seed", "", "JSON catalog file to upsert into the product store before serving")
	flag.Parse()

	env := os.Getenv("APP_ENV") // dev | staging | prod
	if env == "" {
		env = "dev"
	}

	cfg, err := configs.Load("configs", env)
	if err != nil {
		log.Fatal(err)
	}

	a, cleanup, err := app.InitWithConfig(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	if *seedFile != "" {
		if err := a.SeedProducts(context.Background(), *seedFile); err != nil {
			log.Fatal(err)
		}
	}

	log.Printf("bageri-api (%s) listening on %s", env, cfg.App.HTTPAddr)
	if err := a.Router.Run(cfg.App.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
