package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/BartekS5/loadplan/internal/cli"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	if err := cli.Execute(cli.NewRootCmd()); err != nil {
		os.Exit(1)
	}
}
