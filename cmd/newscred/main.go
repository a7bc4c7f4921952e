package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/pdelacruz/newscred/internal/cli"
)

func main() {
	// A local .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
