package main

import (
	"os"

	"stockbuddy/cmd"
	"stockbuddy/internal/logger"
)

func main() {
	log := logger.New()
	log.Infow("starting api", "commitHash", os.Getenv("commit_hash"))

	apiHandler, secrets, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.CloseDependencies(apiHandler)

	err = apiHandler.StartApi(secrets.Port)
	if err != nil {
		log.Fatal(err)
	}
}
