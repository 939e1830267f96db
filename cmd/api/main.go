package main

import (
	"github.com/ethanbaker/influencer-hub/internal/api"
	"github.com/ethanbaker/influencer-hub/pkg/utils"
)

// Start the API server
func main() {
	// Load global config
	cfg := utils.NewConfigFromEnv(utils.EnvFiles()...)

	// Start
	api.Start(cfg)
}
