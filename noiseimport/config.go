package main

import (
	"fmt"
	"strings"

	noise "github.com/next-exp/noise_go/pkg"
)

func printConfiguration(config noise.Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("Files in: %s", strings.Join(config.FilesIn, ", ")), "config")
	logger.Info(fmt.Sprintf("Read temperature: %t", config.ReadTemperature), "config")
	logger.Info(fmt.Sprintf("Read power: %t", config.ReadPower), "config")
	logger.Info(fmt.Sprintf("Power channel: %s", config.PowerChannel), "config")
	logger.Info(fmt.Sprintf("Batch size: %d", config.BatchSize), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("Station ID: %d", config.StationID), "config")
}
