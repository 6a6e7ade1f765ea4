package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	noise "github.com/next-exp/noise_go/pkg"
)

var logger Logger

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	flag.Parse()

	configuration := noise.DefaultConfiguration()
	if *configFilename != "" {
		var err error
		configuration, err = noise.LoadConfiguration(*configFilename)
		if err != nil {
			logger = NewLogger(os.Stdout, os.Stderr, 0)
			message := fmt.Errorf("Error reading configuration file: %w", err)
			logger.Error(message.Error())
			os.Exit(1)
		}
	}
	// Extra arguments are additional noise files
	configuration.FilesIn = append(configuration.FilesIn, flag.Args()...)

	logger = NewLogger(os.Stdout, os.Stderr, configuration.Verbosity)
	noise.SetLogger(logger)

	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Reading configuration file: %s", *configFilename)
		logger.Info(message, "main")
		printConfiguration(configuration, logger)
	}

	if err := run(configuration); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func run(configuration noise.Configuration) error {
	start := time.Now()

	files, err := expandInputs(configuration.FilesIn)
	if err != nil {
		return err
	}

	builder := configuration.NewBuilder()
	corpus, err := builder.Build(files, configuration.ReadTemperature, configuration.ReadPower)
	if err != nil {
		return err
	}
	logSummary(corpus, logger)

	if !configuration.NoDB {
		dbConn, err := noise.ConnectToDatabase(configuration.User, configuration.Passwd,
			configuration.Host, configuration.DBName)
		if err != nil {
			return fmt.Errorf("Error connection to database: %w", err)
		}
		defer dbConn.Close()

		detector, err := noise.LoadDetector(dbConn, configuration.StationID)
		if err != nil {
			return err
		}
		checkChannelCoverage(corpus, detector, logger)
	}

	duration := time.Since(start)
	logger.Info(fmt.Sprintf("Total time: %d ms", duration.Milliseconds()), "main")
	return nil
}
