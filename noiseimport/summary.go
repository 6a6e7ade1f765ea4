package main

import (
	"fmt"
	"time"

	noise "github.com/next-exp/noise_go/pkg"
)

func logSummary(corpus *noise.Corpus, logger Logger) {
	logger.Info(fmt.Sprintf("Number of events: %d", corpus.EventCount()), "summary")
	logger.Info(fmt.Sprintf("Channels: %d, samples: %d", corpus.ChannelCount(), corpus.SampleCount()), "summary")

	datetimes := corpus.Datetimes()
	if len(datetimes) > 0 {
		first, last := datetimes[0], datetimes[0]
		for _, t := range datetimes {
			if t.Before(first) {
				first = t
			}
			if t.After(last) {
				last = t
			}
		}
		message := fmt.Sprintf("Time range: %s - %s", first.Format(time.DateTime), last.Format(time.DateTime))
		logger.Info(message, "summary")
	}

	logger.Info(fmt.Sprintf("Stations: %v", distinct(corpus.StationIDs())), "summary")
	logger.Info(fmt.Sprintf("Runs: %v", distinct(corpus.RunNumbers())), "summary")

	for _, name := range noise.TriggerNames() {
		flag, _ := noise.ParseTrigger(name)
		n := len(corpus.EventsWithTrigger(flag))
		logger.Info(fmt.Sprintf("Trigger %s: %d events", name, n), "summary")
	}

	if temperatures, ok := corpus.Temperatures(); ok {
		logger.Info(fmt.Sprintf("Temperature range: %s", valueRange(temperatures)), "summary")
	}
	if voltages, ok := corpus.PowerVoltages(); ok {
		logger.Info(fmt.Sprintf("Power voltage range: %s", valueRange(voltages)), "summary")
	}
}

// checkChannelCoverage warns about detector channels that will receive noise
// recorded on a different channel.
func checkChannelCoverage(corpus *noise.Corpus, detector *noise.DBDetector, logger Logger) int {
	remapped := 0
	nChannels := corpus.ChannelCount()
	for _, id := range detector.ChannelIDs() {
		if nChannels > 0 && id >= nChannels {
			message := fmt.Sprintf("Station %d channel %d will use noise channel %d",
				detector.StationID(), id, id%nChannels)
			logger.Warning(message, "summary")
			remapped++
		}
	}
	return remapped
}

func distinct(values []int) []int {
	seen := make(map[int]bool)
	result := make([]int, 0)
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}

func valueRange(values []float64) string {
	if len(values) == 0 {
		return "empty"
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return fmt.Sprintf("%g - %g", lo, hi)
}
