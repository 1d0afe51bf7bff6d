// Command modelcheck runs the entity model verification checks against a
// disposable in-memory store and writes the structured JSON report to stdout
// or a file. Exits non-zero when any check fails.
package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/miniblog/backend/internal/audit"
	"github.com/miniblog/backend/pkg/logger"
)

func main() {
	output := flag.String("o", "", "write the report to this file instead of stdout")
	logLevel := flag.String("log-level", "warn", "log level: trace, debug, info, warn, error")
	flag.Parse()

	log := logger.New(*logLevel, true)

	report, err := audit.Run(log)
	if err != nil {
		log.Fatal().Err(err).Msg("verification run aborted")
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to encode report")
	}
	data = append(data, '\n')

	if *output != "" {
		if err := os.WriteFile(*output, data, 0o644); err != nil {
			log.Fatal().Err(err).Msg("failed to write report")
		}
		log.Info().Str("path", *output).Msg("report written")
	} else {
		if _, err := os.Stdout.Write(data); err != nil {
			log.Fatal().Err(err).Msg("failed to write report")
		}
	}

	if report.Failed > 0 {
		os.Exit(1)
	}
}
