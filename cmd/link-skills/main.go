package main

import (
	"errors"
	"os"

	"github.com/jenquist/shared-agent-skills/cmd/link-skills/cmd"
	"github.com/jenquist/shared-agent-skills/internal/report"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, cmd.ErrReported) {
			report.New(os.Stdout, os.Stderr, report.DetectColorMode(), false).Error(err)
		}
		os.Exit(1)
	}
}
