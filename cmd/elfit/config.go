package main

import (
	"os"
	"runtime"
	"strconv"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/midbel/cli"
)

const (
	EnvLogLevel = "ELFIT_LOG_LEVEL"
	EnvWidth    = "ELFIT_WIDTH"
	EnvJobs     = "ELFIT_JOBS"
)

var logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))

type options struct {
	Verbose bool
	Jobs    int
}

func registerOptions(cmd *cli.Command) *options {
	var o options
	cmd.Flag.BoolVar(&o.Verbose, "v", false, "enable verbose logging")
	cmd.Flag.IntVar(&o.Jobs, "j", envInt(EnvJobs, runtime.GOMAXPROCS(0)), "number of files decoded in parallel")
	return &o
}

// setup installs the level filter of the logger once the flags of a command
// are parsed.
func (o *options) setup() {
	lvl := level.ParseDefault(os.Getenv(EnvLogLevel), level.InfoValue())
	if o.Verbose {
		lvl = level.DebugValue()
	}
	logger = level.NewFilter(logger, level.Allow(lvl))
	if o.Jobs <= 0 {
		o.Jobs = 1
	}
}

func envInt(name string, def int) int {
	str, ok := os.LookupEnv(name)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(str)
	if err != nil {
		level.Warn(logger).Log("env", name, "value", str, "err", err)
		return def
	}
	return n
}
