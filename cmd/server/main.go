package main

import (
	"github.com/inquesta/casefile/internal/server"
	"github.com/inquesta/casefile/internal/util"
	"github.com/inquesta/casefile/pkg/logger"
	"github.com/inquesta/casefile/pkg/logger/console"

	_ "github.com/lib/pq"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
