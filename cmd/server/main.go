package main

import (
	"teamgraph/internal/server"
	"teamgraph/internal/util"
	"teamgraph/pkg/logger"
	"teamgraph/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:     debug,
		Format:    util.GetEnvString("LOG_FORMAT", "text"),
		Timestamp: true,
	})
	logger.Init(consoleLogger)

	server.Init()
}
