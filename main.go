// Package main is the entry point for the shibi application.
package main

import (
	"github.com/samber/lo"
	"github.com/shibi-dl/shibi/cmd"
	"github.com/shibi-dl/shibi/config"
	"github.com/shibi-dl/shibi/internal/cache"
	"github.com/shibi-dl/shibi/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Initialize asynchronous background maintenance of the metadata cache.
	cache.CollectGarbage()

	cmd.Execute()
}
