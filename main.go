package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/kartva/ph-interpreters/cli"
	"github.com/kartva/ph-interpreters/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Run(ctx, os.Exit, os.Args[1:]...); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
