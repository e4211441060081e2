package main

import (
	"context"
	"os"

	"github.com/agbru/bncalc/internal/app"
)

func main() {
	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		os.Exit(app.ExitCode(err))
	}

	exitCode := application.Run(context.Background(), os.Stdout)
	os.Exit(exitCode)
}
