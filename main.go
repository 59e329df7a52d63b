package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"dysonlink/actions/devices"
	"dysonlink/actions/login"
)

func main() {
	cmd := &cli.Command{
		Name:    "dysonlink",
		Usage:   "Dyson cloud account CLI tool",
		Version: "0.0.1-prerelease",
		Action: func(context.Context, *cli.Command) error {
			fmt.Println("Dyson cloud CLI - Use 'dysonlink help' for available commands")
			return nil
		},
		Commands: []*cli.Command{
			login.LoginCommand,
			devices.DevicesCommand,
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
