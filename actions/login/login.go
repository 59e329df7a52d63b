package login

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"dysonlink/client"
	"dysonlink/internal/prompt"
)

// LoginCommand is the CLI command for verifying Dyson account credentials
var LoginCommand = &cli.Command{
	Name:  "login",
	Usage: "Login to your Dyson account",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "email",
			Aliases: []string{"e"},
			Usage:   "Dyson account email",
		},
		&cli.StringFlag{
			Name:    "password",
			Aliases: []string{"p"},
			Usage:   "Dyson account password (not recommended, use interactive prompt)",
		},
		&cli.StringFlag{
			Name:    "country",
			Aliases: []string{"c"},
			Value:   "US",
			Usage:   "2-letter country code of the account",
		},
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"d"},
			Usage:   "Enable debug output",
		},
	},
	Action: loginAction,
}

func loginAction(ctx context.Context, cmd *cli.Command) error {
	account, err := AccountFromFlags(cmd)
	if err != nil {
		return err
	}

	fmt.Println("Logging in...")

	if err := account.Login(ctx); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Printf("\n✓ Successfully logged in as %s\n", account.Email)
	fmt.Println("  Tokens are not persisted; each command logs in on its own")

	return nil
}

// AccountFromFlags builds an account session from command flags, prompting
// interactively for any missing credential.
func AccountFromFlags(cmd *cli.Command) (*client.Account, error) {
	email := cmd.String("email")
	if email == "" {
		var err error
		email, err = prompt.Input("Email: ")
		if err != nil {
			return nil, fmt.Errorf("failed to read email: %w", err)
		}
	}

	password := cmd.String("password")
	if password == "" {
		var err error
		password, err = prompt.Password("Password: ")
		if err != nil {
			return nil, fmt.Errorf("failed to read password: %w", err)
		}
	}

	account := client.NewAccount(email, password, cmd.String("country"))
	account.Debug = cmd.Bool("debug")

	return account, nil
}
