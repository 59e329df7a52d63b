package devices

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"dysonlink/actions/login"
	"dysonlink/client"
)

// DevicesCommand is the CLI command for listing devices on the account
var DevicesCommand = &cli.Command{
	Name:  "devices",
	Usage: "List the devices linked to your Dyson account",
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
		&cli.StringFlag{
			Name:    "token",
			Aliases: []string{"t"},
			Usage:   "Reuse a bearer token instead of logging in",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Show firmware and connection details",
		},
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"d"},
			Usage:   "Enable debug output",
		},
	},
	Action: devicesAction,
}

func devicesAction(ctx context.Context, cmd *cli.Command) error {
	var account *client.Account

	if token := cmd.String("token"); token != "" {
		account = client.NewAccount("", "", cmd.String("country"))
		account.Debug = cmd.Bool("debug")
		account.UseAuthenticationToken(token)
	} else {
		var err error
		account, err = login.AccountFromFlags(cmd)
		if err != nil {
			return err
		}

		fmt.Println("Logging in...")
		if err := account.Login(ctx); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		fmt.Printf("✓ Logged in as %s\n\n", account.Email)
	}

	devices, err := account.Devices(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch devices: %w", err)
	}

	if len(devices) == 0 {
		fmt.Println("📭 No devices linked to this account")
		return nil
	}

	fmt.Printf("Found %d device(s):\n\n", len(devices))

	verbose := cmd.Bool("verbose")
	for i, device := range devices {
		icon, kind := describeDevice(device)
		fmt.Printf("%s Device #%d: %s (%s)\n", icon, i+1, device.Name(), kind)
		fmt.Printf("   ├─ Serial:   %s\n", device.Serial())
		if verbose {
			record := device.Record()
			fmt.Printf("   ├─ Firmware: %s", record.Version)
			if record.NewVersionAvailable {
				fmt.Print(" (update available)")
			}
			fmt.Println()
			fmt.Printf("   ├─ Connection: %s\n", record.ConnectionType)
		}
		fmt.Printf("   └─ Product:  %s\n", device.ProductType())
	}

	return nil
}

func describeDevice(device client.Device) (icon, kind string) {
	switch device.(type) {
	case *client.Dyson360Eye:
		return "🤖", "360 Eye robot vacuum"
	case *client.DysonPureHotCoolLink:
		return "🔥", "Pure Hot+Cool Link"
	default:
		return "💨", "Pure Cool Link"
	}
}
