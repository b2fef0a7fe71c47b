// sosctl is a terminal SOS client. It authenticates against the alert
// service and drives the press-and-hold trigger from stdin commands:
//
//	press    hold the SOS button (starts the countdown)
//	release  let go before the countdown expires
//	cancel   cancel a raised emergency
//	status   print the trigger state
//	quit     exit
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"helpmate/config"
	"helpmate/internal/infra/api"
	logs "helpmate/internal/infra/log"
	"helpmate/internal/trigger"

	"github.com/pkg/errors"
)

func main() {
	email := flag.String("email", "", "account email")
	password := flag.String("password", "", "account password")
	baseURL := flag.String("url", "", "service base URL (overrides config)")
	flag.Parse()

	if err := run(*email, *password, *baseURL); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(email, password, baseURL string) error {
	if email == "" || password == "" {
		return errors.New("--email and --password are required")
	}

	cfg, err := config.New()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	if cfg.SOSClient == nil {
		return errors.New("sosClient section missing from configuration")
	}
	if baseURL != "" {
		cfg.SOSClient.BaseURL = baseURL
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		return errors.Wrap(err, "failed to build logger")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := api.New(cfg.SOSClient)
	if err := client.Health(ctx); err != nil {
		return errors.Wrap(err, "service is not reachable")
	}
	if err := client.Login(ctx, email, password); err != nil {
		return err
	}
	logger.Info("Logged in", slog.Any("userID", client.UserID()))

	controller := trigger.New(
		trigger.Config{},
		client.UserID(),
		api.NewStaticLocationProvider(cfg.SOSClient),
		client,
		terminalEvents(),
		logger,
	)

	return commandLoop(ctx, controller)
}

// terminalEvents prints trigger transitions for the operator.
func terminalEvents() trigger.Events {
	return trigger.Events{
		OnStateChange: func(state trigger.State) {
			fmt.Printf("state: %s\n", state)
		},
		OnTick: func(remaining int) {
			if remaining > 0 {
				fmt.Printf("hold... %d\n", remaining)
			}
		},
		OnSubmitResult: func(err error) {
			if err != nil {
				fmt.Printf("alert submission FAILED: %v\n", err)

				return
			}
			fmt.Println("emergency alert submitted")
		},
		OnCancelResult: func(err error) {
			if err != nil {
				fmt.Printf("cancel FAILED: %v\n", err)

				return
			}
			fmt.Println("active alerts cancelled")
		},
	}
}

func commandLoop(ctx context.Context, controller *trigger.Controller) error {
	fmt.Println("commands: press | release | cancel | status | quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return errors.WithStack(scanner.Err())
		}

		switch strings.TrimSpace(scanner.Text()) {
		case "press":
			controller.Press(ctx)
		case "release":
			controller.Release()
		case "cancel":
			controller.CancelEmergency(ctx)
		case "status":
			fmt.Printf("state: %s\n", controller.State())
		case "quit", "exit":
			return nil
		case "":
		default:
			fmt.Println("unknown command")
		}
	}
}
