package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"selenite.systems/groundwork/internal/provisioner"
)

var Version string

func main() {
	cliflags := make(map[string]any)
	ctx := context.Background()

	var configFile string

	app := &cli.Command{
		Name:  "groundwork",
		Usage: "Provision a host for the reading challenge bot",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "Specified TOML config file",
				Required:    false,
				Destination: &configFile,
				Aliases:     []string{"c"},
				Sources:     cli.EnvVars("GROUNDWORK_CONFIG"),
				Action: func(ctx context.Context, cCtx *cli.Command, v string) error {
					if v == "" {
						return errors.New("config file passed without value")
					}
					if _, err := os.Stat(v); err != nil && os.IsNotExist(err) {
						return errors.New("config file not found")
					} else if err != nil {
						return err
					}
					return nil
				},
			},
			&cli.StringFlag{
				Name:    "repo",
				Usage:   "Repository to provision from",
				Sources: cli.EnvVars("GROUNDWORK_REPO"),
				Action: func(ctx context.Context, cm *cli.Command, v string) error {
					cliflags["repo"] = v
					return nil
				},
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Enable debug logging",
				Sources: cli.EnvVars("GROUNDWORK_DEBUG"),
				Action: func(ctx context.Context, cm *cli.Command, b bool) error {
					cliflags["debug"] = true
					return nil
				},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Dump active config",
				Action: func(ctx context.Context, cCtx *cli.Command) error {
					k, err := LoadConfigs(ctx, configFile, cliflags)
					if err != nil {
						return err
					}
					c, err := provisioner.NewConfig(k)
					if err != nil {
						log.Fatal(err)
					}
					fmt.Println(c)
					return nil
				},
			},
			{
				Name:  "plan",
				Usage: "Show the provisioning chain without executing it",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "quiet",
						Aliases: []string{"q"},
						Usage:   "Minimize output",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Control output format. Supports text,json",
					},
				},
				Action: func(ctx context.Context, cCtx *cli.Command) error {
					quiet := false
					format := "text"
					if cCtx.IsSet("quiet") {
						cliflags["quiet"] = cCtx.Bool("quiet")
						quiet = cCtx.Bool("quiet")
					}
					if cCtx.IsSet("format") {
						format = cCtx.String("format")
					}
					p, err := setup(ctx, configFile, cliflags)
					if err != nil {
						return err
					}
					plan, err := p.Plan(ctx)
					if err != nil {
						return fmt.Errorf("error planning steps: %w", err)
					}
					if !quiet {
						switch format {
						case "text":
							fmt.Println(plan.Pretty())
						case "json":
							jsonPlan, err := plan.ToJson()
							if err != nil {
								return fmt.Errorf("error converting to json: %w", err)
							}
							fmt.Printf("%s", string(jsonPlan))
						default:
							return fmt.Errorf("unsupported output format")
						}
					}
					err = p.SavePlan(plan, "plan.toml")
					if err != nil {
						return fmt.Errorf("error writing plan: %w", err)
					}
					return nil
				},
			},
			{
				Name:  "provision",
				Usage: "Plan and execute provisioning",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "quiet",
						Aliases: []string{"q"},
						Usage:   "Minimize output",
					},
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Skip the token confirmation pause",
					},
					&cli.StringFlag{
						Name:    "token",
						Usage:   "Bot token to write into the env file",
						Sources: cli.EnvVars("GROUNDWORK_TOKEN"),
					},
				},
				Action: func(ctx context.Context, cCtx *cli.Command) error {
					quiet := false
					if cCtx.IsSet("quiet") {
						cliflags["quiet"] = cCtx.Bool("quiet")
						quiet = cCtx.Bool("quiet")
					}
					if cCtx.IsSet("yes") {
						cliflags["yes"] = cCtx.Bool("yes")
					}
					if cCtx.IsSet("token") {
						cliflags["token"] = cCtx.String("token")
					}
					p, err := setup(ctx, configFile, cliflags)
					if err != nil {
						return err
					}
					plan, err := p.Plan(ctx)
					if err != nil {
						return err
					}
					if !quiet {
						fmt.Println(plan.Pretty())
					}
					completed, err := p.Execute(ctx, plan)
					if err != nil {
						log.Warnf("%v/%v steps completed", completed, plan.Size())
						return err
					}
					err = p.SavePlan(plan, "lastrun.toml")
					if err != nil {
						return fmt.Errorf("error writing plan: %w", err)
					}
					return nil
				},
			},
			{
				Name:  "status",
				Usage: "Show service state as systemd reports it",
				Action: func(ctx context.Context, cCtx *cli.Command) error {
					p, err := setup(ctx, configFile, cliflags)
					if err != nil {
						return err
					}
					serv, err := p.Status(ctx)
					if err != nil {
						return err
					}
					fmt.Printf("%v: %v (enabled: %v)\n", serv.Name, serv.State, serv.Enabled)
					if !serv.Started() {
						return cli.Exit("service is not active", 1)
					}
					return nil
				},
			},
			{
				Name:  "doctor",
				Usage: "Run post-provision health probes",
				Action: func(ctx context.Context, cCtx *cli.Command) error {
					p, err := setup(ctx, configFile, cliflags)
					if err != nil {
						return err
					}
					findings := p.Doctor(ctx)
					if len(findings) == 0 {
						fmt.Println("OK")
						return nil
					}
					for _, f := range findings {
						fmt.Printf("Finding: %v\n", f)
					}
					return cli.Exit(fmt.Sprintf("%v findings", len(findings)), 1)
				},
			},
			{
				Name:  "version",
				Usage: "show version",
				Action: func(_ context.Context, _ *cli.Command) error {
					fmt.Printf("groundwork version %v\n", Version)
					return nil
				},
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
