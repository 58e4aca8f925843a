// Command punchlog is the terminal client: it signs in against the
// punchlog API, keeps the session alive across runs through the
// credential file, and shows the clock-record dashboard.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	punchlog "github.com/punchlog/go-punchlog"
	"github.com/punchlog/go-punchlog/client"
	"github.com/punchlog/go-punchlog/keychain"
	"github.com/punchlog/go-punchlog/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "punchlog:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath string
		apiURL     string
		tokenFile  string
		adminArea  bool
	)

	pflag.StringVarP(&configPath, "config", "c", "punchlog.yml", "config file path")
	pflag.StringVar(&apiURL, "api", "", "API base URL, overrides the config file")
	pflag.StringVar(&tokenFile, "token-file", "", "credential file path")
	pflag.BoolVar(&adminArea, "admin", false, "open the admin area, requires the ADMIN role")
	pflag.Parse()

	cfg, err := punchlog.LoadConfig(configPath)
	if err != nil {
		return err
	}

	base := cfg.GetAPIURL()
	if apiURL != "" {
		base = apiURL
	}

	if tokenFile == "" {
		tokenFile = cfg.CredentialFile
	}
	if tokenFile == "" {
		if tokenFile, err = keychain.DefaultPath(); err != nil {
			return err
		}
	}

	var clientOpts []client.Option
	if timeout := cfg.GetRequestTimeout(); timeout > 0 {
		clientOpts = append(clientOpts, client.WithTimeout(timeout))
	}

	gateway := client.NewGateway(base, clientOpts...)
	records := client.NewClockRecords(base, clientOpts...)

	store := punchlog.NewStore(gateway, keychain.NewFile(tokenFile),
		punchlog.WithSinks(gateway, records),
	)

	guardOpts := []punchlog.GuardOption{}
	if adminArea {
		guardOpts = append(guardOpts, punchlog.WithRequiredRole(punchlog.RoleAdmin))
	}
	guard := punchlog.NewGuard(store, guardOpts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handle := punchlog.NewHandle(ctx, store)
	defer handle.Close()

	return tui.Run(handle, guard, records)
}
