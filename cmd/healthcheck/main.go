// Command healthcheck smoke-tests a running Laundry OS API.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"laundryos-backend/healthcheck"

	"github.com/spf13/cobra"
)

var errChecksFailed = errors.New("some checks failed")

type flags struct {
	baseURL       string
	dbPath        string
	frontendPorts []string
	timeout       time.Duration
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "healthcheck",
		Short: "Laundry OS smoke test",
		Long: `Runs end-to-end checks against a running Laundry OS API: health,
service create/update/delete, VAT arithmetic, the database file and the
web client dev server. Exits non-zero if any check fails.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHealthcheck(cmd, f)
		},
	}

	defaultPorts := make([]string, len(healthcheck.DefaultFrontendPorts))
	for i, port := range healthcheck.DefaultFrontendPorts {
		defaultPorts[i] = strconv.Itoa(port)
	}

	cmd.Flags().StringVar(&f.baseURL, "base", healthcheck.DefaultBase, "API base URL")
	cmd.Flags().StringVar(&f.dbPath, "db", "", "SQLite database path to check (optional)")
	cmd.Flags().StringSliceVar(&f.frontendPorts, "frontend-ports", defaultPorts,
		"ports to probe for the web client dev server; empty skips the probe")
	cmd.Flags().DurationVar(&f.timeout, "timeout", healthcheck.DefaultTimeout, "per-request timeout")
	return cmd
}

func runHealthcheck(cmd *cobra.Command, f *flags) error {
	ports, err := parsePorts(f.frontendPorts)
	if err != nil {
		return err
	}

	runner := healthcheck.NewRunner(healthcheck.Options{
		Base:          f.baseURL,
		DBPath:        f.dbPath,
		FrontendPorts: ports,
		Timeout:       f.timeout,
	}, cmd.OutOrStdout())

	if !runner.Run(cmd.Context()) {
		return errChecksFailed
	}
	return nil
}

// parsePorts converts the --frontend-ports values, skipping blank entries.
func parsePorts(values []string) ([]int, error) {
	ports := []int{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid --frontend-ports value %q", v)
		}
		ports = append(ports, port)
	}
	return ports, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Failed checks have already been reported line by line.
		if !errors.Is(err, errChecksFailed) {
			fmt.Fprintln(os.Stderr, "healthcheck:", err)
		}
		os.Exit(1)
	}
}
