package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/opsdash/internal/apiclient"
	"github.com/ziadkadry99/opsdash/internal/panels"
	"github.com/ziadkadry99/opsdash/internal/progress"
)

var (
	bistLast   bool
	bistJSON   bool
	bistStrict bool
)

var bistCmd = &cobra.Command{
	Use:   "bist",
	Short: "Run the API server's built-in self test",
	Long: `Triggers a self-test run on the API server and prints the summary the
BIST page shows. With --last the most recent results are fetched instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client := apiclient.FromConfig(cfg, verbose)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rep := progress.NewReporter()
		var results *apiclient.BISTResults
		if bistLast {
			rep.Start(-1, "Fetching self-test results")
			rep.Update(0, "GET "+client.BaseURL()+cfg.Endpoints.BISTResults)
			results, err = client.BISTResults(ctx)
		} else {
			rep.Start(-1, "Running self test")
			rep.Update(0, "POST "+client.BaseURL()+cfg.Endpoints.BISTRun)
			results, err = client.RunBIST(ctx)
		}
		if err != nil {
			rep.Finish("")
			return fmt.Errorf("self test: %w", err)
		}
		rep.Finish("")

		if bistJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(results); err != nil {
				return err
			}
		} else {
			printBIST(os.Stdout, results)
		}

		if s := panels.Summarize(results); bistStrict && s.Failed > 0 {
			return fmt.Errorf("%d of %d checks failed", s.Failed, s.Total)
		}
		return nil
	},
}

func printBIST(w io.Writer, r *apiclient.BISTResults) {
	s := panels.Summarize(r)
	fmt.Fprintf(w, "Total: %d  Passed: %d  Failed: %d  Pass rate: %d%%\n", s.Total, s.Passed, s.Failed, s.PassRate)
	fmt.Fprintf(w, "  Endpoints:    %d/%d\n", s.Endpoints.Passed, s.Endpoints.Total)
	fmt.Fprintf(w, "  Pages:        %d/%d\n", s.Pages.Passed, s.Pages.Total)
	fmt.Fprintf(w, "  Dependencies: %d/%d\n", s.Dependencies.Passed, s.Dependencies.Total)

	if s.Failed == 0 {
		return
	}
	fmt.Fprintln(w, "\nFailures:")
	for _, e := range r.Endpoints {
		if !e.Success {
			fmt.Fprintf(w, "  %s %s: %d %s\n", e.Method, e.Route, e.Code(), e.Error)
		}
	}
	for _, p := range r.DashboardPages {
		if !p.Success {
			fmt.Fprintf(w, "  page %s: %d %s\n", p.URL, p.Code(), p.Error)
			for _, m := range p.MissingElements {
				fmt.Fprintf(w, "    missing %s\n", m)
			}
		}
	}
	for _, d := range r.ExternalDependencies {
		if !d.Success {
			fmt.Fprintf(w, "  dependency %s: %d %s\n", d.Dependency, d.Code(), d.Error)
		}
	}
}

func init() {
	bistCmd.Flags().BoolVar(&bistLast, "last", false, "show the most recent results without starting a run")
	bistCmd.Flags().BoolVar(&bistJSON, "json", false, "print the raw results as JSON")
	bistCmd.Flags().BoolVar(&bistStrict, "strict", false, "exit non-zero when any check failed")
	rootCmd.AddCommand(bistCmd)
}
