package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/opsdash/internal/config"
	"github.com/ziadkadry99/opsdash/internal/markdown"
)

var (
	renderEngine string
	renderOutput string
)

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Render a Markdown file to HTML",
	Long: `Renders a Markdown file with the same engine the documentation page uses.
Use "-" to read from stdin. The engine defaults to docs.renderer from the config.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var src []byte
		var err error
		if args[0] == "-" {
			src, err = io.ReadAll(os.Stdin)
		} else {
			src, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		engine := cfg.Docs.Renderer
		if cmd.Flags().Changed("engine") {
			engine = config.RendererType(renderEngine)
		}
		if !engine.Valid() {
			return fmt.Errorf("unknown engine %q (want lite or goldmark)", engine)
		}

		html := markdown.New(string(engine), cfg.Source.Style).Render(string(src))

		if renderOutput == "" {
			_, err = fmt.Fprintln(os.Stdout, html)
			return err
		}
		if err := os.WriteFile(renderOutput, []byte(html+"\n"), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", renderOutput, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote %s with the %s engine\n", renderOutput, engine)
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderEngine, "engine", "e", string(config.RendererLite), "markdown engine: lite or goldmark")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "write HTML to this file instead of stdout")
	rootCmd.AddCommand(renderCmd)
}
