package main

import (
	"bytes"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vlite/internal/errors"
	"github.com/vango-dev/vlite/internal/preview"
	"github.com/vango-dev/vlite/pkg/render"
	"github.com/vango-dev/vlite/pkg/telemetry"
)

func renderCmd(flags *globalFlags) *cobra.Command {
	var (
		out    string
		route  string
		page   bool
		pretty bool
		todos  []string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the todo app once and print the HTML",
		Long: `Mount the todo app on an in-memory document, optionally navigate
to a route, and print the reconciled HTML of the mount point.

Examples:
  vlite render
  vlite render --todo milk --todo eggs --route '#/active'
  vlite render --page -o index.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if len(todos) > 0 {
				cfg.Todos = todos
			}
			logger := newLogger(cfg, cmd.ErrOrStderr())

			session, err := preview.NewSession(cfg, preview.SessionOptions{
				Logger:  logger,
				Metrics: telemetry.NewMetrics(telemetry.WithRegistry(prometheus.NewRegistry())),
			})
			if err != nil {
				return err
			}
			if route != "" && !session.Router.Navigate(route) {
				return errors.New("E301").
					WithDetailf("No route for %q.", route).
					WithSuggestion("Use one of: #/, #/active, #/completed")
			}

			r := render.NewRenderer(render.RendererConfig{Pretty: pretty})
			var buf bytes.Buffer
			root := session.App.Root()
			if page {
				err = r.RenderPage(&buf, render.PageData{
					Title:   cfg.Title,
					Body:    root,
					MountID: cfg.MountID,
				})
			} else {
				var html string
				html, err = r.RenderChildrenToString(root)
				buf.WriteString(html)
				if !pretty {
					buf.WriteByte('\n')
				}
			}
			if err != nil {
				return err
			}

			if out == "" {
				_, err = cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return errors.New("E303").WithDetailf("Could not write %s.", out).Wrap(err)
			}
			success(cmd.ErrOrStderr(), "Wrote %s", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to file instead of stdout")
	cmd.Flags().StringVarP(&route, "route", "r", "", "Hash route to navigate to before rendering")
	cmd.Flags().BoolVar(&page, "page", false, "Render a complete HTML page")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the output")
	cmd.Flags().StringArrayVarP(&todos, "todo", "t", nil, "Seed todo (repeatable, overrides config)")

	return cmd
}
