package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/brandkit/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := defaultGenerateOptions()
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview the brand assets over HTTP",
		Long: `Serve every asset at the path it is published under, rendered from the
current logos on each request. Edit the SVGs and reload the browser.`,
		Example: `  brandkit serve
  brandkit serve --addr :9000 -C web/public/brand`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			rasterizer, ch, err := c.newRasterizer(opts.noCache, opts.strict)
			if err != nil {
				return err
			}
			defer ch.Close()

			srv := server.New(cfg.InDir(opts.dir), rasterizer, c.Logger)

			printInfo("Serving brand assets on %s", StyleLink.Render(displayURL(addr)))
			printDetail("Press Ctrl+C to stop")
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	opts.bindConfig(cmd)
	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the raster cache")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail on SVG elements that cannot be rendered")
	return cmd
}

// displayURL turns a listen address into a browsable URL.
func displayURL(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		addr = "localhost" + addr
	}
	return "http://" + addr + "/"
}
