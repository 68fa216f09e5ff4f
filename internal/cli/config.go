package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/brandkit/pkg/brand"
	"github.com/matzehuels/brandkit/pkg/errors"
)

// configCommand creates the configuration management command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create brandkit.toml",
	}

	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configValidateCommand())

	return cmd
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand() *cobra.Command {
	opts := defaultGenerateOptions()
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			return brand.Write(stdout, cfg)
		},
	}
	opts.bindConfig(cmd)
	return cmd
}

// configInitCommand creates the "config init" subcommand.
func (c *CLI) configInitCommand() *cobra.Command {
	var (
		dir   string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration to brandkit.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(dir, brand.DefaultFile)
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidConfig, "%s already exists (use --force to overwrite)", path)
			}

			var buf bytes.Buffer
			if err := brand.Write(&buf, brand.Default()); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "encode configuration")
			}
			if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
				return errors.Wrap(errors.ErrCodeWriteFailed, err, "write %s", path)
			}

			printSuccess("Created %s", path)
			printNextStep("Render the assets", fmt.Sprintf("%s -C %s", appName, dir))
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "directory to write brandkit.toml into")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

// configValidateCommand creates the "config validate" subcommand.
func (c *CLI) configValidateCommand() *cobra.Command {
	opts := defaultGenerateOptions()
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration and the logo files it names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			if path == "" {
				path = "built-in defaults"
			}
			printSuccess("Configuration is valid")
			printKeyValue("Source", path)

			resolved := cfg.InDir(opts.dir)
			missing := 0
			for _, in := range []struct{ label, path string }{
				{"Icon", resolved.Inputs.Icon},
				{"Logo", resolved.Inputs.Logo},
			} {
				if _, err := os.Stat(in.path); err != nil {
					printWarning("%s %s not found", in.label, in.path)
					missing++
					continue
				}
				printKeyValue(in.label, in.path)
			}
			if missing > 0 {
				return errors.New(errors.ErrCodeFileNotFound, "%d input file(s) missing", missing)
			}
			return nil
		},
	}
	opts.bindConfig(cmd)
	return cmd
}
