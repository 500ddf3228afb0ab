package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qchip/pkg/dims"
	"github.com/matzehuels/qchip/pkg/errors"
	"github.com/matzehuels/qchip/pkg/lattice"
)

const defaultConfigFile = "qchip.toml"

// configCommand creates the config command for TOML dimension files.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create, show and validate chip dimension files",
	}

	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configValidateCommand())

	return cmd
}

func (c *CLI) configInitCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default dimensions to a TOML file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigFile
			if len(args) == 1 {
				path = args[0]
			}
			if err := errors.ValidatePath(path); err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidPath, "%s already exists (use --force to overwrite)", path)
			}
			if err := dims.WriteFile(path, dims.DefaultChipConfig()); err != nil {
				return err
			}
			printSuccess("Wrote default chip config")
			printFile(path)
			printNextStep("Use it", appName+" render --config "+path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [path]",
		Short: "Print the effective configuration (file merged over defaults)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := dims.DefaultChipConfig()
			if len(args) == 1 {
				var err error
				if cfg, err = dims.LoadFile(args[0]); err != nil {
					return err
				}
			}
			data, err := dims.Encode(cfg)
			if err != nil {
				return err
			}
			_, err = stdout.Write(data)
			return err
		},
	}
}

func (c *CLI) configValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <path>",
		Short: "Check a config file and report the resulting lattice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := dims.LoadFile(args[0])
			if err != nil {
				printError("%s is invalid", args[0])
				return err
			}
			lat, err := lattice.FromConfig(cfg)
			if err != nil {
				printError("%s is invalid", args[0])
				return err
			}

			printSuccess("%s is valid", args[0])
			printKeyValue("lattice", fmt.Sprintf("%d x %d", lat.Rows(), lat.Cols()))
			pitch := fmt.Sprintf("%.1f µm", lat.Pitch())
			if cfg.Lattice.AutoPitch() {
				pitch += " (auto)"
			}
			printKeyValue("pitch", pitch)
			printKeyValue("qubits", StyleNumber.Render(fmt.Sprint(lat.NumDataQubits())))
			printKeyValue("couplers", StyleNumber.Render(fmt.Sprint(lat.NumCouplers())))
			return nil
		},
	}
}
