package main

import (
	"errors"

	"github.com/spf13/cobra"
)

// errValidationFailed is returned by the validate command when any phase
// fails. The phases have already been printed, so it is not logged again.
var errValidationFailed = errors.New("validation failed")

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "sealevel",
		Short:         "Build and check the sea-level rise series",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return c.setup()
		},
	}
	root.AddCommand(
		c.extractCommand(),
		c.satelliteCommand(),
		c.cleanCommand(),
		c.projectCommand(),
		c.summarizeCommand(),
		c.validateCommand(),
		c.publishCommand(),
	)
	return root
}

// pathFlags registers --in and --out overrides. Empty values fall back to
// the configured file names, resolved when the command runs.
func pathFlags(cmd *cobra.Command, in, out *string) {
	if in != nil {
		cmd.Flags().StringVar(in, "in", "", "input file (default from config)")
	}
	if out != nil {
		cmd.Flags().StringVar(out, "out", "", "output file (default from config)")
	}
}

func (c *cli) path(override, name string) string {
	if override != "" {
		return override
	}
	return c.cfg.Path(name)
}

func (c *cli) extractCommand() *cobra.Command {
	var in, out string
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract year and GMSL columns from the satellite table, in source order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := c.pipeline.Extract(cmd.Context(), c.path(in, c.cfg.SourceFile), c.path(out, c.cfg.ExtractFile), false)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), r)
			return nil
		},
	}
	pathFlags(cmd, &in, &out)
	return cmd
}

func (c *cli) satelliteCommand() *cobra.Command {
	var in, out string
	cmd := &cobra.Command{
		Use:   "satellite",
		Short: "Extract the satellite table sorted by year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := c.pipeline.Extract(cmd.Context(), c.path(in, c.cfg.SourceFile), c.path(out, c.cfg.SatelliteFile), true)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), r)
			return nil
		},
	}
	pathFlags(cmd, &in, &out)
	return cmd
}

func (c *cli) cleanCommand() *cobra.Command {
	var in, out string
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove blank and duplicate lines from the compiled series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := c.pipeline.Clean(cmd.Context(), c.path(in, c.cfg.SeriesFile), c.path(out, c.cfg.CleanFile))
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), r)
			return nil
		},
	}
	pathFlags(cmd, &in, &out)
	return cmd
}

func (c *cli) projectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Add projection rows to the compiled series",
	}
	cmd.AddCommand(c.projectAppendCommand(), c.projectRebaseCommand())
	return cmd
}

func (c *cli) projectAppendCommand() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "append",
		Short: "Append the projection table to the compiled series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := c.cfg.LoadProjectionTable(c.fs)
			if err != nil {
				return err
			}
			r, err := c.pipeline.AppendProjections(cmd.Context(), c.path(out, c.cfg.SeriesFile), table)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), r)
			return nil
		},
	}
	pathFlags(cmd, nil, &out)
	return cmd
}

func (c *cli) projectRebaseCommand() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "rebase",
		Short: "Replace the projection rows with a linear rise from the configured baseline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := c.pipeline.RebaseProjections(cmd.Context(), c.path(path, c.cfg.SeriesFile), c.cfg.LinearRise())
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), r)
			return nil
		},
	}
	pathFlags(cmd, &path, nil)
	return cmd
}

func (c *cli) summarizeCommand() *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Print counts and ranges for a series file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := c.pipeline.Summarize(cmd.Context(), c.path(in, c.cfg.CleanFile))
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), r)
			return nil
		},
	}
	pathFlags(cmd, &in, nil)
	return cmd
}

func (c *cli) validateCommand() *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a series file for canonical form, year order, and duplicates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := c.pipeline.Validate(cmd.Context(), c.path(in, c.cfg.CleanFile))
			if err != nil {
				return err
			}
			printValidation(cmd.OutOrStdout(), v)
			if !v.Passed() {
				return errValidationFailed
			}
			return nil
		},
	}
	pathFlags(cmd, &in, nil)
	return cmd
}

func (c *cli) publishCommand() *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish a series file to the Kafka sink topic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := c.pipeline.Publish(cmd.Context(), c.path(in, c.cfg.CleanFile))
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), r)
			return nil
		},
	}
	pathFlags(cmd, &in, nil)
	return cmd
}
