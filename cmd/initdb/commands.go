package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/jes/initdb"
	"github.com/jes/initdb/schema"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

func (c *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <database-path>",
		Short: "Show tables, size and schema version of an existing database",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := initdb.Inspect(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			c.log.Successf("Database is ready at %s", report.Path)
			c.log.Infof("Tables: %d", report.TableCount())
			if c.cfg.Verbose {
				c.printTables(report)
			}
			c.log.Infof("Database size: %s", report.SizeString())
			c.log.Infof("Schema version: %s", report.SchemaVersion)
			return nil
		},
	}
}

func (c *CLI) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Apply the schema to an in-memory database and report the result",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := os.ReadFile(c.cfg.Schema)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("%w: %s", initdb.ErrSchemaNotFound, c.cfg.Schema)
				}
				return fmt.Errorf("failed to read schema file: %w", err)
			}
			report, err := initdb.Validate(cmd.Context(), string(script))
			if err != nil {
				return err
			}
			c.log.Successf("Schema is valid: %s", c.cfg.Schema)
			c.log.Infof("Tables created: %d", report.TableCount())
			if c.cfg.Verbose {
				c.printTables(report)
			}
			c.log.Infof("Schema version: %s", report.SchemaVersion)
			c.log.Debugf("Schema hash: %s", report.SchemaHash)
			return nil
		},
	}
}

func (c *CLI) newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the built-in TagBox schema",
		Long: `Print the built-in TagBox schema to standard output.

Save it as ` + schema.FileName + ` next to the initdb executable to use it
as the default schema.`,
		Args: exactArgs(0),
		// No config needed.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(c.out, schema.Default)
			return err
		},
	}
}

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "version",
		Short:             "Display version information",
		Args:              exactArgs(0),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(c.out, "initdb version %s (commit: %s, built: %s)\n", Version, GitCommit, BuildDate)
			fmt.Fprintf(c.out, "  Go Version: %s\n", runtime.Version())
			if v, err := initdb.SQLiteVersion(cmd.Context()); err == nil {
				fmt.Fprintf(c.out, "  SQLite:     %s\n", v)
			}
			return nil
		},
	}
}
