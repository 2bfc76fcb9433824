package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jes/initdb"
	"github.com/jes/initdb/internal/config"
	"github.com/jes/initdb/internal/logging"
)

// Exit codes
const (
	ExitSuccess      = 0
	ExitValidation   = 1
	ExitExecution    = 2
	ExitVerification = 3
	ExitInternal     = 4
)

// usageError marks bad command-line input.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// CLI holds the command-line interface state.
type CLI struct {
	rootCmd     *cobra.Command
	out, errOut io.Writer
	cfg         *config.Config
	log         *logging.Logger

	configPath string
}

// New creates a new CLI writing to out and errOut.
func New(out, errOut io.Writer) *CLI {
	c := &CLI{out: out, errOut: errOut}
	c.rootCmd = c.newRootCmd()
	return c
}

// Execute runs the CLI with args and returns the process exit code.
func (c *CLI) Execute(args []string) int {
	c.rootCmd.SetArgs(args)
	err := c.rootCmd.Execute()
	if err == nil {
		return ExitSuccess
	}
	c.reportError(err)
	return exitCode(err)
}

func exitCode(err error) int {
	var (
		execErr   *initdb.ExecutionError
		verifyErr *initdb.VerificationError
		usage     usageError
	)
	switch {
	case errors.Is(err, initdb.ErrAlreadyExists),
		errors.Is(err, initdb.ErrSchemaNotFound),
		errors.Is(err, initdb.ErrNotFound),
		errors.As(err, &usage):
		return ExitValidation
	case errors.As(err, &execErr):
		return ExitExecution
	case errors.Is(err, initdb.ErrEmptySchema), errors.As(err, &verifyErr):
		return ExitVerification
	}
	return ExitInternal
}

func (c *CLI) reportError(err error) {
	log := c.log
	if log == nil {
		log = logging.New(c.out, c.errOut, logging.ColorAuto)
	}
	switch {
	case errors.Is(err, initdb.ErrAlreadyExists):
		log.Errorf("%v", err)
		log.Errorf("Use --force to recreate the database (WARNING: this will delete all data)")
	case errors.Is(err, initdb.ErrEmptySchema):
		log.Errorf("No tables were created in the database!")
	default:
		log.Errorf("%v", err)
	}
}

func (c *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "initdb [flags] <database-path>",
		Short: "Initialize a TagBox database from a SQL schema",
		Long: `Initialize a SQLite database from a SQL schema script and verify it.

The database file and its parent directories are created if they don't exist.
By default the schema is read from init-database.sql next to the executable.`,
		Example: `  # Initialize a new database
  initdb ./tagbox.db

  # Initialize with verbose output
  initdb -v ./data/tagbox.db

  # Force recreate existing database
  initdb --force ./tagbox.db`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return usageError{err}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInit(cmd, args[0])
		},
	}
	cmd.SetOut(c.out)
	cmd.SetErr(c.errOut)
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	cmd.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ./initdb.yaml or ~/.initdb/initdb.yaml)")
	cmd.PersistentFlags().StringP("schema", "s", "", "SQL schema script (default: init-database.sql next to the executable)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().String("color", "auto", "colorize output: auto, always or never")
	cmd.Flags().BoolP("force", "f", false, "force recreate database (will delete existing data!)")
	cmd.Flags().Bool("backup", false, "with --force, keep the old database as <path>.backup")

	cmd.AddCommand(c.newStatusCmd())
	cmd.AddCommand(c.newValidateCmd())
	cmd.AddCommand(c.newSchemaCmd())
	cmd.AddCommand(c.newVersionCmd())

	return cmd
}

func (c *CLI) initConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	mode, err := logging.ParseColorMode(cfg.Color)
	if err != nil {
		return usageError{err}
	}
	c.cfg = cfg
	c.log = logging.New(c.out, c.errOut, mode)
	if cfg.Verbose {
		c.log.SetLevel(logging.LevelDebug)
	}
	return nil
}

func (c *CLI) runInit(cmd *cobra.Command, dbPath string) error {
	c.log.Infof("TagBox Database Initialization")
	c.log.Infof("==============================")

	version, err := initdb.SQLiteVersion(cmd.Context())
	if err != nil {
		return fmt.Errorf("SQLite not available: %w", err)
	}
	c.log.Infof("Using SQLite version: %s", version)

	c.log.Infof("Initializing database: %s", dbPath)
	c.log.Infof("Using SQL file: %s", c.cfg.Schema)

	report, err := initdb.Init(cmd.Context(), initdb.Options{
		Path:       dbPath,
		SchemaPath: c.cfg.Schema,
		Force:      c.cfg.Force,
		Backup:     c.cfg.Backup,
		Verbose:    c.cfg.Verbose,
		Logger:     c.log,
	})
	if err != nil {
		return err
	}

	c.log.Successf("Database initialized successfully!")
	c.log.Infof("Database path: %s", report.Path)
	c.log.Infof("Tables created: %d", report.TableCount())
	if c.cfg.Verbose {
		c.printTables(report)
		c.log.Debugf("Schema hash: %s", report.SchemaHash)
	}
	c.log.Infof("Database size: %s", report.SizeString())
	c.log.Infof("Schema version: %s", report.SchemaVersion)

	c.log.Printf("\n")
	c.log.Successf("Database initialization completed!")
	c.log.Infof("You can now use TagBox with this database:")
	c.log.Infof("  export DATABASE_URL=\"sqlite:%s\"", dbPath)
	return nil
}

func (c *CLI) printTables(report *initdb.Report) {
	c.log.Infof("Tables in database:")
	for _, name := range report.Tables {
		c.log.Printf("  - %s\n", name)
	}
}
