package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"persistence-setup/core/config"
	"persistence-setup/core/logger"
	"persistence-setup/feature/jpa"
	"persistence-setup/feature/jpa/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var (
	setupRequest   catalog.Request
	passwordPrompt bool
	dryRunFlag     bool
	plainFlag      bool
)

// setupCmd represents the setup command
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure JPA persistence for the project",
	Long: `Reconciles the persistence descriptor, application context, database
properties and Maven build of the project with the selected ORM provider and
database. Artifacts owned by a previous selection are removed.`,
	Example: `  jpa-setup setup --provider HIBERNATE --database MYSQL --database-name clinic --user app
  jpa-setup setup --provider DATANUCLEUS --database GOOGLE_APP_ENGINE --application-id clinic-app --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logg.Sync()

		req := setupRequest
		if passwordPrompt {
			if req.Password, err = readPassword(cmd.ErrOrStderr()); err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
		}

		svc, err := newService(ctx, cfg, logg)
		if err != nil {
			return err
		}

		if !dryRunFlag && !yesConfirm {
			preview, err := svc.Setup(ctx, req, true)
			if err != nil {
				return selectionError(err)
			}
			if destructive(preview) {
				renderResult(cmd.OutOrStdout(), preview)
				if !confirmDestructiveAction(cmd.InOrStdin(), cmd.OutOrStdout()) {
					logg.Warn("Operation cancelled by user. No changes were made.")
					return nil
				}
			}
		}

		result, err := svc.Setup(ctx, req, dryRunFlag)
		if err != nil {
			return selectionError(err)
		}

		renderResult(cmd.OutOrStdout(), result)
		logg.Debug("Setup complete", zap.String("run_id", result.RunID))
		return nil
	},
}

// selectionError lists the valid ids for an unknown provider or database.
func selectionError(err error) error {
	switch {
	case errors.Is(err, catalog.ErrUnknownProvider):
		return fmt.Errorf("%w (choose one of %s)", err, strings.Join(catalog.ProviderIDs(), ", "))
	case errors.Is(err, catalog.ErrUnknownDatabase):
		return fmt.Errorf("%w (choose one of %s)", err, strings.Join(catalog.DatabaseIDs(), ", "))
	}
	return err
}

// renderBuildActions lists the planned build descriptor edits per axis.
func renderBuildActions(w io.Writer, axes []jpa.AxisSummary) {
	var rows [][]string
	for _, axis := range axes {
		for _, a := range axis.Actions {
			rows = append(rows, []string{axis.Axis, string(a.Type), a.Key})
		}
	}
	if len(rows) == 0 {
		return
	}

	fmt.Fprintln(w, "Build descriptor edits:")
	table := newTable(w, plainFlag)
	table.Header("Axis", "Action", "Key")
	_ = table.Bulk(rows)
	_ = table.Render()
}

func readPassword(prompt io.Writer) (string, error) {
	fmt.Fprint(prompt, "Database password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(prompt)
	if err != nil {
		return "", err
	}
	return string(password), nil
}

func renderResult(w io.Writer, result *jpa.Result) {
	mode := ""
	if result.DryRun {
		mode = " (dry run)"
	}

	if !result.Changed() {
		fmt.Fprintf(w, "Persistence setup for %s on %s is up to date%s.\n", result.Provider, result.Database, mode)
	} else {
		fmt.Fprintf(w, "Persistence setup for %s on %s%s:\n", result.Provider, result.Database, mode)
		table := newTable(w, plainFlag)
		table.Header("Action", "Path", "Description")
		for _, c := range result.Changes {
			_ = table.Append(string(c.Action), c.Path, c.Description)
		}
		_ = table.Render()
	}

	if result.DryRun {
		renderBuildActions(w, result.Axes)
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "WARNING: %s\n", warning)
	}
}

func init() {
	f := setupCmd.Flags()
	f.StringVar(&setupRequest.Provider, "provider", "", "ORM provider ("+strings.Join(catalog.ProviderIDs(), ", ")+")")
	f.StringVar(&setupRequest.Database, "database", "", "database ("+strings.Join(catalog.DatabaseIDs(), ", ")+")")
	f.StringVar(&setupRequest.JNDIName, "jndi", "", "JNDI name of a container data source")
	f.StringVar(&setupRequest.ApplicationID, "application-id", "", "Google App Engine application id")
	f.StringVar(&setupRequest.HostName, "host", "", "database host name")
	f.StringVar(&setupRequest.DatabaseName, "database-name", "", "database name")
	f.StringVar(&setupRequest.UserName, "user", "", "database user name")
	f.StringVar(&setupRequest.Password, "password", "", "database password")
	f.BoolVar(&passwordPrompt, "password-prompt", false, "prompt for the database password")
	f.StringVar(&setupRequest.TransactionManager, "transaction-manager", "", "transaction manager bean id")
	f.StringVar(&setupRequest.PersistenceUnit, "persistence-unit", "", "persistence unit name")
	f.BoolVar(&dryRunFlag, "dry-run", false, "show the changes without writing them")
	f.BoolVar(&plainFlag, "plain", false, "use ASCII table borders")
	f.BoolVar(&yesConfirm, "yes", false, "apply removals without asking")

	_ = setupCmd.MarkFlagRequired("provider")
	_ = setupCmd.MarkFlagRequired("database")
	setupCmd.MarkFlagsMutuallyExclusive("password", "password-prompt")

	RootCmd.AddCommand(setupCmd)
}
