package cmd

import (
	"persistence-setup/feature/jpa/catalog"

	"github.com/spf13/cobra"
)

// databasesCmd represents the databases command
var databasesCmd = &cobra.Command{
	Use:   "databases",
	Short: "List the supported databases",
	RunE: func(cmd *cobra.Command, args []string) error {
		table := newTable(cmd.OutOrStdout(), plainFlag)
		table.Header("Database", "Driver", "Connection URL")
		for _, db := range catalog.Databases() {
			if err := table.Append(db.ID, db.DriverClassName, db.ConnectionString); err != nil {
				return err
			}
		}
		return table.Render()
	},
}

// providersCmd represents the providers command
var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List the supported ORM providers",
	RunE: func(cmd *cobra.Command, args []string) error {
		table := newTable(cmd.OutOrStdout(), plainFlag)
		table.Header("Provider", "Persistence Provider")
		for _, p := range catalog.Providers() {
			if err := table.Append(p.ID, p.Adapter); err != nil {
				return err
			}
		}
		return table.Render()
	},
}

func init() {
	databasesCmd.Flags().BoolVar(&plainFlag, "plain", false, "use ASCII table borders")
	providersCmd.Flags().BoolVar(&plainFlag, "plain", false, "use ASCII table borders")
	RootCmd.AddCommand(databasesCmd, providersCmd)
}
