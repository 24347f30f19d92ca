package cmd

import (
	"fmt"
	"os"

	"persistence-setup/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "jpa-setup",
	Short: "JPA persistence setup for Spring projects",
	Long: `jpa-setup configures the persistence layer of a Spring web project.
Given an ORM provider and a database it reconciles the persistence descriptor,
the application context, property files and the Maven build so that running it
again with the same selection changes nothing.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with the development config for readable CLI errors.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
