package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/eventhall/eventhall/config"
	"github.com/eventhall/eventhall/database"
	"github.com/spf13/cobra"
)

var resetCmdFlags struct {
	KeepUsers bool
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all events and registrations",
	Long:  `This command deletes all events and registrations from the database. With --keep-users the user accounts survive, otherwise they are deleted too.`,
	Run:   reset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetCmdFlags.KeepUsers, "keep-users", false, "Keep user accounts")

	rootCmd.AddCommand(resetCmd)
}

func reset(cmd *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close() //nolint:errcheck

	if err := db.Reset(cmd.Context(), resetCmdFlags.KeepUsers); err != nil {
		log.Fatalf("failed to reset database: %v", err)
	}

	log.Info("database reset", "kept_users", resetCmdFlags.KeepUsers)
}
