package cmd

import (
	"errors"
	"fmt"

	"github.com/eventhall/eventhall/config"
	"github.com/eventhall/eventhall/database"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin <username>",
	Short: "Grant admin rights to an existing user",
	Long: `Grant admin rights to an existing user.

The web interface has no path that grants admin rights, so the first
admin has to be promoted from the command line.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := database.New(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close() //nolint:errcheck

		username := args[0]
		if err := db.SetAdmin(cmd.Context(), username, true); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("no user named %q, register the account first", username)
			}
			return fmt.Errorf("failed to grant admin rights: %w", err)
		}

		fmt.Printf("%s is now an admin\n", username)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createAdminCmd)
}
