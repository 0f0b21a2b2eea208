package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilgore5/slate/shopify"
)

var themeIDCmd = &cobra.Command{
	Use:   "theme-id",
	Short: "Print the ID of the store's published (main) theme",
	RunE:  runThemeID,
}

func init() {
	rootCmd.AddCommand(themeIDCmd)
}

func runThemeID(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := shopify.NewClient(cfg)
	id, err := client.FetchMainThemeID(cmd.Context())
	if err != nil {
		return fmt.Errorf("resolve main theme: %w", err)
	}

	fmt.Println(id)
	return nil
}
