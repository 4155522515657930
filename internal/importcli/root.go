package importcli

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"smartler/internal/catalog"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the importctl command tree.
func NewRootCommand(store *Store) *cobra.Command {
	root := &cobra.Command{
		Use:           "importctl",
		Short:         "Push menu import files to the Smartler menu console",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newConfigureCommand(store))
	root.AddCommand(newMenuCommand(store))
	root.AddCommand(newSystemCommand(store))

	return root
}

func newConfigureCommand(store *Store) *cobra.Command {
	var serverURL, token string

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Save the server URL and staff token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.Save(Config{ServerURL: serverURL, Token: token}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to %s\n", store.Path())
			return nil
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "", "base URL of the menu console API")
	cmd.Flags().StringVar(&token, "token", "", "staff JWT used for import calls")
	_ = cmd.MarkFlagRequired("server")

	return cmd
}

func newMenuCommand(store *Store) *cobra.Command {
	var restaurantID string

	cmd := &cobra.Command{
		Use:   "menu <payload.json>",
		Short: "Import a single restaurant's menu from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFromStore(store)
			if err != nil {
				return err
			}
			payload, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read payload: %w", err)
			}
			stats, err := client.ImportMenu(cmd.Context(), restaurantID, payload)
			if err != nil {
				return err
			}
			printStatistics(cmd.OutOrStdout(), stats)
			return nil
		},
	}

	cmd.Flags().StringVar(&restaurantID, "restaurant", "", "target restaurant id")
	_ = cmd.MarkFlagRequired("restaurant")

	return cmd
}

func newSystemCommand(store *Store) *cobra.Command {
	return &cobra.Command{
		Use:   "system <payload.json>",
		Short: "Import a system-wide menu file spanning multiple restaurants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFromStore(store)
			if err != nil {
				return err
			}
			payload, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read payload: %w", err)
			}
			stats, err := client.ImportSystemMenu(cmd.Context(), payload)
			if err != nil {
				return err
			}
			printStatistics(cmd.OutOrStdout(), stats)
			return nil
		},
	}
}

func clientFromStore(store *Store) (*Client, error) {
	cfg, err := store.Load()
	if err != nil {
		return nil, err
	}
	return NewClient(cfg, http.DefaultClient), nil
}

func printStatistics(w io.Writer, stats *catalog.ImportStatistics) {
	fmt.Fprintf(w, "Restaurants processed:   %d\n", stats.RestaurantsProcessed)
	fmt.Fprintf(w, "Categories created:      %d\n", stats.CategoriesCreated)
	fmt.Fprintf(w, "Subcategories created:   %d\n", stats.SubcategoriesCreated)
	fmt.Fprintf(w, "Items created:           %d\n", stats.ItemsCreated)
	fmt.Fprintf(w, "Items updated:           %d\n", stats.ItemsUpdated)
	fmt.Fprintf(w, "Allergens created:       %d\n", stats.AllergensCreated)
	fmt.Fprintf(w, "Modifier groups created: %d\n", stats.ModifierGroupsCreated)
	fmt.Fprintf(w, "Modifier items created:  %d\n", stats.ModifierItemsCreated)

	if len(stats.RestaurantsSkipped) > 0 {
		fmt.Fprintf(w, "Restaurants skipped:     %d\n", len(stats.RestaurantsSkipped))
		for _, skipped := range stats.RestaurantsSkipped {
			if skipped.ID != "" {
				fmt.Fprintf(w, "  - %s (%s)\n", skipped.Name, skipped.ID)
			} else {
				fmt.Fprintf(w, "  - %s\n", skipped.Name)
			}
		}
	}
}
