package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/magnetar/internal/catalog"
	"github.com/papapumpkin/magnetar/internal/config"
	"github.com/papapumpkin/magnetar/internal/ui"
)

var corporaCmd = &cobra.Command{
	Use:   "corpora",
	Short: "Manage the catalog of named corpora",
}

var corporaAddCmd = &cobra.Command{
	Use:   "add <name> <dir>",
	Short: "Register a corpus directory under a short name",
	Args:  cobra.ExactArgs(2),
	RunE:  runCorporaAdd,
}

var corporaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered corpora",
	RunE:  runCorporaList,
}

var corporaRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a corpus from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE:  runCorporaRemove,
}

func init() {
	corporaCmd.AddCommand(corporaAddCmd, corporaListCmd, corporaRemoveCmd)
	rootCmd.AddCommand(corporaCmd)
}

func runCorporaAdd(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	name, dir := args[0], args[1]

	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", dir, err)
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return err
	}
	if err := cat.Add(name, abs); err != nil {
		return err
	}
	if err := catalog.Save(cfg.CatalogPath, cat); err != nil {
		return err
	}
	ui.New().Success(fmt.Sprintf("registered %s → %s", name, abs))
	return nil
}

func runCorporaList(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return err
	}
	if len(cat.Corpora) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no corpora registered")
		return nil
	}
	for _, e := range cat.Corpora {
		fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", e.Name, e.Dir)
	}
	return nil
}

func runCorporaRemove(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return err
	}
	if err := cat.Remove(args[0]); err != nil {
		return err
	}
	if err := catalog.Save(cfg.CatalogPath, cat); err != nil {
		return err
	}
	ui.New().Success(fmt.Sprintf("removed %s", args[0]))
	return nil
}
