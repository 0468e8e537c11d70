package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gamedrop",
		Short: "Watch Epic Games Store free-game promotions and notify on change",
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")

	root.AddCommand(checkCmd())
	root.AddCommand(dealsCmd())
	root.AddCommand(historyCmd())
	root.AddCommand(runCmd())

	return root
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run a single free-games check",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck()
		},
	}
}

func dealsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "deals",
		Short: "Show current high-discount bundle deals",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeals(jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func historyCmd() *cobra.Command {
	var (
		jsonOutput bool
		title      string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show free games seen on previous checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(jsonOutput, title, limit)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	cmd.Flags().StringVar(&title, "title", "", "filter by title substring")
	cmd.Flags().IntVar(&limit, "limit", 50, "max promotions to show")
	return cmd
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start daemon checking on a schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon()
		},
	}
}
