package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/medgateai/medgate/internal/version"
)

func main() {
	root := &cobra.Command{
		Use:   "medgate",
		Short: "Telegram gateway for the medical assistant",
	}
	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the gateway",
		Run: func(cmd *cobra.Command, args []string) {
			runServe()
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.GetInfo())
		},
	})
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
