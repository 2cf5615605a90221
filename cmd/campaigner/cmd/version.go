package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the campaigner CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("campaigner version %s\n", version)
		fmt.Println("A campaign calendar and economy simulator for tabletop games")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
