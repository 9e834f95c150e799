package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/ciphergen"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ciphergen",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ciphergen version %s\n", strings.TrimSpace(ciphergen.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
