package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mailpress/config"
	"mailpress/service/transform"
)

var inlineOutFile string

var inlineCmd = &cobra.Command{
	Use:   "inline <input.html>",
	Short: "Inline styles and remap identifiers in a local HTML file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config.LoadAppConfig()

		raw, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Printf("Failed to read %s: %v\n", args[0], err)
			return
		}

		out, err := transform.New().Process(string(raw))
		if err != nil {
			fmt.Printf("Processing failed: %v\n", err)
			return
		}

		if inlineOutFile == "" {
			fmt.Print(out)
			return
		}
		if err := os.WriteFile(inlineOutFile, []byte(out), 0644); err != nil {
			fmt.Printf("Failed to write %s: %v\n", inlineOutFile, err)
			return
		}
		fmt.Printf("Wrote %s (%d bytes)\n", inlineOutFile, len(out))
	},
}

func init() {
	inlineCmd.Flags().StringVarP(&inlineOutFile, "out", "o", "", "Output file (default: stdout)")
	rootCmd.AddCommand(inlineCmd)
}
