// Package main provides the entry point for the deal document generator.
package main

import (
	goflag "flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "docgen",
	Short:        "Deal document generator",
	Long:         "docgen assembles information memoranda, sales prospectuses and other deal documents for a chosen industry and serves them as Word files.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML or JSON config file (defaults to $DOCGEN_CONFIG)")

	klogFlags := goflag.NewFlagSet("klog", goflag.ExitOnError)
	klog.InitFlags(klogFlags)
	rootCmd.PersistentFlags().AddGoFlagSet(klogFlags)
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()
	defer klog.Flush()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		klog.Flush()
		os.Exit(1)
	}
}
