// Package cmd implements the shopfetch command-line interface.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/shopfetch/shopfetch/color"
	"github.com/shopfetch/shopfetch/constant"
	"github.com/shopfetch/shopfetch/icon"
	"github.com/shopfetch/shopfetch/key"
	"github.com/shopfetch/shopfetch/log"
	"github.com/shopfetch/shopfetch/style"
	"github.com/shopfetch/shopfetch/version"
	"github.com/shopfetch/shopfetch/where"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Icons variant")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify(cmd.Context(), os.Stderr)
	})
}

var rootCmd = &cobra.Command{
	Use:   constant.Shopfetch,
	Short: "Fetch shop product pages like a browser would",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Fetch shop product pages like a browser would"),
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.SetContext(cmd.Context())
			versionCmd.SetOut(cmd.OutOrStdout())
			versionCmd.Run(versionCmd, args)
			return
		}

		_ = cmd.Help()
	},
}

// Execute runs the root command.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	handleErr(rootCmd.Execute())
}

// exit and stderr are swapped out in tests.
var (
	exit             = os.Exit
	stderr io.Writer = os.Stderr
)

func handleErr(err error) {
	if err == nil {
		return
	}

	log.Error(err)
	_, _ = fmt.Fprintf(stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
	if log.Enabled() {
		_, _ = fmt.Fprintln(stderr, style.Faint("See logs in "+where.Logs()))
	}
	exit(1)
}
