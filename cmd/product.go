package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/shopfetch/shopfetch/color"
	"github.com/shopfetch/shopfetch/filesystem"
	"github.com/shopfetch/shopfetch/icon"
	"github.com/shopfetch/shopfetch/key"
	"github.com/shopfetch/shopfetch/shop"
	"github.com/shopfetch/shopfetch/style"
	"github.com/shopfetch/shopfetch/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(productCmd)

	productCmd.Flags().StringP("output", "o", "", "Write the page to this file instead of stdout")
	productCmd.Flags().BoolP("json", "j", false, "Print the full response envelope as JSON")
	productCmd.Flags().Bool("best-effort", false, "Print nothing and exit 0 when the fetch fails")

	productCmd.Flags().String("proxy", "", "Proxy as host:port")
	lo.Must0(viper.BindPFlag(key.NetworkProxy, productCmd.Flags().Lookup("proxy")))

	productCmd.Flags().Int("retry", 3, "Retries after the first attempt")
	lo.Must0(viper.BindPFlag(key.NetworkRetryTimes, productCmd.Flags().Lookup("retry")))

	productCmd.Flags().Int("retry-delay", 1000, "Delay between attempts in milliseconds")
	lo.Must0(viper.BindPFlag(key.NetworkRetryDelay, productCmd.Flags().Lookup("retry-delay")))

	productCmd.Flags().Int("timeout", 10000, "Request timeout in milliseconds")
	lo.Must0(viper.BindPFlag(key.NetworkTimeout, productCmd.Flags().Lookup("timeout")))
}

var productCmd = &cobra.Command{
	Use:     "product <url>",
	Short:   "Fetch a product detail page",
	Example: "  shopfetch product https://detail.1688.com/offer/682151277409.html -o page.html",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		productURL := args[0]
		if err := shop.ValidateProductURL(productURL); err != nil {
			return err
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		var (
			output     = lo.Must(cmd.Flags().GetString("output"))
			asJSON     = lo.Must(cmd.Flags().GetBool("json"))
			bestEffort = lo.Must(cmd.Flags().GetBool("best-effort"))
		)

		erase := util.PrintErasable(os.Stderr, fmt.Sprintf("%s Fetching %s", icon.Get(icon.Network), productURL))

		if bestEffort && !asJSON {
			page := shop.FetchProductBestEffort(cmd.Context(), client, productURL)
			erase()
			return emit(cmd, output, []byte(page))
		}

		resp, fetchErr := shop.Fetch(cmd.Context(), client, productURL)
		erase()

		if asJSON {
			data, err := json.MarshalIndent(resp, "", "  ")
			if err != nil {
				return err
			}
			if err := emit(cmd, output, append(data, '\n')); err != nil {
				return err
			}
			if bestEffort {
				return nil
			}
			return fetchErr
		}

		if fetchErr != nil {
			return fetchErr
		}

		return emit(cmd, output, []byte(resp.Data))
	},
}

// emit writes data to the output file, or to stdout when output is empty.
func emit(cmd *cobra.Command, output string, data []byte) error {
	if output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := filesystem.WriteAtomic(output, data, 0o644); err != nil {
		return err
	}

	fmt.Fprintf(
		cmd.ErrOrStderr(),
		"%s wrote %s to %s\n",
		style.Fg(color.Green)(icon.Get(icon.Success)),
		util.Quantify(len(data), "byte", "bytes"),
		style.Fg(color.Purple)(output),
	)
	return nil
}
