package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/shopfetch/shopfetch/network"
	"github.com/shopfetch/shopfetch/style"
	"github.com/spf13/cobra"
)

var requestMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}

func init() {
	rootCmd.AddCommand(requestCmd)

	requestCmd.Flags().StringP("data", "d", "", "Request body")
	requestCmd.Flags().StringArrayP("header", "H", nil, "Extra header as \"Name: value\", repeatable")
	requestCmd.Flags().BoolP("json", "j", false, "Print the full response envelope as JSON")
	requestCmd.Flags().BoolP("include", "i", false, "Print the response status to stderr")

	lo.Must0(requestCmd.RegisterFlagCompletionFunc("header", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"Cookie: ", "Referer: ", "Accept: "}, cobra.ShellCompDirectiveNoSpace
	}))
}

var requestCmd = &cobra.Command{
	Use:   "request <method> <url>",
	Short: "Send an arbitrary request through the resilient client",
	Args:  cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return requestMethods, cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		method := strings.ToUpper(args[0])
		if !lo.Contains(requestMethods, method) {
			return fmt.Errorf("unsupported method %q, expected one of %s", args[0], strings.Join(requestMethods, ", "))
		}

		headers, err := parseHeaders(lo.Must(cmd.Flags().GetStringArray("header")))
		if err != nil {
			return err
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		opts := []network.RequestOption{network.WithHeaders(headers)}

		var body any
		if data := lo.Must(cmd.Flags().GetString("data")); data != "" {
			body = data
			if json.Valid([]byte(data)) && !lo.SomeBy(lo.Keys(headers), func(h string) bool { return strings.EqualFold(h, "Content-Type") }) {
				opts = append(opts, network.WithContentType("application/json"))
			}
		}

		resp := network.Do[string](cmd.Context(), client, method, args[1], body, opts...)

		if lo.Must(cmd.Flags().GetBool("include")) && resp.Status != 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), style.Status(resp.Status))
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(resp); err != nil {
				return err
			}
			if !resp.Success {
				return fmt.Errorf("%s %s: %s", method, args[1], resp.Error)
			}
			return nil
		}

		if !resp.Success {
			return fmt.Errorf("%s %s: %s", method, args[1], resp.Error)
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), resp.Data)
		return err
	},
}

func init() {
	requestCmd.AddCommand(requestSchemaCmd)
}

var requestSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the response envelope",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.ExpandedStruct = true

		schema := reflector.Reflect(&network.Response[string]{})
		schema.Title = "Response"
		schema.Description = "Envelope returned by every request. Exactly one of data and error is present."

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(schema)
	},
}
