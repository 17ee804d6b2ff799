package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"sigs.k8s.io/yaml"

	sdkclient "github.com/cosmos/cosmos-sdk/client"

	hubclient "github.com/erisprotocol/hubctl/client"
	"github.com/erisprotocol/hubctl/client/flags"
	"github.com/erisprotocol/hubctl/hub"
)

const (
	flagStartAfter = "start-after"
	flagLimit      = "limit"
)

// GetQueryCmd returns the parent command for hub smart queries.
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "query",
		Aliases:                    []string{"q"},
		Short:                      "Query the hub contract",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       sdkclient.ValidateCmd,
	}

	cmd.AddCommand(
		GetConfigCmd(),
		GetStateCmd(),
		GetPendingBatchCmd(),
		GetPreviousBatchCmd(),
		GetPreviousBatchesCmd(),
		GetUnbondRequestsCmd(),
		GetSmartCmd(),
	)
	return cmd
}

// GetConfigCmd returns the command querying contract configuration.
func GetConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Query the hub contract configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, hubAddr, err := newQueryClient(cmd)
			if err != nil {
				return err
			}

			var resp hub.ConfigResponse
			if err := c.QuerySmart(cmd.Context(), hubAddr, hub.QueryMsg{Config: &hub.ConfigQuery{}}, &resp); err != nil {
				return err
			}
			return printOutput(cmd, resp)
		},
	}

	flags.AddQueryFlags(cmd)
	return cmd
}

// GetStateCmd returns the command querying overall contract state.
func GetStateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Query the hub state (stake totals, exchange rate)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, hubAddr, err := newQueryClient(cmd)
			if err != nil {
				return err
			}

			var resp hub.StateResponse
			if err := c.QuerySmart(cmd.Context(), hubAddr, hub.QueryMsg{State: &hub.StateQuery{}}, &resp); err != nil {
				return err
			}
			return printOutput(cmd, resp)
		},
	}

	flags.AddQueryFlags(cmd)
	return cmd
}

// GetPendingBatchCmd returns the command querying the accumulating batch.
func GetPendingBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pending-batch",
		Short: "Query the unbonding batch currently accumulating requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, hubAddr, err := newQueryClient(cmd)
			if err != nil {
				return err
			}

			var resp hub.PendingBatchResponse
			if err := c.QuerySmart(cmd.Context(), hubAddr, hub.QueryMsg{PendingBatch: &hub.PendingBatchQuery{}}, &resp); err != nil {
				return err
			}
			return printOutput(cmd, resp)
		},
	}

	flags.AddQueryFlags(cmd)
	return cmd
}

// GetPreviousBatchCmd returns the command querying one submitted batch.
func GetPreviousBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "previous-batch <id>",
		Short: "Query a previously submitted unbonding batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid batch id: %s", args[0])
			}

			c, hubAddr, err := newQueryClient(cmd)
			if err != nil {
				return err
			}

			var resp hub.Batch
			if err := c.QuerySmart(cmd.Context(), hubAddr, hub.QueryMsg{PreviousBatch: &hub.PreviousBatchQuery{ID: id}}, &resp); err != nil {
				return err
			}
			return printOutput(cmd, resp)
		},
	}

	flags.AddQueryFlags(cmd)
	return cmd
}

// GetPreviousBatchesCmd returns the command paging over submitted batches.
func GetPreviousBatchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "previous-batches",
		Short: "List previously submitted unbonding batches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, hubAddr, err := newQueryClient(cmd)
			if err != nil {
				return err
			}

			query := hub.QueryMsg{PreviousBatches: &hub.PreviousBatchesQuery{}}
			if cmd.Flags().Changed(flagStartAfter) {
				startAfter, _ := cmd.Flags().GetUint64(flagStartAfter)
				query.PreviousBatches.StartAfter = &startAfter
			}
			if cmd.Flags().Changed(flagLimit) {
				limit, _ := cmd.Flags().GetUint32(flagLimit)
				query.PreviousBatches.Limit = &limit
			}

			var resp []hub.Batch
			if err := c.QuerySmart(cmd.Context(), hubAddr, query, &resp); err != nil {
				return err
			}
			return printOutput(cmd, resp)
		},
	}

	cmd.Flags().Uint64(flagStartAfter, 0, "Return batches after this id")
	cmd.Flags().Uint32(flagLimit, 0, "Maximum number of batches to return")
	flags.AddQueryFlags(cmd)
	return cmd
}

// GetUnbondRequestsCmd returns the command listing a user's unbond requests.
func GetUnbondRequestsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unbond-requests <address>",
		Short: "List the unbond requests of an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, hubAddr, err := newQueryClient(cmd)
			if err != nil {
				return err
			}

			if err := c.Network().ValidateAccAddress(args[0]); err != nil {
				return err
			}

			var resp []hub.UnbondRequest
			query := hub.QueryMsg{UnbondRequestsByUser: &hub.UnbondRequestsQuery{User: args[0]}}
			if err := c.QuerySmart(cmd.Context(), hubAddr, query, &resp); err != nil {
				return err
			}
			return printOutput(cmd, resp)
		},
	}

	flags.AddQueryFlags(cmd)
	return cmd
}

// GetSmartCmd returns the raw smart-query escape hatch.
func GetSmartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smart <query-json>",
		Short: "Run a raw smart query against the hub contract",
		Long: `Run a raw smart query against the hub contract.

Example:
$ hubctl query smart '{"state":{}}' --network terra --hub-address terra1... \
    --extract exchange_rate
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !json.Valid([]byte(args[0])) {
				return fmt.Errorf("query is not valid JSON: %s", args[0])
			}

			c, hubAddr, err := newQueryClient(cmd)
			if err != nil {
				return err
			}

			raw, err := c.QuerySmartRaw(cmd.Context(), hubAddr, []byte(args[0]))
			if err != nil {
				return err
			}

			if path, _ := cmd.Flags().GetString(flags.FlagExtract); path != "" {
				result := gjson.GetBytes(raw, path)
				if !result.Exists() {
					return fmt.Errorf("path %q not found in response", path)
				}
				cmd.Println(result.String())
				return nil
			}

			var pretty any
			if err := json.Unmarshal(raw, &pretty); err != nil {
				return err
			}
			return printOutput(cmd, pretty)
		},
	}

	cmd.Flags().String(flags.FlagExtract, "", "Print only the value at this gjson path")
	flags.AddQueryFlags(cmd)
	return cmd
}

func newQueryClient(cmd *cobra.Command) (*hubclient.Client, string, error) {
	verbose, _ := cmd.Flags().GetBool(flags.FlagVerbose)
	logger := hubclient.NewLogger(cmd.ErrOrStderr(), verbose)

	cctx, net, err := hubclient.ContextFromCmd(cmd)
	if err != nil {
		return nil, "", err
	}

	hubAddr, err := hubclient.HubAddressFromCmd(cmd, net)
	if err != nil {
		return nil, "", err
	}

	return hubclient.New(cctx, net, logger), hubAddr, nil
}

func printOutput(cmd *cobra.Command, v any) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	if format, _ := cmd.Flags().GetString(flags.FlagOutput); format == "json" {
		cmd.Println(string(bz))
		return nil
	}

	yamlBz, err := yaml.JSONToYAML(bz)
	if err != nil {
		return err
	}
	cmd.Print(string(yamlBz))
	return nil
}
