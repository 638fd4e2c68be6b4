package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var routeplannerCmd = &cobra.Command{
	Use:     "routeplanner",
	Aliases: []string{"rp"},
	Short:   "Inspect and reset the node's IP rotation",
	Long: `Commands for the node's route planner, which spreads outbound requests
to content providers across a block of source addresses.`,
}

var routeplannerStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show route planner status",
	RunE:  runRoutePlannerStatus,
}

var routeplannerFreeCmd = &cobra.Command{
	Use:   "free <address>",
	Short: "Unmark a failed address",
	Long: `Clear an address's failing mark so the planner puts it back into
rotation.`,
	Args: cobra.ExactArgs(1),
	RunE: runRoutePlannerFree,
}

func init() {
	routeplannerCmd.AddCommand(routeplannerStatusCmd)
	routeplannerCmd.AddCommand(routeplannerFreeCmd)
	rootCmd.AddCommand(routeplannerCmd)
}

func runRoutePlannerStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	node, err := newNode()
	if err != nil {
		return err
	}

	status, err := node.Rest().RoutePlannerStatus(ctx)
	if err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(status)
	}

	if status == nil || status.Class == nil {
		fmt.Println("No route planner configured on this node")
		return nil
	}

	fmt.Printf("Planner: %s\n", *status.Class)
	if status.Details == nil {
		return nil
	}

	d := status.Details
	fmt.Printf("IP block: %s (%s addresses)\n", d.IPBlock.Type, d.IPBlock.Size)
	if d.CurrentAddress != "" {
		fmt.Printf("Current address: %s\n", d.CurrentAddress)
	}
	if d.RotateIndex != "" {
		fmt.Printf("Rotate index: %s\n", d.RotateIndex)
	}

	if len(d.FailingAddresses) == 0 {
		fmt.Println("No failing addresses")
		return nil
	}

	fmt.Println()
	table := NewTable("FAILING ADDRESS", "SINCE")
	for _, addr := range d.FailingAddresses {
		table.Row(addr.Address, addr.FailedAt().Format(time.RFC3339))
	}
	table.Flush()
	return nil
}

func runRoutePlannerFree(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	node, err := newNode()
	if err != nil {
		return err
	}

	address := args[0]
	if err := node.Rest().UnmarkFailedAddress(ctx, address); err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(map[string]string{
			"status":  "freed",
			"address": address,
		})
	}

	fmt.Printf("Unmarked %s\n", address)
	return nil
}
