package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// whoamiCmd shows the logged-in user
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE:  runWhoami,
}

// subsCmd lists the logged-in user's subscriptions
var subsCmd = &cobra.Command{
	Use:   "subs",
	Short: "List the groups you are subscribed to",
	RunE:  runSubs,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(subsCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	user, err := client.GetUser(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	fmt.Printf("%s <%s>\n", user.GetDisplayName(), user.Email)
	fmt.Printf("  ID: %d\n", user.ID)
	fmt.Printf("  Status: %s\n", user.Status)
	if user.Timezone != "" {
		fmt.Printf("  Timezone: %s\n", user.Timezone)
	}
	fmt.Printf("  Two-factor: %t\n", user.TwoFactor)
	return nil
}

func runSubs(cmd *cobra.Command, args []string) error {
	subs, err := client.GetSubscriptions(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get subscriptions: %w", err)
	}

	if len(subs) == 0 {
		fmt.Println("Not subscribed to any group.")
		return nil
	}

	fmt.Printf("\nSubscribed to %d groups:\n", len(subs))
	fmt.Println(strings.Repeat("-", 80))
	for _, sub := range subs {
		fmt.Printf("• %s (group %d, sub %d)", sub.GroupName, sub.GroupID, sub.ID)
		if sub.PendingSubs > 0 || sub.PendingMessages > 0 {
			fmt.Printf(" [pending: %d members, %d messages]", sub.PendingSubs, sub.PendingMessages)
		}
		fmt.Println()
	}
	return nil
}
