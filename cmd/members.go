package cmd

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/groupsio/groupsio"
)

// maxConcurrentGroups bounds how many groups are fetched at once
const maxConcurrentGroups = 4

var (
	filterExpr string
	preset     string
	search     string
	directAdd  bool
)

// membersCmd lists members of one or more groups
var membersCmd = &cobra.Command{
	Use:   "members <group-id>...",
	Short: "List members of one or more groups matching a filter",
	Long: `List the members of the given groups. Members can be narrowed with a
server-side search (--search) and a filter expression (--filter or --preset).

Filter expressions are written in the expr language, for example:
  IsBouncing
  Domain == "example.com" and not IsModerator
  Created < daysAgo(365) and ApprovedPosts == 0`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMembers,
}

// inviteCmd invites or directly adds members
var inviteCmd = &cobra.Command{
	Use:   "invite <group-id> <email>...",
	Short: "Invite email addresses to a group",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runInvite,
}

// bulkRemoveCmd removes members in bulk
var bulkRemoveCmd = &cobra.Command{
	Use:   "bulk-remove <group-id> [email]...",
	Short: "Remove members from a group in bulk",
	Long: `Remove the listed email addresses from a group. With --filter or --preset
the members matching the expression are removed instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBulkRemove,
}

func init() {
	rootCmd.AddCommand(membersCmd)
	rootCmd.AddCommand(inviteCmd)
	rootCmd.AddCommand(bulkRemoveCmd)

	membersCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	membersCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	membersCmd.Flags().StringVarP(&search, "search", "s", "", "search members by email or name")

	inviteCmd.Flags().BoolVar(&directAdd, "direct", false, "add members directly instead of sending invitations")

	bulkRemoveCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "remove the members matching this expression")
	bulkRemoveCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	bulkRemoveCmd.Flags().BoolVar(&noConfirm, "no-confirm", false, "skip confirmation prompt")
}

// groupMembers is the member list of one group
type groupMembers struct {
	GroupID int
	Members []groupsio.Subscription
}

// fetchMembers loads the members of every group concurrently. Results keep
// the order of groupIDs.
func fetchMembers(ctx context.Context, api groupsio.API, groupIDs []int, query string) ([]groupMembers, error) {
	results := make([]groupMembers, len(groupIDs))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentGroups)

	for i, groupID := range groupIDs {
		g.Go(func() error {
			var (
				members []groupsio.Subscription
				err     error
			)
			if query != "" {
				members, err = api.SearchMembers(ctx, groupID, query)
			} else {
				members, err = api.GetMembers(ctx, groupID)
			}
			if err != nil {
				return fmt.Errorf("group %d: %w", groupID, err)
			}

			mu.Lock()
			results[i] = groupMembers{GroupID: groupID, Members: members}
			mu.Unlock()

			logger.Debug().Int("group_id", groupID).Int("count", len(members)).Msg("Fetched members")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runMembers(cmd *cobra.Command, args []string) error {
	groupIDs, err := parseGroupIDs(args)
	if err != nil {
		return err
	}

	f, err := resolveFilter(cfg.Filter)
	if err != nil {
		return err
	}

	logger.Info().Ints("groups", groupIDs).Str("filter", describeFilter(f)).Msg("Fetching members")

	results, err := fetchMembers(cmd.Context(), client, groupIDs, search)
	if err != nil {
		return err
	}

	for _, res := range results {
		matches, err := applyFilter(f, res.Members)
		if err != nil {
			return err
		}
		printMembers(res.GroupID, matches, len(res.Members))
	}
	return nil
}

func printMembers(groupID int, members []groupsio.Subscription, total int) {
	fmt.Printf("\nGroup %d: %d of %d members\n", groupID, len(members), total)
	fmt.Println(strings.Repeat("-", 80))
	for _, m := range members {
		name := m.FullName
		if name == "" {
			name = m.UserName
		}
		fmt.Printf("• %s <%s>", name, m.Email)
		switch {
		case m.Status == groupsio.SubscriptionStatusBanned:
			fmt.Printf(" [BANNED]")
		case m.Status == groupsio.SubscriptionStatusPending:
			fmt.Printf(" [PENDING]")
		case m.UserStatus.CanSendBounceProbe():
			fmt.Printf(" [BOUNCING]")
		}
		fmt.Println()
	}
}

func runInvite(cmd *cobra.Command, args []string) error {
	groupIDs, err := parseGroupIDs(args[:1])
	if err != nil {
		return err
	}
	groupID, emails := groupIDs[0], args[1:]

	if cfg.Safety.DryRun {
		fmt.Printf("[DRY RUN] Would invite %d addresses to group %d:\n", len(emails), groupID)
		for _, e := range emails {
			fmt.Printf("  • %s\n", e)
		}
		return nil
	}

	ctx := cmd.Context()
	if directAdd {
		res, err := client.DirectAddMembers(ctx, groupID, emails)
		if err != nil {
			return fmt.Errorf("failed to add members: %w", err)
		}
		fmt.Printf("✓ Added %d of %d addresses\n", len(res.AddedMembers), res.TotalEmails)
		reportBulkErrors(res.Err())
		return nil
	}

	res, err := client.InviteMembers(ctx, groupID, emails)
	if err != nil {
		return fmt.Errorf("failed to invite members: %w", err)
	}
	fmt.Printf("✓ Invited %d of %d addresses\n", len(res.Invited), res.TotalEmails)
	reportBulkErrors(res.Err())
	return nil
}

func runBulkRemove(cmd *cobra.Command, args []string) error {
	groupIDs, err := parseGroupIDs(args[:1])
	if err != nil {
		return err
	}
	groupID, emails := groupIDs[0], args[1:]
	ctx := cmd.Context()

	if filterExpr != "" || preset != "" {
		if len(emails) > 0 {
			return fmt.Errorf("pass either email addresses or a filter, not both")
		}
		emails, err = selectEmails(ctx, groupID)
		if err != nil {
			return err
		}
	}

	if len(emails) == 0 {
		fmt.Println("No members to remove.")
		return nil
	}

	fmt.Printf("\n%d members will be removed from group %d:\n", len(emails), groupID)
	for _, e := range emails {
		fmt.Printf("  • %s\n", e)
	}

	if cfg.Safety.DryRun {
		fmt.Println("\n[DRY RUN] No members were removed.")
		return nil
	}

	if !confirm(fmt.Sprintf("\nRemove %d members?", len(emails))) {
		logger.Info().Msg("Bulk removal cancelled")
		return nil
	}

	res, err := client.BulkRemoveMembers(ctx, groupID, emails)
	if err != nil {
		return fmt.Errorf("failed to remove members: %w", err)
	}
	fmt.Printf("✓ Removed %d of %d members\n", res.Removed, res.TotalEmails)
	reportBulkErrors(res.Err())
	return nil
}

// selectEmails returns the emails of the group members matching the filter flags
func selectEmails(ctx context.Context, groupID int) ([]string, error) {
	f, err := resolveFilter(cfg.Filter)
	if err != nil {
		return nil, err
	}

	results, err := fetchMembers(ctx, client, []int{groupID}, "")
	if err != nil {
		return nil, err
	}

	matches, err := applyFilter(f, results[0].Members)
	if err != nil {
		return nil, err
	}

	emails := make([]string, 0, len(matches))
	for _, m := range matches {
		emails = append(emails, m.Email)
	}
	return emails, nil
}

func reportBulkErrors(err error) {
	if err != nil {
		logger.Warn().Err(err).Msg("Some addresses were rejected")
	}
}
