package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var topicsLimit int

// topicsCmd lists archive topics of a group
var topicsCmd = &cobra.Command{
	Use:   "topics <group-id>",
	Short: "List the topics in a group's archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runTopics,
}

func init() {
	rootCmd.AddCommand(topicsCmd)
	topicsCmd.Flags().IntVarP(&topicsLimit, "limit", "n", 0, "show at most this many topics (0 for all)")
}

func runTopics(cmd *cobra.Command, args []string) error {
	ids, err := parseGroupIDs(args)
	if err != nil {
		return err
	}

	topics, err := client.GetTopics(cmd.Context(), ids[0])
	if err != nil {
		return fmt.Errorf("failed to get topics: %w", err)
	}

	if topicsLimit > 0 && len(topics) > topicsLimit {
		topics = topics[:topicsLimit]
	}

	fmt.Printf("\n%d topics:\n", len(topics))
	fmt.Println(strings.Repeat("-", 80))
	for _, topic := range topics {
		fmt.Printf("• %s (%d messages)", topic.Subject, topic.NumMsgs)
		if topic.IsSticky {
			fmt.Printf(" [STICKY]")
		}
		if topic.IsClosed {
			fmt.Printf(" [CLOSED]")
		}
		fmt.Println()
		if topic.Poster.Name != "" {
			fmt.Printf("  By: %s, last message %s\n", topic.Poster.Name, topic.MostRecentMessage)
		}
		if len(topic.Hashtags) > 0 {
			tags := make([]string, 0, len(topic.Hashtags))
			for _, h := range topic.Hashtags {
				tags = append(tags, "#"+h.Name)
			}
			fmt.Printf("  Tags: %s\n", strings.Join(tags, " "))
		}
	}
	return nil
}
