package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/codelearn/internal/content"
)

type topicStats struct {
	Topic     content.Topic
	Lessons   int
	Exercises map[content.Difficulty]int
	Minutes   int
}

func collectStats(c *content.Catalog) []topicStats {
	var out []topicStats
	for _, t := range c.Topics() {
		s := topicStats{Topic: t, Exercises: map[content.Difficulty]int{}}
		for _, l := range c.LessonsForTopic(t.ID) {
			s.Lessons++
			s.Minutes += l.Duration
		}
		for _, e := range c.ExercisesForTopic(t.ID) {
			s.Exercises[e.Difficulty]++
		}
		out = append(out, s)
	}
	return out
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show lesson and exercise counts per topic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(cmd)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TOPIC\tLESSONS\tMINUTES\tEASY\tMEDIUM\tHARD")
			for _, s := range collectStats(catalog) {
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\n", s.Topic.ID, s.Lessons, s.Minutes,
					s.Exercises[content.Easy], s.Exercises[content.Medium], s.Exercises[content.Hard])
			}
			return w.Flush()
		},
	}
}
