package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/theapemachine/cinematch/pkg/mood"
	"github.com/theapemachine/cinematch/pkg/tmdb"
	"github.com/theapemachine/cinematch/pkg/tools"
)

var (
	limitFlag int

	recommendCmd = &cobra.Command{
		Use:   "recommend [mood]",
		Short: "Recommend curated movies for a mood",
		Long:  longRecommend,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stack, err := newToolStack(nil)
			if err != nil {
				return err
			}

			out, err := stack.registry.Execute(cmd.Context(), tools.RecommendationToolName, map[string]any{
				"mood":  args[0],
				"limit": float64(limitFlag),
			})

			if err != nil {
				return err
			}

			result := out.(*tools.RecommendationOutput)
			fmt.Println(renderRecommendations(result.Mood, result.Recommendations))
			return nil
		},
	}

	discoverCmd = &cobra.Command{
		Use:   "discover [how you feel]",
		Short: "Detect your mood from free text and find matching movies on TMDB",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stack, err := newToolStack(nil)
			if err != nil {
				return err
			}

			out, err := stack.discover.Discover(cmd.Context(), strings.Join(args, " "), limitFlag)
			if err != nil {
				return err
			}

			fmt.Println(renderDiscovery(out))
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(discoverCmd)

	for _, c := range []*cobra.Command{recommendCmd, discoverCmd} {
		c.Flags().IntVarP(&limitFlag, "limit", "l", tools.DefaultLimit, "Number of movies to return")
	}
}

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	metaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	bodyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Width(80)
)

func renderRecommendations(moodName string, recs []mood.Recommendation) string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render("Movies for a "+moodName+" mood") + "\n\n")

	for _, rec := range recs {
		sb.WriteString(titleStyle.Render(rec.Title) + " ")
		sb.WriteString(metaStyle.Render(fmt.Sprintf("%s · match %d%%", rec.Genre, rec.MatchScore)) + "\n")
		sb.WriteString(bodyStyle.Render(rec.Description) + "\n\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

func renderDiscovery(out *tools.DiscoverOutput) string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render(fmt.Sprintf(
		"You seem %s (%.0f%% sure)", out.DetectedMood, out.MoodConfidence*100,
	)) + "\n\n")

	for _, movie := range out.Recommendations {
		sb.WriteString(titleStyle.Render(movie.Title) + " ")
		sb.WriteString(metaStyle.Render(movieMeta(movie)) + "\n")
		sb.WriteString(bodyStyle.Render(movie.Overview) + "\n\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

func movieMeta(movie tmdb.Movie) string {
	parts := []string{fmt.Sprintf("★ %.1f", movie.Rating)}

	if movie.ReleaseDate != "" {
		parts = append(parts, movie.ReleaseDate)
	}

	if movie.Runtime > 0 {
		parts = append(parts, fmt.Sprintf("%d min", movie.Runtime))
	}

	if len(movie.Genres) > 0 {
		parts = append(parts, strings.Join(movie.Genres, ", "))
	}

	return strings.Join(parts, " · ")
}

var longRecommend = `
Recommend movies from the curated mood table. Known moods are happy, sad,
excited, relaxed and scared; anything else falls back to relaxed.

Example:
  cinematch recommend happy --limit 3
`
