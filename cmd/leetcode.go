package cmd

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"portfolio/api/leetcode"
)

var (
	statsDays    int
	statsColumns int
	statsTZ      string
)

var leetcodeCmd = &cobra.Command{
	Use:   "leetcode <username>",
	Short: "Fetch a LeetCode profile and print its stats as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tz := statsTZ
		if tz == "" {
			tz = cfg.LeetCode.Timezone
		}
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return err
		}

		client := leetcode.NewClient(cfg.LeetCode.GraphQLURL, cfg.LeetCode.Timeout)
		profile, err := client.FetchProfile(cmd.Context(), args[0], 0)
		if err != nil {
			return err
		}

		stats := leetcode.BuildStats(profile, leetcode.Options{TrailingDays: statsDays, GridColumns: statsColumns}, time.Now().In(loc))

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	},
}

func init() {
	leetcodeCmd.Flags().IntVar(&statsDays, "days", 72, "trailing window length in days")
	leetcodeCmd.Flags().IntVar(&statsColumns, "columns", 0, "week columns of the heatmap grid (0 to omit)")
	leetcodeCmd.Flags().StringVar(&statsTZ, "tz", "", "IANA time zone for day labels (default LEETCODE_TIMEZONE)")
}
