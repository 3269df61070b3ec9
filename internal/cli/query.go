package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"opportunity-finder/internal/models"
	"opportunity-finder/internal/storage/sqlstore"
)

const queryTimeout = 30 * time.Second

// filterFlags holds the filter options shared by list and export.
type filterFlags struct {
	minScore      float64
	maxComplexity float64
	minRevenue    float64
	minNovelty    float64
	minDemand     float64
	search        string
	subreddit     string
	sortBy        string
	sortOrder     string
	limit         int
	offset        int
}

func (ff *filterFlags) register(cmd *cobra.Command, withPaging bool) {
	def := models.DefaultFilter()
	fs := cmd.Flags()
	fs.Float64Var(&ff.minScore, "min-score", def.MinScore, "minimum overall score (0-10)")
	fs.Float64Var(&ff.maxComplexity, "max-complexity", def.MaxComplexity, "maximum technical complexity (0-10)")
	fs.Float64Var(&ff.minRevenue, "min-revenue", def.MinRevenue, "minimum revenue potential (0-10)")
	fs.Float64Var(&ff.minNovelty, "min-novelty", def.MinNovelty, "minimum novelty score (0-10)")
	fs.Float64Var(&ff.minDemand, "min-demand", def.MinDemand, "minimum market demand (0-10)")
	fs.StringVar(&ff.search, "search", "", "case-insensitive text search over title, description and analysis")
	fs.StringVar(&ff.subreddit, "subreddit", "", "exact subreddit name")
	fs.StringVar(&ff.sortBy, "sort-by", def.SortBy, "sort column")
	fs.StringVar(&ff.sortOrder, "sort-order", def.SortOrder, "sort order (asc or desc)")
	if withPaging {
		fs.IntVar(&ff.limit, "limit", def.Limit, "page size")
		fs.IntVar(&ff.offset, "offset", 0, "rows to skip")
	}
}

// filter validates the flags and converts them to a query filter. Unlike the
// HTTP API, unknown sort options are rejected instead of silently defaulted.
func (ff *filterFlags) filter() (models.OpportunityFilter, error) {
	if !models.IsSortColumn(ff.sortBy) {
		return models.OpportunityFilter{}, fmt.Errorf("unknown sort column %q", ff.sortBy)
	}
	if ff.sortOrder != models.SortAsc && ff.sortOrder != models.SortDesc {
		return models.OpportunityFilter{}, fmt.Errorf("sort order must be %q or %q", models.SortAsc, models.SortDesc)
	}
	f := models.DefaultFilter()
	f.MinScore = ff.minScore
	f.MaxComplexity = ff.maxComplexity
	f.MinRevenue = ff.minRevenue
	f.MinNovelty = ff.minNovelty
	f.MinDemand = ff.minDemand
	f.Search = ff.search
	f.Subreddit = ff.subreddit
	f.SortBy = ff.sortBy
	f.SortOrder = ff.sortOrder
	if ff.limit > 0 {
		f.Limit = ff.limit
	}
	if ff.offset > 0 {
		f.Offset = ff.offset
	}
	return f, nil
}

var (
	listFilter   filterFlags
	flagOutput   string
	flagKeywordN int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List analyzed opportunities",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := listFilter.filter()
		if err != nil {
			return err
		}
		return withStore(cmd, func(ctx context.Context, store *sqlstore.Store) error {
			page, err := store.ListOpportunities(ctx, f)
			if err != nil {
				return err
			}
			_, offset := f.Page()
			return printOpportunities(cmd.OutOrStdout(), flagOutput, page, offset)
		})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show headline statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, store *sqlstore.Store) error {
			st, err := store.GetStats(ctx)
			if err != nil {
				return err
			}
			return printStats(cmd.OutOrStdout(), flagOutput, st)
		})
	},
}

var subredditsCmd = &cobra.Command{
	Use:   "subreddits",
	Short: "Show subreddits by number of analyzed opportunities",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, store *sqlstore.Store) error {
			subs, err := store.GetSubreddits(ctx)
			if err != nil {
				return err
			}
			return printSubreddits(cmd.OutOrStdout(), flagOutput, subs)
		})
	},
}

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Show the most frequent title keywords",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, store *sqlstore.Store) error {
			kws, err := store.GetKeywords(ctx)
			if err != nil {
				return err
			}
			if flagKeywordN > 0 && flagKeywordN < len(kws) {
				kws = kws[:flagKeywordN]
			}
			return printKeywords(cmd.OutOrStdout(), flagOutput, kws)
		})
	},
}

func init() {
	listFilter.register(listCmd, true)
	keywordsCmd.Flags().IntVarP(&flagKeywordN, "top", "n", 0, "only show the top N keywords (0 for all)")

	for _, c := range []*cobra.Command{listCmd, statsCmd, subredditsCmd, keywordsCmd} {
		c.Flags().StringVarP(&flagOutput, "output", "o", formatTable, "output format: table, json or yaml")
	}
}

// withStore opens the configured database for the duration of fn.
func withStore(cmd *cobra.Command, fn func(context.Context, *sqlstore.Store) error) error {
	if err := validFormat(flagOutput); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := sqlstore.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), queryTimeout)
	defer cancel()
	return fn(ctx, store)
}
