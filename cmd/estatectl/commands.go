package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Ayash-Bera/propsearch/internal/app"
	"github.com/Ayash-Bera/propsearch/internal/models"
	"github.com/Ayash-Bera/propsearch/internal/services"
)

func newParseCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <query>",
		Short: "Show how a free-text query is parsed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.loadConfig()
			if err != nil {
				return err
			}
			pipeline, _, err := app.NewPipeline(cfg, logger)
			if err != nil {
				return err
			}

			ctx, cancel := opts.withTimeout()
			defer cancel()

			return opts.printer(cmd).parse(pipeline.ParseAndResolve(ctx, strings.Join(args, " ")))
		},
	}
}

func newSearchCmd(opts *globalOptions) *cobra.Command {
	var (
		params   models.SearchParams
		rooms    int
		baths    int
		minPrice int
		maxPrice int
		minArea  int
		maxArea  int
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run a structured listing search",
		Long: `Search sends the given filters through the query cache to the listings
provider. Numeric filters left at -1 are not applied.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range []struct {
				value int
				dst   **int
			}{
				{rooms, &params.Rooms},
				{baths, &params.Baths},
				{minPrice, &params.MinPrice},
				{maxPrice, &params.MaxPrice},
				{minArea, &params.MinArea},
				{maxArea, &params.MaxArea},
			} {
				if f.value >= 0 {
					*f.dst = models.IntPtr(f.value)
				}
			}

			filters := params.Filters()
			if err := filters.Validate(); err != nil {
				return err
			}

			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := opts.withTimeout()
			defer cancel()

			result, err := a.Search.Execute(ctx, filters, params.Page, params.Limit)
			if err != nil {
				return err
			}
			return opts.printer(cmd).search(result)
		},
	}

	f := cmd.Flags()
	f.StringVar(&params.Purpose, "purpose", string(models.PurposeForSale), "for-sale or for-rent")
	f.StringVar(&params.PropertyType, "type", "", "property type, e.g. villa")
	f.StringVarP(&params.LocationQuery, "location", "l", "", "location text")
	f.StringVar(&params.Keywords, "keywords", "", "free-text keywords")
	f.IntVar(&rooms, "rooms", -1, "bedrooms (0 for studio)")
	f.IntVar(&baths, "baths", -1, "bathrooms")
	f.IntVar(&minPrice, "min-price", -1, "minimum price in AED")
	f.IntVar(&maxPrice, "max-price", -1, "maximum price in AED")
	f.IntVar(&minArea, "min-area", -1, "minimum area in sqft")
	f.IntVar(&maxArea, "max-area", -1, "maximum area in sqft")
	f.IntVar(&params.Page, "page", services.DefaultPage, "result page")
	f.IntVar(&params.Limit, "limit", services.DefaultLimit, "results per page")
	return cmd
}

func newAskCmd(opts *globalOptions) *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:   "ask <query>",
		Short: "Answer a free-text search or question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := opts.withTimeout()
			defer cancel()

			session := services.NewSession("estatectl", 1)
			resp, err := a.Assistant.Ask(ctx, session, strings.Join(args, " "), page, limit)
			if err != nil {
				return err
			}
			return opts.printer(cmd).ask(resp)
		},
	}

	cmd.Flags().IntVar(&page, "page", services.DefaultPage, "result page for search requests")
	cmd.Flags().IntVar(&limit, "limit", services.DefaultLimit, "results per page for search requests")
	return cmd
}

func newCacheCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the query cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show cache entry counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := opts.withTimeout()
			defer cancel()

			stats, err := a.Store.Stats(ctx)
			if err != nil {
				return fmt.Errorf("read cache stats: %w", err)
			}
			return opts.printer(cmd).stats(stats)
		},
	})
	return cmd
}
