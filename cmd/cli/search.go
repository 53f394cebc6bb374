package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"sitesearch/internal/ioformats"
	"sitesearch/internal/models"
	"sitesearch/internal/render"
	"sitesearch/internal/session"
	"sitesearch/pkg/logger"
)

type searchOpts struct {
	url         string
	query       string
	input       string
	output      string
	concurrency int
	showHTML    bool
	asJSON      bool
}

func newSearchCmd() *cobra.Command {
	var o searchOpts
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run one search, or one search per URL listed in --input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			searcher := newClient()
			if o.input != "" {
				return runBatch(cmd.Context(), searcher, o)
			}
			return runSingle(cmd.Context(), searcher, o, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&o.url, "url", "", "website URL")
	cmd.Flags().StringVar(&o.query, "query", "", "search query")
	cmd.Flags().StringVar(&o.input, "input", "", "input file (csv with 'url' and optional 'query' columns, or ndjson)")
	cmd.Flags().StringVar(&o.output, "output", "", "output NDJSON file for --input (default stdout)")
	cmd.Flags().IntVar(&o.concurrency, "concurrency", 10, "concurrent searches for --input")
	cmd.Flags().BoolVar(&o.showHTML, "show-html", false, "print each result's raw HTML")
	cmd.Flags().BoolVar(&o.asJSON, "json", false, "print the results as JSON")
	return cmd
}

func runSingle(ctx context.Context, searcher session.Searcher, o searchOpts, w io.Writer) error {
	ctrl := session.New(searcher, logger.Discard())
	ctrl.SetURL(o.url)
	ctrl.SetQuery(o.query)
	if err := ctrl.Submit(ctx); err != nil {
		if errors.Is(err, session.ErrMissingFields) {
			return errors.New(session.MissingFieldsNotice)
		}
		return err
	}

	st := ctrl.State()
	if st.Error != "" {
		return errors.New(st.Error)
	}
	if o.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(models.SearchResponse{Results: st.Results})
	}
	if ctrl.ShowNoResults() {
		_, err := fmt.Fprintln(w, "No results found.")
		return err
	}
	for _, c := range render.NewCards(st.Results) {
		if o.showHTML {
			c.Toggle()
		}
		if err := printCard(w, c); err != nil {
			return err
		}
	}
	return nil
}

func printCard(w io.Writer, c render.Card) error {
	if _, err := fmt.Fprintf(w, "%s\n  Path: %s  [%d%% match]\n", c.Result.Result, c.Result.Path, c.ScorePercent()); err != nil {
		return err
	}
	if c.ShowHTML {
		if _, err := fmt.Fprintf(w, "  %s\n", c.Result.HTML); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

type batchRecord struct {
	URL     string                `json:"url"`
	Query   string                `json:"query"`
	Results []models.SearchResult `json:"results"`
	Error   string                `json:"error,omitempty"`
}

func runBatch(ctx context.Context, searcher session.Searcher, o searchOpts) error {
	targets, err := ioformats.ReadTargets(o.input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	records := searchAll(ctx, searcher, targets, o.query, o.concurrency)

	var w io.Writer = os.Stdout
	if o.output != "" {
		f, err := os.Create(o.output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	items := make([]any, len(records))
	for i, r := range records {
		items[i] = r
	}
	return ioformats.WriteNDJSON(w, items)
}

// searchAll runs one controller per target; records keep input order. A
// target without its own query uses defaultQuery.
func searchAll(ctx context.Context, searcher session.Searcher, targets []ioformats.Target, defaultQuery string, concurrency int) []batchRecord {
	records := make([]batchRecord, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, t := range targets {
		g.Go(func() error {
			query := t.Query
			if query == "" {
				query = defaultQuery
			}
			ctrl := session.New(searcher, logger.Discard())
			ctrl.SetURL(t.URL)
			ctrl.SetQuery(query)
			rec := batchRecord{URL: t.URL, Query: query, Results: []models.SearchResult{}}
			if err := ctrl.Submit(gctx); errors.Is(err, session.ErrMissingFields) {
				rec.Error = session.MissingFieldsNotice
			} else if err != nil {
				rec.Error = err.Error()
			} else if st := ctrl.State(); st.Error != "" {
				rec.Error = st.Error
			} else {
				rec.Results = st.Results
			}
			records[i] = rec
			return nil
		})
	}
	_ = g.Wait()
	return records
}
