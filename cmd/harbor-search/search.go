package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/youhong316/harbor/client"
)

type outputFormat string

const (
	formatTable outputFormat = "table"
	formatJSON  outputFormat = "json"
	formatYAML  outputFormat = "yaml"
)

func parseFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(s)); f {
	case formatTable, formatJSON, formatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
	}
}

type searcher interface {
	Search(ctx context.Context, term string) (*client.SearchResults, error)
}

func runSearch(ctx context.Context, c searcher, term string, format outputFormat, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := c.Search(ctx, term)
	if err != nil {
		return err
	}
	return render(res, format, out)
}

func render(res *client.SearchResults, format outputFormat, out io.Writer) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case formatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(yamlView(res)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return renderTable(res, out)
	}
}

// yamlView keeps the wire field names in YAML output.
func yamlView(res *client.SearchResults) any {
	b, err := json.Marshal(res)
	if err != nil {
		return res
	}
	var generic map[string]any
	if err := json.Unmarshal(b, &generic); err != nil {
		return res
	}
	return generic
}

func renderTable(res *client.SearchResults, out io.Writer) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "PROJECT\tPUBLIC\tREPOS\n")
	for _, p := range res.Projects {
		fmt.Fprintf(tw, "%s\t%t\t%d\n", p.Name, p.IsPublic(), p.RepoCount)
	}
	fmt.Fprintf(tw, "\nREPOSITORY\tPROJECT\tTAGS\tPULLS\n")
	for _, r := range res.Repositories {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", r.RepositoryName, r.ProjectName, r.TagsCount, r.PullCount)
	}
	if len(res.Charts) > 0 {
		fmt.Fprintf(tw, "\nCHART\tVERSION\tSCORE\n")
		for _, ch := range res.Charts {
			version := ""
			if ch.Chart != nil {
				version = ch.Chart.Version
			}
			fmt.Fprintf(tw, "%s\t%s\t%.2f\n", ch.Name, version, ch.Score)
		}
	}
	return tw.Flush()
}
