package importer

import (
	"context"
	"strings"
)

// Preview reports the raw shape of each source without classifying or mapping anything
func Preview(sources []Source) []PreviewResult {
	results := make([]PreviewResult, 0, len(sources))

	for _, source := range sources {
		if source.Err != nil {
			msg := source.Err.Error()
			results = append(results, PreviewResult{URL: source.URL, Error: &msg})
			continue
		}

		sheets := make(map[string]TabPreview, len(source.Tabs))
		for _, tab := range source.Tabs {
			if len(tab.Rows) == 0 {
				continue
			}

			data := tab.Rows[1:]
			sample := data[:min(PREVIEW_SAMPLE_ROWS, len(data))]
			sheets[tab.Name] = TabPreview{
				Headers:  tab.Rows[0],
				RowCount: len(data),
				Sample:   sample,
			}
		}

		results = append(results, PreviewResult{URL: source.URL, Sheets: sheets})
	}

	return results
}

// FetchAll reads every non-blank URL in order. A failed read is kept on its source
func FetchAll(ctx context.Context, fetcher Fetcher, urls []string) []Source {
	sources := []Source{}

	for _, url := range urls {
		trimmed := strings.TrimSpace(url)
		if trimmed == "" {
			continue
		}

		tabs, err := fetcher.FetchExternalSheet(ctx, trimmed)
		sources = append(sources, Source{URL: url, Tabs: tabs, Err: err})
	}

	return sources
}
