package geosuggest

import (
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// splitContentToNParts splits content by line into (up to) n roughly-equal
// chunks, rejoining each chunk's lines with "\n". n<=1 returns the whole
// content as a single chunk. Ported from
// original_source/geosuggest-core/src/index.rs split_content_to_n_parts.
func splitContentToNParts(content string, n int) []string {
	if n <= 1 {
		return []string{content}
	}

	lines := strings.Split(content, "\n")
	if len(lines) == 0 {
		return []string{content}
	}

	size := (len(lines) + n - 1) / n
	if size < 1 {
		size = 1
	}

	chunks := make([]string, 0, n)
	for i := 0; i < len(lines); i += size {
		end := i + size
		if end > len(lines) {
			end = len(lines)
		}
		chunks = append(chunks, strings.Join(lines[i:end], "\n"))
	}
	return chunks
}

// parallelism returns the available parallelism for builder-time chunking,
// mirroring rayon::current_num_threads() in the original source.
func parallelism() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return n
}

// parseCitiesParallel splits content into n line-aligned chunks (n =
// parallelism()) and decodes each chunk on its own goroutine, per spec
// §4.2 step 1 and §5 ("embarrassingly parallel over data chunks, dispatched
// to a work-stealing thread pool"). errgroup.Group is this module's
// work-stealing-pool analogue of rayon's ParallelIterator, grounded in
// original_source's split_content_to_n_parts + par_iter().
func parseCitiesParallel(content string) ([]cityRow, error) {
	chunks := splitContentToNParts(content, parallelism())

	results := make([][]cityRow, len(chunks))
	var g errgroup.Group
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			results[i] = decodeCitiesChunk(chunk)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	rows := make([]cityRow, 0, total)
	for _, r := range results {
		rows = append(rows, r...)
	}
	return rows, nil
}
