package normalizer

// BatchResult reports the outcome of deduplicating a batch of URLs.
// Original counts every submitted entry, valid or not, so
// Original == Unique + Duplicates always holds.
type BatchResult struct {
	URLs       []string
	Original   int
	Unique     int
	Duplicates int
}

// Dedupe normalizes each URL and keeps the first occurrence of every
// canonical form, preserving input order.
func (n *Normalizer) Dedupe(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	result := make([]string, 0, len(urls))

	for _, raw := range urls {
		normalized := n.Normalize(raw)
		if _, dup := seen[normalized]; dup {
			continue
		}

		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}

	return result
}

// DedupeValues is the boundary form of Dedupe for heterogeneous input
// (decoded JSON arrays may mix types). Non-string entries are skipped.
func (n *Normalizer) DedupeValues(values []any) []string {
	return n.dedupeValues(values).URLs
}

// DedupeWithStats deduplicates like DedupeValues and additionally reports
// counts. Skipped non-string entries still count toward Original, so the
// duplicate tally includes them.
func (n *Normalizer) DedupeWithStats(values []any) BatchResult {
	return n.dedupeValues(values)
}

func (n *Normalizer) dedupeValues(values []any) BatchResult {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}

		normalized := n.Normalize(raw)
		if _, dup := seen[normalized]; dup {
			continue
		}

		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}

	return BatchResult{
		URLs:       result,
		Original:   len(values),
		Unique:     len(result),
		Duplicates: len(values) - len(result),
	}
}
