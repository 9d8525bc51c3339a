package collection

import (
	"context"
	"fmt"

	"github.com/stuffhub/inventory-system/internal/core/domain"
	"github.com/stuffhub/inventory-system/internal/core/ports"
)

// LoadCollectionNewDataOnly merges the dump entries recorded for col into
// the live collection, defining only entries with no existing exact match.
// Re-running the same fixture therefore never duplicates records. Returns
// the number of new instances and a summary message ("" when none).
func LoadCollectionNewDataOnly(ctx context.Context, col ports.Collection, fixture domain.DatabaseDump) (int, string, error) {
	definitions := fixture.Definitions(col.CollectionName())

	count := 0
	for _, definition := range definitions {
		existing, err := col.Find(ctx, definition)
		if err != nil {
			return count, "", fmt.Errorf("fixture scan %s: %w", col.CollectionName(), err)
		}
		if len(existing) > 0 {
			continue
		}
		if _, err := col.Define(ctx, definition); err != nil {
			return count, "", fmt.Errorf("fixture define %s: %w", col.CollectionName(), err)
		}
		count++
	}

	switch {
	case count > 1:
		return count, fmt.Sprintf("Defined %d %ss", count, col.Type()), nil
	case count == 1:
		return count, fmt.Sprintf("Defined a %s", col.Type()), nil
	}
	return 0, "", nil
}
