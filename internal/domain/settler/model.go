package settler

import "github.com/andrescamacho/colony-go/internal/domain/catalog"

// ResourceModel holds the catalog-dependent settler rules: energy drift,
// carrying and reward handling. Catalog tables are injected so tests can
// substitute their own.
type ResourceModel struct {
	items    catalog.Items
	statuses catalog.Statuses
}

// NewResourceModel creates a resource model over the given tables
func NewResourceModel(items catalog.Items, statuses catalog.Statuses) *ResourceModel {
	return &ResourceModel{
		items:    items,
		statuses: statuses,
	}
}
