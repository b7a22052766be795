package dispatchers

// ActionCategory groups actions in help output.
type ActionCategory int

const (
	CategoryUncategorized ActionCategory = iota
	CategoryClusters                     // Cluster lifecycle: start, stop, ssh
	CategoryImages                       // Machine images
	CategoryVolumes                      // Block storage
	CategoryStorage                      // Object storage buckets
	CategoryHelp                         // help, completion
)

// String returns the heading help prints for the category.
func (c ActionCategory) String() string {
	switch c {
	case CategoryClusters:
		return "manage clusters"
	case CategoryImages:
		return "manage images"
	case CategoryVolumes:
		return "manage volumes"
	case CategoryStorage:
		return "browse storage"
	case CategoryHelp:
		return "getting help"
	default:
		return "other actions"
	}
}

var categoryOrder = []ActionCategory{
	CategoryClusters,
	CategoryImages,
	CategoryVolumes,
	CategoryStorage,
	CategoryHelp,
	CategoryUncategorized,
}

// CategoryOrder returns the display order for categories.
func CategoryOrder() []ActionCategory {
	return categoryOrder
}
