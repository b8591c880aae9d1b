package catalog

// Unknown is the sentinel name returned for ordinals outside the catalog.
// Malformed or out-of-range classifier output must never fail a request.
const Unknown = "Unknown Disease"

// Catalog maps a classifier's ordinal class ids to disease names.
// Ids are dense and zero-based: id i is names[i]. The text and image
// pipelines each have their own catalog and the two are never merged —
// the same ordinal means a different disease in each.
type Catalog struct {
	names []string
}

// New creates a Catalog from an ordered name list.
func New(names []string) *Catalog {
	return &Catalog{names: names}
}

// Resolve returns the disease name for the given ordinal id, or Unknown
// when the id is outside the catalog.
func (c *Catalog) Resolve(id int) string {
	if id < 0 || id >= len(c.names) {
		return Unknown
	}
	return c.names[id]
}

// Size returns the number of entries in the catalog.
func (c *Catalog) Size() int {
	return len(c.names)
}
