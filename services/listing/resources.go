package listing

// Resource describes one backend collection the dashboard lists.
type Resource struct {
	Name string
	// Path on the backend, relative to the base URL.
	Path string
	// DefaultLimit is the page size the view uses when the browser sends none.
	DefaultLimit int
	// Keys are the named-key envelopes the backend uses for this collection,
	// tried after the generic shapes.
	Keys []string
}

// DefaultResources are the collections the admin dashboard shows.
var DefaultResources = []Resource{
	{Name: "users", Path: "/api/users", DefaultLimit: 10, Keys: []string{"users"}},
	{Name: "bookings", Path: "/api/bookings", DefaultLimit: 10, Keys: []string{"bookings"}},
	{Name: "transactions", Path: "/api/transactions", DefaultLimit: 10, Keys: []string{"transactions"}},
	{Name: "audit-logs", Path: "/api/audit-logs", DefaultLimit: 10, Keys: []string{"auditLogs", "logs"}},
	{Name: "kyc", Path: "/api/kyc", DefaultLimit: 10, Keys: []string{"kyc", "submissions", "kycSubmissions"}},
	{Name: "reviews", Path: "/api/reviews", DefaultLimit: 5, Keys: []string{"reviews"}},
	{Name: "broadcasts", Path: "/api/broadcasts", DefaultLimit: 5, Keys: []string{"broadcasts"}},
	{Name: "announcements", Path: "/api/announcements", DefaultLimit: 5, Keys: []string{"announcements"}},
	{Name: "articles", Path: "/api/articles", DefaultLimit: 5, Keys: []string{"articles"}},
	{Name: "settlements", Path: "/api/settlements", DefaultLimit: 10, Keys: []string{"settlements"}},
	{Name: "products", Path: "/api/products", DefaultLimit: 10, Keys: []string{"products"}},
	{Name: "notifications", Path: "/api/notifications", DefaultLimit: 10, Keys: []string{"notifications"}},
}

// Registry indexes resources by name.
type Registry map[string]Resource

// NewRegistry builds a Registry from resources, filling unset fields.
func NewRegistry(resources []Resource) Registry {
	reg := make(Registry, len(resources))
	for _, r := range resources {
		if r.Path == "" {
			r.Path = "/api/" + r.Name
		}
		if r.DefaultLimit < 1 {
			r.DefaultLimit = 10
		}
		reg[r.Name] = r
	}
	return reg
}

// Lookup returns the named resource.
func (r Registry) Lookup(name string) (Resource, bool) {
	res, ok := r[name]
	return res, ok
}
