package domain

// Project is one portfolio project as served by the read-only data source.
type Project struct {
	Title         string
	Description   string
	Technologies  []string
	Contributions []string
	RepositoryURL string
	SortOrder     int
}
