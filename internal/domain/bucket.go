package domain

// Bucket is a named board column holding an ordered list of tasks.
// The bucket set is seeded once; buckets have no create/delete lifecycle.
type Bucket struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Position int    `db:"position" json:"position"`
	Tasks    []Task `json:"tasks"`
}
