package entity

// UserFilter is a domain-level filter for querying users.
type UserFilter struct {
	Role     string
	IsActive *bool
	Search   string // ILIKE over name, email, license number
	Limit    int
}

// PrototypeFilter is a domain-level filter for querying prototypes.
type PrototypeFilter struct {
	Category  string
	Device    string
	CreatedBy string // user id
	Search    string // ILIKE over title and description
	Limit     int
}
