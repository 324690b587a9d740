package domain

// QueryRequest is a discriminated request: exactly one of SQL or View is
// populated. The builder enforces the invariant with an exhaustive switch.
type QueryRequest struct {
	SQL  *SQLQuery
	View *ViewQuery
}

// SQLQuery is a raw SQL export against a workspace. The text is transported
// unchanged; the remote engine owns execution semantics.
type SQLQuery struct {
	Workspace string
	SQL       string
}

// ViewQuery is a paginated export of a named view. A nil Limit or Offset
// means the caller omitted it and the configured default applies.
type ViewQuery struct {
	Workspace string
	View      string
	Limit     *int
	Offset    *int
}
