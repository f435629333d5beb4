package db

import "time"

// RunSummary is one strategy's result from a scheduling run
type RunSummary struct {
	ID         string    `ssql_header:"id" ssql_type:"uuid"`
	RunID      string    `ssql_header:"run_id" ssql_type:"uuid"`
	RunAt      time.Time `ssql_header:"run_at" ssql_type:"timestamp"`
	Event      string    `ssql_header:"event" ssql_type:"text"`
	Strategy   string    `ssql_header:"strategy" ssql_type:"text"`
	PoolSize   int       `ssql_header:"pool_size" ssql_type:"int"`
	Considered int       `ssql_header:"considered" ssql_type:"int"`
	Assigned   int       `ssql_header:"assigned" ssql_type:"int"`
	Unfilled   int       `ssql_header:"unfilled" ssql_type:"int"`
	Duplicates int       `ssql_header:"duplicates" ssql_type:"int"`
	Recompute  bool      `ssql_header:"recompute" ssql_type:"bool"`
}

// SignupResponse is one archived row of the responses tab.
// Position 0 of an import holds the header row.
type SignupResponse struct {
	ID         string
	ImportID   string
	ImportedAt time.Time
	Position   int
	Cells      []string
}
