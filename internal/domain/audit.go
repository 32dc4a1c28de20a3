package domain

// AuditEntry is a locally recorded admin mutation.
type AuditEntry struct {
	ID        string `db:"id"`
	Action    string `db:"action"`
	Entity    string `db:"entity"`
	EntityID  string `db:"entity_id"`
	Actor     string `db:"actor"`
	Detail    string `db:"detail"`
	CreatedAt string `db:"created_at"`
}
