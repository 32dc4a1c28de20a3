package repos

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"eduadmin/internal/domain"
)

type AuditRepo struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewAuditRepo(db *sqlx.DB) *AuditRepo {
	return &AuditRepo{db: db, now: time.Now}
}

// Record appends one entry. detail is stored as JSON.
func (r *AuditRepo) Record(action, entity, entityID, actor string, detail map[string]any) (domain.AuditEntry, error) {
	e := domain.AuditEntry{
		ID:        uuid.NewString(),
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Actor:     actor,
		CreatedAt: r.now().UTC().Format(time.RFC3339),
	}
	if len(detail) > 0 {
		b, err := json.Marshal(detail)
		if err != nil {
			return domain.AuditEntry{}, err
		}
		e.Detail = string(b)
	}
	_, err := r.db.Exec(r.db.Rebind(`INSERT INTO audit_log(id,action,entity,entity_id,actor,detail,created_at)
                          VALUES(?,?,?,?,?,?,?)`),
		e.ID, e.Action, e.Entity, e.EntityID, e.Actor, e.Detail, e.CreatedAt)
	if err != nil {
		return domain.AuditEntry{}, err
	}
	return e, nil
}

// Latest returns up to n entries, newest first.
func (r *AuditRepo) Latest(n int) ([]domain.AuditEntry, error) {
	if n <= 0 {
		n = 20
	}
	var out []domain.AuditEntry
	err := r.db.Select(&out, r.db.Rebind(`
      SELECT id,action,entity,entity_id,actor,detail,created_at
      FROM audit_log
      ORDER BY created_at DESC, id DESC
      LIMIT ?`), n)
	return out, err
}

// ForEntity returns the history of one entity, newest first.
func (r *AuditRepo) ForEntity(entity, entityID string) ([]domain.AuditEntry, error) {
	var out []domain.AuditEntry
	err := r.db.Select(&out, r.db.Rebind(`
      SELECT id,action,entity,entity_id,actor,detail,created_at
      FROM audit_log
      WHERE entity=? AND entity_id=?
      ORDER BY created_at DESC, id DESC`), entity, entityID)
	return out, err
}
