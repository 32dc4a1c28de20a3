package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "eduadmin/internal/log"
	"eduadmin/internal/repos"
)

// auditor writes a successful mutation to the log and the local trail.
type auditor struct {
	Repo *repos.AuditRepo
}

func (a auditor) record(c *fiber.Ctx, action, entity, id string, detail map[string]any) {
	fields := map[string]any{"entity": entity, "id": id, "actor": actor(c)}
	for k, v := range detail {
		fields[k] = v
	}
	applog.Audit(c, action, fields)
	if a.Repo == nil {
		return
	}
	if _, err := a.Repo.Record(action, entity, id, actor(c), detail); err != nil {
		applog.Error(c, "audit.record.fail", err, map[string]any{"action": action})
	}
}
