// Package history persists the outcome of every reconcile action.
//
// A Record is written per resource and action (up, down, diff) with the run id
// shared by all actions of one invocation. The GORM recorder stores records in
// the reconcile_history table; Nop is used when no database is configured.
//
// # Usage
//
//	rec := history.New(db) // db may be nil
//	_ = rec.Record(ctx, &history.Record{RunID: id, Kind: "network", Name: "app_front", Action: "up", Status: "ok"})
//	recent, _ := rec.Recent(ctx, 50)
package history
