// Package database opens the optional SQL connection used for reconcile history.
//
// It wraps GORM and configures either a MySQL connection (default) or a local
// SQLite file. The connection is verified with a ping bounded by the
// configured timeout.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("History disabled", zap.Error(err))
//	}
package database
