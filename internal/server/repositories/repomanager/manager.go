// Package repomanager binds repository constructors to database handles so
// services can run the same repository code against *sql.DB or a transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/learnable-edu/learnable/internal/dbx"
	"github.com/learnable-edu/learnable/internal/server/repositories/accounts"
	"github.com/learnable-edu/learnable/internal/server/repositories/courses"
	"github.com/learnable-edu/learnable/internal/server/repositories/videos"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Courses(db dbx.DBTX) courses.Repository
	Videos(db dbx.DBTX) videos.Repository
}
