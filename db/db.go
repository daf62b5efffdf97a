package db

import "embed"

// Migrations holds migrations/<dialect>/*.sql.
//
//go:embed migrations
var Migrations embed.FS

//go:embed seed/*.json
var SeedFiles embed.FS
