// cmd/recordd is the development record store: a small REST backend serving
// the /users collection the console talks to. Records are kept in SQLite as
// schemaless JSON documents, so the backend needs no changes when the field
// schema evolves.
package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "modernc.org/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn := os.Getenv("RECORDD_DB")
	if dsn == "" {
		dsn = "file:recordd.db"
	}
	addr := os.Getenv("RECORDD_LISTEN")
	if addr == "" {
		addr = ":3001"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("opening database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	users, err := newUserStore(ctx, db)
	if err != nil {
		log.Fatalf("preparing store: %v", err)
	}

	srv := &http.Server{Addr: addr, Handler: routes(users)}
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	log.Printf("recordd: listening on %s (db %s)", addr, dsn)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
