package main

import (
	"context"
	"os"

	"github.com/spf13/afero"

	docsdemo "github.com/vfa-khuongdv/docs-demo"
	"github.com/vfa-khuongdv/docs-demo/internal/doclist"
	"github.com/vfa-khuongdv/docs-demo/pkg/docs"
)

func main() {
	banner := append([]string{"This program allows multiple CRUD operations on user's Google Documents"}, doclist.Help...)

	os.Exit(docsdemo.Main("docs-demo", banner, run, afero.NewOsFs(), os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, app *docsdemo.App, session *docs.Session) error {
	return doclist.NewDispatcher(session, app.Prompt(), app.Notifier(), app.Logger()).Run(ctx)
}
