package main

import (
	"context"
	"os"

	"github.com/spf13/afero"

	docsdemo "github.com/vfa-khuongdv/docs-demo"
	"github.com/vfa-khuongdv/docs-demo/internal/explorer"
	"github.com/vfa-khuongdv/docs-demo/pkg/docs"
)

var banner = []string{
	"The program scans Google Docs to find any Spreadsheets created/shared by you",
	"It also lets you find various details of your chosen Spreadsheet like worksheet, all cells within a worksheet or search for individual cells",
	"You can exit the program by entering -1 when prompted for any input",
}

func main() {
	os.Exit(docsdemo.Main("sheets-demo", banner, run, afero.NewOsFs(), os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, app *docsdemo.App, session *docs.Session) error {
	return explorer.New(session, app.Prompt(), app.Logger()).Run(ctx)
}
