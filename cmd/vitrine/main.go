package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/vitrine/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	prefsPath := flag.String("prefs", "", "override prefs path (optional)")
	exportPath := flag.String("export-wishlist", "", "write the wishlist to an .xlsx file and exit")
	importPath := flag.String("import-wishlist", "", "merge favorites from an .xlsx file and exit")
	flag.Parse()

	if *exportPath != "" && *importPath != "" {
		fmt.Fprintln(os.Stderr, "vitrine: -export-wishlist and -import-wishlist are mutually exclusive")
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath:     *configPath,
		PrefsPath:      *prefsPath,
		ExportWishlist: *exportPath,
		ImportWishlist: *importPath,
	}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "vitrine: %v\n", err)
		return 1
	}
	return 0
}
