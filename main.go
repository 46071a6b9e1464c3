package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/KimGeorgy/bird-migration/parser"
	. "github.com/KimGeorgy/bird-migration/util"
	"golang.org/x/exp/slog"
)

func main() {
	config_file := flag.String("config", "./config.yaml", "path of the yaml config")
	import_routes := flag.String("import-routes", "", "convert a json route file into the configured sqlite route table and exit")
	export_routes := flag.String("export-routes", "", "write the configured route table into a json route file and exit")
	flag.Parse()

	SetupLogging(os.Stderr, slog.LevelInfo)
	config, err := ReadConfig(*config_file)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	SetupLogging(os.Stderr, config.Logging.Level.Level())

	ctx := context.Background()
	if *import_routes != "" {
		if err := ImportRoutes(ctx, *import_routes, config.Data.Routes); err != nil {
			slog.Error(err.Error())
			os.Exit(1)
		}
		return
	}
	if *export_routes != "" {
		if err := ExportRoutes(ctx, *export_routes, config.Data.Routes); err != nil {
			slog.Error(err.Error())
			os.Exit(1)
		}
		return
	}

	manager, err := NewExplorerManager(ctx, config, NewMetrics())
	if err != nil {
		slog.Error("failed to build explorer: " + err.Error())
		os.Exit(1)
	}

	app := NewServer(manager)
	slog.Info("listening on " + config.Server.Address)
	if err := http.ListenAndServe(config.Server.Address, app); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// Writes the routes of a json file into the sqlite table named by options.
func ImportRoutes(ctx context.Context, file string, options RouteOptions) error {
	if options.Type != SQLITE {
		return fmt.Errorf("route source must be sqlite to import, got %v", options.Type)
	}
	records, err := parser.LoadRoutesJSON(file)
	if err != nil {
		return err
	}
	if err := parser.WriteRoutesSQLite(ctx, options.Path, options.Table, records); err != nil {
		return err
	}
	slog.Info(fmt.Sprintf("imported %v routes into %s", len(records), options.Path))
	return nil
}

// Writes the configured route table as a json route file, metadata columns
// are flattened next to the key columns.
func ExportRoutes(ctx context.Context, file string, options RouteOptions) error {
	records, err := LoadRoutes(ctx, options)
	if err != nil {
		return err
	}
	rows := NewList[Dict[string, any]](len(records))
	for _, record := range records {
		row := NewDict[string, any](3 + len(record.Metadata))
		for name, value := range record.Metadata {
			row[name] = value
		}
		row[parser.COL_DEPARTURE] = record.Departure
		row[parser.COL_DESTINATION] = record.Destination
		row[parser.COL_PATH] = record.Path
		rows.Add(row)
	}
	if err := WriteJSONToFile(rows, file); err != nil {
		return err
	}
	slog.Info(fmt.Sprintf("exported %v routes into %s", len(records), file))
	return nil
}
