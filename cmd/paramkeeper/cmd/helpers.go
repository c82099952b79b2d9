package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/solatis/paramkeeper/internal/core/config"
	"github.com/solatis/paramkeeper/internal/core/db"
	"github.com/solatis/paramkeeper/internal/core/store"
	"github.com/solatis/paramkeeper/internal/params"
	"github.com/solatis/paramkeeper/internal/types"
)

// resolveDBURL returns the database URL from --db-url, falling back to
// the loaded configuration.
func resolveDBURL() (string, error) {
	if dbURL != "" {
		return dbURL, nil
	}
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	return cfg.DatabaseURL, nil
}

// openStore opens the database and wires up the store. The caller must
// invoke the returned close function.
func openStore() (*store.Store, func(), error) {
	url, err := resolveDBURL()
	if err != nil {
		return nil, nil, err
	}

	database, err := db.Open(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	queries, err := db.LoadQueries(database)
	if err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to load queries: %w", err)
	}

	return store.New(queries), func() { database.Close() }, nil
}

// parseParamArg parses a single "name=type:value" argument.
func parseParamArg(arg string) (name string, tag types.TypeTag, text string, err error) {
	eq := strings.Index(arg, "=")
	if eq <= 0 {
		return "", 0, "", fmt.Errorf("argument %q: expected name=type:value", arg)
	}
	name = arg[:eq]
	rest := arg[eq+1:]

	colon := strings.Index(rest, ":")
	if colon <= 0 {
		return "", 0, "", fmt.Errorf("argument %q: expected name=type:value", arg)
	}

	tag, err = types.ParseTypeTag(rest[:colon])
	if err != nil {
		return "", 0, "", fmt.Errorf("argument %q: %w", arg, err)
	}
	return name, tag, rest[colon+1:], nil
}

// buildSetFromArgs builds a parameter set from "name=type:value"
// arguments, in argument order.
func buildSetFromArgs(args []string) (*params.Set, error) {
	set := params.NewSet()
	for _, arg := range args {
		name, tag, text, err := parseParamArg(arg)
		if err != nil {
			return nil, err
		}
		if err := set.AddFromString(name, tag, text); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// loadSchemaFile parses a schema file with one "name:type" entry per
// line. Blank lines and "#" comment lines are skipped.
func loadSchemaFile(path string) ([]params.Field, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open schema file: %w", err)
	}
	defer f.Close()

	var schema []params.Field
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		colon := strings.LastIndex(line, ":")
		if colon <= 0 || colon == len(line)-1 {
			return nil, fmt.Errorf("%s:%d: expected name:type", path, lineNo)
		}

		tag, err := types.ParseTypeTag(strings.TrimSpace(line[colon+1:]))
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		schema = append(schema, params.Field{
			Name: strings.TrimSpace(line[:colon]),
			Type: tag,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	return schema, nil
}

// printSet writes the set in "name=type:value" form, one parameter per
// line, in stored order.
func printSet(set *params.Set) {
	for _, p := range set.Params() {
		fmt.Printf("%s=%s:%s\n", p.Name, p.Value.Tag(), p.Value.Format())
	}
}
