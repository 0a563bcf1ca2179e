package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cuekit/cuekit/internal/config"
	"github.com/cuekit/cuekit/internal/taskcache"
	"github.com/cuekit/cuekit/pkg/cuekit"
)

// getClient creates an SDK client from the resolved config
func getClient() (*cuekit.Client, error) {
	cfg, err := config.Resolve()
	if err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("no API key configured: set %s or api.key in ~/%s/%s",
			config.EnvAPIKey, config.ConfigDir, config.ConfigFileName)
	}
	return cuekit.NewClient(cfg.ClientOptions()...)
}

// openCache opens the local task cache at the configured path
func openCache() (*taskcache.Cache, *config.ResolvedConfig, error) {
	cfg, err := config.Resolve()
	if err != nil {
		return nil, nil, err
	}
	cache, err := taskcache.Open(cfg.CachePath)
	if err != nil {
		return nil, nil, err
	}
	return cache, cfg, nil
}

// mapErrorToExitCode maps an error to the appropriate exit code
func mapErrorToExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case cuekit.IsServerUnreachable(err):
		return ExitServerUnreachable
	case cuekit.IsAuthFailed(err):
		return ExitAuthFailed
	case cuekit.IsNotFound(err):
		return ExitNotFound
	case cuekit.IsRateLimited(err):
		return ExitRateLimited
	case cuekit.IsMissingField(err), cuekit.IsMissingValue(err):
		return ExitMissingField
	default:
		return ExitGeneralError
	}
}

// handleError handles an error by printing it and exiting with the appropriate code
func handleError(err error) {
	if err == nil {
		return
	}

	printError(os.Stderr, err, jsonOutput)
	os.Exit(mapErrorToExitCode(err))
}

// parseWhere parses a "FIELD OP VALUE" expression into a custom field filter.
// The operator is one of the filter operator strings; IS_SET and IS_NOT_SET
// take no value. A comma-separated value with the IN operator becomes a list.
func parseWhere(expr string) (cuekit.CustomFieldFilter, error) {
	parts := strings.SplitN(strings.TrimSpace(expr), " ", 3)
	if len(parts) < 2 {
		return cuekit.CustomFieldFilter{}, fmt.Errorf("invalid filter %q: want \"FIELD OP [VALUE]\"", expr)
	}

	f := cuekit.CustomFieldFilter{
		FieldName: parts[0],
		Operator:  cuekit.FilterOperator(strings.ToLower(parts[1])),
	}

	if len(parts) == 3 {
		f.Value = parseFilterValue(f.Operator, parts[2])
	}

	if err := f.Validate(); err != nil {
		return cuekit.CustomFieldFilter{}, fmt.Errorf("invalid filter %q: %w", expr, err)
	}
	return f, nil
}

// parseFilterValue interprets a raw value string: IN values split on commas,
// and scalars prefer number over bool over string.
func parseFilterValue(op cuekit.FilterOperator, raw string) any {
	if op == cuekit.OpIn {
		parts := strings.Split(raw, ",")
		values := make([]string, 0, len(parts))
		for _, p := range parts {
			values = append(values, strings.TrimSpace(p))
		}
		return values
	}

	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return strings.Trim(raw, `"`)
}
