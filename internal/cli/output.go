package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/cbwinslow/lazylocker/pkg/core"
	"github.com/cbwinslow/lazylocker/pkg/shellexport"
)

// renderOne prints a single name/value pair in the requested format.
func renderOne(name, value string, format core.OutputFormat) error {
	switch format {
	case core.FormatJSON:
		return renderJSON(map[string]string{name: value})
	case core.FormatEnv:
		fmt.Printf("%s=%s\n", name, value)
		return nil
	default:
		fmt.Println(value)
		return nil
	}
}

// renderNamedValues prints a name-to-value map in the requested
// format, sorted by name for deterministic output.
func renderNamedValues(values map[string]string, format core.OutputFormat) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	switch format {
	case core.FormatJSON:
		return renderJSON(values)
	case core.FormatShell:
		return shellexport.Write(os.Stdout, values)
	default:
		for _, name := range names {
			fmt.Printf("%s=%s\n", name, values[name])
		}
		return nil
	}
}

func renderJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
