package report

import (
	"fmt"
	"sort"
	"strings"

	"CrashPulse/internal/model"
	"CrashPulse/internal/pipeline"
)

// Summary formats a one-test result as plain text for logs and CLI output.
// Numeric entries come first in a stable order, recorded metric failures
// last.
func Summary(testLabel string, res *model.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== %s ===\n", testLabel)
	if res.Signal != nil {
		fmt.Fprintf(&b, "samples: %d @ %.0f Hz\n", res.Signal.Len(), res.Signal.SampleRate)
	}

	keys := make([]string, 0, len(res.Entries))
	for k := range res.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var failures []string
	for _, k := range keys {
		v := res.Entries[k]
		if v.Kind == model.ErrorText {
			failures = append(failures, fmt.Sprintf("%s: %s", strings.TrimPrefix(k, pipeline.ErrorKeyPrefix), v.Str))
			continue
		}
		fmt.Fprintf(&b, "%-32s %12.3f\n", k, v.Num)
	}
	for _, f := range failures {
		fmt.Fprintf(&b, "FAILED  %s\n", f)
	}
	return b.String()
}
