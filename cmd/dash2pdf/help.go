package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: dash2pdf [flags] <url> <name> <tab|Null> <origin>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Log into <origin>/login/, render the dashboard at <url> and write")
	fmt.Fprintln(w, "<reports-dir>/<name>.pdf. Pass Null as <tab> to keep the default tab.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>        Config file name or path")
	fmt.Fprintln(w, "  -o, --reports-dir <dir>    Output directory (default: reports)")
	fmt.Fprintln(w, "      --idle-timeout <d>     Network-idle wait (default: 60s)")
	fmt.Fprintln(w, "      --settle <d>           Pause before printing (default: 10s)")
	fmt.Fprintln(w, "      --login-grace <d>      Wait for post-login navigation (default: 5s)")
	fmt.Fprintln(w, "      --html                 Also write the pruned DOM as HTML")
	fmt.Fprintln(w, "      --log-file <path>      Also write JSON logs to a rotated file")
	fmt.Fprintln(w, "  -v, --verbose              Debug logging")
	fmt.Fprintln(w, "  -q, --quiet                Only show errors")
	fmt.Fprintln(w, "      --version              Print version and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  PDF_DOWNLOAD_USER, PDF_DOWNLOAD_PASS   Replace user_details from the config")
	fmt.Fprintln(w, "  DASH2PDF_CONFIG                        Config file name or path")
	fmt.Fprintln(w, "  DASH2PDF_REPORTS_DIR                   Output directory")
	fmt.Fprintln(w, "  DASH2PDF_IDLE_TIMEOUT, DASH2PDF_SETTLE Wait overrides")
	fmt.Fprintln(w, "  DASH2PDF_LOG_LEVEL, DASH2PDF_LOG_FILE  Logging overrides")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN                        Custom Chrome binary")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit status is 0 when the PDF was written and 1 otherwise.")
}
