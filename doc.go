// Package dash2pdf exports an authenticated web dashboard to a PDF using
// headless Chrome.
//
// # Quick Start
//
// Parse the run parameters, resolve credentials and export:
//
//	p, err := dash2pdf.ParseArgs([]string{
//	    "https://host/superset/dashboard/7/", "q4report", dash2pdf.NoTab, "https://host",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	creds := dash2pdf.ResolveCredentials(staticCreds, os.LookupEnv)
//
//	exp := dash2pdf.NewExporter(dash2pdf.WithReportsDir("reports"))
//	result, err := exp.Export(ctx, p, creds)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Path) // reports/q4report.pdf
//
// # Export Pipeline
//
// One Export call runs these stages strictly in order:
//
//  1. Browser launch (headless, maximized, sandbox disabled)
//  2. Login at <origin>/login/ in an isolated browser context
//  3. Session transfer: cookies copied into a second context, login context closed
//  4. Dashboard render: network-idle wait, size measurement, optional tab click,
//     removal of chrome elements listed in the PrunePolicy
//  5. PDF print at the measured size, validated and written atomically
//
// The first failing stage aborts the run. There are no retries. The browser
// is closed on every path.
//
// # Configuration
//
// Waits are options because dashboards vary in load time:
//
//	exp := dash2pdf.NewExporter(
//	    dash2pdf.WithIdleTimeout(2 * time.Minute),
//	    dash2pdf.WithSettleDelay(5 * time.Second),
//	    dash2pdf.WithPrunePolicy(dash2pdf.PrunePolicy{Rules: []dash2pdf.PruneRule{
//	        {Name: "toolbar", Selector: ".dashboard-header"},
//	    }}),
//	)
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
// Use WithBrowserBin (or ROD_BROWSER_BIN in the CLI) to select a custom binary.
package dash2pdf
