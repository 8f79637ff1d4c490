package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"bilty/internal/analytics"
	"bilty/internal/api"
	"bilty/internal/cli"
	"bilty/internal/core"
	"bilty/internal/entries"
	"bilty/internal/export"
	"bilty/internal/guard"
	"bilty/internal/log"
)

const usage = `usage: bilty <command> [flags]

commands:
  login      -email -password [-remember]
  logout
  whoami
  entries    [-search] [-status] [-fy] [-from] [-to] [-sort]
  analysis   [-fy]
  dashboard
  export     [-fy] [-name]
  users      [-search] [-role] [-active]
  health
`

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	app := cli.NewApp(logger, cfg)
	defer app.Close()

	ctx := context.Background()
	var err error
	switch cmd := os.Args[1]; cmd {
	case "login":
		err = runLogin(ctx, app, os.Args[2:])
	case "logout":
		err = runLogout(ctx, app)
	case "whoami":
		err = runWhoami(ctx, app)
	case "entries":
		err = runEntries(ctx, app, os.Args[2:])
	case "analysis":
		err = runAnalysis(ctx, app, os.Args[2:])
	case "dashboard":
		err = runDashboard(ctx, app)
	case "export":
		err = runExport(ctx, app, os.Args[2:])
	case "users":
		err = runUsers(ctx, app, os.Args[2:])
	case "health":
		err = runHealth(ctx, app)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		logger.Error("command failed", log.FieldError, err)
		os.Exit(1)
	}
}

func runLogin(ctx context.Context, app *cli.App, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	remember := fs.Bool("remember", false, "remember the email for the next login")
	fs.Parse(args)

	if *email == "" {
		if saved, ok := app.State.RememberedEmail(); ok {
			*email = saved
		}
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("email and password are required")
	}

	res := app.Session.Login(ctx, *email, *password)
	if !res.Success {
		return fmt.Errorf("login: %s", res.Error)
	}

	// Only the email is remembered, never the password.
	if *remember {
		if err := app.State.RememberEmail(*email); err != nil {
			app.Logger.Warn("remember email failed", log.FieldError, err)
		}
	} else {
		_ = app.State.ForgetEmail()
	}

	user, _ := app.Session.User()
	fmt.Printf("logged in as %s\n", user.Email)
	return nil
}

func runLogout(ctx context.Context, app *cli.App) error {
	redirect := app.Session.Logout(ctx)
	fmt.Printf("logged out, next stop %s\n", redirect)
	return nil
}

func runWhoami(ctx context.Context, app *cli.App) error {
	app.Session.Init(ctx)
	user, ok := app.Session.User()
	if !ok {
		fmt.Println("not logged in")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "email\t%s\n", user.Email)
	fmt.Fprintf(w, "owner\t%s\n", user.Profile.OwnerName)
	fmt.Fprintf(w, "company\t%s\n", user.Profile.CompanyName)
	fmt.Fprintf(w, "role\t%s\n", user.Role)
	return w.Flush()
}

func runEntries(ctx context.Context, app *cli.App, args []string) error {
	fs := flag.NewFlagSet("entries", flag.ExitOnError)
	search := fs.String("search", "", "match vehicle, route, invoice or owner")
	status := fs.String("status", "", "PENDING, IN_PROGRESS, COMPLETED or CANCELLED")
	fy := fs.String("fy", "", "financial year, e.g. 2025-26")
	from := fs.String("from", "", "start date YYYY-MM-DD")
	to := fs.String("to", "", "end date YYYY-MM-DD")
	sortKey := fs.String("sort", string(entries.SortDateDesc), "date-desc, date-asc, amount-desc, amount-asc, vehicle or status")
	fs.Parse(args)

	if err := requireSession(ctx, app, "/entry"); err != nil {
		return err
	}

	filter := entries.Filter{
		Search:        *search,
		Status:        core.BillStatus(*status),
		FinancialYear: *fy,
	}
	var err error
	if *from != "" {
		if filter.From, err = core.ParseFormDate(*from); err != nil {
			return fmt.Errorf("parse -from: %w", err)
		}
	}
	if *to != "" {
		if filter.To, err = core.ParseFormDate(*to); err != nil {
			return fmt.Errorf("parse -to: %w", err)
		}
	}

	app.Entries.SetFilter(filter)
	app.Entries.SetSort(entries.SortKey(*sortKey))
	if !app.Entries.Load(ctx) {
		return fmt.Errorf("load entries: %s", app.Entries.LastError())
	}

	rows := app.Entries.Entries()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tVEHICLE\tROUTE\tTOTAL\tSTATUS")
	for _, b := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%s\n",
			b.Ref(), b.Date.FormString(), b.VehicleNo, b.Route(),
			b.TransportBillData.Total, b.TransportBillData.Status)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("%d of %d entries\n", len(rows), app.Entries.Total())
	return nil
}

func runAnalysis(ctx context.Context, app *cli.App, args []string) error {
	fs := flag.NewFlagSet("analysis", flag.ExitOnError)
	fy := fs.String("fy", "", "financial year, defaults to the current one")
	fs.Parse(args)

	if err := requireSession(ctx, app, "/analysis"); err != nil {
		return err
	}
	year := *fy
	if year == "" {
		year = core.CurrentFinancialYear(time.Now())
	}

	bills, err := fetchAll(ctx, app, api.EntryFilter{FinancialYear: year})
	if err != nil {
		return err
	}
	s := analytics.Summarize(bills, time.Now())

	fmt.Printf("financial year %s\n\n", year)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "trips\t%d\n", s.TotalTrips)
	fmt.Fprintf(w, "revenue\t%.2f\n", s.TotalRevenue)
	fmt.Fprintf(w, "avg / trip\t%.2f\n", s.AvgRevenuePerTrip)
	fmt.Fprintf(w, "completed\t%.1f%%\n", s.CompletionRate)
	fmt.Fprintf(w, "pending\t%.1f%%\n", s.PendingRate)
	fmt.Fprintf(w, "revenue growth\t%.1f%%\n", s.RevenueGrowth)
	w.Flush()

	fmt.Println("\ntop routes")
	w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, r := range s.TopRoutes {
		fmt.Fprintf(w, "%s\t%d trips\t%.2f\n", r.Route, r.Trips, r.Revenue)
	}
	w.Flush()

	fmt.Println("\ntop vehicles")
	w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, v := range s.TopVehicles {
		fmt.Fprintf(w, "%s\t%d trips\t%.2f\n", v.VehicleNo, v.Trips, v.Revenue)
	}
	w.Flush()

	fmt.Println("\nmonthly trend")
	w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, m := range s.MonthlyTrend {
		fmt.Fprintf(w, "%s\t%d trips\t%.2f\n", m.Label, m.Trips, m.Revenue)
	}
	return w.Flush()
}

func runDashboard(ctx context.Context, app *cli.App) error {
	if err := requireSession(ctx, app, "/dashboard"); err != nil {
		return err
	}
	bills, err := fetchAll(ctx, app, api.EntryFilter{})
	if err != nil {
		return err
	}
	d := analytics.Dashboard(bills, time.Now())

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "trips this month\t%d\n", d.TripsThisMonth)
	fmt.Fprintf(w, "trips last month\t%d\n", d.TripsLastMonth)
	fmt.Fprintf(w, "monthly revenue\t%.2f\n", d.MonthlyRevenue)
	fmt.Fprintf(w, "revenue growth\t%.1f%%\n", d.RevenueGrowth)
	fmt.Fprintf(w, "active vehicles\t%d\n", d.ActiveVehicles)
	fmt.Fprintf(w, "avg / trip\t%.2f\n", d.AvgRevenuePerTrip)
	w.Flush()

	fmt.Println("\ntop vehicles")
	w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, v := range d.TopVehicles {
		fmt.Fprintf(w, "%s\t%d trips\t%.2f\n", v.VehicleNo, v.Trips, v.Revenue)
	}
	w.Flush()

	fmt.Println("\nrecent entries")
	w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, b := range d.RecentEntries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\n",
			b.Date.FormString(), b.VehicleNo, b.Route(), b.TransportBillData.Total)
	}
	return w.Flush()
}

func runExport(ctx context.Context, app *cli.App, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fy := fs.String("fy", "", "financial year, defaults to the current one")
	name := fs.String("name", "transport-entries", "report name")
	fs.Parse(args)

	if err := requireSession(ctx, app, "/reports"); err != nil {
		return err
	}
	year := *fy
	if year == "" {
		year = core.CurrentFinancialYear(time.Now())
	}

	bills, err := fetchAll(ctx, app, api.EntryFilter{FinancialYear: year})
	if err != nil {
		return err
	}

	writer, err := app.ReportWriter(ctx)
	if err != nil {
		return fmt.Errorf("export backend: %w", err)
	}
	ref, err := writer.WriteReport(ctx, export.EntriesReport(*name, bills))
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	app.Logger.Info("report written",
		log.FieldOperation, log.OpExport,
		log.FieldRowCount, len(bills))
	fmt.Printf("exported %d entries to %s\n", len(bills), ref)
	return nil
}

func runUsers(ctx context.Context, app *cli.App, args []string) error {
	fs := flag.NewFlagSet("users", flag.ExitOnError)
	search := fs.String("search", "", "match email or company")
	role := fs.String("role", "", "filter by role")
	active := fs.String("active", "", "true or false")
	fs.Parse(args)

	if err := requireSession(ctx, app, "/profile"); err != nil {
		return err
	}

	filter := api.UserFilter{Search: *search, Role: *role}
	if *active != "" {
		v, err := strconv.ParseBool(*active)
		if err != nil {
			return fmt.Errorf("parse -active: %w", err)
		}
		filter.IsActive = &v
	}

	resp := app.Client.Users(ctx, filter)
	if !resp.Success || resp.Data == nil {
		return fmt.Errorf("list users: %s", resp.Error)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "EMAIL\tCOMPANY\tROLE\tACTIVE")
	for _, u := range resp.Data.Users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", u.Email, u.Profile.CompanyName, u.Role, u.IsActive)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("%d users\n", resp.Data.Total)
	return nil
}

func runHealth(ctx context.Context, app *cli.App) error {
	resp := app.Client.Health(ctx)
	if !resp.Success {
		return fmt.Errorf("backend unhealthy: %s", resp.Error)
	}
	fmt.Println("backend healthy")
	return nil
}

// requireSession resolves the session and applies the route guard for
// the view the command corresponds to.
func requireSession(ctx context.Context, app *cli.App, path string) error {
	app.Session.Init(ctx)
	if d := guard.Protect(app.Session.Status(), path); d.Action == guard.Redirect {
		return fmt.Errorf("not logged in, run: bilty login")
	}
	return nil
}

// fetchAll pages through the entries endpoint until the backend reports
// no further pages.
func fetchAll(ctx context.Context, app *cli.App, filter api.EntryFilter) ([]core.TransportBill, error) {
	var all []core.TransportBill
	filter.Page = 1
	for {
		resp := app.Client.Entries(ctx, filter)
		if !resp.Success || resp.Data == nil {
			return nil, fmt.Errorf("fetch entries: %s", resp.Error)
		}
		all = append(all, resp.Data.Entries...)
		if resp.Data.Pages <= filter.Page || len(resp.Data.Entries) == 0 {
			return all, nil
		}
		filter.Page++
	}
}
