// bill-case marks every invoice-eligible time entry of a case as billed
// under one invoice reference. The batch is all-or-nothing.
package main

import (
	"case_team_app_go/clock"
	"case_team_app_go/config"
	"case_team_app_go/db"
	"case_team_app_go/services"
	"fmt"
	"log"
	"os"

	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var caseID, invoiceRef, from, to, actor string
	var dryRun bool

	flagSet := pflag.NewFlagSet("bill-case", pflag.ContinueOnError)
	flagSet.StringVar(&caseID, "case", "", "case ID to bill (required)")
	flagSet.StringVar(&invoiceRef, "invoice", "", "invoice reference stamped on every entry (required)")
	flagSet.StringVar(&from, "from", "", "first work date to include, YYYY-MM-DD")
	flagSet.StringVar(&to, "to", "", "last work date to include, YYYY-MM-DD")
	flagSet.StringVar(&actor, "actor", "billing-cli", "actor recorded in the audit log")
	flagSet.BoolVar(&dryRun, "dry-run", false, "list the entries that would be billed without writing")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if caseID == "" {
		return fmt.Errorf("--case is required")
	}
	if invoiceRef == "" && !dryRun {
		return fmt.Errorf("--invoice is required")
	}

	r, err := services.ParseDateRange(from, to)
	if err != nil {
		return err
	}

	cfg := config.Load()
	if err := db.Initialize(cfg); err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer db.Close()

	repo := services.NewGormRepository(db.DB, cfg.CaseNumberPrefix)
	billing := services.NewBillingService(repo, clock.Real(), services.NewSyncAuditRecorder(db.DB), nil)

	entries, err := billing.BillCase(services.AuditContext{ActorID: actor}, caseID, invoiceRef, r, dryRun)
	if err != nil {
		return err
	}

	var hours, amount float64
	for _, e := range entries {
		hours += e.Hours
		amount += e.Amount
		fmt.Printf("  %s  %s  %6.2fh  %10.2f\n", e.ID, e.WorkDate.Format("2006-01-02"), e.Hours, e.Amount)
	}
	if dryRun {
		log.Printf("[BILLING] Dry run: %d entries, %.2f hours, %.2f total", len(entries), hours, amount)
		return nil
	}
	log.Printf("[BILLING] Invoice %s: %d entries, %.2f hours, %.2f total", invoiceRef, len(entries), hours, amount)
	return nil
}
