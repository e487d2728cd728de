package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dafibh/tally/tally-backend/internal/config"
	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/repository/postgres"
	"github.com/dafibh/tally/tally-backend/internal/service"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

var commands = []subcommands.Command{
	&migrateCmd{},
	&ownersCmd{},
	&recalculateCmd{},
	&projectCmd{},
	&instancesCmd{},
	&rollupCmd{},
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}

func usageError(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitUsageError
}

type migrateCmd struct {
	down bool
}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "apply or roll back schema migrations" }
func (*migrateCmd) Usage() string {
	return `tallyctl migrate [-down]

  Applies every pending migration, or rolls back the latest one with -down.
`
}

func (c *migrateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.down, "down", false, "roll back one migration")
}

func (c *migrateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.LoadWorker()
	if err != nil {
		return usageError(err)
	}
	if c.down {
		err = postgres.RollbackMigration(cfg.DatabaseURL)
	} else {
		err = postgres.RunMigrations(cfg.DatabaseURL)
	}
	if err != nil {
		return fail(err)
	}
	fmt.Println("ok")
	return subcommands.ExitSuccess
}

type ownersCmd struct{}

func (*ownersCmd) Name() string             { return "owners" }
func (*ownersCmd) Synopsis() string         { return "list registered owners" }
func (*ownersCmd) Usage() string            { return "tallyctl owners\n" }
func (*ownersCmd) SetFlags(f *flag.FlagSet) {}

func (*ownersCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := openEnv(ctx)
	if err != nil {
		return fail(err)
	}
	defer e.Close()

	owners, err := e.owners.ListOwners()
	if err != nil {
		return fail(err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tAUTH0\tEMAIL")
	for _, o := range owners {
		fmt.Fprintf(w, "%s\t%s\t%s\n", o.ID, o.Auth0ID, o.Email)
	}
	w.Flush()
	return subcommands.ExitSuccess
}

type recalculateCmd struct {
	period  periodFlags
	cascade bool
}

func (*recalculateCmd) Name() string     { return "recalculate" }
func (*recalculateCmd) Synopsis() string { return "recalculate and store a month's balance" }
func (*recalculateCmd) Usage() string {
	return `tallyctl recalculate -owner <id> -year <y> -month <m> [-cascade]

  Recomputes the stored balance for one month. With -cascade every stored
  later month is recomputed too, oldest first.
`
}

func (c *recalculateCmd) SetFlags(f *flag.FlagSet) {
	c.period.register(f)
	f.BoolVar(&c.cascade, "cascade", false, "also recalculate every stored later month")
}

func (c *recalculateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.period.validate(); err != nil {
		return usageError(err)
	}
	e, err := openEnv(ctx)
	if err != nil {
		return fail(err)
	}
	defer e.Close()

	ownerID, err := e.resolveOwner(c.period.owner)
	if err != nil {
		return fail(err)
	}

	var balances []*domain.PeriodBalance
	if c.cascade {
		balances, err = e.balances.RecalculateFrom(ctx, ownerID, c.period.year, c.period.month)
	} else {
		var b *domain.PeriodBalance
		b, err = e.balances.Recalculate(ctx, ownerID, c.period.year, c.period.month)
		balances = []*domain.PeriodBalance{b}
	}
	if err != nil {
		return fail(err)
	}
	printBalances(balances)
	return subcommands.ExitSuccess
}

func printBalances(balances []*domain.PeriodBalance) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "PERIOD\tOPENING\tINCOME\tEXPENSE\tCLOSING\t")
	for _, b := range balances {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n", b.Period(),
			b.OpeningBalance.StringFixed(2), b.TotalIncome.StringFixed(2),
			b.TotalExpense.StringFixed(2), b.ClosingBalance.StringFixed(2))
	}
	w.Flush()
}

type projectCmd struct {
	period periodFlags
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "forecast a month's closing balance" }
func (*projectCmd) Usage() string {
	return `tallyctl project -owner <id> -year <y> -month <m>

  Combines actual entries with active recurring rules. Nothing is stored.
`
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) { c.period.register(f) }

func (c *projectCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.period.validate(); err != nil {
		return usageError(err)
	}
	e, err := openEnv(ctx)
	if err != nil {
		return fail(err)
	}
	defer e.Close()

	ownerID, err := e.resolveOwner(c.period.owner)
	if err != nil {
		return fail(err)
	}
	p, err := e.projection.Project(ctx, ownerID, c.period.year, c.period.month)
	if err != nil {
		return fail(err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "mode\t%s\n", p.Mode)
	fmt.Fprintf(w, "opening\t%s\n", p.OpeningBalance.StringFixed(2))
	fmt.Fprintf(w, "income\t%s actual + %s projected\n", p.ActualIncome.StringFixed(2), p.ProjectedIncome.StringFixed(2))
	fmt.Fprintf(w, "expense\t%s actual + %s projected\n", p.ActualExpense.StringFixed(2), p.ProjectedExpense.StringFixed(2))
	fmt.Fprintf(w, "closing\t%s\n", p.ProjectedClosingBalance.StringFixed(2))
	fmt.Fprintf(w, "rules\t%d applied, %d skipped\n", p.RulesApplied, p.RulesSkipped)
	w.Flush()
	return subcommands.ExitSuccess
}

type instancesCmd struct {
	period periodFlags
}

func (*instancesCmd) Name() string { return "instances" }
func (*instancesCmd) Synopsis() string {
	return "list the entries active recurring rules produce for a month"
}
func (*instancesCmd) Usage() string {
	return "tallyctl instances -owner <id> -year <y> -month <m>\n"
}

func (c *instancesCmd) SetFlags(f *flag.FlagSet) { c.period.register(f) }

func (c *instancesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.period.validate(); err != nil {
		return usageError(err)
	}
	e, err := openEnv(ctx)
	if err != nil {
		return fail(err)
	}
	defer e.Close()

	ownerID, err := e.resolveOwner(c.period.owner)
	if err != nil {
		return fail(err)
	}
	instances, err := e.recurring.GenerateInstances(ownerID, c.period.year, c.period.month)
	if err != nil {
		return fail(err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RULE\tDATE\tKIND\tAMOUNT\tNAME")
	for _, inst := range instances {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", inst.RuleID, inst.Date.Format("2006-01-02"), inst.Kind, inst.Amount.StringFixed(2), inst.Name)
	}
	w.Flush()
	return subcommands.ExitSuccess
}

type rollupCmd struct {
	concurrency int
}

func (*rollupCmd) Name() string     { return "rollup" }
func (*rollupCmd) Synopsis() string { return "recalculate the current month for every owner once" }
func (*rollupCmd) Usage() string {
	return "tallyctl rollup [-concurrency n]\n"
}

func (c *rollupCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.concurrency, "concurrency", 4, "owners recalculated in parallel")
}

func (c *rollupCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := openEnv(ctx)
	if err != nil {
		return fail(err)
	}
	defer e.Close()

	worker := service.NewRollupWorker(e.balances, e.ownerRepo, log.Logger, service.RollupWorkerConfig{
		Concurrency: c.concurrency,
	})
	result := worker.RunOnce(ctx)
	fmt.Printf("owners=%d recalculated=%d errors=%d\n", result.Owners, result.Recalculated, result.Errors)
	if result.Errors > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
