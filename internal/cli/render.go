package cli

import (
	"fmt"
	"strings"
	"time"

	custsvc "rmclub-backend/internal/application/customers"
	dashsvc "rmclub-backend/internal/application/dashboard"
	"rmclub-backend/internal/application/portfolio"
	"rmclub-backend/internal/domain"
	"rmclub-backend/internal/pkg/moneyfmt"
)

const dateLayout = "02 Jan 2006"

var cellEscaper = strings.NewReplacer("|", "\\|", "\n", " ", "\r", " ")

// cell makes s safe inside a markdown table cell.
func cell(s string) string {
	return cellEscaper.Replace(s)
}

func day(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(dateLayout)
}

// RenderProfile renders a customer profile and payment schedule as markdown.
func RenderProfile(p *custsvc.Profile, due []portfolio.DueInstallment, currency string, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Customer.FullName())
	fmt.Fprintf(&b, "*%s* · %s\n\n", p.Customer.Status, p.Customer.Email)

	b.WriteString("## Portfolio\n\n")
	b.WriteString("| Invested | Current | P&L |\n|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| %s | %s | %s |\n\n", p.Display.Invested, p.Display.Current, p.Display.PnL)

	b.WriteString("## Next due\n\n")
	if p.NextDue == nil {
		b.WriteString("Nothing due.\n\n")
	} else {
		fmt.Fprintf(&b, "Installment #%d of **%s** on **%s**.\n\n",
			p.NextDue.InstallmentNo, moneyfmt.Format(p.NextDue.AmountExpected, currency), day(p.NextDue.DueDate, loc))
	}

	b.WriteString("## Investments\n\n")
	if len(p.Investments) == 0 {
		b.WriteString("No investments.\n\n")
	} else {
		b.WriteString("| Type | Started | Principal | Current |\n|---|---|---:|---:|\n")
		for _, inv := range p.Investments {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", cell(string(inv.Type)), day(inv.StartDate, loc),
				moneyfmt.Format(inv.PrincipalAmount, currency), moneyfmt.Format(inv.Analytics.Current(), currency))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Upcoming payments\n\n")
	if len(due) == 0 {
		b.WriteString("None.\n")
	} else {
		b.WriteString("| Due | # | Amount |\n|---|---:|---:|\n")
		for _, d := range due {
			fmt.Fprintf(&b, "| %s | %d | %s |\n", day(d.DueDate, loc), d.InstallmentNo, moneyfmt.Format(d.AmountExpected, currency))
		}
	}
	return b.String()
}

// RenderDashboard renders the admin dashboard as markdown.
func RenderDashboard(d *dashsvc.Dashboard, currency string, loc *time.Location) string {
	var b strings.Builder
	if d.UserName != "" {
		fmt.Fprintf(&b, "# %s, %s\n\n", d.Greeting, d.UserName)
	} else {
		fmt.Fprintf(&b, "# %s\n\n", d.Greeting)
	}

	b.WriteString("## Stats\n\n")
	fmt.Fprintf(&b, "- Customers: **%d**\n", d.Stats.TotalCustomers)
	for _, st := range domain.CustomerStatuses {
		fmt.Fprintf(&b, "  - %s: %d\n", st, d.Stats.ByStatus[st])
	}
	fmt.Fprintf(&b, "- Investments: **%d**\n", d.Stats.TotalInvestments)
	fmt.Fprintf(&b, "- Invested %s · Current %s · P&L %s\n\n",
		d.Stats.Display.Invested, d.Stats.Display.Current, d.Stats.Display.PnL)

	b.WriteString("## Recent customers\n\n")
	if len(d.RecentCustomers) == 0 {
		b.WriteString("None.\n\n")
	}
	for _, c := range d.RecentCustomers {
		fmt.Fprintf(&b, "- %s (%s), joined %s\n", c.FullName(), c.Status, day(c.CreatedAt, loc))
	}
	if len(d.RecentCustomers) > 0 {
		b.WriteString("\n")
	}

	writeInvestments(&b, "Recent investments", d.RecentInvestments, currency, loc)
	if len(d.TodayInvestments) > 0 {
		writeInvestments(&b, "Today", d.TodayInvestments, currency, loc)
	}

	b.WriteString("## Meetings\n\n")
	if len(d.UpcomingMeetings) == 0 {
		b.WriteString("None.\n")
	}
	for _, m := range d.UpcomingMeetings {
		fmt.Fprintf(&b, "- %s · %s (%s)\n", day(m.MeetingDate, loc), m.Title, m.LocationType)
	}
	return b.String()
}

func writeInvestments(b *strings.Builder, title string, invs []domain.Investment, currency string, loc *time.Location) {
	fmt.Fprintf(b, "## %s\n\n", title)
	if len(invs) == 0 {
		b.WriteString("None.\n\n")
		return
	}
	b.WriteString("| Customer | Type | Started | Principal |\n|---|---|---|---:|\n")
	for _, inv := range invs {
		fmt.Fprintf(b, "| %s | %s | %s | %s |\n", cell(inv.CustomerName), cell(string(inv.Type)), day(inv.StartDate, loc), moneyfmt.Format(inv.PrincipalAmount, currency))
	}
	b.WriteString("\n")
}
