package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hidrocoding/cotizador/internal/catalog"
	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/hidrocoding/cotizador/internal/money"
	"github.com/hidrocoding/cotizador/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// statusFlag collects statuses from a repeatable, comma-separated flag.
// Spanish names are accepted too: --status enviada,aprobada.
type statusFlag []domain.Status

var _ pflag.Value = (*statusFlag)(nil)

func (f *statusFlag) String() string {
	parts := make([]string, len(*f))
	for i, s := range *f {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}

func (f *statusFlag) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		s, err := domain.ParseStatus(part)
		if err != nil {
			return err
		}
		*f = append(*f, s)
	}
	return nil
}

func (f *statusFlag) Type() string { return "status" }

// lineFlag collects ad-hoc service lines written as
// "name|price[|qty[|category[|unit[|description]]]]".
type lineFlag []domain.ServiceLine

var _ pflag.Value = (*lineFlag)(nil)

func (f *lineFlag) String() string {
	names := make([]string, len(*f))
	for i, l := range *f {
		names[i] = l.Name
	}
	return strings.Join(names, ",")
}

func (f *lineFlag) Set(v string) error {
	l, err := parseLine(v)
	if err != nil {
		return err
	}
	*f = append(*f, l)
	return nil
}

func (f *lineFlag) Type() string { return "line" }

func parseLine(v string) (domain.ServiceLine, error) {
	parts := strings.Split(v, "|")
	if len(parts) < 2 {
		return domain.ServiceLine{}, fmt.Errorf("line %q: want name|price[|qty[|category[|unit[|description]]]]", v)
	}
	price, err := money.Parse(strings.TrimSpace(parts[1]))
	if err != nil {
		return domain.ServiceLine{}, fmt.Errorf("line %q: %w", v, err)
	}
	l := domain.ServiceLine{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(parts[0]),
		UnitPrice: price,
		Quantity:  1,
		Category:  domain.CategoryOther,
		Unit:      domain.UnitUnit,
	}
	if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
		if l.Quantity, err = strconv.Atoi(strings.TrimSpace(parts[2])); err != nil {
			return domain.ServiceLine{}, fmt.Errorf("line %q: invalid quantity: %w", v, err)
		}
	}
	if len(parts) > 3 && strings.TrimSpace(parts[3]) != "" {
		if l.Category, err = domain.ParseCategory(parts[3]); err != nil {
			return domain.ServiceLine{}, fmt.Errorf("line %q: %w", v, err)
		}
	}
	if len(parts) > 4 && strings.TrimSpace(parts[4]) != "" {
		if l.Unit, err = domain.ParseUnit(parts[4]); err != nil {
			return domain.ServiceLine{}, fmt.Errorf("line %q: %w", v, err)
		}
	}
	if len(parts) > 5 {
		l.Description = strings.TrimSpace(strings.Join(parts[5:], "|"))
	}
	return l, nil
}

// catalogLines turns "template-id[=qty]" references into lines.
func catalogLines(refs []string) ([]domain.ServiceLine, error) {
	lines := make([]domain.ServiceLine, 0, len(refs))
	for _, ref := range refs {
		id, qtyStr, hasQty := strings.Cut(ref, "=")
		qty := 1
		if hasQty {
			n, err := strconv.Atoi(qtyStr)
			if err != nil {
				return nil, fmt.Errorf("service %q: invalid quantity: %w", ref, err)
			}
			qty = n
		}
		t, err := catalog.Get(strings.TrimSpace(id))
		if err != nil {
			return nil, err
		}
		lines = append(lines, t.ToLine(qty))
	}
	return lines, nil
}

func parseDate(flag, v string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q (want YYYY-MM-DD): %w", flag, v, err)
	}
	return t, nil
}

// filterFlags is the flag set shared by commands that narrow the quotation
// list.
type filterFlags struct {
	statuses statusFlag
	from     string
	to       string
	client   string
	search   string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().Var(&f.statuses, "status", "only these statuses (repeatable or comma-separated)")
	cmd.Flags().StringVar(&f.from, "from", "", "issued on or after (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "issued on or before (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.client, "client", "", "client name or email contains")
	cmd.Flags().StringVar(&f.search, "search", "", "number, client or line text contains (overrides --client)")
}

func (f *filterFlags) filter() (report.Filter, error) {
	out := report.Filter{
		Statuses: []domain.Status(f.statuses),
		Client:   f.client,
		Search:   f.search,
	}
	var err error
	if f.from != "" {
		if out.From, err = parseDate("--from", f.from); err != nil {
			return out, err
		}
	}
	if f.to != "" {
		if out.To, err = parseDate("--to", f.to); err != nil {
			return out, err
		}
	}
	return out, nil
}
