package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/calplan/internal/cli/formatter"
	"github.com/alexanderramin/calplan/internal/constraints"
	"github.com/alexanderramin/calplan/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type constraintFlags struct {
	start, end string
	density    string
	add        []string
	remove     []string
	examples   []int
	preset     string
	savePreset string
	clear      bool
	list       bool
}

func newConstraintsCmd(app *App) *cobra.Command {
	var f constraintFlags
	cmd := &cobra.Command{
		Use:   "constraints",
		Short: "Set working hours, meeting density and scheduling preferences",
		Long: `Set the scheduling constraints used by the next generation.

Without flags on a terminal a form is shown. Flags edit the saved
constraints in place; examples are numbered as printed by --examples.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if f.list {
				fmt.Fprint(out, formatter.FormatExamples(constraints.Examples, nil))
				return nil
			}

			st, err := app.Planner.Load(ctx)
			if err != nil {
				return err
			}
			if _, err := st.RequireContext(); err != nil {
				return err
			}

			var sc *domain.SchedulingConstraints
			if cmd.Flags().NFlag() == 0 && app.interactive() {
				sc, err = runConstraintForm(st.Constraints)
			} else {
				sc, err = applyConstraintFlags(st.Constraints, f, cmd.Flags().Changed)
			}
			if err != nil {
				return err
			}

			if _, err := app.Planner.SetConstraints(ctx, st, sc); err != nil {
				return err
			}
			if f.savePreset != "" {
				data, err := constraints.PresetFrom(sc).Marshal()
				if err != nil {
					return err
				}
				if err := os.WriteFile(f.savePreset, data, 0o644); err != nil {
					return fmt.Errorf("writing preset: %w", err)
				}
			}

			fmt.Fprint(out, formatter.FormatConstraints(sc))
			fmt.Fprintln(out, "\n"+formatter.Dim("Next: calplan generate"))
			return nil
		},
	}

	f.register(cmd.Flags())
	return cmd
}

func (f *constraintFlags) register(fl *pflag.FlagSet) {
	fl.StringVar(&f.start, "start", "", "working hours start (HH:MM)")
	fl.StringVar(&f.end, "end", "", "working hours end (HH:MM)")
	fl.StringVar(&f.density, "density", "", "meeting density: light, medium or heavy")
	fl.StringArrayVar(&f.add, "add", nil, "add a preference (repeatable)")
	fl.StringArrayVar(&f.remove, "remove", nil, "remove a preference by id (repeatable)")
	fl.IntSliceVar(&f.examples, "example", nil, "add a suggested preference by number (repeatable)")
	fl.StringVar(&f.preset, "preset", "", "apply a YAML preset file")
	fl.StringVar(&f.savePreset, "save-preset", "", "write the result to a YAML preset file")
	fl.BoolVar(&f.clear, "clear", false, "start from the defaults")
	fl.BoolVar(&f.list, "examples", false, "list the suggested preferences")
}

func runConstraintForm(base *domain.SchedulingConstraints) (*domain.SchedulingConstraints, error) {
	values := newConstraintForm(base)
	if err := values.build().Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, errors.New("cancelled")
		}
		return nil, err
	}
	return values.snapshot()
}

// applyConstraintFlags edits base with the given flags in order: clear,
// preset, hours, density, removals, then additions.
func applyConstraintFlags(base *domain.SchedulingConstraints, f constraintFlags, changed func(string) bool) (*domain.SchedulingConstraints, error) {
	c := collectorFor(base)
	if f.clear {
		c = constraints.New()
	}
	if f.preset != "" {
		p, err := constraints.LoadPreset(f.preset)
		if err != nil {
			return nil, err
		}
		if err := p.Apply(c); err != nil {
			return nil, err
		}
	}

	if changed("start") || changed("end") {
		cur := c.Snapshot()
		start, end := cur.WorkingHoursStart, cur.WorkingHoursEnd
		if changed("start") {
			start = f.start
		}
		if changed("end") {
			end = f.end
		}
		if err := c.SetWorkingHours(start, end); err != nil {
			return nil, err
		}
	}
	if changed("density") {
		if err := c.SetDensity(domain.MeetingDensity(f.density)); err != nil {
			return nil, err
		}
	}

	for _, id := range f.remove {
		if !c.Remove(id) {
			return nil, &domain.ValidationError{Field: "remove", Message: fmt.Sprintf("no preference with id %q", id)}
		}
	}
	for _, n := range f.examples {
		if n < 1 || n > len(constraints.Examples) {
			return nil, &domain.ValidationError{Field: "example", Message: fmt.Sprintf("pick a number from 1 to %d", len(constraints.Examples))}
		}
		c.AddExample(n - 1)
	}
	for _, text := range f.add {
		c.Add(text)
	}
	return c.Snapshot(), nil
}
