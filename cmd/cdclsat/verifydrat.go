package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newVerifyDratCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify-drat <drat-file>",
		Short: "Structurally check a DRAT proof stream",
		Long: "Replays a DRAT proof's clause additions and deletions against a\n" +
			"clause multiset, flagging deletions of clauses never added and\n" +
			"reporting whether the stream ends in a refutation (the empty\n" +
			"clause). This is a structural check, not a full reverse unit\n" +
			"propagation proof checker.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrapf(err, "cdclsat: cannot open %q", args[0])
			}
			defer f.Close()

			report, err := verifyDrat(f)
			if err != nil {
				return err
			}
			fmt.Printf("verify-drat: %d additions, %d deletions, %d dangling deletion(s), refuted=%v\n",
				report.additions, report.deletions, report.danglingDeletions, report.refuted)
			if report.danglingDeletions > 0 {
				return errors.New("cdclsat: proof deletes a clause that was never added")
			}
			return nil
		},
	}
	return cmd
}

type dratReport struct {
	additions         int
	deletions         int
	danglingDeletions int
	refuted           bool
}

// verifyDrat replays r as a stream of TextDRATWriter records (drat.go):
// whitespace-separated signed literals terminated by "0", an optional
// leading "d" marking a deletion, and a bare "0" line marking the empty
// clause.
func verifyDrat(r *os.File) (dratReport, error) {
	sc := bufio.NewScanner(r)
	live := make(map[string]int) // canonical clause key -> live count
	var report dratReport

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		deletion := false
		if fields[0] == "d" {
			deletion = true
			fields = fields[1:]
		}

		lits, err := parseLits(fields)
		if err != nil {
			return report, err
		}
		if len(lits) == 0 {
			report.refuted = true
			continue
		}

		key := clauseKey(lits)
		if deletion {
			report.deletions++
			if live[key] <= 0 {
				report.danglingDeletions++
				continue
			}
			live[key]--
		} else {
			report.additions++
			live[key]++
		}
	}
	if err := sc.Err(); err != nil {
		return report, errors.Wrap(err, "cdclsat: scan error")
	}
	return report, nil
}

func parseLits(fields []string) ([]int, error) {
	lits := make([]int, 0, len(fields))
	for _, f := range fields {
		if f == "0" {
			break
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Errorf("cdclsat: malformed literal %q in DRAT record", f)
		}
		lits = append(lits, n)
	}
	return lits, nil
}

func clauseKey(lits []int) string {
	sorted := append([]int(nil), lits...)
	sort.Ints(sorted)
	var b strings.Builder
	for _, l := range sorted {
		fmt.Fprintf(&b, "%d,", l)
	}
	return b.String()
}
