package graph

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"teamgraph/pkg/common"
)

const statsMinSeed = 1000000

// rowGroup is one team or one sequence the descriptive stats compare.
type rowGroup struct {
	name string
	rows []common.EventRecord
}

func groupByTeam(rows []common.EventRecord, teams []string) []rowGroup {
	groups := make([]rowGroup, len(teams))
	index := make(map[string]int, len(teams))
	for i, t := range teams {
		groups[i] = rowGroup{name: t}
		index[t] = i
	}
	for _, e := range rows {
		if i, ok := index[e.Team()]; ok {
			groups[i].rows = append(groups[i].rows, e)
		}
	}
	return groups
}

// groupBySequence groups rows by sequence id in first-appearance order. A
// sequence is one meeting of one team.
func groupBySequence(rows []common.EventRecord) []rowGroup {
	groups := make([]rowGroup, 0)
	index := make(map[string]int)
	for _, e := range rows {
		i, ok := index[e.SequenceID]
		if !ok {
			i = len(groups)
			index[e.SequenceID] = i
			groups = append(groups, rowGroup{name: e.SequenceID})
		}
		groups[i].rows = append(groups[i].rows, e)
	}
	return groups
}

// describe reports, for every key, the group with the highest and the
// lowest count and optionally the mean over groups. Ties keep the first
// group in order.
func describe[K comparable](keys []K, groups []rowGroup, count func([]common.EventRecord) map[K]int, unit string, withMean bool) map[K]string {
	counts := make([]map[K]int, len(groups))
	for i, g := range groups {
		counts[i] = count(g.rows)
	}

	out := make(map[K]string, len(keys))
	for _, key := range keys {
		maxN, minN, sum := 0, statsMinSeed, 0
		maxName, minName := "", ""
		for i, g := range groups {
			n := counts[i][key]
			if n > maxN {
				maxN, maxName = n, g.name
			}
			if n < minN {
				minN, minName = n, g.name
			}
			sum += n
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Most frequent %s: %s (%d) Least frequent %s: %s (%d)", unit, maxName, maxN, unit, minName, minN)
		if withMean && len(groups) > 0 {
			fmt.Fprintf(&b, " Average frequency: %s", formatDecimal(float64(sum)/float64(len(groups))))
		}
		out[key] = b.String()
	}
	return out
}

// descriptiveStats builds the stats text of every key of an aggregated
// selection: the team block when all teams are selected, the meeting block
// when all meetings are selected, joined by a space.
func descriptiveStats[K comparable](keys []K, sc scope, keyed []common.EventRecord, count func([]common.EventRecord) map[K]int) map[K]string {
	var blocks []map[K]string
	if sc.teamAll {
		blocks = append(blocks, describe(keys, groupByTeam(keyed, sc.teams), count, "team", true))
	}
	if sc.meetingAll {
		blocks = append(blocks, describe(keys, groupBySequence(keyed), count, "meeting", false))
	}
	if len(blocks) == 0 {
		return nil
	}

	out := make(map[K]string, len(keys))
	for _, key := range keys {
		parts := make([]string, 0, len(blocks))
		for _, block := range blocks {
			parts = append(parts, block[key])
		}
		out[key] = strings.Join(parts, " ")
	}
	return out
}

// formatDecimal rounds to two decimals and always keeps a fractional part
// ("2.5", "3.0", "2.33").
func formatDecimal(v float64) string {
	s := strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// formatNumber renders a float without trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
