package eventlog

import (
	"bufio"
	"bytes"
	"strings"

	"teamgraph/pkg/common"
)

// parseVariables reads the team grouping file. Each "Attribute" line opens a
// grouping variable, each "ids: <group>" line inside it names a group and the
// following line lists the group's sequence ids, separated by commas. NA
// entries are ignored.
func parseVariables(content []byte) map[string]map[string][]string {
	groups := make(map[string]map[string][]string)

	variable := ""
	group := ""
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if idx := strings.Index(line, "Attribute"); idx != -1 {
			variable = strings.Trim(line[idx+len("Attribute"):], ` :,"\t`)
			group = ""
			if variable != "" {
				if _, ok := groups[variable]; !ok {
					groups[variable] = make(map[string][]string)
				}
			}
			continue
		}
		if variable == "" {
			continue
		}

		if strings.HasPrefix(strings.TrimLeft(line, `"`), "ids") {
			_, name, ok := strings.Cut(line, ":")
			if !ok {
				continue
			}
			group = strings.Trim(name, ` ,"\t`)
			continue
		}

		if group == "" {
			continue
		}

		teams := make([]string, 0)
		for _, id := range strings.Split(line, ",") {
			id = strings.Trim(id, ` "\t`)
			if id == "" || id == "NA" {
				continue
			}
			if team := common.SequenceSegment(id, 1); team != "" {
				teams = append(teams, team)
			}
		}
		groups[variable][group] = teams
		group = ""
	}

	return groups
}
