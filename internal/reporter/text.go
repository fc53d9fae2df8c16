package reporter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/noah-isme/school-scheduler/internal/models"
	"github.com/noah-isme/school-scheduler/internal/validator"
)

// RenderText produces the console summary.
func RenderText(schedule *models.Schedule, input *models.Input, report validator.Report) string {
	var b strings.Builder

	b.WriteString("School Schedule Summary\n")
	b.WriteString(strings.Repeat("-", 40) + "\n")
	fmt.Fprintf(&b, "Generated:          %s\n", schedule.GeneratedAt)
	fmt.Fprintf(&b, "Sections:           %d\n", len(schedule.Sections))
	fmt.Fprintf(&b, "Assignments:        %d\n", report.Metrics.TotalAssignments)
	fmt.Fprintf(&b, "Objective:          %.1f\n", schedule.Metadata.ObjectiveValue)
	fmt.Fprintf(&b, "Required fill:      %.1f%%\n", schedule.Metadata.RequiredFillRate*100)
	fmt.Fprintf(&b, "Elective fill:      %.1f%%\n", schedule.Metadata.ElectiveFillRate*100)
	fmt.Fprintf(&b, "Rebalance moves:    %d\n", schedule.Metadata.RebalanceMoves)

	if report.Passed {
		b.WriteString("Constraints:        all hold\n")
	} else {
		fmt.Fprintf(&b, "Constraints:        %d violations\n", len(report.Violations))
		for _, v := range report.Violations {
			fmt.Fprintf(&b, "  [%s] %s\n", v.Invariant, v.Message)
		}
	}

	if len(schedule.Unassigned) > 0 {
		fmt.Fprintf(&b, "Unassigned required courses: %d\n", len(schedule.Unassigned))
	}

	return b.String()
}

// RenderVerbose appends the metric breakdown the validate command's verbose
// flag asks for.
func RenderVerbose(report validator.Report) string {
	var b strings.Builder
	m := report.Metrics

	b.WriteString("\nCourse fill rates:\n")
	for _, courseID := range sortedKeys(m.CourseFillRates) {
		fmt.Fprintf(&b, "  %-12s %.1f%%\n", courseID, m.CourseFillRates[courseID]*100)
	}

	b.WriteString("Teacher load:\n")
	for _, teacherID := range sortedKeys(m.TeacherLoad) {
		fmt.Fprintf(&b, "  %-12s %d sections\n", teacherID, m.TeacherLoad[teacherID])
	}

	b.WriteString("Room utilization:\n")
	for _, roomID := range sortedKeys(m.RoomUtilization) {
		fmt.Fprintf(&b, "  %-12s %d slots\n", roomID, m.RoomUtilization[roomID])
	}

	fmt.Fprintf(&b, "Required satisfaction: %.1f%%\n", m.RequiredSatisfactionRate*100)

	if len(m.ElectiveRankDistribution) > 0 {
		b.WriteString("Elective ranks granted:\n")
		ranks := make([]int, 0, len(m.ElectiveRankDistribution))
		for rank := range m.ElectiveRankDistribution {
			ranks = append(ranks, rank)
		}
		sort.Ints(ranks)
		for _, rank := range ranks {
			fmt.Fprintf(&b, "  choice #%d: %d students\n", rank+1, m.ElectiveRankDistribution[rank])
		}
	}

	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
