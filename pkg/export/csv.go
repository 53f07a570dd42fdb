package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/dd0wney/cluso-archmodel/pkg/analytics"
	"github.com/dd0wney/cluso-archmodel/pkg/model"
)

// tierLabels are the human-readable tier names used in CSV and XML output,
// matching the dashboard's export vocabulary.
var tierLabels = map[model.Tier]string{
	model.TierDomain:     "Main Domain",
	model.TierCapability: "Secondary",
	model.TierProcess:    "Process",
}

// ToCSV serializes one row per node across all tiers: domains first, then
// capabilities, then processes, alphabetical within each tier.
func ToCSV(state *model.FrameworkState) (string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"Node", "Type", "X", "Y", "Color", "Parent", "Connections", "Description", "RiskScore", "Compliance"}
	if err := writer.Write(header); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, tier := range model.Tiers {
		for _, n := range state.NodesByTier(tier) {
			risk := ""
			if n.RiskScore != nil {
				risk = strconv.FormatFloat(*n.RiskScore, 'g', -1, 64)
			}
			record := []string{
				n.Name,
				tierLabels[tier],
				strconv.FormatFloat(n.X, 'g', -1, 64),
				strconv.FormatFloat(n.Y, 'g', -1, 64),
				n.Color,
				n.Parent,
				strconv.Itoa(analytics.ConnectionCount(state, n.Name)),
				n.Description,
				risk,
				n.Compliance,
			}
			if err := writer.Write(record); err != nil {
				return "", fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	// Flush before reading the buffer; the writer buffers rows internally.
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("CSV writer flush error: %w", err)
	}
	return buf.String(), nil
}
