package render

import (
	"fmt"
	"strings"

	"github.com/jcallaghan/betpool/internal/model"
)

// OptionRow is one option of a rendered line
type OptionRow struct {
	Symbol string `json:"symbol"`
	Option string `json:"option"`
	Stakes int    `json:"stakes"`
}

// Artifact is the outbound rendering request for a line: everything the
// displaying collaborator needs, as structured data plus a ready-made
// text block. The collaborator is responsible for binding the displayed
// message back to the line ID for future signal events.
type Artifact struct {
	LineID      model.LineID        `json:"line_id"`
	Question    string              `json:"question"`
	Status      model.LineStatus    `json:"status"`
	Options     []OptionRow         `json:"options"`
	TotalStaked int                 `json:"total_staked"`
	Payout      *model.PayoutResult `json:"payout,omitempty"`
	Text        string              `json:"text"`
}

// Service builds rendering artifacts for lines
type Service struct{}

// New creates a new render service
func New() *Service {
	return &Service{}
}

// Render builds the artifact for a line and its current stakes. The
// payout result is included only for resolved lines.
func (s *Service) Render(line *model.Line, stakes []*model.Stake, payout *model.PayoutResult) *Artifact {
	counts := make(map[string]int, len(line.Options))
	total := 0
	for _, stake := range stakes {
		counts[stake.Option]++
		total++
	}

	artifact := &Artifact{
		LineID:      line.ID,
		Question:    line.Question,
		Status:      line.Status,
		Options:     make([]OptionRow, len(line.Options)),
		TotalStaked: total,
		Payout:      payout,
	}

	for i, option := range line.Options {
		artifact.Options[i] = OptionRow{
			Symbol: line.Symbols[i],
			Option: option,
			Stakes: counts[option],
		}
	}

	artifact.Text = s.text(line, artifact)
	return artifact
}

func (s *Service) text(line *model.Line, artifact *Artifact) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 %s\n", line.Question)
	for _, row := range artifact.Options {
		marker := ""
		if line.Status == model.LineStatusResolved && row.Option == line.WinningOption {
			marker = " 🏆"
		}
		fmt.Fprintf(&b, "%s %s: %d staked%s\n", row.Symbol, row.Option, row.Stakes, marker)
	}

	switch line.Status {
	case model.LineStatusOpen:
		b.WriteString("React to place your stake. Remove your reaction to withdraw.")
	case model.LineStatusLocked:
		b.WriteString("🔒 Line is locked. Stakes are frozen until resolution.")
	case model.LineStatusResolved:
		fmt.Fprintf(&b, "✅ Resolved: %s.", line.WinningOption)
		if artifact.Payout != nil {
			b.WriteString(" " + artifact.Payout.Summary)
		}
	}

	return b.String()
}
