package brackets

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Dosada05/tournament-predictor/models"
)

// SlotKind discriminates the closed set of bracket-slot placeholder forms.
type SlotKind int

const (
	SlotGroupWinner SlotKind = iota + 1
	SlotGroupRunnerUp
	SlotBestThird
	SlotStageWinner
	SlotStageLoser
)

// SlotRef is a parsed placeholder expression. Placeholders are parsed once
// at data-load time; resolution works on the variant, never on the string.
type SlotRef struct {
	Kind SlotKind

	// Group is set for SlotGroupWinner / SlotGroupRunnerUp.
	Group string
	// Groups lists the candidate groups printed on a best-third slot. It is
	// informational only: which qualifier actually fills the slot is
	// decided positionally across all round-of-32 third-place slots.
	Groups []string
	// Stage and Index identify the source match for SlotStageWinner /
	// SlotStageLoser ("Winner R32 M3").
	Stage models.Stage
	Index int
}

var stageTokens = map[string]models.Stage{
	"R32": models.StageRound32,
	"R16": models.StageRound16,
	"QF":  models.StageQuarter,
	"SF":  models.StageSemi,
}

// StageToken returns the short token used in placeholder expressions.
func StageToken(stage models.Stage) string {
	for token, s := range stageTokens {
		if s == stage {
			return token
		}
	}
	return string(stage)
}

// ParseSlotRef parses one placeholder expression. Recognized forms:
//
//	Winner <G>          Runner-up <G>
//	3rd <G>/<G>/...
//	Winner <STAGE> M<n> Loser <STAGE> M<n>   with STAGE in R32, R16, QF, SF
func ParseSlotRef(expr string) (SlotRef, error) {
	fields := strings.Fields(strings.TrimSpace(expr))
	if len(fields) == 0 {
		return SlotRef{}, fmt.Errorf("empty slot expression")
	}

	switch fields[0] {
	case "Winner", "Loser":
		if len(fields) == 2 && fields[0] == "Winner" {
			return groupRef(SlotGroupWinner, fields[1], expr)
		}
		if len(fields) == 3 {
			stage, ok := stageTokens[fields[1]]
			if !ok {
				return SlotRef{}, fmt.Errorf("slot %q: unknown stage token %q", expr, fields[1])
			}
			index, err := parseMatchIndex(fields[2])
			if err != nil {
				return SlotRef{}, fmt.Errorf("slot %q: %w", expr, err)
			}
			kind := SlotStageWinner
			if fields[0] == "Loser" {
				kind = SlotStageLoser
			}
			if _, err := AbsoluteNumber(stage, index); err != nil {
				return SlotRef{}, fmt.Errorf("slot %q: %w", expr, err)
			}
			return SlotRef{Kind: kind, Stage: stage, Index: index}, nil
		}
		return SlotRef{}, fmt.Errorf("malformed slot expression %q", expr)

	case "Runner-up":
		if len(fields) != 2 {
			return SlotRef{}, fmt.Errorf("malformed slot expression %q", expr)
		}
		return groupRef(SlotGroupRunnerUp, fields[1], expr)

	case "3rd":
		if len(fields) != 2 {
			return SlotRef{}, fmt.Errorf("malformed slot expression %q", expr)
		}
		groups := strings.Split(fields[1], "/")
		for _, g := range groups {
			if !validGroupLabel(g) {
				return SlotRef{}, fmt.Errorf("slot %q: invalid group label %q", expr, g)
			}
		}
		return SlotRef{Kind: SlotBestThird, Groups: groups}, nil

	default:
		return SlotRef{}, fmt.Errorf("unrecognized slot expression %q", expr)
	}
}

func groupRef(kind SlotKind, label, expr string) (SlotRef, error) {
	if !validGroupLabel(label) {
		return SlotRef{}, fmt.Errorf("slot %q: invalid group label %q", expr, label)
	}
	return SlotRef{Kind: kind, Group: label}, nil
}

func validGroupLabel(label string) bool {
	return len(label) == 1 && label[0] >= 'A' && label[0] <= 'Z'
}

func parseMatchIndex(token string) (int, error) {
	if !strings.HasPrefix(token, "M") {
		return 0, fmt.Errorf("expected match token M<n>, got %q", token)
	}
	index, err := strconv.Atoi(token[1:])
	if err != nil || index < 1 {
		return 0, fmt.Errorf("invalid match index %q", token)
	}
	return index, nil
}

// String renders the canonical text form of the reference.
func (r SlotRef) String() string {
	switch r.Kind {
	case SlotGroupWinner:
		return "Winner " + r.Group
	case SlotGroupRunnerUp:
		return "Runner-up " + r.Group
	case SlotBestThird:
		return "3rd " + strings.Join(r.Groups, "/")
	case SlotStageWinner:
		return fmt.Sprintf("Winner %s M%d", StageToken(r.Stage), r.Index)
	case SlotStageLoser:
		return fmt.Sprintf("Loser %s M%d", StageToken(r.Stage), r.Index)
	default:
		return ""
	}
}
