package suggestions

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-matcher/internal/editing"
	"github.com/jonathan/resume-matcher/internal/types"
)

// SkillGaps proposes adding job skills the résumé does not list. At most two
// required and one preferred skill are proposed. A skill counts as present
// when it equals, contains or is contained in a résumé skill, ignoring case.
// Résumés without a skills list get no proposals since there is nothing to
// append to.
func SkillGaps(resume *types.ResumeData, jd *types.JobDescription) []types.Suggestion {
	if resume == nil || jd == nil || len(resume.Skills) == 0 {
		return nil
	}

	held := make([]string, 0, len(resume.Skills))
	for _, s := range resume.Skills {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			held = append(held, s)
		}
	}
	original := resume.SkillsDisplay(editing.SkillsShown)

	var out []types.Suggestion
	add := func(skills []string, limit int, delta float64, priority types.Priority, reason, mapping string) {
		n := 0
		for _, skill := range skills {
			skill = strings.TrimSpace(skill)
			if n >= limit {
				return
			}
			if skill == "" || hasSkill(held, skill) {
				continue
			}
			out = append(out, types.Suggestion{
				SectionType:        types.SectionSkill,
				SectionID:          editing.SkillsID,
				OriginalText:       original,
				SuggestedText:      skill,
				Reason:             fmt.Sprintf(reason, skill),
				ExpectedScoreDelta: delta,
				JDMapping:          fmt.Sprintf(mapping, skill),
				Category:           "skills",
				Priority:           priority,
				Status:             types.StatusPending,
			})
			n++
		}
	}

	add(jd.RequiredSkills, maxRequiredSkills, requiredSkillDelta, types.PriorityHigh,
		"Add required skill '%s' from job description to improve keyword match", "Required skill: %s")
	add(jd.PreferredSkills, maxPreferredSkills, preferredSkillDelta, types.PriorityMedium,
		"Add preferred skill '%s' to strengthen application", "Preferred skill: %s")
	return out
}

func hasSkill(held []string, skill string) bool {
	skill = strings.ToLower(skill)
	for _, h := range held {
		if h == skill || strings.Contains(h, skill) || strings.Contains(skill, h) {
			return true
		}
	}
	return false
}
