package models

// SkillCategory groups skills in the catalog
type SkillCategory string

const (
	SkillProgramming SkillCategory = "programming"
	SkillDesign      SkillCategory = "design"
	SkillBusiness    SkillCategory = "business"
	SkillMarketing   SkillCategory = "marketing"
	SkillData        SkillCategory = "data"
	SkillOther       SkillCategory = "other"
)

// Skill is a named, categorized entry in the flat skill catalog. Names are unique.
type Skill struct {
	ID       int64         `json:"id" db:"id"`
	Name     string        `json:"name" db:"name"`
	Category SkillCategory `json:"category" db:"category"`
}
