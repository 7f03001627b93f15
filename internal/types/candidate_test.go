package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidateRecord_HasSkill(t *testing.T) {
	c := CandidateRecord{Skills: []string{"Go", "Python"}, Frameworks: []string{"Docker"}}

	assert.True(t, c.HasSkill("Go"))
	assert.True(t, c.HasSkill("Docker"))
	assert.False(t, c.HasSkill("go"), "names are canonical and compared exactly")
	assert.False(t, c.HasSkill("Rust"))
}

func TestCandidateRecord_Clone(t *testing.T) {
	orig := CandidateRecord{
		SourceID:           "a.pdf",
		ExternalHandle:     StringPtr("ada"),
		Skills:             []string{"Go"},
		Frameworks:         []string{"Docker"},
		YearsOfExperience:  IntPtr(4),
		Awards:             []string{"ICPC finalist"},
		Education:          []string{"bachelor"},
		SemanticSimilarity: FloatPtr(0.5),
	}

	clone := orig.Clone()
	assert.Equal(t, orig, clone)

	clone.Skills[0] = "Rust"
	clone.Awards = append(clone.Awards, "extra")
	*clone.ExternalHandle = "bob"
	*clone.YearsOfExperience = 9
	*clone.SemanticSimilarity = 0.9

	assert.Equal(t, []string{"Go"}, orig.Skills)
	assert.Equal(t, []string{"ICPC finalist"}, orig.Awards)
	assert.Equal(t, "ada", *orig.ExternalHandle)
	assert.Equal(t, 4, *orig.YearsOfExperience)
	assert.Equal(t, 0.5, *orig.SemanticSimilarity)
}

func TestCandidateRecord_CloneNilFields(t *testing.T) {
	clone := CandidateRecord{SourceID: "x"}.Clone()
	assert.Nil(t, clone.ExternalHandle)
	assert.Nil(t, clone.YearsOfExperience)
	assert.Nil(t, clone.SemanticSimilarity)
}
