package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/lifelines/internal/model"
)

func dead(name string, born, died int) model.PersonRecord {
	return model.NewPersonRecord(name, born, &died)
}

func TestSummarize(t *testing.T) {
	records := []model.PersonRecord{
		dead("Edmund Barton", 1849, 1920), // 71
		dead("Harold Holt", 1908, 1967),   // 59
		dead("Frank Forde", 1890, 1983),   // 93
		model.NewPersonRecord("John Howard", 1939, nil),
	}

	s := Summarize(records)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.Living)
	assert.Equal(t, 3, s.Deceased)

	require.NotNil(t, s.MeanAgeAtDeath)
	assert.InDelta(t, (71.0+59+93)/3, *s.MeanAgeAtDeath, 1e-9)
	require.NotNil(t, s.MedianAgeAtDeath)
	assert.Equal(t, 71.0, *s.MedianAgeAtDeath)

	assert.Equal(t, "Frank Forde", s.Longest.Name)
	assert.Equal(t, "Harold Holt", s.Shortest.Name)
	assert.Equal(t, "Edmund Barton", s.EarliestBorn.Name)
	assert.Equal(t, "John Howard", s.LatestBorn.Name)
}

func TestSummarize_AllLiving(t *testing.T) {
	s := Summarize([]model.PersonRecord{model.NewPersonRecord("A", 1960, nil)})
	assert.Equal(t, 1, s.Living)
	assert.Nil(t, s.MeanAgeAtDeath)
	assert.Nil(t, s.MedianAgeAtDeath)
	assert.Nil(t, s.Longest)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Total)
	assert.Nil(t, s.EarliestBorn)
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 0.0, Median(nil))
	assert.Equal(t, 5.0, Median([]int{5}))
	assert.Equal(t, 2.5, Median([]int{4, 1, 3, 2}))

	in := []int{3, 1, 2}
	Median(in)
	assert.Equal(t, []int{3, 1, 2}, in, "input must not be reordered")
}
