package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_MatchesTitle(t *testing.T) {
	assert.Equal(t, "Texas", State("Texas school funding debate", ""))
}

func TestState_MatchesDescription(t *testing.T) {
	assert.Equal(t, "Ohio", State("Statehouse roundup", "Lawmakers in Ohio advanced the bill"))
}

func TestState_ListOrderBreaksTies(t *testing.T) {
	// Alabama precedes Wyoming in the list, even though Wyoming comes
	// first in the text.
	assert.Equal(t, "Alabama", State("Wyoming and Alabama reach compact", ""))
}

func TestState_SubstringNotWordBoundary(t *testing.T) {
	// "Virginia" is listed before "West Virginia" and matches as a substring.
	assert.Equal(t, "Virginia", State("West Virginia budget stalls", ""))
}

func TestState_CaseSensitive(t *testing.T) {
	assert.Equal(t, UnknownState, State("texas lowercase mention", ""))
}

func TestState_NoMatch(t *testing.T) {
	assert.Equal(t, UnknownState, State("Federal budget talks continue", "No regional angle"))
}

func TestTopic_SingleWholeWordScoresOne(t *testing.T) {
	assert.Equal(t, "education", Topic("New teacher shortage", ""))
}

func TestTopic_SubstringDoesNotCount(t *testing.T) {
	// "schooling" must not count for "school"
	assert.Equal(t, GeneralTopic, Topic("Homeschooling rates rise", ""))
}

func TestTopic_CaseInsensitive(t *testing.T) {
	assert.Equal(t, "health", Topic("covid response audited", ""))
}

func TestTopic_MultiWordKeyword(t *testing.T) {
	// "mental health" scores for the phrase and for the bare "health" word
	assert.Equal(t, "health", Topic("Mental health services expand", ""))
}

func TestTopic_HighestScoreWins(t *testing.T) {
	// one politics hit vs two economy hits
	assert.Equal(t, "economy", Topic("Governor signs tax and budget package", ""))
}

func TestTopic_TieKeepsFirstEnumeratedCategory(t *testing.T) {
	// one education hit and one health hit; education is enumerated first
	assert.Equal(t, "education", Topic("Hospital visits a school", ""))
}

func TestTopic_ZeroScoreIsGeneral(t *testing.T) {
	assert.Equal(t, GeneralTopic, Topic("Quiet week at the capitol", "Nothing notable"))
}

func TestTopic_DescriptionCounts(t *testing.T) {
	got := Topic("Texas school funding debate", "teacher pay and school budget")
	// "school" twice and "teacher" once beat every other category
	assert.Equal(t, "education", got)
}
