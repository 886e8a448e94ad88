package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhorizon/seed-backend/internal/entity"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	return New(Options{})
}

func TestParticipantCountPlain(t *testing.T) {
	e := newTestExtractor(t)

	c := e.Extract("We expect 30 participants from all over Europe", entity.SeedMetadata{})
	require.NotNil(t, c.ParticipantCount)
	assert.Equal(t, 30, *c.ParticipantCount)
}

func TestParticipantCountWords(t *testing.T) {
	e := newTestExtractor(t)

	c := e.Extract("around twenty-five young people", entity.SeedMetadata{})
	require.NotNil(t, c.ParticipantCount)
	assert.Equal(t, 25, *c.ParticipantCount)
}

func TestParticipantCountRangeMidpoint(t *testing.T) {
	e := newTestExtractor(t)

	c := e.Extract("between 20 and 25 participants", entity.SeedMetadata{})
	require.NotNil(t, c.ParticipantCount)
	assert.Equal(t, 23, *c.ParticipantCount)

	c = e.Extract("20-30 people", entity.SeedMetadata{})
	require.NotNil(t, c.ParticipantCount)
	assert.Equal(t, 25, *c.ParticipantCount)
}

func TestParticipantCountBareRangeWhenUnanswered(t *testing.T) {
	e := newTestExtractor(t)

	c := e.Extract("16-20", entity.SeedMetadata{})
	require.NotNil(t, c.ParticipantCount)
	assert.Equal(t, 18, *c.ParticipantCount)

	c = e.Extract("41 to 60", entity.SeedMetadata{})
	require.NotNil(t, c.ParticipantCount)
	assert.Equal(t, 51, *c.ParticipantCount)

	existing := 30
	c = e.Extract("16-20", entity.SeedMetadata{ParticipantCount: &existing})
	assert.Nil(t, c.ParticipantCount)
}

func TestParticipantCountBareNumberOnlyWhenUnanswered(t *testing.T) {
	e := newTestExtractor(t)

	c := e.Extract("30", entity.SeedMetadata{})
	require.NotNil(t, c.ParticipantCount)
	assert.Equal(t, 30, *c.ParticipantCount)

	existing := 20
	c = e.Extract("30", entity.SeedMetadata{ParticipantCount: &existing})
	assert.Nil(t, c.ParticipantCount)
}

func TestParticipantCountBareNumberSkipsOtherUnits(t *testing.T) {
	e := newTestExtractor(t)

	c := e.Extract("about 10 days", entity.SeedMetadata{})
	assert.Nil(t, c.ParticipantCount)
	require.NotNil(t, c.Duration)
	assert.Equal(t, 10, *c.Duration)
}

func TestBudgetPerParticipant(t *testing.T) {
	e := newTestExtractor(t)

	count := 20
	c := e.Extract("€400 per participant", entity.SeedMetadata{ParticipantCount: &count})
	require.NotNil(t, c.BudgetPerParticipant)
	assert.Equal(t, 400.0, *c.BudgetPerParticipant)
	assert.Nil(t, c.TotalBudget)
}

func TestBudgetTotalWithKnownCount(t *testing.T) {
	e := newTestExtractor(t)

	count := 30
	c := e.Extract("our total budget is €15,000", entity.SeedMetadata{ParticipantCount: &count})
	require.NotNil(t, c.TotalBudget)
	assert.Equal(t, 15000.0, *c.TotalBudget)
	require.NotNil(t, c.BudgetPerParticipant)
	assert.Equal(t, 500.0, *c.BudgetPerParticipant)
}

func TestBudgetTotalForCount(t *testing.T) {
	e := newTestExtractor(t)

	c := e.Extract("€15000 for 30 people", entity.SeedMetadata{})
	require.NotNil(t, c.TotalBudget)
	assert.Equal(t, 15000.0, *c.TotalBudget)
	require.NotNil(t, c.ParticipantCount)
	assert.Equal(t, 30, *c.ParticipantCount)
	require.NotNil(t, c.BudgetPerParticipant)
	assert.Equal(t, 500.0, *c.BudgetPerParticipant)
}

func TestBudgetUnqualifiedAmountFloor(t *testing.T) {
	e := newTestExtractor(t)

	// large bare amounts read as totals, small ones as per-participant
	c := e.Extract("we have 12000 euros", entity.SeedMetadata{})
	require.NotNil(t, c.TotalBudget)
	assert.Equal(t, 12000.0, *c.TotalBudget)

	c = e.Extract("roughly 350 euros", entity.SeedMetadata{})
	require.NotNil(t, c.BudgetPerParticipant)
	assert.Equal(t, 350.0, *c.BudgetPerParticipant)
	assert.Nil(t, c.TotalBudget)
}

func TestBudgetWordAmount(t *testing.T) {
	e := newTestExtractor(t)

	c := e.Extract("a budget of four hundred euros each", entity.SeedMetadata{})
	require.NotNil(t, c.BudgetPerParticipant)
	assert.Equal(t, 400.0, *c.BudgetPerParticipant)
}

func TestDurationDaysAndWeeks(t *testing.T) {
	e := newTestExtractor(t)

	c := e.Extract("the exchange lasts 10 days", entity.SeedMetadata{})
	require.NotNil(t, c.Duration)
	assert.Equal(t, 10, *c.Duration)

	c = e.Extract("2 weeks", entity.SeedMetadata{})
	require.NotNil(t, c.Duration)
	assert.Equal(t, 14, *c.Duration)

	c = e.Extract("one week", entity.SeedMetadata{})
	require.NotNil(t, c.Duration)
	assert.Equal(t, 7, *c.Duration)
}

func TestDurationFromDateRange(t *testing.T) {
	e := newTestExtractor(t)

	c := e.Extract("from July 1 to July 10, 2027", entity.SeedMetadata{})
	require.NotNil(t, c.Duration)
	assert.Equal(t, 10, *c.Duration)
	require.NotNil(t, c.StartDate)
	assert.Equal(t, time.Date(2027, time.July, 1, 0, 0, 0, 0, time.UTC), *c.StartDate)
	require.NotNil(t, c.EndDate)
	assert.Equal(t, time.Date(2027, time.July, 10, 0, 0, 0, 0, time.UTC), *c.EndDate)
}

func TestDurationISODateRange(t *testing.T) {
	e := newTestExtractor(t)

	c := e.Extract("2027-08-01 until 2027-08-08", entity.SeedMetadata{})
	require.NotNil(t, c.Duration)
	assert.Equal(t, 8, *c.Duration)
}

func TestExplicitDayCountWinsOverDates(t *testing.T) {
	e := newTestExtractor(t)

	c := e.Extract("7 days, from July 1 to July 9, 2027", entity.SeedMetadata{})
	require.NotNil(t, c.Duration)
	assert.Equal(t, 7, *c.Duration)
	assert.NotNil(t, c.StartDate)
	assert.NotNil(t, c.EndDate)
}

func TestDestinationCityCountry(t *testing.T) {
	e := newTestExtractor(t)

	c := e.Extract("We want to host it in Barcelona, Spain.", entity.SeedMetadata{})
	require.NotNil(t, c.Destination)
	assert.Equal(t, "ES", c.Destination.Country)
	assert.Equal(t, "Barcelona", c.Destination.City)
}

func TestDestinationCountryOnly(t *testing.T) {
	e := newTestExtractor(t)

	c := e.Extract("The exchange takes place in Portugal.", entity.SeedMetadata{})
	require.NotNil(t, c.Destination)
	assert.Equal(t, "PT", c.Destination.Country)
	assert.Empty(t, c.Destination.City)
}

func TestDestinationWithAccessibility(t *testing.T) {
	e := newTestExtractor(t)

	c := e.Extract("Hosted in Berlin, Germany, the venue is wheelchair accessible.", entity.SeedMetadata{})
	require.NotNil(t, c.Destination)
	assert.Equal(t, "DE", c.Destination.Country)
	assert.Contains(t, c.Destination.Accessibility, "wheelchair")
}

func TestParticipantCountriesList(t *testing.T) {
	e := newTestExtractor(t)

	c := e.Extract("30 participants from Germany, France, and Spain", entity.SeedMetadata{})
	require.NotNil(t, c.ParticipantCount)
	assert.Equal(t, 30, *c.ParticipantCount)
	assert.Equal(t, []string{"DE", "FR", "ES"}, c.ParticipantCountries)
	assert.Nil(t, c.Destination)
}

func TestParticipantCountriesDemonyms(t *testing.T) {
	e := newTestExtractor(t)

	c := e.Extract("participants are German, Dutch and Italian", entity.SeedMetadata{})
	assert.Equal(t, []string{"DE", "NL", "IT"}, c.ParticipantCountries)
}

func TestLoneCountryWithoutOriginContextIgnored(t *testing.T) {
	e := newTestExtractor(t)

	// a single country in destination phrasing belongs to the destination
	c := e.Extract("It will be held in Spain.", entity.SeedMetadata{})
	require.NotNil(t, c.Destination)
	assert.Nil(t, c.ParticipantCountries)
}

func TestActivitiesWithDurations(t *testing.T) {
	e := newTestExtractor(t)

	c := e.Extract("Activities include team-building workshops, a city tour (2 hours), and intercultural evenings", entity.SeedMetadata{})
	require.Len(t, c.Activities, 3)
	assert.Equal(t, "team-building workshops", c.Activities[0].Name)
	assert.Equal(t, "a city tour", c.Activities[1].Name)
	assert.Equal(t, "2 hours", c.Activities[1].Duration)
	assert.Equal(t, "intercultural evenings", c.Activities[2].Name)
}

func TestActivityDurationStaysWithActivity(t *testing.T) {
	e := newTestExtractor(t)

	c := e.Extract("We will include media workshops (2 days) and city tours", entity.SeedMetadata{})
	assert.Nil(t, c.Duration)
	require.Len(t, c.Activities, 2)
	assert.Equal(t, "media workshops", c.Activities[0].Name)
	assert.Equal(t, "2 days", c.Activities[0].Duration)
	assert.Equal(t, "city tours", c.Activities[1].Name)
}

func TestActivitiesIgnoredWithoutIndicator(t *testing.T) {
	e := newTestExtractor(t)

	c := e.Extract("We expect 30 participants", entity.SeedMetadata{})
	assert.Empty(t, c.Activities)
}

func TestPrioritiesKeywordMapping(t *testing.T) {
	e := newTestExtractor(t)

	c := e.Extract("we care about inclusion and the environment", entity.SeedMetadata{})
	assert.Contains(t, c.Priorities, "Inclusion and diversity")
	assert.Contains(t, c.Priorities, "Environment and fight against climate change")
}

func TestPrioritiesFreeFormThemes(t *testing.T) {
	e := newTestExtractor(t)

	c := e.Extract("Our themes are media literacy and outdoor education", entity.SeedMetadata{})
	assert.Contains(t, c.Priorities, "media literacy")
	assert.Contains(t, c.Priorities, "outdoor education")
}

func TestPrioritiesCustomVocabulary(t *testing.T) {
	e := New(Options{PriorityKeywords: map[string]string{"sport": "Sport and health"}})

	c := e.Extract("the focus is sport", entity.SeedMetadata{})
	assert.Contains(t, c.Priorities, "Sport and health")
}

func TestCorrectionMarker(t *testing.T) {
	e := newTestExtractor(t)

	c := e.Extract("Actually, make that 30 participants", entity.SeedMetadata{})
	assert.True(t, c.Correction)
	require.NotNil(t, c.ParticipantCount)
	assert.Equal(t, 30, *c.ParticipantCount)

	assert.False(t, IsCorrection("30 participants"))
}

func TestEmptyCandidates(t *testing.T) {
	e := newTestExtractor(t)

	c := e.Extract("hello, what should I tell you?", entity.SeedMetadata{})
	assert.True(t, c.Empty())
}

func TestParseAmountGrouping(t *testing.T) {
	cases := map[string]float64{
		"15,000": 15000,
		"1.500":  1500,
		"399.50": 399.50,
		"400":    400,
	}
	for in, want := range cases {
		got, ok := parseAmount(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
}

func TestWordsToNumber(t *testing.T) {
	n, ok := wordsToNumber("four hundred")
	require.True(t, ok)
	assert.Equal(t, 400, n)

	n, ok = wordsToNumber("one thousand five hundred")
	require.True(t, ok)
	assert.Equal(t, 1500, n)

	_, ok = wordsToNumber("a")
	assert.False(t, ok)
}
