package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/dartcorner/liveboard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

const bracketFixture = `
<div class="bracket">
  <div class="cell">
    <div class="t_item_container">
      <div class="t_item left" legs="3">
        <span class="entry_name">Jan Kowalski (12)</span>
        <span class="t_result">2</span>
      </div>
      <div class="t_item right">
        <span class="entry_name">Adam Nowak</span>
        <span class="t_result">1</span>
      </div>
      <span class="badge-text">Tarcza 2</span>
    </div>
    <div class="t_memo">Piotr Wisniewski</div>
  </div>
  <div class="cell">
    <div class="t_item_container">
      <div class="t_item left" legs="3">
        <span class="entry_name">Marek Zielinski</span>
        <span class="t_result">3</span>
      </div>
      <div class="t_item right">
        <span class="entry_name">Tomasz Lewandowski</span>
        <span class="t_result">0</span>
      </div>
    </div>
  </div>
  <div class="cell">
    <div class="t_item_container">
      <div class="t_item left">
        <span class="entry_name">Pawel Kaminski</span>
        <span class="t_result">0</span>
      </div>
      <div class="t_item right">
        <span class="entry_name">W/O</span>
        <span class="t_result">0</span>
      </div>
    </div>
  </div>
  <div class="cell">
    <div class="t_item_container">
      <div class="t_item left">
        <span class="entry_name"></span>
        <span class="t_result"></span>
      </div>
      <div class="t_item right">
        <span class="entry_name">Krzysztof Wojcik</span>
        <span class="t_result"></span>
      </div>
    </div>
  </div>
</div>`

func TestCollectBracketEntries(t *testing.T) {
	doc := docFromHTML(t, bracketFixture)
	entries := CollectBracketEntries(doc)

	require.Len(t, entries, 4)
	assert.Equal(t, "Jan Kowalski (12)", entries[0].Player1Name)
	assert.Equal(t, "Adam Nowak", entries[0].Player2Name)
	assert.Equal(t, "Tarcza 2", entries[0].BoardText)
	assert.Equal(t, "Piotr Wisniewski", entries[0].Referee)
	assert.Equal(t, "3", entries[0].LegsAttr)
	assert.Empty(t, entries[1].Referee)
}

func TestParseBracket(t *testing.T) {
	doc := docFromHTML(t, bracketFixture)
	matches := ParseBracket(doc, 0)

	// The entry with a missing left player is dropped.
	require.Len(t, matches, 3)

	active := matches[0]
	assert.Equal(t, "Jan Kowalski", active.Player1Name)
	assert.Equal(t, "Adam Nowak", active.Player2Name)
	assert.Equal(t, 2, active.Player1Score)
	assert.Equal(t, 1, active.Player2Score)
	assert.Equal(t, MatchID("Jan Kowalski", "Adam Nowak"), active.ExternalID)
	require.NotNil(t, active.StationNumber)
	assert.Equal(t, 2, *active.StationNumber)
	require.NotNil(t, active.Referee)
	assert.Equal(t, "Piotr Wisniewski", *active.Referee)
	assert.Equal(t, models.MatchStatusActive, active.Status)

	finished := matches[1]
	assert.Equal(t, models.MatchStatusFinished, finished.Status)
	assert.Nil(t, finished.StationNumber)

	walkover := matches[2]
	assert.Equal(t, models.MatchStatusWalkover, walkover.Status)
}

func TestParseBracketDuplicatePairingFirstWins(t *testing.T) {
	html := `
<div class="cell">
  <div class="t_item_container">
    <div class="t_item left"><span class="entry_name">Jan Kowalski</span><span class="t_result">2</span></div>
    <div class="t_item right"><span class="entry_name">Adam Nowak</span><span class="t_result">0</span></div>
  </div>
</div>
<div class="cell">
  <div class="t_item_container">
    <div class="t_item left"><span class="entry_name">Adam Nowak</span><span class="t_result">1</span></div>
    <div class="t_item right"><span class="entry_name">Jan Kowalski</span><span class="t_result">1</span></div>
  </div>
</div>`
	doc := docFromHTML(t, html)
	matches := ParseBracket(doc, 0)

	require.Len(t, matches, 1)
	assert.Equal(t, 2, matches[0].Player1Score)
	assert.Equal(t, 0, matches[0].Player2Score)
}

func TestParseBracketDefaultLegsToWin(t *testing.T) {
	html := `
<div class="t_item_container">
  <div class="t_item left"><span class="entry_name">Jan Kowalski</span><span class="t_result">3</span></div>
  <div class="t_item right"><span class="entry_name">Adam Nowak</span><span class="t_result">1</span></div>
</div>`

	t.Run("threshold disabled", func(t *testing.T) {
		matches := ParseBracket(docFromHTML(t, html), 0)
		require.Len(t, matches, 1)
		assert.Equal(t, models.MatchStatusPending, matches[0].Status)
	})

	t.Run("threshold from config", func(t *testing.T) {
		matches := ParseBracket(docFromHTML(t, html), 3)
		require.Len(t, matches, 1)
		assert.Equal(t, models.MatchStatusFinished, matches[0].Status)
	})
}

func TestParseBracketEmptyDocument(t *testing.T) {
	doc := docFromHTML(t, "<html><body><p>nothing here</p></body></html>")
	assert.Empty(t, ParseBracket(doc, 3))
}
